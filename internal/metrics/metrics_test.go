package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
)

func TestMetrics_RecordLetter(t *testing.T) {
	m := New()

	m.RecordLetter(asl.LetterA)
	m.RecordLetter(asl.LetterA)
	m.RecordLetter(asl.LetterB)

	if got := m.LetterCount(asl.LetterA); got != 2 {
		t.Errorf("LetterCount(A) = %d, want 2", got)
	}
	if got := m.LetterCount(asl.LetterB); got != 1 {
		t.Errorf("LetterCount(B) = %d, want 1", got)
	}
	if got := m.StableLetters.Load(); got != 3 {
		t.Errorf("StableLetters = %d, want 3", got)
	}
}

func TestMetrics_RecordLetter_OutsideCatalog(t *testing.T) {
	m := New()

	m.RecordLetter(asl.Letter("Z"))

	if got := m.LetterCount(asl.LetterUnknown); got != 1 {
		t.Errorf("unrecognized letters should count as Unknown, got %d", got)
	}
	if got := m.LetterCount(asl.Letter("Z")); got != 0 {
		t.Errorf("LetterCount for uncataloged letter should be 0, got %d", got)
	}
}

func TestMetrics_UpdateDetectLatency(t *testing.T) {
	m := New()

	m.UpdateDetectLatency(42 * time.Millisecond)

	if got := m.DetectLatencyMs.Load(); got != 42 {
		t.Errorf("DetectLatencyMs = %d, want 42", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.FramesRead.Add(3)
	m.ReadErrors.Add(1)
	m.RecognitionActive.Store(1)
	m.RecordLetter(asl.LetterA)
	m.RecordLetter(asl.LetterA)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("metrics endpoint returned %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"signtrans_frames_read_total 3",
		"signtrans_read_errors_total 1",
		"signtrans_recognition_active 1",
		`signtrans_letter_total{letter="A"} 2`,
		"signtrans_stable_letters_total 2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
