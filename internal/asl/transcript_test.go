package asl

import (
	"testing"
	"time"
)

func TestTranscript(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

	t.Run("empty entries", func(t *testing.T) {
		if got := Transcript(nil, DefaultWordGap); got != "" {
			t.Errorf("transcript = %q, want empty", got)
		}
	})

	t.Run("letters within the gap join", func(t *testing.T) {
		entries := []Entry{
			{Letter: LetterC, At: at(0)},
			{Letter: LetterA, At: at(1)},
			{Letter: LetterB, At: at(2)},
		}

		if got := Transcript(entries, DefaultWordGap); got != "CAB" {
			t.Errorf("transcript = %q, want %q", got, "CAB")
		}
	})

	t.Run("long pause splits words", func(t *testing.T) {
		entries := []Entry{
			{Letter: LetterA, At: at(0)},
			{Letter: LetterB, At: at(1)},
			{Letter: LetterC, At: at(10)},
		}

		if got := Transcript(entries, DefaultWordGap); got != "AB C" {
			t.Errorf("transcript = %q, want %q", got, "AB C")
		}
	})

	t.Run("unknown and none are skipped", func(t *testing.T) {
		entries := []Entry{
			{Letter: LetterA, At: at(0)},
			{Letter: LetterUnknown, At: at(1)},
			{Letter: LetterNone, At: at(2)},
			{Letter: LetterB, At: at(2)},
		}

		if got := Transcript(entries, DefaultWordGap); got != "AB" {
			t.Errorf("transcript = %q, want %q", got, "AB")
		}
	})

	t.Run("pause measured between emitted letters", func(t *testing.T) {
		// The skipped entry does not reset the word gap.
		entries := []Entry{
			{Letter: LetterA, At: at(0)},
			{Letter: LetterUnknown, At: at(2)},
			{Letter: LetterB, At: at(4)},
		}

		if got := Transcript(entries, DefaultWordGap); got != "A B" {
			t.Errorf("transcript = %q, want %q", got, "A B")
		}
	})

	t.Run("custom gap", func(t *testing.T) {
		entries := []Entry{
			{Letter: LetterA, At: at(0)},
			{Letter: LetterB, At: at(1)},
		}

		if got := Transcript(entries, 500*time.Millisecond); got != "A B" {
			t.Errorf("transcript = %q, want %q", got, "A B")
		}
	})

	t.Run("non-positive gap uses the default", func(t *testing.T) {
		entries := []Entry{
			{Letter: LetterA, At: at(0)},
			{Letter: LetterB, At: at(1)},
		}

		if got := Transcript(entries, 0); got != "AB" {
			t.Errorf("transcript = %q, want %q", got, "AB")
		}
	})
}
