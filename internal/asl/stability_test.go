package asl

import (
	"math"
	"testing"
)

func push(f *StabilityFilter, letter Letter, conf float64, n int) Result {
	var last Result
	for i := 0; i < n; i++ {
		last = f.Push(Result{Letter: letter, Confidence: conf})
	}
	return last
}

func TestStabilityFilter_Push(t *testing.T) {
	t.Run("partial window yields none", func(t *testing.T) {
		f := NewStabilityFilter(DefaultStabilityConfig())

		for i := 0; i < DefaultWindowSize-1; i++ {
			got := f.Push(Result{Letter: LetterB, Confidence: 0.8})
			if got.Letter != LetterNone || got.Confidence != 0 {
				t.Fatalf("push %d: got %v, want {None, 0}", i+1, got)
			}
		}
	})

	t.Run("five identical readings stabilize unchanged", func(t *testing.T) {
		f := NewStabilityFilter(DefaultStabilityConfig())

		got := push(f, LetterB, 0.8, 5)

		if got.Letter != LetterB {
			t.Errorf("letter = %s, want %s", got.Letter, LetterB)
		}
		if math.Abs(got.Confidence-0.8) > epsilon {
			t.Errorf("confidence = %f, want 0.8", got.Confidence)
		}
	})

	t.Run("majority stabilizes with the full-window mean", func(t *testing.T) {
		f := NewStabilityFilter(DefaultStabilityConfig())

		push(f, LetterB, 0.8, 3)
		got := push(f, LetterC, 0.6, 2)

		if got.Letter != LetterB {
			t.Errorf("letter = %s, want %s", got.Letter, LetterB)
		}
		// Mean over all five results, the two C frames included.
		want := (0.8*3 + 0.6*2) / 5
		if math.Abs(got.Confidence-want) > epsilon {
			t.Errorf("confidence = %f, want %f", got.Confidence, want)
		}
	})

	t.Run("split window yields none", func(t *testing.T) {
		f := NewStabilityFilter(DefaultStabilityConfig())

		push(f, LetterB, 0.8, 2)
		push(f, LetterC, 0.6, 2)
		got := push(f, LetterE, 0.75, 1)

		if got.Letter != LetterNone {
			t.Errorf("letter = %s, want %s", got.Letter, LetterNone)
		}
		if got.Confidence != 0 {
			t.Errorf("confidence = %f, want 0", got.Confidence)
		}
	})

	t.Run("rolling window transitions to the new letter", func(t *testing.T) {
		f := NewStabilityFilter(DefaultStabilityConfig())

		push(f, LetterB, 0.8, 5)

		// Two disagreeing frames leave the B plurality intact.
		got := push(f, LetterC, 0.7, 2)
		if got.Letter != LetterB {
			t.Fatalf("letter = %s, want %s after two C frames", got.Letter, LetterB)
		}

		// The third flips it.
		got = push(f, LetterC, 0.7, 1)
		if got.Letter != LetterC {
			t.Fatalf("letter = %s, want %s after three C frames", got.Letter, LetterC)
		}
		want := (0.8*2 + 0.7*3) / 5
		if math.Abs(got.Confidence-want) > epsilon {
			t.Errorf("confidence = %f, want %f", got.Confidence, want)
		}
	})

	t.Run("none plurality yields none with zero confidence", func(t *testing.T) {
		f := NewStabilityFilter(DefaultStabilityConfig())

		push(f, LetterNone, 0, 3)
		got := push(f, LetterB, 0.8, 2)

		if got.Letter != LetterNone {
			t.Errorf("letter = %s, want %s", got.Letter, LetterNone)
		}
		if got.Confidence != 0 {
			t.Errorf("confidence = %f, want 0 even with confident frames present", got.Confidence)
		}
	})

	t.Run("unknown can stabilize", func(t *testing.T) {
		f := NewStabilityFilter(DefaultStabilityConfig())

		got := push(f, LetterUnknown, 0, 5)

		if got.Letter != LetterUnknown {
			t.Errorf("letter = %s, want %s", got.Letter, LetterUnknown)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		run := func() Result {
			f := NewStabilityFilter(DefaultStabilityConfig())
			push(f, LetterB, 0.8, 3)
			return push(f, LetterC, 0.6, 2)
		}

		first := run()
		for i := 0; i < 50; i++ {
			if got := run(); got != first {
				t.Fatalf("stability changed between runs: %v then %v", first, got)
			}
		}
	})
}

func TestStabilityFilter_Reset(t *testing.T) {
	f := NewStabilityFilter(DefaultStabilityConfig())

	push(f, LetterB, 0.8, 5)
	f.Reset()

	if f.Len() != 0 {
		t.Errorf("Len = %d after Reset, want 0", f.Len())
	}

	got := f.Push(Result{Letter: LetterB, Confidence: 0.8})
	if got.Letter != LetterNone {
		t.Errorf("letter = %s right after Reset, want %s", got.Letter, LetterNone)
	}
}

func TestStabilityFilter_Window(t *testing.T) {
	f := NewStabilityFilter(DefaultStabilityConfig())

	letters := []Letter{LetterA, LetterB, LetterC, LetterD, LetterE, LetterA}
	for _, l := range letters {
		f.Push(Result{Letter: l, Confidence: 0.7})
	}

	window := f.Window()
	if len(window) != DefaultWindowSize {
		t.Fatalf("window length = %d, want %d", len(window), DefaultWindowSize)
	}
	// Oldest result was evicted; the window starts at the second push.
	if window[0].Letter != LetterB {
		t.Errorf("window[0] = %s, want %s", window[0].Letter, LetterB)
	}
	if window[len(window)-1].Letter != LetterA {
		t.Errorf("window tail = %s, want %s", window[len(window)-1].Letter, LetterA)
	}

	// The snapshot is a copy.
	window[0] = Result{Letter: LetterE, Confidence: 1}
	if f.Window()[0].Letter != LetterB {
		t.Error("mutating the snapshot changed the filter window")
	}
}

func TestStabilityFilter_CustomConfig(t *testing.T) {
	t.Run("full agreement required", func(t *testing.T) {
		f := NewStabilityFilter(StabilityConfig{WindowSize: 3, Agreement: 1.0})

		push(f, LetterA, 0.7, 2)
		if got := push(f, LetterB, 0.8, 1); got.Letter != LetterNone {
			t.Errorf("letter = %s, want %s with one dissenter", got.Letter, LetterNone)
		}

		f.Reset()
		if got := push(f, LetterA, 0.7, 3); got.Letter != LetterA {
			t.Errorf("letter = %s, want %s on unanimous window", got.Letter, LetterA)
		}
	})

	t.Run("lower agreement stabilizes sooner", func(t *testing.T) {
		f := NewStabilityFilter(StabilityConfig{WindowSize: 4, Agreement: 0.5})

		push(f, LetterA, 0.7, 2)
		got := push(f, LetterC, 0.6, 2)

		if got.Letter != LetterA {
			t.Errorf("letter = %s, want %s at half agreement", got.Letter, LetterA)
		}
	})
}

func TestNewStabilityFilter_Defaults(t *testing.T) {
	f := NewStabilityFilter(StabilityConfig{})

	if f.Cap() != DefaultWindowSize {
		t.Errorf("Cap = %d, want %d", f.Cap(), DefaultWindowSize)
	}

	got := push(f, LetterB, 0.8, DefaultWindowSize)
	if got.Letter != LetterB {
		t.Errorf("letter = %s, want %s with default agreement", got.Letter, LetterB)
	}
}
