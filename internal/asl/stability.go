package asl

// Default stability window settings.
const (
	// DefaultWindowSize is the number of recent results considered.
	DefaultWindowSize = 5
	// DefaultAgreement is the fraction of the window one letter must cover
	// before it is reported stable.
	DefaultAgreement = 0.6
)

// StabilityConfig tunes the temporal smoothing window.
type StabilityConfig struct {
	// WindowSize is the number of recent results considered (default: 5).
	WindowSize int

	// Agreement is the fraction of the window that must share one letter
	// for a stable reading, in (0, 1] (default: 0.6).
	Agreement float64
}

// DefaultStabilityConfig returns the standard smoothing settings.
func DefaultStabilityConfig() StabilityConfig {
	return StabilityConfig{
		WindowSize: DefaultWindowSize,
		Agreement:  DefaultAgreement,
	}
}

// StabilityFilter smooths per-frame results over a sliding window so a
// letter is only reported once it persists across consecutive frames.
//
// The filter is owned by exactly one pipeline and is not safe for
// concurrent use. None results participate in the window like any other;
// a None plurality reads back as no stable letter.
type StabilityFilter struct {
	cfg    StabilityConfig
	window []Result
}

// NewStabilityFilter creates a StabilityFilter with the given settings.
// Out-of-range values fall back to the defaults.
func NewStabilityFilter(cfg StabilityConfig) *StabilityFilter {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = DefaultWindowSize
	}
	if cfg.Agreement <= 0 || cfg.Agreement > 1 {
		cfg.Agreement = DefaultAgreement
	}
	return &StabilityFilter{
		cfg:    cfg,
		window: make([]Result, 0, cfg.WindowSize),
	}
}

// Push records one per-frame result and returns the current stable
// reading. A reading is stable only when the window is full and one letter
// covers at least Agreement of it; its confidence is then the mean over
// every result in the window, disagreeing frames included. Anything short
// of that returns {None, 0}.
func (f *StabilityFilter) Push(r Result) Result {
	if len(f.window) == f.cfg.WindowSize {
		copy(f.window, f.window[1:])
		f.window[len(f.window)-1] = r
	} else {
		f.window = append(f.window, r)
	}

	if len(f.window) < f.cfg.WindowSize {
		return Result{Letter: LetterNone}
	}

	counts := make(map[Letter]int, len(f.window))
	var best Letter
	bestN := 0
	var sum float64
	for _, w := range f.window {
		counts[w.Letter]++
		sum += w.Confidence
		if counts[w.Letter] > bestN {
			best, bestN = w.Letter, counts[w.Letter]
		}
	}

	if float64(bestN) < f.cfg.Agreement*float64(f.cfg.WindowSize) || best == LetterNone {
		return Result{Letter: LetterNone}
	}
	return Result{Letter: best, Confidence: sum / float64(len(f.window))}
}

// Reset clears the window, for example at the start of a new session.
func (f *StabilityFilter) Reset() {
	f.window = f.window[:0]
}

// Len returns the number of results currently in the window.
func (f *StabilityFilter) Len() int {
	return len(f.window)
}

// Cap returns the window capacity.
func (f *StabilityFilter) Cap() int {
	return f.cfg.WindowSize
}

// Window returns a snapshot of the current window, oldest first.
func (f *StabilityFilter) Window() []Result {
	out := make([]Result, len(f.window))
	copy(out, f.window)
	return out
}
