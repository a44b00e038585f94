// Package asl classifies hand geometry into ASL letters and smooths the
// per-frame readings into stable ones.
package asl

import (
	"sort"

	"github.com/byrnald/inclusive-sign-translator/internal/detector"
	"github.com/byrnald/inclusive-sign-translator/internal/vision"
)

// MaxFingers caps the finger count; a hand has five.
const MaxFingers = 5

// ThumbRegionMax is the frame-x boundary for a single raised finger: a tip
// left of it reads as a thumb (A), at or right of it as an index finger (D).
const ThumbRegionMax = 0.4

// Confidence assigned by each rule of the decision table.
const (
	// ConfidenceFist is the confidence for a silhouette with no tips (E).
	ConfidenceFist = 0.75
	// ConfidenceSingleFinger is the confidence for one raised finger (A, D).
	ConfidenceSingleFinger = 0.70
	// ConfidenceCurved is the confidence at the edges of the curved-hand
	// finger band (2 or 4 tips, C).
	ConfidenceCurved = 0.60
	// ConfidenceCurvedPeak is the confidence at the center of the
	// curved-hand band (3 tips, C).
	ConfidenceCurvedPeak = 0.70
	// ConfidenceOpenHand is the confidence for five raised fingers (B).
	ConfidenceOpenHand = 0.80
)

// Result is one classification outcome. Confidence is always in [0, 1] and
// is 0 whenever Letter is None or Unknown.
type Result struct {
	Letter     Letter  `json:"letter"`
	Confidence float64 `json:"confidence"`
}

// CountFingers returns the number of finger tips, capped at MaxFingers.
func CountFingers(tips []vision.TipPoint) int {
	n := len(tips)
	if n > MaxFingers {
		n = MaxFingers
	}
	return n
}

// Classify maps a finger count and tip layout to a letter with the fixed
// confidence of the matched rule. It is total and deterministic: counts
// outside 0..5 yield Unknown with confidence 0.
func Classify(count int, tips []vision.TipPoint) Result {
	switch count {
	case 0:
		return Result{Letter: LetterE, Confidence: ConfidenceFist}
	case 1:
		// Tips arrive sorted, so the leftmost decides thumb versus index.
		if len(tips) > 0 && tips[0].X < ThumbRegionMax {
			return Result{Letter: LetterA, Confidence: ConfidenceSingleFinger}
		}
		return Result{Letter: LetterD, Confidence: ConfidenceSingleFinger}
	case 2:
		return Result{Letter: LetterC, Confidence: ConfidenceCurved}
	case 3:
		return Result{Letter: LetterC, Confidence: ConfidenceCurvedPeak}
	case 4:
		return Result{Letter: LetterC, Confidence: ConfidenceCurved}
	case 5:
		return Result{Letter: LetterB, Confidence: ConfidenceOpenHand}
	default:
		return Result{Letter: LetterUnknown}
	}
}

// ClassifyDetection classifies one detection. No hand (nil) yields None;
// degenerate geometry yields Unknown.
func ClassifyDetection(det *detector.Detection) Result {
	if det == nil {
		return Result{Letter: LetterNone}
	}
	if det.Degenerate {
		return Result{Letter: LetterUnknown}
	}
	return Classify(det.FingerCount(), det.Tips)
}

// ClassifyLandmarks classifies a pre-extracted normalized point list,
// treating the points as finger tips. The list is copied and sorted left
// to right before the rules apply; the caller's slice is not modified.
func ClassifyLandmarks(points []vision.TipPoint) Result {
	tips := make([]vision.TipPoint, len(points))
	copy(tips, points)
	sort.Slice(tips, func(i, j int) bool { return tips[i].X < tips[j].X })
	return Classify(CountFingers(tips), tips)
}
