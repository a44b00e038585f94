package detector

import (
	"errors"

	"github.com/byrnald/inclusive-sign-translator/internal/vision"
	"gocv.io/x/gocv"
)

// ErrClosed is returned when a detector is used after Close.
var ErrClosed = errors.New("detector: closed")

// Source identifies the strategy that produced a detection.
type Source string

const (
	// SourceContour marks detections from the silhouette geometry pipeline.
	SourceContour Source = "contour"
	// SourceExternal marks detections from the external landmark helper.
	SourceExternal Source = "external"
	// SourceMock marks detections scripted by tests.
	SourceMock Source = "mock"
)

// Detection is the geometric summary of one observed hand in one frame.
type Detection struct {
	// Tips are the qualifying finger tips in frame-normalized coordinates,
	// sorted left to right.
	Tips []vision.TipPoint `json:"tips"`

	// Valleys are the concavities between adjacent fingers.
	Valleys []vision.TipPoint `json:"valleys,omitempty"`

	// Centroid is the normalized center of the hand mass.
	Centroid vision.TipPoint `json:"centroid"`

	// Landmarks is a 21-point layout when one could be assembled, nil
	// otherwise. Points fabricated by padding are flagged Synthesized so
	// consumers can tell them from observed geometry.
	Landmarks []Landmark `json:"landmarks,omitempty"`

	// Confidence estimates how trustworthy the landmark set is, in [0,1].
	// The contour strategy reports the observed (non-synthesized) fraction;
	// the external strategy reports the helper model's score.
	Confidence float64 `json:"confidence"`

	// Source names the strategy that produced this detection.
	Source Source `json:"source"`

	// Degenerate is set when a hand-sized region was found but its geometry
	// could not be resolved (zero-area moments). Tips are empty in that case.
	Degenerate bool `json:"degenerate,omitempty"`
}

// FingerCount returns the number of qualified finger tips, capped at five.
func (d *Detection) FingerCount() int {
	if d == nil {
		return 0
	}
	n := len(d.Tips)
	if n > 5 {
		n = 5
	}
	return n
}

// Detector locates at most one hand in a video frame.
//
// A nil Detection with a nil error means no hand was found; implementations
// reserve errors for operational failures, never for empty frames.
type Detector interface {
	Detect(frame *gocv.Mat) (*Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options shared by the detector strategies.
type Config struct {
	// Segmenter bounds the skin-color band for the contour strategy.
	Segmenter vision.SegmenterConfig

	// Contour bounds the accepted silhouette area.
	Contour vision.ContourConfig

	// Hull controls finger tip qualification and valley detection.
	Hull vision.HullConfig

	// MinSeedPoints is the minimum number of observed points required
	// before a synthesized landmark set is produced (default: 3).
	MinSeedPoints int

	// MinScore is the minimum per-hand score accepted from the external
	// helper (0.0-1.0).
	MinScore float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Segmenter:     vision.DefaultSegmenterConfig(),
		Contour:       vision.DefaultContourConfig(),
		Hull:          vision.DefaultHullConfig(),
		MinSeedPoints: DefaultMinSeedPoints,
		MinScore:      0.5,
	}
}
