package detector

import (
	"sync"

	"github.com/byrnald/inclusive-sign-translator/internal/vision"
	"gocv.io/x/gocv"
)

// ContourDetector is the primary Detector. It locates a hand by skin-color
// segmentation and convex-hull geometry; no learned model is involved.
type ContourDetector struct {
	cfg  Config
	seg  *vision.Segmenter
	ext  *vision.ContourExtractor
	hull *vision.HullAnalyzer

	mu     sync.Mutex
	closed bool
}

// NewContourDetector creates a ContourDetector with the given configuration.
func NewContourDetector(cfg Config) *ContourDetector {
	return &ContourDetector{
		cfg:  cfg,
		seg:  vision.NewSegmenter(cfg.Segmenter),
		ext:  vision.NewContourExtractor(cfg.Contour),
		hull: vision.NewHullAnalyzer(cfg.Hull),
	}
}

// Detect runs one frame through segmentation, contour extraction, and hull
// analysis. Frames with no in-band silhouette yield (nil, nil). An accepted
// silhouette with zero tips is still a detection; a closed fist has none.
func (d *ContourDetector) Detect(frame *gocv.Mat) (*Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if frame == nil || frame.Empty() {
		return nil, nil
	}

	mask := d.seg.Segment(frame)
	defer mask.Close()

	c, ok := d.ext.Extract(&mask)
	if !ok {
		return nil, nil
	}

	analysis := d.hull.Analyze(c, frame.Cols(), frame.Rows())
	det := &Detection{
		Tips:       analysis.Tips,
		Valleys:    analysis.Valleys,
		Centroid:   analysis.Centroid,
		Source:     SourceContour,
		Degenerate: analysis.Degenerate,
	}
	if analysis.Degenerate {
		return det, nil
	}

	if landmarks, ok := SynthesizeLandmarks(analysis.Centroid, analysis.Tips, analysis.Valleys, d.cfg.MinSeedPoints); ok {
		det.Landmarks = landmarks

		observed := 0
		for _, lm := range landmarks {
			if !lm.Synthesized {
				observed++
			}
		}
		det.Confidence = float64(observed) / NumLandmarks
	}

	return det, nil
}

// Close marks the detector closed; subsequent Detect calls fail.
func (d *ContourDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
