package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// Default contour acceptance band in pixels squared. Regions below the
// minimum are noise, regions above it are objects filling the frame.
const (
	DefaultMinArea = 5000
	DefaultMaxArea = 50000
)

// ContourConfig bounds the plausible hand sizes.
type ContourConfig struct {
	// MinArea is the smallest accepted contour area in pixels squared.
	MinArea float64

	// MaxArea is the largest accepted contour area in pixels squared.
	MaxArea float64
}

// DefaultContourConfig returns the standard acceptance band.
func DefaultContourConfig() ContourConfig {
	return ContourConfig{
		MinArea: DefaultMinArea,
		MaxArea: DefaultMaxArea,
	}
}

// Contour is the outer boundary of one foreground region in pixel
// coordinates, together with its enclosed area.
type Contour struct {
	Points []image.Point
	Area   float64
}

// ContourExtractor finds the largest plausible hand-shaped region in a
// binary mask.
type ContourExtractor struct {
	cfg ContourConfig
}

// NewContourExtractor creates a ContourExtractor with the given bounds.
func NewContourExtractor(cfg ContourConfig) *ContourExtractor {
	return &ContourExtractor{cfg: cfg}
}

// Extract finds all external boundaries in the mask and returns the one
// with the largest enclosed area. It reports ok=false when the mask has no
// foreground or the largest region falls outside the configured area band.
func (e *ContourExtractor) Extract(mask *gocv.Mat) (Contour, bool) {
	if mask == nil || mask.Empty() {
		return Contour{}, false
	}

	contours := gocv.FindContours(*mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	largest := -1
	largestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > largestArea {
			largestArea = area
			largest = i
		}
	}

	if largest < 0 {
		return Contour{}, false
	}
	if largestArea < e.cfg.MinArea || largestArea > e.cfg.MaxArea {
		return Contour{}, false
	}

	return Contour{
		Points: contours.At(largest).ToPoints(),
		Area:   largestArea,
	}, true
}
