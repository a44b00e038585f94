// Package vision implements the geometric hand-silhouette pipeline:
// skin segmentation, contour extraction, and convex hull finger analysis.
package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// Default skin segmentation settings (HSV, 8-bit scale).
const (
	DefaultHueLow  = 0
	DefaultHueHigh = 20
	DefaultSatLow  = 20
	DefaultSatHigh = 255
	DefaultValLow  = 70
	DefaultValHigh = 255

	// DefaultKernelSize is the side of the square structuring element used
	// to clean up the mask.
	DefaultKernelSize = 3
)

// SegmenterConfig holds the skin color thresholds and cleanup kernel size.
type SegmenterConfig struct {
	// HueLow/HueHigh bound the hue channel (0-179 in OpenCV's 8-bit HSV).
	HueLow  float64
	HueHigh float64

	// SatLow/SatHigh bound the saturation channel (0-255).
	SatLow  float64
	SatHigh float64

	// ValLow/ValHigh bound the value channel (0-255).
	ValLow  float64
	ValHigh float64

	// KernelSize is the side of the square kernel for the morphological
	// open and close passes.
	KernelSize int
}

// DefaultSegmenterConfig returns a SegmenterConfig tuned for skin tones
// under typical indoor lighting.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		HueLow:     DefaultHueLow,
		HueHigh:    DefaultHueHigh,
		SatLow:     DefaultSatLow,
		SatHigh:    DefaultSatHigh,
		ValLow:     DefaultValLow,
		ValHigh:    DefaultValHigh,
		KernelSize: DefaultKernelSize,
	}
}

// Segmenter converts a color frame into a binary mask isolating
// skin-toned regions.
type Segmenter struct {
	cfg SegmenterConfig
}

// NewSegmenter creates a Segmenter with the given configuration.
// A non-positive kernel size falls back to the default.
func NewSegmenter(cfg SegmenterConfig) *Segmenter {
	if cfg.KernelSize <= 0 {
		cfg.KernelSize = DefaultKernelSize
	}
	return &Segmenter{cfg: cfg}
}

// Segment produces a fresh binary skin mask for the frame. The caller owns
// the returned Mat and must close it. A nil, empty, or non-3-channel frame
// yields an all-zero mask of the same dimensions (or an empty Mat when no
// dimensions are known); segmentation never fails.
func (s *Segmenter) Segment(frame *gocv.Mat) gocv.Mat {
	if frame == nil || frame.Empty() {
		return gocv.NewMat()
	}
	if frame.Channels() != 3 {
		return gocv.NewMatWithSize(frame.Rows(), frame.Cols(), gocv.MatTypeCV8UC1)
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(*frame, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	lower := gocv.NewScalar(s.cfg.HueLow, s.cfg.SatLow, s.cfg.ValLow, 0)
	upper := gocv.NewScalar(s.cfg.HueHigh, s.cfg.SatHigh, s.cfg.ValHigh, 0)
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	// Open removes speckle noise, close fills small holes.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(s.cfg.KernelSize, s.cfg.KernelSize))
	defer kernel.Close()

	cleaned := gocv.NewMat()
	gocv.MorphologyEx(mask, &cleaned, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(cleaned, &mask, gocv.MorphClose, kernel)
	cleaned.Close()

	return mask
}
