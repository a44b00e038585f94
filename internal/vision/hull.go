package vision

import (
	"image"
	"math"
	"sort"

	"gocv.io/x/gocv"
)

// Default hull analysis settings.
const (
	// DefaultTipMinDistance is the minimum pixel distance a hull vertex must
	// sit from the centroid to count as a finger tip.
	DefaultTipMinDistance = 50

	// DefaultMaxTips caps retained tips; a hand has at most five fingers.
	DefaultMaxTips = 5

	// DefaultDefectMinDepth filters shallow convexity defects. OpenCV
	// reports defect depth in fixed-point 1/256 pixel units.
	DefaultDefectMinDepth = 10000

	// DefaultMaxValleys caps retained finger valleys; five fingers have at
	// most four valleys between them.
	DefaultMaxValleys = 4
)

// maxValleyAngle is the widest angle at the defect's farthest point that
// still reads as a valley between two fingers.
const maxValleyAngle = math.Pi / 2

// HullConfig controls finger tip qualification and valley detection.
type HullConfig struct {
	// TipMinDistance is the minimum pixel distance from the centroid for a
	// hull vertex to qualify as a tip.
	TipMinDistance float64

	// MaxTips is the maximum number of tips retained.
	MaxTips int

	// DefectMinDepth is the minimum convexity defect depth, in fixed-point
	// 1/256 pixel units.
	DefectMinDepth int

	// MaxValleys is the maximum number of valleys retained.
	MaxValleys int
}

// DefaultHullConfig returns the standard hull analysis settings.
func DefaultHullConfig() HullConfig {
	return HullConfig{
		TipMinDistance: DefaultTipMinDistance,
		MaxTips:        DefaultMaxTips,
		DefectMinDepth: DefaultDefectMinDepth,
		MaxValleys:     DefaultMaxValleys,
	}
}

// TipPoint is a position in frame-normalized coordinates (x, y in [0,1]).
type TipPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Analysis holds the hull geometry extracted from one contour.
type Analysis struct {
	// Tips are the qualifying finger tip candidates, sorted left to right.
	// Every tip lies on the convex hull, above the centroid, and beyond the
	// configured radial distance from it.
	Tips []TipPoint

	// Valleys are the concavities between adjacent fingers found through
	// convexity defects.
	Valleys []TipPoint

	// Centroid is the normalized first-moment center of the contour.
	Centroid TipPoint

	// Degenerate is set when the centroid could not be computed (zero-area
	// moments); Tips and Valleys are empty in that case.
	Degenerate bool
}

// HullAnalyzer isolates protruding finger tips from the palm mass of a
// contour via its convex hull and convexity defects.
type HullAnalyzer struct {
	cfg HullConfig
}

// NewHullAnalyzer creates a HullAnalyzer with the given configuration.
// Non-positive caps fall back to the defaults.
func NewHullAnalyzer(cfg HullConfig) *HullAnalyzer {
	if cfg.MaxTips <= 0 {
		cfg.MaxTips = DefaultMaxTips
	}
	if cfg.MaxValleys <= 0 {
		cfg.MaxValleys = DefaultMaxValleys
	}
	return &HullAnalyzer{cfg: cfg}
}

// Analyze computes the convex hull, centroid, finger tips, and finger
// valleys of a contour within a frame of the given pixel dimensions.
// Geometric degeneracy is reported through Analysis.Degenerate, never an
// error: Analyze is total over any contour.
func (a *HullAnalyzer) Analyze(c Contour, frameWidth, frameHeight int) Analysis {
	if len(c.Points) == 0 || frameWidth <= 0 || frameHeight <= 0 {
		return Analysis{Degenerate: true}
	}

	m00, m10, m01 := contourMoments(c.Points)
	if math.Abs(m00) < 1e-9 {
		return Analysis{Degenerate: true}
	}
	cx := m10 / m00
	cy := m01 / m00

	pv := gocv.NewPointVectorFromPoints(c.Points)
	defer pv.Close()

	hull := gocv.NewMat()
	defer hull.Close()
	gocv.ConvexHull(pv, &hull, false, false)

	fw := float64(frameWidth)
	fh := float64(frameHeight)

	var tips []TipPoint
	for i := 0; i < hull.Cols(); i++ {
		for j := 0; j < hull.Rows(); j++ {
			idx := int(hull.GetIntAt(j, i))
			if idx < 0 || idx >= len(c.Points) {
				continue
			}
			p := c.Points[idx]

			// Tips protrude from the palm mass and point away from it:
			// far from the centroid and above it.
			dx := float64(p.X) - cx
			dy := float64(p.Y) - cy
			if math.Sqrt(dx*dx+dy*dy) <= a.cfg.TipMinDistance {
				continue
			}
			if float64(p.Y) >= cy {
				continue
			}

			tips = append(tips, TipPoint{X: float64(p.X) / fw, Y: float64(p.Y) / fh})
		}
	}

	sort.Slice(tips, func(i, j int) bool { return tips[i].X < tips[j].X })
	if len(tips) > a.cfg.MaxTips {
		tips = tips[:a.cfg.MaxTips]
	}

	valleys := a.findValleys(pv, hull, c.Points, fw, fh)

	return Analysis{
		Tips:    tips,
		Valleys: valleys,
		Centroid: TipPoint{
			X: cx / fw,
			Y: cy / fh,
		},
	}
}

// findValleys locates the concave folds between adjacent fingers. A
// convexity defect counts as a valley when the angle at its farthest point
// is at most 90 degrees and the defect is deep enough to be a gap between
// fingers rather than contour jitter.
func (a *HullAnalyzer) findValleys(pv gocv.PointVector, hull gocv.Mat, pts []image.Point, fw, fh float64) []TipPoint {
	// convexityDefects needs at least four contour points.
	if pv.Size() < 4 || hull.Empty() {
		return nil
	}

	defects := gocv.NewMat()
	defer defects.Close()
	gocv.ConvexityDefects(pv, hull, &defects)

	var valleys []TipPoint
	for i := 0; i < defects.Rows(); i++ {
		if len(valleys) >= a.cfg.MaxValleys {
			break
		}

		si := int(defects.GetIntAt(i, 0))
		ei := int(defects.GetIntAt(i, 1))
		fi := int(defects.GetIntAt(i, 2))
		depth := int(defects.GetIntAt(i, 3))

		if depth <= a.cfg.DefectMinDepth {
			continue
		}
		if si < 0 || si >= len(pts) || ei < 0 || ei >= len(pts) || fi < 0 || fi >= len(pts) {
			continue
		}

		start := pts[si]
		end := pts[ei]
		far := pts[fi]

		sideA := pointDist(start, end)
		sideB := pointDist(start, far)
		sideC := pointDist(end, far)
		if sideB == 0 || sideC == 0 {
			continue
		}

		// Cosine rule for the angle at the farthest point.
		cos := (sideB*sideB + sideC*sideC - sideA*sideA) / (2 * sideB * sideC)
		cos = math.Max(-1, math.Min(1, cos))
		if math.Acos(cos) > maxValleyAngle {
			continue
		}

		valleys = append(valleys, TipPoint{X: float64(far.X) / fw, Y: float64(far.Y) / fh})
	}

	return valleys
}

// contourMoments computes the polygon moments m00, m10, and m01 of a closed
// point sequence via Green's theorem, matching raster contour moments. m00
// is the signed area; it is zero for degenerate (collinear) contours.
func contourMoments(pts []image.Point) (m00, m10, m01 float64) {
	n := len(pts)
	for i := 0; i < n; i++ {
		p := pts[i]
		q := pts[(i+1)%n]
		cross := float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
		m00 += cross
		m10 += (float64(p.X) + float64(q.X)) * cross
		m01 += (float64(p.Y) + float64(q.Y)) * cross
	}
	m00 /= 2
	m10 /= 6
	m01 /= 6
	return m00, m10, m01
}

func pointDist(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
