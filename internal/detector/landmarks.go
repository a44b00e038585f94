// Package detector provides hand detection strategies for sign recognition.
package detector

import (
	"sort"

	"github.com/byrnald/inclusive-sign-translator/internal/vision"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// DefaultMinSeedPoints is the minimum number of observed geometry points
// required before a landmark set is synthesized from contour geometry.
const DefaultMinSeedPoints = 3

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Landmark is one point of a 21-point hand layout. Synthesized marks points
// fabricated by padding rather than observed in the frame.
type Landmark struct {
	Point3D
	Synthesized bool `json:"synthesized,omitempty"`
}

// HandLandmarks is the full 21-point hand layout produced by the external
// landmark helper.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// fingerJoints pairs each finger tip with the joint below it. The thumb
// folds at its IP joint, the other fingers at their PIP joints.
var fingerJoints = [5][2]int{
	{ThumbTip, ThumbIP},
	{IndexTip, IndexPIP},
	{MiddleTip, MiddlePIP},
	{RingTip, RingPIP},
	{PinkyTip, PinkyPIP},
}

// RaisedTips derives the raised finger tips from a full landmark set. A
// finger counts as raised when its tip sits above the joint below it
// (smaller y in image coordinates). Tips are returned sorted left to right.
func RaisedTips(h HandLandmarks) []vision.TipPoint {
	var tips []vision.TipPoint
	for _, fj := range fingerJoints {
		tip, joint := h.Points[fj[0]], h.Points[fj[1]]
		if tip.Y < joint.Y {
			tips = append(tips, vision.TipPoint{X: tip.X, Y: tip.Y})
		}
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i].X < tips[j].X })
	return tips
}

// SynthesizeLandmarks assembles a 21-point layout from contour geometry.
// The observed seeds are the centroid, then tips, then valleys; the layout
// is padded to NumLandmarks by repeatedly appending the midpoint of the
// last two points, each padded point flagged Synthesized. When fewer than
// minSeeds observed points are available no layout is produced.
func SynthesizeLandmarks(centroid vision.TipPoint, tips, valleys []vision.TipPoint, minSeeds int) ([]Landmark, bool) {
	if minSeeds <= 0 {
		minSeeds = DefaultMinSeedPoints
	}

	seeds := make([]vision.TipPoint, 0, 1+len(tips)+len(valleys))
	seeds = append(seeds, centroid)
	seeds = append(seeds, tips...)
	seeds = append(seeds, valleys...)
	if len(seeds) < minSeeds {
		return nil, false
	}
	if len(seeds) > NumLandmarks {
		seeds = seeds[:NumLandmarks]
	}

	landmarks := make([]Landmark, 0, NumLandmarks)
	for _, s := range seeds {
		landmarks = append(landmarks, Landmark{Point3D: Point3D{X: s.X, Y: s.Y}})
	}

	for len(landmarks) < NumLandmarks {
		p := Point3D{X: 0.5, Y: 0.5}
		if len(landmarks) >= 2 {
			a := landmarks[len(landmarks)-2].Point3D
			b := landmarks[len(landmarks)-1].Point3D
			p = Point3D{
				X: (a.X + b.X) / 2,
				Y: (a.Y + b.Y) / 2,
				Z: (a.Z + b.Z) / 2,
			}
		}
		landmarks = append(landmarks, Landmark{Point3D: p, Synthesized: true})
	}

	return landmarks, true
}

// DetectionFromHand converts a full landmark set into a Detection, deriving
// finger tips with the raised-finger rule and the centroid as the landmark
// mean. All points are observed; Confidence carries the hand score.
func DetectionFromHand(h HandLandmarks, src Source) *Detection {
	landmarks := make([]Landmark, NumLandmarks)
	var cx, cy float64
	for i, p := range h.Points {
		landmarks[i] = Landmark{Point3D: p}
		cx += p.X
		cy += p.Y
	}

	return &Detection{
		Tips:       RaisedTips(h),
		Centroid:   vision.TipPoint{X: cx / NumLandmarks, Y: cy / NumLandmarks},
		Landmarks:  landmarks,
		Confidence: h.Score,
		Source:     src,
	}
}
