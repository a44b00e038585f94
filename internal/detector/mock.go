package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	det *Detection
	err error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetDetection sets the detection that will be returned by Detect.
func (m *MockDetector) SetDetection(det *Detection) {
	m.det = det
}

// SetHand sets the detection from a full landmark set.
func (m *MockDetector) SetHand(h HandLandmarks) {
	m.det = DetectionFromHand(h, SourceMock)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured detection or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Detection, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.det, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FistLandmarks returns a preset hand with every finger curled into the
// palm, the handshape for the letter E.
func FistLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at base
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb wrapped across the curled fingers
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.52, Y: 0.72, Z: 0.01}
	landmarks.Points[ThumbIP] = Point3D{X: 0.48, Y: 0.73, Z: 0.02}
	landmarks.Points[ThumbTip] = Point3D{X: 0.44, Y: 0.74, Z: 0.02}

	// Index finger curled
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return landmarks
}

// OpenPalmLandmarks returns a preset hand with all five fingers extended,
// the handshape for the letter B.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at base
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward (slightly longer)
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// PointingLandmarks returns a preset hand with only the index finger
// extended upward, the handshape for the letter D.
func PointingLandmarks() HandLandmarks {
	landmarks := FistLandmarks()

	// Index finger extended upward on the right half of the frame
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	return landmarks
}

// ThumbOutLandmarks returns a preset fist with the thumb extended toward
// the left edge of the frame, the handshape for the letter A.
func ThumbOutLandmarks() HandLandmarks {
	landmarks := FistLandmarks()
	landmarks.Handedness = "Left"

	// Thumb extended out to the left
	landmarks.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.38, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.32, Y: 0.62, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.25, Y: 0.55, Z: 0.03}

	return landmarks
}

// CurvedHandLandmarks returns a preset hand arched into a C shape: the
// middle three fingers raised in a curve, thumb and pinky tucked.
func CurvedHandLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.9,
	}

	// Wrist at base
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb curved low, opposing the fingers
	landmarks.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.66, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.68, Z: 0.03}

	// Index finger raised in a curve
	landmarks.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.62, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.58, Y: 0.52, Z: 0.01}
	landmarks.Points[IndexDIP] = Point3D{X: 0.59, Y: 0.46, Z: 0.02}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.42, Z: 0.03}

	// Middle finger raised in a curve
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.60, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.48, Z: 0.01}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.42, Z: 0.02}
	landmarks.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.38, Z: 0.03}

	// Ring finger raised in a curve
	landmarks.Points[RingMCP] = Point3D{X: 0.44, Y: 0.62, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.42, Y: 0.52, Z: 0.01}
	landmarks.Points[RingDIP] = Point3D{X: 0.41, Y: 0.46, Z: 0.02}
	landmarks.Points[RingTip] = Point3D{X: 0.41, Y: 0.43, Z: 0.03}

	// Pinky tucked
	landmarks.Points[PinkyMCP] = Point3D{X: 0.38, Y: 0.68, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.36, Y: 0.64, Z: -0.04}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.66, Z: -0.03}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.68, Z: -0.02}

	return landmarks
}
