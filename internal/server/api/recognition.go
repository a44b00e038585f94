// Package api provides HTTP API handlers for the sign recognition system.
package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/byrnald/inclusive-sign-translator/internal/detector"
	"github.com/byrnald/inclusive-sign-translator/internal/vision"
)

// RecognitionHandler serves single-frame recognition and status endpoints.
type RecognitionHandler struct {
	detector detector.Detector
	source   detector.Source
	start    time.Time
}

// NewRecognitionHandler creates a new RecognitionHandler. The source names
// the active detector strategy for the status endpoint.
func NewRecognitionHandler(d detector.Detector, source detector.Source) *RecognitionHandler {
	return &RecognitionHandler{
		detector: d,
		source:   source,
		start:    time.Now(),
	}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *RecognitionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/health":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.health(w, r)
	case "/api/model-status":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.modelStatus(w, r)
	case "/api/detect-gesture":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.detectGesture(w, r)
	case "/api/classify-landmarks":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.classifyLandmarks(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// Request and response types

type detectGestureRequest struct {
	Image string `json:"image"`
}

type classifyLandmarksRequest struct {
	Landmarks []pointPayload `json:"landmarks"`
}

type pointPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type gestureResponse struct {
	Gesture     string            `json:"gesture"`
	Confidence  float64           `json:"confidence"`
	Timestamp   string            `json:"timestamp"`
	FingerCount int               `json:"finger_count"`
	Tips        []vision.TipPoint `json:"tips,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// health handles GET /api/health.
func (h *RecognitionHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"detector_ready": h.detector != nil,
		"uptime":         time.Since(h.start).String(),
		"timestamp":      time.Now().Format(time.RFC3339),
	})
}

// modelStatus handles GET /api/model-status and describes the active
// detector strategy.
func (h *RecognitionHandler) modelStatus(w http.ResponseWriter, r *http.Request) {
	modelType := string(h.source)
	if h.detector == nil {
		modelType = "none"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"model_loaded":             h.detector != nil,
		"model_type":               modelType,
		"feature_extractor_loaded": h.source == detector.SourceExternal,
	})
}

// detectGesture handles POST /api/detect-gesture. It runs the detector on a
// single base64-encoded frame and returns the raw classification.
func (h *RecognitionHandler) detectGesture(w http.ResponseWriter, r *http.Request) {
	var req detectGestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No image data provided")
		return
	}
	if req.Image == "" {
		writeError(w, http.StatusBadRequest, "No image data provided")
		return
	}

	// Strip a data: URL prefix if the dashboard sent one
	image := req.Image
	if strings.HasPrefix(image, "data:") {
		if i := strings.Index(image, ","); i >= 0 {
			image = image[i+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image data")
		return
	}

	if h.detector == nil {
		writeError(w, http.StatusServiceUnavailable, "Detector not ready")
		return
	}

	frame, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil || frame.Empty() {
		if err == nil {
			frame.Close()
		}
		writeError(w, http.StatusBadRequest, "Invalid image data")
		return
	}
	defer frame.Close()

	det, err := h.detector.Detect(&frame)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Detection failed")
		return
	}

	if det == nil {
		writeJSON(w, http.StatusOK, gestureResponse{
			Gesture:   "none",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	result := asl.ClassifyDetection(det)
	writeJSON(w, http.StatusOK, gestureResponse{
		Gesture:     string(result.Letter),
		Confidence:  result.Confidence,
		Timestamp:   time.Now().Format(time.RFC3339),
		FingerCount: det.FingerCount(),
		Tips:        det.Tips,
	})
}

// classifyLandmarks handles POST /api/classify-landmarks. It classifies a
// set of fingertip positions without running detection.
func (h *RecognitionHandler) classifyLandmarks(w http.ResponseWriter, r *http.Request) {
	var req classifyLandmarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No landmarks data provided")
		return
	}
	if len(req.Landmarks) == 0 {
		writeError(w, http.StatusBadRequest, "No landmarks data provided")
		return
	}

	points := make([]vision.TipPoint, 0, len(req.Landmarks))
	for _, p := range req.Landmarks {
		points = append(points, vision.TipPoint{X: p.X, Y: p.Y})
	}

	result := asl.ClassifyLandmarks(points)
	writeJSON(w, http.StatusOK, gestureResponse{
		Gesture:     string(result.Letter),
		Confidence:  result.Confidence,
		Timestamp:   time.Now().Format(time.RFC3339),
		FingerCount: asl.CountFingers(points),
	})
}
