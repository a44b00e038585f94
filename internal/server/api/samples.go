package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/byrnald/inclusive-sign-translator/internal/store"
)

// SamplesHandler handles HTTP requests for training sample resources.
type SamplesHandler struct {
	store *store.Store
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store) *SamplesHandler {
	return &SamplesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/upload-training-data, /api/samples,
// /api/samples/stats, /api/samples/{id}
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/upload-training-data" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.upload(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/samples")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/samples
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	if path == "stats" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.stats(w, r)
		return
	}

	// Item endpoint: /api/samples/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type uploadTrainingDataRequest struct {
	Letter       string        `json:"letter"`
	FingerCount  int           `json:"finger_count"`
	FingerPoints []store.Point `json:"finger_points"`
	ImageWidth   int           `json:"image_width"`
	ImageHeight  int           `json:"image_height"`
	Source       string        `json:"source"`
}

type sampleResponse struct {
	ID          string        `json:"id"`
	Letter      string        `json:"letter"`
	FingerCount int           `json:"finger_count"`
	Tips        []store.Point `json:"tips"`
	FrameWidth  int           `json:"frame_width"`
	FrameHeight int           `json:"frame_height"`
	Source      string        `json:"source"`
	CreatedAt   string        `json:"created_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
	Count   int              `json:"count"`
}

// toSampleResponse converts a store.Sample to a sampleResponse.
func toSampleResponse(s *store.Sample) sampleResponse {
	tips := s.Tips
	if tips == nil {
		tips = []store.Point{}
	}
	return sampleResponse{
		ID:          s.ID,
		Letter:      s.Letter,
		FingerCount: s.FingerCount,
		Tips:        tips,
		FrameWidth:  s.FrameWidth,
		FrameHeight: s.FrameHeight,
		Source:      s.Source,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

// upload handles POST /api/upload-training-data and persists one sample.
func (h *SamplesHandler) upload(w http.ResponseWriter, r *http.Request) {
	var req uploadTrainingDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate required fields
	if req.Letter == "" {
		writeError(w, http.StatusBadRequest, "Letter is required")
		return
	}
	if req.FingerCount < 0 || req.FingerCount > asl.MaxFingers {
		writeError(w, http.StatusBadRequest, "Invalid finger count")
		return
	}

	sample := &store.Sample{
		ID:          uuid.New().String(),
		Letter:      req.Letter,
		FingerCount: req.FingerCount,
		Tips:        req.FingerPoints,
		FrameWidth:  req.ImageWidth,
		FrameHeight: req.ImageHeight,
		Source:      req.Source,
	}

	if err := h.store.Samples().Create(sample); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save training data")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"message":   "Training data saved",
		"id":        sample.ID,
		"timestamp": sample.CreatedAt.Format(time.RFC3339),
	})
}

// list handles GET /api/samples with an optional letter filter.
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request) {
	letter := r.URL.Query().Get("letter")

	samples, err := h.store.Samples().List(letter, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
		Count:   len(samples),
	}
	for _, s := range samples {
		response.Samples = append(response.Samples, toSampleResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// stats handles GET /api/samples/stats.
func (h *SamplesHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Samples().Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// get handles GET /api/samples/{id}.
func (h *SamplesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	sample, err := h.store.Samples().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Sample not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get sample")
		return
	}

	writeJSON(w, http.StatusOK, toSampleResponse(sample))
}

// delete handles DELETE /api/samples/{id}.
func (h *SamplesHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Samples().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Sample not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete sample")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
