package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/byrnald/inclusive-sign-translator/internal/store"
)

// SessionsHandler handles HTTP requests for recognition session resources.
type SessionsHandler struct {
	store   *store.Store
	wordGap time.Duration
}

// NewSessionsHandler creates a new SessionsHandler. The word gap splits
// transcripts into words; zero means the default gap.
func NewSessionsHandler(s *store.Store, wordGap time.Duration) *SessionsHandler {
	return &SessionsHandler{store: s, wordGap: wordGap}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/sessions, /api/sessions/{id},
// /api/sessions/{id}/events, /api/sessions/{id}/transcript
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/sessions
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if len(parts) == 2 {
		// Sub-resource endpoints
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		switch parts[1] {
		case "events":
			h.events(w, r, id)
		case "transcript":
			h.transcript(w, r, id)
		default:
			writeError(w, http.StatusNotFound, "Not found")
		}
		return
	}

	if len(parts) != 1 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	// Item endpoint: /api/sessions/{id}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type sessionResponse struct {
	ID             string `json:"id"`
	StartedAt      string `json:"started_at"`
	EndedAt        string `json:"ended_at,omitempty"`
	FrameCount     int64  `json:"frame_count"`
	DetectionCount int64  `json:"detection_count"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type eventResponse struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"session_id"`
	Letter     string  `json:"letter"`
	Confidence float64 `json:"confidence"`
	At         string  `json:"at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// toSessionResponse converts a store.Session to a sessionResponse.
func toSessionResponse(s *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:             s.ID,
		StartedAt:      s.StartedAt.Format(time.RFC3339),
		FrameCount:     s.FrameCount,
		DetectionCount: s.DetectionCount,
	}
	if s.EndedAt != nil {
		resp.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	return resp
}

// list handles GET /api/sessions and returns all sessions.
func (h *SessionsHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/sessions/{id}.
func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// events handles GET /api/sessions/{id}/events.
func (h *SessionsHandler) events(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	events, err := h.store.Events().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:         e.ID,
			SessionID:  e.SessionID,
			Letter:     e.Letter,
			Confidence: e.Confidence,
			At:         e.At.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// transcript handles GET /api/sessions/{id}/transcript. It assembles the
// session's stable letters into text, splitting words on long pauses.
func (h *SessionsHandler) transcript(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	events, err := h.store.Events().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	entries := make([]asl.Entry, 0, len(events))
	for _, e := range events {
		entries = append(entries, asl.Entry{Letter: asl.Letter(e.Letter), At: e.At})
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcript": asl.Transcript(entries, h.wordGap),
	})
}

// delete handles DELETE /api/sessions/{id} and removes the session along
// with its events.
func (h *SessionsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Sessions().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
