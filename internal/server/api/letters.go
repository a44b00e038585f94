package api

import (
	"net/http"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
)

// LettersHandler serves the catalog of recognizable letters.
type LettersHandler struct{}

// NewLettersHandler creates a new LettersHandler.
func NewLettersHandler() *LettersHandler {
	return &LettersHandler{}
}

// ServeHTTP handles GET /api/letters.
func (h *LettersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"letters": asl.Catalog(),
	})
}
