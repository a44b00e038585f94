// Package server provides the HTTP server for the sign recognition system.
package server

import (
	"net/http"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/capture"
	"github.com/byrnald/inclusive-sign-translator/internal/detector"
	"github.com/byrnald/inclusive-sign-translator/internal/metrics"
	"github.com/byrnald/inclusive-sign-translator/internal/server/api"
	"github.com/byrnald/inclusive-sign-translator/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Detector  detector.Detector
	Source    detector.Source
	Metrics   *metrics.Metrics

	// WordGap is the pause that splits words in session transcripts.
	// Zero means the default gap.
	WordGap time.Duration
}

// Server represents the HTTP server for the recognition application.
type Server struct {
	config Config
	mux    *http.ServeMux
	hub    *Hub
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		hub:    NewHub(config.Metrics),
	}
	s.setupRoutes()
	return s
}

// Hub returns the WebSocket hub so the pipeline can publish updates.
func (s *Server) Hub() *Hub {
	return s.hub
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	recognition := api.NewRecognitionHandler(s.config.Detector, s.config.Source)
	s.mux.Handle("/api/health", recognition)
	s.mux.Handle("/api/model-status", recognition)
	s.mux.Handle("/api/detect-gesture", recognition)
	s.mux.Handle("/api/classify-landmarks", recognition)

	s.mux.Handle("/api/letters", api.NewLettersHandler())

	// Register persistence-backed handlers if Store is configured
	if s.config.Store != nil {
		samplesHandler := api.NewSamplesHandler(s.config.Store)
		s.mux.Handle("/api/samples", samplesHandler)
		s.mux.Handle("/api/samples/", samplesHandler)
		s.mux.Handle("/api/upload-training-data", samplesHandler)

		sessionsHandler := api.NewSessionsHandler(s.config.Store, s.config.WordGap)
		s.mux.Handle("/api/sessions", sessionsHandler)
		s.mux.Handle("/api/sessions/", sessionsHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera, s.config.Metrics))
	}

	s.mux.Handle("/ws", s.hub)

	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", s.config.Metrics.Handler())
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface. Every response carries
// CORS headers so the dashboard can be served from another origin.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
