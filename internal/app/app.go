// Package app wires the camera, motion gate, hand detector, classifier, and
// store into the sign recognition pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/byrnald/inclusive-sign-translator/internal/capture"
	"github.com/byrnald/inclusive-sign-translator/internal/detector"
	"github.com/byrnald/inclusive-sign-translator/internal/metrics"
	"github.com/byrnald/inclusive-sign-translator/internal/store"
	"github.com/google/uuid"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active recognition.
	ActiveFPS = 15
	// IdleTimeout is how long without motion before dropping back to idle mode.
	IdleTimeout = 2 * time.Second
)

// Config holds configuration options for the application.
type Config struct {
	Store           *store.Store
	Metrics         *metrics.Metrics
	CameraID        int
	MotionThreshold float64
	Stability       asl.StabilityConfig
	Detector        detector.Config

	// Camera overrides the device camera. Nil opens device CameraID.
	Camera capture.Camera

	// UseExternal prefers the external landmark helper over contour
	// geometry when the helper is available.
	UseExternal bool

	// OnResult is called for every classified frame while in active mode.
	OnResult func(letter asl.Letter, confidence float64, stable bool, fingers int)

	// OnStable is called once per stable letter transition.
	OnStable func(letter asl.Letter, confidence float64)
}

// App is the main application that orchestrates frame capture, letter
// classification, and session recording.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	source   detector.Source
	metrics  *metrics.Metrics

	// filter smooths per-frame results; filterMu guards it because Reset
	// may be called while the pipeline is pushing.
	filter   *asl.StabilityFilter
	filterMu sync.Mutex

	sessionID string
	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	done      chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThreshold
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	detectorConfig := config.Detector
	if detectorConfig == (detector.Config{}) {
		detectorConfig = detector.DefaultConfig()
	}

	m := config.Metrics
	if m == nil {
		m = metrics.New()
	}

	camera := config.Camera
	if camera == nil {
		camera = capture.NewCamera(config.CameraID)
	}

	a := &App{
		config:  config,
		camera:  camera,
		motion:  capture.NewMotionDetector(motionThreshold),
		metrics: m,
		filter:  asl.NewStabilityFilter(config.Stability),
		enabled: false,
		stopCh:  nil,
	}

	// Try the external landmark helper first, fall back to contour geometry
	if config.UseExternal {
		if ext, err := detector.NewExternalDetector(detectorConfig); err == nil {
			a.detector = ext
			a.source = detector.SourceExternal
			log.Println("Using external landmark detection")
		} else {
			log.Printf("External helper not available (%v), using contour detection", err)
			a.detector = detector.NewContourDetector(detectorConfig)
			a.source = detector.SourceContour
		}
	} else {
		a.detector = detector.NewContourDetector(detectorConfig)
		a.source = detector.SourceContour
	}

	return a
}

// SetEnabled enables or disables letter recognition. Disabling clears the
// stability window so a stale reading cannot survive the pause.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if enabled {
		a.metrics.RecognitionActive.Store(1)
	} else {
		a.metrics.RecognitionActive.Store(0)
		a.ResetStability()
	}
}

// IsEnabled returns whether letter recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector, source detector.Source) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
	a.source = source
}

// ResetStability clears the stability window, discarding any partial
// agreement toward a stable letter.
func (a *App) ResetStability() {
	a.filterMu.Lock()
	defer a.filterMu.Unlock()
	a.filter.Reset()
}

// Start begins the recognition pipeline. If a store is configured, a new
// session row is opened and stable letters are recorded against it.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Open a session row for this run
	a.sessionID = ""
	if a.config.Store != nil {
		session := &store.Session{
			ID:        uuid.New().String(),
			StartedAt: time.Now(),
		}
		if err := a.config.Store.Sessions().Create(session); err != nil {
			log.Printf("Failed to create session: %v", err)
		} else {
			a.sessionID = session.ID
		}
	}

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	log.Println("Recognition pipeline started")
	return nil
}

// Stop halts the recognition pipeline, waits for it to drain, and releases
// resources. The session row, if any, is closed with its final counts.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, done := a.stopCh, a.done
	a.stopCh, a.done = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}

	// Signal the pipeline and wait for it to exit before touching the
	// camera or detector it may still be using
	close(stopCh)
	<-done

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Recognition pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Source reports which detection strategy is in use.
func (a *App) Source() detector.Source {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.source
}

// Metrics returns the pipeline counters.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// SessionID returns the id of the current session row, or "" when the
// pipeline is not recording one.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}
