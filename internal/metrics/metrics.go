// Package metrics exposes pipeline counters to Prometheus.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics
type Metrics struct {
	// Frame processing counters
	FramesRead     atomic.Uint64
	FramesDetected atomic.Uint64
	MotionWakeups  atomic.Uint64
	StableLetters  atomic.Uint64

	// Error counters
	ReadErrors   atomic.Uint64
	DetectErrors atomic.Uint64

	// Latency tracking
	DetectLatencyMs atomic.Uint64 // Last detection latency in ms

	// Client tracking
	StreamClients atomic.Uint64
	SocketClients atomic.Uint64

	// Recognition state
	RecognitionActive atomic.Uint64 // 0 = paused, 1 = running

	// Per-letter stable recognition counts
	letters map[asl.Letter]*atomic.Uint64

	// Prometheus collectors
	registry *prometheus.Registry
}

// New creates a new Metrics instance with Prometheus collectors
func New() *Metrics {
	m := &Metrics{
		letters:  make(map[asl.Letter]*atomic.Uint64),
		registry: prometheus.NewRegistry(),
	}

	for _, info := range asl.Catalog() {
		m.letters[info.Letter] = &atomic.Uint64{}
	}
	m.letters[asl.LetterUnknown] = &atomic.Uint64{}

	// Register Prometheus gauges
	m.registerPrometheusMetrics()

	return m
}

// registerPrometheusMetrics registers all metrics with Prometheus
func (m *Metrics) registerPrometheusMetrics() {
	// Frame processing metrics
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_frames_read_total",
			Help: "Total frames read from the camera",
		},
		func() float64 { return float64(m.FramesRead.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_frames_detected_total",
			Help: "Total frames in which a hand was detected",
		},
		func() float64 { return float64(m.FramesDetected.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_motion_wakeups_total",
			Help: "Total idle-to-active transitions triggered by motion",
		},
		func() float64 { return float64(m.MotionWakeups.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_stable_letters_total",
			Help: "Total stable letter transitions",
		},
		func() float64 { return float64(m.StableLetters.Load()) },
	))

	// Error metrics
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_read_errors_total",
			Help: "Total camera read errors",
		},
		func() float64 { return float64(m.ReadErrors.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_detect_errors_total",
			Help: "Total detection errors",
		},
		func() float64 { return float64(m.DetectErrors.Load()) },
	))

	// Latency metrics
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_detect_latency_ms",
			Help: "Last detection latency in milliseconds",
		},
		func() float64 { return float64(m.DetectLatencyMs.Load()) },
	))

	// Client metrics
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_stream_clients",
			Help: "Number of connected MJPEG stream clients",
		},
		func() float64 { return float64(m.StreamClients.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_socket_clients",
			Help: "Number of connected WebSocket clients",
		},
		func() float64 { return float64(m.SocketClients.Load()) },
	))

	// Recognition state
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "signtrans_recognition_active",
			Help: "Recognition running (0=paused, 1=running)",
		},
		func() float64 { return float64(m.RecognitionActive.Load()) },
	))

	// Per-letter counts
	for letter, counter := range m.letters {
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "signtrans_letter_total",
				Help:        "Stable recognitions per letter",
				ConstLabels: prometheus.Labels{"letter": string(letter)},
			},
			func() float64 { return float64(counter.Load()) },
		))
	}
}

// RecordLetter counts one stable recognition of the given letter. Letters
// outside the catalog are counted as Unknown.
func (m *Metrics) RecordLetter(letter asl.Letter) {
	m.StableLetters.Add(1)
	counter, ok := m.letters[letter]
	if !ok {
		counter = m.letters[asl.LetterUnknown]
	}
	counter.Add(1)
}

// LetterCount returns how many stable recognitions the letter has had.
func (m *Metrics) LetterCount(letter asl.Letter) uint64 {
	counter, ok := m.letters[letter]
	if !ok {
		return 0
	}
	return counter.Load()
}

// UpdateDetectLatency records how long the last detection took.
func (m *Metrics) UpdateDetectLatency(duration time.Duration) {
	m.DetectLatencyMs.Store(uint64(duration.Milliseconds()))
}

// Handler returns the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
