package app

import (
	"log"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/byrnald/inclusive-sign-translator/internal/store"
	"github.com/google/uuid"
)

// runPipeline is the main recognition loop that processes frames from the
// camera. It manages the state transitions between idle and active modes
// based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS=5)
// 2. On motion detected, switch to active mode (ActiveFPS=15)
// 3. Run hand detection on the frame
// 4. Classify the finger geometry into a letter
// 5. Smooth per-frame results through the stability window
// 6. On a stable letter transition, record an event and notify listeners
// 7. After 2s with no motion, switch back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var frames, detections int64

	// Close the session row with the final counts once the loop exits
	sessionID := a.sessionID
	if a.config.Store != nil && sessionID != "" {
		defer func() {
			if err := a.config.Store.Sessions().End(sessionID, frames, detections); err != nil {
				log.Printf("Failed to end session %s: %v", sessionID, err)
			}
		}()
	}

	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// The letter currently reported stable, so each transition fires once
	lastStable := asl.LetterNone

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if recognition is paused
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				a.metrics.ReadErrors.Add(1)
				continue
			}
			frames++
			a.metrics.FramesRead.Add(1)

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					a.metrics.MotionWakeups.Add(1)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > IdleTimeout {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip classification if not in active mode or no detector
			d := a.Detector()
			if !activeMode || d == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			start := time.Now()
			det, err := d.Detect(frame)
			frame.Close() // Done with the frame
			a.metrics.UpdateDetectLatency(time.Since(start))

			if err != nil {
				log.Printf("Error detecting hand: %v", err)
				a.metrics.DetectErrors.Add(1)
				continue
			}

			if det != nil {
				detections++
				a.metrics.FramesDetected.Add(1)
			}

			// Step 3: Classify and smooth
			result := asl.ClassifyDetection(det)

			a.filterMu.Lock()
			stable := a.filter.Push(result)
			a.filterMu.Unlock()

			if a.config.OnResult != nil {
				a.config.OnResult(result.Letter, result.Confidence, stable.Letter != asl.LetterNone, det.FingerCount())
			}

			// Step 4: A stable letter fires once; it can fire again only
			// after the reading drops or changes
			if stable.Letter == asl.LetterNone {
				lastStable = asl.LetterNone
				continue
			}
			if stable.Letter == lastStable {
				continue
			}
			lastStable = stable.Letter
			a.handleStable(sessionID, stable)
		}
	}
}

// handleStable records one stable letter transition and notifies listeners.
func (a *App) handleStable(sessionID string, stable asl.Result) {
	log.Printf("Stable letter: %s (confidence: %.2f)", stable.Letter, stable.Confidence)

	a.metrics.RecordLetter(stable.Letter)

	if a.config.Store != nil && sessionID != "" {
		event := &store.Event{
			ID:         uuid.New().String(),
			SessionID:  sessionID,
			Letter:     string(stable.Letter),
			Confidence: stable.Confidence,
			At:         time.Now(),
		}
		if err := a.config.Store.Events().Create(event); err != nil {
			log.Printf("Failed to save letter event: %v", err)
		}
	}

	if a.config.OnStable != nil {
		a.config.OnStable(stable.Letter, stable.Confidence)
	}
}
