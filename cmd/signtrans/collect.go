package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/byrnald/inclusive-sign-translator/internal/capture"
	"github.com/byrnald/inclusive-sign-translator/internal/detector"
	"github.com/byrnald/inclusive-sign-translator/internal/store"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// captureInterval paces sample capture at the pipeline's idle frame rate.
const captureInterval = 200 * time.Millisecond

var collectOpts struct {
	Letter string
	Count  int
	Device int
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Capture labeled training samples from the camera",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCollect(cmd)
	},
}

func init() {
	collectCmd.Flags().StringVarP(&collectOpts.Letter, "letter", "l", "", "Letter the captured handshape shows")
	collectCmd.Flags().IntVarP(&collectOpts.Count, "count", "n", 20, "Number of samples to capture")
	collectCmd.Flags().IntVar(&collectOpts.Device, "device", 0, "Camera device id")
	collectCmd.MarkFlagRequired("letter")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command) error {
	letter := strings.ToUpper(strings.TrimSpace(collectOpts.Letter))
	known := false
	for _, info := range asl.Catalog() {
		if string(info.Letter) == letter {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unrecognized letter %q", collectOpts.Letter)
	}
	if collectOpts.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", collectOpts.Count)
	}

	cam := capture.NewCamera(collectOpts.Device)
	if err := cam.Open(); err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer cam.Close()

	det := detector.NewContourDetector(detector.DefaultConfig())
	defer det.Close()

	bar := progressbar.NewOptions(collectOpts.Count,
		progressbar.OptionSetDescription(fmt.Sprintf("Collecting %s", letter)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	ctx := cmd.Context()
	captured := 0
	skipped := 0
	for captured < collectOpts.Count && ctx.Err() == nil {
		frame, err := cam.ReadFrame()
		if err != nil {
			return fmt.Errorf("failed to read frame: %w", err)
		}

		width, height := frame.Cols(), frame.Rows()
		d, err := det.Detect(frame)
		frame.Close()
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}

		// Only frames with resolvable hand geometry become samples
		if d == nil || d.Degenerate {
			skipped++
			time.Sleep(captureInterval)
			continue
		}

		tips := make([]store.Point, len(d.Tips))
		for i, p := range d.Tips {
			tips[i] = store.Point{X: p.X, Y: p.Y}
		}

		sample := &store.Sample{
			ID:          uuid.New().String(),
			Letter:      letter,
			FingerCount: d.FingerCount(),
			Tips:        tips,
			FrameWidth:  width,
			FrameHeight: height,
			Source:      string(d.Source),
		}
		if err := st.Samples().Create(sample); err != nil {
			return fmt.Errorf("failed to save sample: %w", err)
		}

		captured++
		bar.Add(1)
		time.Sleep(captureInterval)
	}

	bar.Finish()
	fmt.Fprintf(os.Stderr, "\nCollected %d samples of letter %s (%d frames without a hand)\n", captured, letter, skipped)
	return nil
}
