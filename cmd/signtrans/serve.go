package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/byrnald/inclusive-sign-translator/internal/app"
	"github.com/byrnald/inclusive-sign-translator/internal/asl"
	"github.com/byrnald/inclusive-sign-translator/internal/metrics"
	"github.com/byrnald/inclusive-sign-translator/internal/server"
	"github.com/byrnald/inclusive-sign-translator/internal/tray"
	"github.com/spf13/cobra"
)

var serveOpts struct {
	Addr      string
	Camera    bool
	Device    int
	StaticDir string
	Tray      bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recognition server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.Addr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().BoolVar(&serveOpts.Camera, "camera", false, "Run the live camera pipeline")
	serveCmd.Flags().IntVar(&serveOpts.Device, "device", 0, "Camera device id")
	serveCmd.Flags().StringVar(&serveOpts.StaticDir, "static", "", "Dashboard directory (default: autodetect)")
	serveCmd.Flags().BoolVar(&serveOpts.Tray, "tray", false, "Show the system tray menu")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	m := metrics.New()

	staticDir := serveOpts.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	serverConfig := server.Config{
		StaticDir: staticDir,
		Store:     st,
		Metrics:   m,
	}

	var tr *tray.Tray
	if serveOpts.Tray {
		tr = tray.New()
	}

	// The hub is bound after the server is built; the pipeline publishes
	// only once Start has run, which happens later still.
	var hub *server.Hub

	var pipeline *app.App
	if serveOpts.Camera {
		pipeline = app.New(app.Config{
			Store:       st,
			Metrics:     m,
			CameraID:    serveOpts.Device,
			UseExternal: true,
			OnResult: func(letter asl.Letter, confidence float64, stable bool, fingers int) {
				if hub != nil {
					hub.Publish(server.Update{
						Letter:     string(letter),
						Confidence: confidence,
						Stable:     stable,
						Fingers:    fingers,
						Timestamp:  time.Now().UnixMilli(),
					})
				}
			},
			OnStable: func(letter asl.Letter, confidence float64) {
				if tr != nil {
					tr.SetLastLetter(string(letter))
				}
			},
		})
		serverConfig.Camera = pipeline.Camera()
		serverConfig.Detector = pipeline.Detector()
		serverConfig.Source = pipeline.Source()
	}

	srv := server.New(serverConfig)
	hub = srv.Hub()

	if pipeline != nil {
		pipeline.SetEnabled(true)
		if err := pipeline.Start(); err != nil {
			return fmt.Errorf("failed to start pipeline: %w", err)
		}
		defer pipeline.Stop()
	}

	go func() {
		fmt.Printf("Starting server on %s\n", serveOpts.Addr)
		if err := srv.ListenAndServe(serveOpts.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if tr != nil {
		tr.OnToggle(func(enabled bool) {
			if pipeline != nil {
				pipeline.SetEnabled(enabled)
			}
		})
		tr.OnDashboard(func() {
			openBrowser(dashboardURL(serveOpts.Addr))
		})

		// systray must own the main thread; quitting the menu ends serve
		tr.Run()
		return nil
	}

	<-cmd.Context().Done()
	log.Println("Shutting down")
	return nil
}

// findWebDir searches for the dashboard directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.signtrans/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".signtrans", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// dashboardURL turns a listen address into a browsable URL.
func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the URL with the platform launcher.
func openBrowser(url string) {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	if err := c.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
