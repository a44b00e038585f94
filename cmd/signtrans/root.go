package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/byrnald/inclusive-sign-translator/internal/store"
	"github.com/spf13/cobra"
)

// Version is the application version.
const Version = "0.1.0"

var (
	// st is the store shared by subcommands, opened in the root pre-run.
	st *store.Store
	// dbPath overrides the default database location.
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:     "signtrans",
	Short:   "Inclusive Sign Translator - camera frames to ASL letters",
	Version: Version, // This enables the --version flag
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dbPath == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}

			dataDir := filepath.Join(homeDir, ".signtrans")
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			dbPath = filepath.Join(dataDir, "signtrans.db")
		}

		var err error
		st, err = store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if st != nil {
			if err := st.Close(); err != nil {
				log.Printf("Error closing store: %v", err)
			}
		}
	},
}

// Execute runs the root command with a context that ends on SIGINT or
// SIGTERM, so serve and collect can shut down cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the sqlite database (default: ~/.signtrans/signtrans.db)")
}
