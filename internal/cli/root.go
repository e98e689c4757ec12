// Package cli wires the beeline subcommands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/felixmde/beeline/internal/beeminder"
	"github.com/felixmde/beeline/internal/config"
	"github.com/felixmde/beeline/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:           "beeline",
		Short:         "A command-line client for Beeminder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command and reports any failure on stderr.
func Execute(version string) error {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(backupCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// newClient loads configuration and builds the API client every command
// shares. Missing credentials fail here, before any network call.
func newClient() (*beeminder.HTTPClient, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return beeminder.NewHTTPClient(cfg.APIURL, cfg.APIKey, log), cfg, nil
}
