// Package cmd wires the echomindr subcommands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "0.2.0"

var configPath string

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "echomindr",
		Short:   "Searchable catalog of founder experiences extracted from podcasts",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (yaml)")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(mcpCmd())
	cmd.AddCommand(statsCmd())
	return cmd
}

func setupLogging() {
	level := slog.LevelInfo
	if os.Getenv("ECHOMINDR_DEBUG") != "" {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
