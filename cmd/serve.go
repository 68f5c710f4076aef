package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/echomindr/echomindr/internal/config"
	"github.com/echomindr/echomindr/internal/http"
	"github.com/echomindr/echomindr/internal/reqlog"
	"github.com/echomindr/echomindr/internal/search"
	"github.com/echomindr/echomindr/internal/store"
)

func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if listen != "" {
				cfg.Listen = listen
			}
			if err := runServe(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

func runServe(cfg *config.Config) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog %s: %w (run `echomindr ingest` first)", cfg.DBPath, err)
	}
	defer st.Close()

	sink, err := reqlog.Open(cfg.LogsDBPath)
	if err != nil {
		return fmt.Errorf("open request log %s: %w", cfg.LogsDBPath, err)
	}
	defer sink.Close()

	srv := http.New(search.New(st), sink, cfg)

	if configPath != "" {
		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			slog.Warn("config watcher unavailable", "error", err)
		} else {
			watcher.OnChange(srv.ApplyConfig)
			if err := watcher.Start(); err != nil {
				slog.Warn("config watch failed", "path", configPath, "error", err)
			} else {
				defer watcher.Stop()
			}
		}
	}

	httpSrv := &stdhttp.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.Listen, "db", cfg.DBPath)
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}
