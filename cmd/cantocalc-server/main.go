// cantocalc-server exposes the edge band length calculator over HTTP.
//
// Usage:
//   cantocalc-server [-config path]
//
// Configuration is read from ~/.cantocalc/server.toml by default and may be
// overridden with CANTOCALC_* environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/piwi3910/cantocalc/internal/api"
	"github.com/piwi3910/cantocalc/internal/catalog"
	"github.com/piwi3910/cantocalc/internal/config"
	"github.com/piwi3910/cantocalc/internal/logger"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to the TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Setup(logger.Settings{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	defer logger.Stop()

	var cat catalog.Catalog
	if path := cfg.Catalog.Path; path != "" {
		result := catalog.Load(path)
		if len(result.Warnings) > 0 {
			log.Warn().Strs("warnings", result.Warnings).Str("path", path).Msg("Catalog loaded with warnings")
		}
		if len(result.Errors) > 0 {
			log.Error().Strs("errors", result.Errors).Str("path", path).Msg("Catalog could not be fully loaded")
		}
		cat = result.Catalog
		log.Info().Str("path", path).Str("rows", strconv.Itoa(cat.Len())).Msg("Catalog loaded")
	}

	srv, err := api.NewServer(cfg, cat)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("Starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
