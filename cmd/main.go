package main

//
//  @title           exdivpulse API
//  @version         1.0
//  @description     Five-day upcoming ex-dividend dashboard (Tue, Wed, Thu, Fri, next Mon).
//  @termsOfService  https://github.com/guttosm/exdivpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/exdivpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dashboard
//  @tag.description Day tiles, banner total and the ticker table
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/exdivpulse/config"
	_ "github.com/guttosm/exdivpulse/docs" // swagger docs
	"github.com/guttosm/exdivpulse/internal/app"
	"github.com/guttosm/exdivpulse/internal/domain/dto"
	"github.com/guttosm/exdivpulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT/SIGTERM, drains the server and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// printWindow writes the five target dates resolved at the given instant.
func printWindow(w io.Writer, cfg *config.Config, at time.Time) error {
	resolver, err := app.NewResolver(cfg.Market)
	if err != nil {
		return err
	}
	tiles := resolver.Window(at)
	out := dto.WindowResponse{
		Timezone: resolver.Location().String(),
		Policy:   string(resolver.Policy()),
		Anchor:   resolver.Anchor(at).ISO(),
		Dates:    make([]dto.WindowDate, 0, len(tiles)),
	}
	for _, t := range tiles {
		out.Dates = append(out.Dates, dto.WindowDate{Date: t.Date.ISO(), Weekday: t.Weekday})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// parseAt reads the --at flag; empty means now.
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at must be RFC3339: %w", err)
	}
	return t, nil
}

// main is the entry point of the exdivpulse application.
//
// Modes (selected via --mode flag):
//   - api:     Serves the dashboard page and the JSON API (default).
//   - window:  Prints the five-day window for --at (default now) as JSON.
//   - archive: Fetches the upstream payload once and archives each window date in PostgreSQL.
func main() {
	ctx := context.Background()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("invalid configuration")
	}

	mode := flag.String("mode", "api", "Mode: api, window or archive")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	at := flag.String("at", "", "Instant to resolve the window at (RFC3339); defaults to now")
	parallel := flag.Int("parallel", 0, "Dates archived concurrently (0=auto, max 5)")
	force := flag.Bool("force", false, "Re-archive dates already stored (replaces their rows)")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().
			Str("upstream", cfg.Upstream.BaseURL).
			Str("timezone", cfg.Market.Timezone).
			Str("policy", cfg.Market.Policy).
			Msg("starting API server")

		router, cleanup, err := app.InitializeApp(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "window":
		when, err := parseAt(*at)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("bad --at")
		}
		if err := printWindow(os.Stdout, cfg, when); err != nil {
			logger.L().Fatal().Err(err).Msg("window failed")
		}

	case "archive":
		when, err := parseAt(*at)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("bad --at")
		}
		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := app.RunArchive(runCtx, cfg, when, *parallel, *force)
		if err != nil {
			logger.L().Fatal().Err(err).Str("run_id", res.RunID.String()).Msg("archive failed")
		}
		logger.L().Info().
			Str("run_id", res.RunID.String()).
			Int("archived", res.Archived).
			Int("skipped", res.Skipped).
			Int("rows", res.Rows).
			Msg("archive completed successfully")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
