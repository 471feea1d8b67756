package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/exdivpulse/config"
	"github.com/guttosm/exdivpulse/internal/api"
	"github.com/guttosm/exdivpulse/internal/calendar"
	"github.com/guttosm/exdivpulse/internal/render"
	"github.com/guttosm/exdivpulse/internal/service"
	"github.com/guttosm/exdivpulse/internal/upstream"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the calendar resolver for the configured market and policy.
//   - Creates the upstream dividends client.
//   - Wires the dashboard service, HTML renderer and HTTP handlers.
//   - Registers health and readiness probes (readiness pings the upstream API).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	resolver, err := NewResolver(cfg.Market)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize calendar: %w", err)
	}

	client := NewUpstreamClient(cfg.Upstream)

	svc := service.NewDashboardService(client, resolver, service.Options{
		Days:         cfg.Upstream.Days,
		IncludeToday: cfg.Upstream.IncludeToday,
	}, nil)

	renderer, err := render.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize templates: %w", err)
	}

	handler := api.NewHandler(svc, renderer, cfg.Table.PageSize)
	router := api.NewRouter(handler, api.RouterOptions{RateLimitPerMinute: cfg.Server.RateLimitPerMinute})

	api.NewHealthHandler(client.Ping).Register(router)

	cleanup := func() {
		client.CloseIdleConnections()
	}

	return router, cleanup, nil
}

// NewResolver builds the window resolver for the configured market.
func NewResolver(m config.MarketConfig) (*calendar.Resolver, error) {
	loc, err := m.Location()
	if err != nil {
		return nil, err
	}
	return calendar.NewResolver(loc, m.Open, calendar.AnchorPolicy(m.Policy))
}

// NewUpstreamClient builds the dividends API client.
func NewUpstreamClient(u config.UpstreamConfig) *upstream.Client {
	return upstream.NewClient(u.BaseURL, u.Timeout)
}
