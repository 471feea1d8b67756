package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/exdivpulse/internal/middleware"
)

// requestTimeout bounds each request, including the upstream fetch.
const requestTimeout = 20 * time.Second

// RouterOptions carries the server settings the router needs.
type RouterOptions struct {
	RateLimitPerMinute int
}

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds a per-request timeout.
//   - Mounts Swagger docs (/swagger/*any).
//   - Serves the HTML dashboard on / and the JSON API on /api/v1 (CORS enabled).
//
// Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
	)

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", handler.GetPage)

	v1 := router.Group("/api/v1", cors.Default())
	{
		v1.GET("/dashboard", handler.GetDashboard)
		v1.GET("/window", handler.GetWindow)
	}

	return router
}
