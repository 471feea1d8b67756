package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/exdivpulse/internal/logger"
)

// RequestLogger logs one structured line per request after it completes.
//
// Example log output:
//
//	{"level":"info","component":"http","request_id":"…","method":"GET","path":"/","query":"d=2026-10-21","status":200,"latency_ms":84,"client_ip":"127.0.0.1","message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		log := logger.Component("http")
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		} else if status >= http.StatusBadRequest {
			ev = log.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client is one IP's counter inside the current window.
type client struct {
	windowStart time.Time
	count       int
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

// allow counts a request from ip and reports whether it fits the budget.
// Idle entries are dropped lazily.
func (l *rateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cl, ok := l.clients[ip]
	if !ok || now.Sub(cl.windowStart) > l.window {
		if len(l.clients) > 4096 {
			for k, v := range l.clients {
				if now.Sub(v.windowStart) > l.window {
					delete(l.clients, k)
				}
			}
		}
		l.clients[ip] = &client{windowStart: now, count: 1}
		return true
	}
	cl.count++
	return cl.count <= l.limit
}

// RateLimiter allows at most limit requests per window from each client IP
// and answers the rest with 429. A non-positive limit disables it.
//
// The counters live in process memory, so every replica enforces its own budget.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(cfg.Server.RateLimitPerMinute, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	l := &rateLimiter{clients: make(map[string]*client), limit: limit, window: window, now: time.Now}
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
