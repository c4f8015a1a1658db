// Package middleware adapts chi middleware and adds the request logging,
// chat tagging and panic envelope used by every module
package middleware

import (
	"net/http"
	"time"

	pstrings "yukbul/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID attaches or propagates X-Request-ID
func RequestID() Middleware { return chimw.RequestID }

// RealIP sets RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// NoCache disables client and proxy caching; listings expire on their own clock
func NoCache() Middleware { return chimw.NoCache }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// StripSlashes drops a trailing slash so /listings/stats/ routes like /listings/stats
func StripSlashes() Middleware { return chimw.StripSlashes }

// Compress gzips responses at level for the usual text types
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// Throttle caps in flight requests. A chat bridge that replays a backlog
// waits up to wait in a queue of backlog before getting 429.
func Throttle(limit, backlog int, wait time.Duration) Middleware {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return chimw.ThrottleBacklog(limit, backlog, wait)
}

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS wraps go-chi/cors; empty methods and headers get the API defaults
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "DELETE", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID", "X-Chat-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
