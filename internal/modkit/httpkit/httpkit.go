// Package httpkit is what modules mount routes with: the router seam, the
// per API middleware stack and return-style handler sugar
package httpkit

import (
	"compress/flate"
	"net/http"
	"strings"
	"time"

	"yukbul/internal/platform/config"
	phttp "yukbul/internal/platform/net/http"
	"yukbul/internal/platform/net/middleware"
)

type (
	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// Handler is the platform handler type
	Handler = phttp.Handler
)

// StackOptions tunes the API middleware stack
type StackOptions struct {
	Timeout     time.Duration
	SlowRequest time.Duration
	// MaxInFlight caps concurrent requests, 0 disables throttling
	MaxInFlight int
	Backlog     int
	CORSOrigins []string
}

// StackFromConfig reads TIMEOUT, SLOW_REQUEST, MAX_IN_FLIGHT, BACKLOG and
// CORS_ORIGINS from cfg, typically prefixed CORE_API_
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		Timeout:     cfg.MayDuration("TIMEOUT", 30*time.Second),
		SlowRequest: cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		MaxInFlight: cfg.MayInt("MAX_IN_FLIGHT", 0),
		Backlog:     cfg.MayInt("BACKLOG", 64),
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
	}
}

// Stack returns the middleware every module runs behind, outermost first
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.BindRequest,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,
		middleware.Throttle(o.MaxInFlight, o.Backlog, o.Timeout),
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// CommonStack is Stack with defaults
func CommonStack() []func(http.Handler) http.Handler { return Stack(StackOptions{}) }

// MountAPI mounts a subrouter under /api/{version} behind mw and hands it to mount
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
