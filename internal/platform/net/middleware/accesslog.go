package middleware

import (
	"net/http"
	"time"

	"yukbul/internal/platform/logger"
	pnet "yukbul/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// BindRequest copies the chi request id and the X-Chat-ID header onto the
// context so pnet and logger.C both see them. Mount it after RequestID.
func BindRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := pnet.RequestID(r.Context())
		chatID := pnet.ChatFromHeader(r)
		if reqID == "" && chatID == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := pnet.WithRequest(r.Context(), reqID, chatID)
		ctx = logger.WithRequest(ctx, reqID, chatID)
		if reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccessLogOptions configures the access log
type AccessLogOptions struct {
	// Slow logs requests taking at least Slow at warn level, 0 disables it
	Slow time.Duration
	now  func() time.Time
}

// AccessLog writes one line per request: 5xx at error, slow at warn, the
// rest at info. The route field is the chi pattern, not the raw path, so
// /listings/{id} groups in log queries.
func AccessLog(opt AccessLogOptions) Middleware {
	if opt.now == nil {
		opt.now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := opt.now()
			next.ServeHTTP(ww, r)
			took := opt.now().Sub(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(r.Context())
			log.WithLevel(accessLevel(status, took, opt.Slow)).
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", took).
				Msg("request done")
		})
	}
}

func accessLevel(status int, took, slow time.Duration) zerolog.Level {
	if status >= http.StatusInternalServerError {
		return zerolog.ErrorLevel
	}
	if slow > 0 && took >= slow {
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
