package middleware

import (
	"net/http"
	"runtime/debug"

	perr "yukbul/internal/platform/errors"
	"yukbul/internal/platform/logger"
	pnet "yukbul/internal/platform/net"
	phttp "yukbul/internal/platform/net/http"
)

// RecoverJSON turns a panic into the standard 500 envelope and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			err := perr.PanicErrf("internal error")
			phttp.JSON(w, http.StatusInternalServerError, phttp.Envelope{
				StatusCode: http.StatusInternalServerError,
				Status:     http.StatusText(http.StatusInternalServerError),
				Code:       perr.CodeOf(err),
				Error:      perr.Root(err).Error(),
				RequestID:  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
