package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// requestLogState lo completan los middlewares internos; la identidad se
// resuelve en un request derivado que RequestLogger no ve.
type requestLogState struct {
	userID int64
}

const logStateKey ctxKey = "request_log"

func noteLoggedUser(ctx context.Context, userID int64) {
	if st, ok := ctx.Value(logStateKey).(*requestLogState); ok {
		st.userID = userID
	}
}

// RequestLogger loguea cada request con status, duración, request id de chi y usuario.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			st := &requestLogState{}

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), logStateKey, st)))

			status := statusOf(ww)
			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}
			if st.userID > 0 {
				fields["user_id"] = st.userID
			}

			switch {
			case status >= 500:
				log.Error("http request", fields)
			case status >= 400:
				log.Warn("http request", fields)
			default:
				log.Info("http request", fields)
			}
		})
	}
}

// Metrics registra la duración por patrón de ruta (no por path, para acotar cardinalidad).
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(statusOf(ww))).
			Observe(time.Since(start).Seconds())
	})
}

// statusOf: un handler que nunca llamó WriteHeader respondió 200.
func statusOf(ww chimw.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
