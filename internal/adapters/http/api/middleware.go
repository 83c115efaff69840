package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/metrics"
)

const unmatchedEndpoint = "unmatched"

// MetricsMiddleware records request counts, latency and client/server errors
// per route pattern. The pattern is read after the handler ran, since chi
// only fills it in while routing.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		endpoint := routePattern(r)
		statusCode := strconv.Itoa(status)
		durationMs := float64(time.Since(start).Microseconds()) / 1000

		metrics.RecordHTTPRequest(endpoint, r.Method, statusCode)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCode, durationMs)
		if status >= http.StatusBadRequest {
			metrics.RecordErrorByEndpoint(endpoint, r.Method, errorType(status))
		}
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedEndpoint
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedEndpoint
}

// errorType returns a standardized error type based on HTTP status code.
func errorType(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case status >= http.StatusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}
