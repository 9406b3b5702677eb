package providers

import (
	"context"
	"net/http"
	"time"
)

// UnmatchedRoute labels requests no registered route served.
const UnmatchedRoute = "unmatched"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type routeLabelKey struct{}

type routeLabel struct {
	route string
}

// labelRoute tells MetricsMiddleware which registered route served r.
func labelRoute(r *http.Request, route string) {
	if label, ok := r.Context().Value(routeLabelKey{}).(*routeLabel); ok {
		label.route = route
	}
}

// MetricsMiddleware counts requests per registered route, so arbitrary
// request paths never become label values.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		label := &routeLabel{route: UnmatchedRoute}

		next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), routeLabelKey{}, label)))

		metrics.IncRequestsTotal(label.route, sw.status)
		metrics.ObserveRequestDuration(label.route, time.Since(start))
	})
}
