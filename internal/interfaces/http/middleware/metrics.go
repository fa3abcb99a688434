package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPObserver receives one observation per handled request.
type HTTPObserver interface {
	ObserveHTTP(method, path string, status int, duration time.Duration)
}

// Metrics returns middleware that reports method, route pattern, status
// and latency for every request. The chi route pattern is used instead of
// the raw path to keep label cardinality bounded.
func Metrics(observer HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			observer.ObserveHTTP(r.Method, path, wrapped.statusCode, time.Since(start))
		})
	}
}
