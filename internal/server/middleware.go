package server

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"

	"oauthrelay/internal/metrics"
	"oauthrelay/pkg/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps IDs accepted from clients.
const maxRequestIDLength = 128

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// withRequestID reuses the caller's X-Request-ID or generates one, and
// echoes it in the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), requestID)))
	})
}

// logRequests writes one access log line per request and counts it by route
// pattern and status. It must run inside withRequestID so that it sees the
// same *http.Request the mux annotates with the matched pattern.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			logging.Debug("HTTP", "%s %s %d %s request_id=%s", r.Method, r.URL.Path, status, time.Since(start), logging.TruncateID(RequestIDFromContext(r.Context())))
			return
		}
		logging.Info("HTTP", "%s %s %d %s request_id=%s", r.Method, r.URL.Path, status, time.Since(start), logging.TruncateID(RequestIDFromContext(r.Context())))
	})
}

// recoverPanics turns a handler panic into a 500.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logging.Error("HTTP", nil, "Panic serving %s %s request_id=%s: %v\n%s",
					r.Method, r.URL.Path, RequestIDFromContext(r.Context()), v, debug.Stack())
				http.Error(w, "Internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
