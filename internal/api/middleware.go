package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLoggingMiddleware logs request start/completion as key=value
// event lines
func (s *Server) RequestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		// Create a response writer wrapper to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		s.logger.Printf(
			"request_start method=%s path=%s request_id=%s remote_addr=%s engine_version=%s",
			r.Method,
			r.URL.Path,
			requestID,
			r.RemoteAddr,
			EngineVersion,
		)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		s.logger.Printf(
			"request_completed method=%s path=%s status=%d duration=%v request_id=%s bytes_written=%d",
			r.Method,
			r.URL.Path,
			ww.Status(),
			duration,
			requestID,
			ww.BytesWritten(),
		)
	})
}

// CORSMiddleware handles CORS headers for development
func (s *Server) CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
