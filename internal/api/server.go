package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/wheel-sim-go/internal/store"
)

// Server handles HTTP requests
type Server struct {
	db        store.DB
	sessions  *sessionRegistry
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a new API server. The store may be nil, in which case
// the configuration endpoints report the store as unavailable but session
// simulation works normally.
func NewServer(db store.DB) *Server {
	logger := log.New(os.Stdout, "[API] ", log.LstdFlags|log.LUTC)

	server := &Server{
		db:        db,
		sessions:  newSessionRegistry(),
		logger:    logger,
		startTime: time.Now(),
	}

	logger.Printf(
		"server_startup store_enabled=%t engine_version=%s",
		db != nil, EngineVersion,
	)

	return server
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.RequestLoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.CORSMiddleware)

	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Delete("/sessions/{sessionID}", s.handleDeleteSession)
		r.Post("/sessions/{sessionID}/spin", s.handleSpin)
		r.Post("/sessions/{sessionID}/spins", s.handleSpinBatch)
		r.Post("/sessions/{sessionID}/breaks", s.handleBreaks)
		r.Get("/sessions/{sessionID}/stats", s.handleStats)
		r.Get("/sessions/{sessionID}/history", s.handleHistory)
		r.Post("/sessions/{sessionID}/reset", s.handleReset)
		r.Get("/sessions/{sessionID}/risk", s.handleRisk)

		r.Post("/configs", s.handleSaveConfig)
		r.Get("/configs", s.handleListConfigs)
		r.Get("/configs/{configID}", s.handleGetConfig)
		r.Delete("/configs/{configID}", s.handleDeleteConfig)
	})

	return r
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, try to write a simple error response
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError writes a structured error response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]interface{}) {
	requestID := middleware.GetReqID(r.Context())
	category := GetErrorCategory(errType)

	s.logger.Printf(
		"error_occurred type=%s category=%s status=%d request_id=%s path=%s message=%q",
		errType, category, status, requestID, r.URL.Path, message,
	)

	w.Header().Set("X-Error-Type", errType)
	w.Header().Set("X-Error-Category", string(category))
	s.writeJSON(w, status, EngineError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
