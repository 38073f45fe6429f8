// Package api exposes accounts, statistics and live play over HTTP.
//
// REST endpoints live under /api and answer with a {success, message, data}
// envelope. /ws/play upgrades to a WebSocket that drives a server-side
// session controller, one per connection.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/beyond2048/internal/auth"
	"github.com/vovakirdan/beyond2048/internal/storage"
)

// GameOptions configures the controllers created for WebSocket players.
type GameOptions struct {
	Size            int
	FourProbability float64
	HistoryLimit    int
	Seed            int64 // fixed seed for every connection, 0 for random
}

// Options configures a Server.
type Options struct {
	Store          *storage.Store
	Issuer         *auth.Issuer
	Logger         *log.Logger
	Game           GameOptions
	AllowedOrigins []string // empty allows any origin
}

// Server is the HTTP API.
type Server struct {
	store    *storage.Store
	issuer   *auth.Issuer
	logger   *log.Logger
	game     GameOptions
	router   *mux.Router
	upgrader websocket.Upgrader
}

// NewServer creates the API server and registers its routes.
func NewServer(opts Options) *Server {
	s := &Server{
		store:  opts.Store,
		issuer: opts.Issuer,
		logger: opts.Logger,
		game:   opts.Game,
		router: mux.NewRouter(),
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	origins := opts.AllowedOrigins
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests)

	// Accounts
	api.HandleFunc("/auth/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/logout", s.handleLogout).Methods("POST")
	api.Handle("/auth/me", s.requireAuth(s.handleMe)).Methods("GET")

	// Statistics
	api.HandleFunc("/stats/leaderboard", s.handleLeaderboard).Methods("GET")
	api.Handle("/stats", s.requireAuth(s.handleGetStats)).Methods("GET")
	api.Handle("/stats", s.requireAuth(s.handleRecordGame)).Methods("POST")
	api.Handle("/stats", s.requireAuth(s.handleResetStats)).Methods("DELETE")

	// Live play
	s.router.HandleFunc("/ws/play", s.handlePlay)

	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
	}).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// envelope is the body of every REST response.
type envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    any           `json:"data,omitempty"`
	Token   string        `json:"token,omitempty"`
	User    *storage.User `json:"user,omitempty"`
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: false, Message: message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
