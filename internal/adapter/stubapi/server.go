// Package stubapi serves the health-points REST API from an in-memory
// database. It backs local runs of the CLI and the REST client tests.
package stubapi

import (
	"net/http"

	"healthpoints/internal/adapter/memory"
)

// Server is the driving HTTP adapter over a memory.DB.
type Server struct {
	db    *memory.DB
	token string
}

// Option configures a Server.
type Option func(*Server)

// WithToken requires every /api request to carry token as a bearer token.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// New creates a Server over db.
func New(db *memory.DB, opts ...Option) *Server {
	s := &Server{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the API.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mount(api, s.db.Points)
	mount(api, s.db.PointsAlt)
	mount(api, s.db.BloodPressures)
	mount(api, s.db.Weights)
	mount(api, s.db.Preference)
	mount(api, s.db.Preferences)

	api.HandleFunc("/points-this-week", s.handlePointsThisWeek)
	api.HandleFunc("/bp-by-days/", s.handleBloodPressureByDays)
	api.HandleFunc("/weight-by-days/", s.handleWeightByDays)
	api.HandleFunc("/my-preferences", s.handleMyPreferences)
	api.HandleFunc("/account", s.handleAccount)

	root := http.NewServeMux()
	root.Handle(apiPrefix+"/", http.StripPrefix(apiPrefix, s.authMiddleware(api)))

	return s.loggingMiddleware(withNoCache(root))
}
