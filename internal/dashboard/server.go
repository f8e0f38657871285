// Package dashboard serves a small read-only HTTP view of the ledger plus
// the Prometheus endpoint. It reads state fresh from disk on every request,
// so it never races the engine's writes (renames are atomic).
package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nba-edge-bot/internal/metrics"
	"nba-edge-bot/internal/portfolio"
)

// Server exposes ledger state over HTTP.
type Server struct {
	statePath      string
	initialCapital float64
	simulate       bool
	startedAt      time.Time
	log            *slog.Logger
}

// NewServer creates a dashboard server reading ledger state from statePath.
func NewServer(statePath string, initialCapital float64, simulate bool, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		statePath:      statePath,
		initialCapital: initialCapital,
		simulate:       simulate,
		startedAt:      time.Now(),
		log:            logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/api/state", s.handleState)
	r.Get("/api/positions", s.handlePositions)
	r.Handle("/metrics", metrics.Handler())

	return r
}

// load returns current ledger state, substituting a fresh portfolio when the
// state file has not been written yet.
func (s *Server) load() (*portfolio.Portfolio, error) {
	p, err := portfolio.Read(s.statePath)
	if errors.Is(err, os.ErrNotExist) {
		return portfolio.New(s.initialCapital), nil
	}
	return p, err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"simulate": s.simulate,
		"uptime":   time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	p, err := s.load()
	if err != nil {
		s.log.Error("reading ledger state", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "state unavailable"})
		return
	}

	wins, resolved := p.WinRate()
	writeJSON(w, http.StatusOK, map[string]any{
		"capital":        p.Capital,
		"initialCapital": p.InitialCapital,
		"bankroll":       p.Bankroll(),
		"openStakes":     p.OpenStakes(),
		"exposureRatio":  p.ExposureRatio(),
		"totalPnl":       p.TotalPnL,
		"roi":            p.ROI(),
		"wins":           wins,
		"resolved":       resolved,
		"openPositions":  len(p.OpenPositions()),
		"simulate":       s.simulate,
	})
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	p, err := s.load()
	if err != nil {
		s.log.Error("reading ledger state", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "state unavailable"})
		return
	}

	positions := p.Positions
	if r.URL.Query().Get("status") == "open" {
		positions = p.OpenPositions()
	}
	if positions == nil {
		positions = []portfolio.Position{}
	}
	writeJSON(w, http.StatusOK, positions)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
