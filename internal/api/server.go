// Package api exposes the casino over HTTP: cookie-session auth, JSON game
// routes, the history ledger, and the chat WebSocket.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Techjunky-monk39/CasinoLive/internal/casino"
	"github.com/Techjunky-monk39/CasinoLive/internal/chat"
	"github.com/Techjunky-monk39/CasinoLive/internal/deck"
	"github.com/Techjunky-monk39/CasinoLive/internal/games"
	"github.com/Techjunky-monk39/CasinoLive/internal/session"
	"github.com/Techjunky-monk39/CasinoLive/internal/store"
)

// Server handles HTTP requests.
type Server struct {
	svc             *casino.Service
	store           store.Store
	sessions        *session.Manager
	hub             *chat.Hub
	logger          *log.Logger
	startingBalance int
	startTime       time.Time
}

// NewServer wires the API together. The hub may be nil to disable chat.
func NewServer(svc *casino.Service, st store.Store, sessions *session.Manager, hub *chat.Hub, logger *log.Logger, startingBalance int) *Server {
	return &Server{
		svc:             svc,
		store:           st,
		sessions:        sessions,
		hub:             hub,
		logger:          logger.WithPrefix("api"),
		startingBalance: startingBalance,
		startTime:       time.Now(),
	}
}

// Routes sets up the HTTP routes with proper middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	if s.hub != nil {
		r.Handle("/ws", s.hub)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.With(s.requireAuth).Get("/me", s.handleMe)
		})

		r.Route("/games", func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/blackjack", func(r chi.Router) {
				r.Post("/deal", s.handleBlackjackDeal)
				r.Post("/hit", s.handleBlackjackHit)
				r.Post("/stand", s.handleBlackjackStand)
				r.Post("/double", s.handleBlackjackDouble)
			})
			r.Post("/poker/deal", s.handlePokerDeal)
			r.Post("/slots/spin", s.handleSlotsSpin)
			r.Route("/dice456", func(r chi.Router) {
				r.Post("/start", s.handleDice456Start)
				r.Post("/roll", s.handleDice456Roll)
				r.Post("/reroll", s.handleDice456Roll)
			})
			r.Route("/dice10000", func(r chi.Router) {
				r.Post("/start", s.handleDice10000Start)
				r.Post("/roll", s.handleDice10000Roll)
				r.Post("/bank", s.handleDice10000Bank)
				r.Post("/forfeit", s.handleDice10000Forfeit)
			})
			r.Route("/craps", func(r chi.Router) {
				r.Post("/bet", s.handleCrapsBet)
				r.Post("/roll", s.handleCrapsRoll)
			})

			r.Post("/update-balance", s.handleUpdateBalance)
			r.Get("/history", s.handleGetHistory)
			r.Post("/history", s.handlePostHistory)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}

// decode parses the request body into dst, limiting its size.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// gameError maps engine and store failures to client statuses.
func (s *Server) gameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInsufficientFunds):
		s.writeError(w, http.StatusBadRequest, "Insufficient funds")
	case errors.Is(err, games.ErrInvalidBet):
		s.writeError(w, http.StatusBadRequest, "Invalid bet")
	case errors.Is(err, games.ErrInvalidAction), errors.Is(err, casino.ErrNoGame):
		s.writeError(w, http.StatusConflict, "Action not allowed right now")
	case errors.Is(err, deck.ErrExhausted):
		s.writeError(w, http.StatusConflict, "No cards remaining")
	default:
		s.logger.Error("request failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
