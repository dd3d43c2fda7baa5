package api

import (
	"net/http"
	"strconv"

	"github.com/Techjunky-monk39/CasinoLive/internal/games"
	"github.com/Techjunky-monk39/CasinoLive/internal/store"
)

type betRequest struct {
	Bet int `json:"bet"`
}

func (s *Server) handleBlackjackDeal(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.svc.BlackjackDeal(userID(r), req.Bet)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleBlackjackHit(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.BlackjackHit(userID(r))
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleBlackjackStand(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.BlackjackStand(userID(r))
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleBlackjackDouble(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.BlackjackDouble(userID(r))
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePokerDeal(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.svc.PokerDeal(userID(r), req.Bet)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSlotsSpin(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.svc.SlotsSpin(userID(r), req.Bet)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDice456Start(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.svc.Dice456Start(userID(r), req.Bet)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDice456Roll(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Dice456Roll(userID(r))
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDice10000Start(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.svc.Dice10000Start(userID(r), req.Bet)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDice10000Roll(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Dice10000Roll(userID(r))
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDice10000Bank(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selected []int `json:"selected"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.svc.Dice10000Bank(userID(r), req.Selected)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDice10000Forfeit(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Dice10000Forfeit(userID(r))
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCrapsBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind   games.CrapsBetKind `json:"kind"`
		Amount int                `json:"amount"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.svc.CrapsBet(userID(r), req.Kind, req.Amount)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCrapsRoll(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.CrapsRoll(userID(r))
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	balance, err := s.svc.UpdateBalance(userID(r), req.Amount)
	if err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"balance": balance})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := s.svc.History(userID(r), limit)
	if err != nil {
		s.gameError(w, err)
		return
	}
	if records == nil {
		records = []store.HistoryRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handlePostHistory accepts a client-recorded settlement. The server records
// its own settlements; this remains for clients that settle locally.
func (s *Server) handlePostHistory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameType  string `json:"gameType"`
		Bet       int    `json:"bet"`
		Outcome   string `json:"outcome"`
		WinAmount int    `json:"winAmount"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.GameType == "" || req.Outcome == "" {
		s.writeError(w, http.StatusBadRequest, "gameType and outcome are required")
		return
	}

	rec := store.HistoryRecord{
		UserID:    userID(r),
		GameType:  req.GameType,
		Bet:       req.Bet,
		Outcome:   req.Outcome,
		WinAmount: req.WinAmount,
	}
	if err := s.svc.RecordHistory(&rec); err != nil {
		s.gameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}
