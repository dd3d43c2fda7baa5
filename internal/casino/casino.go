// Package casino orchestrates game engines against the store: it debits
// stakes, runs engine transitions, credits settlements, and appends history.
// Engines stay pure; all money movement happens here.
package casino

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Techjunky-monk39/CasinoLive/internal/games"
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
	"github.com/Techjunky-monk39/CasinoLive/internal/store"
)

// ErrNoGame is returned when an action targets a game that was never started
// or has already settled.
var ErrNoGame = errors.New("casino: no game in progress")

// userGames is one user's open table state. Access is serialized by its
// mutex so concurrent requests cannot interleave a game transition.
type userGames struct {
	mu        sync.Mutex
	blackjack *games.Blackjack
	dice456   *games.Dice456
	dice10000 *games.Dice10000
	craps     *games.Craps
}

// Service runs the casino floor.
type Service struct {
	store  store.Store
	logger *log.Logger
	src    rng.Source
	policy games.RerollPolicy

	mu     sync.Mutex
	states map[int64]*userGames
}

// New builds a service. The source is shared across all users and must be
// safe for concurrent use (see rng.Locked).
func New(st store.Store, logger *log.Logger, src rng.Source, policy games.RerollPolicy) *Service {
	if !policy.Valid() {
		policy = games.RerollThree
	}
	return &Service{
		store:  st,
		logger: logger.WithPrefix("casino"),
		src:    src,
		policy: policy,
		states: make(map[int64]*userGames),
	}
}

func (s *Service) userState(userID int64) *userGames {
	s.mu.Lock()
	defer s.mu.Unlock()
	ug, ok := s.states[userID]
	if !ok {
		ug = &userGames{}
		s.states[userID] = ug
	}
	return ug
}

// debit takes the stake up front. store.ErrInsufficientFunds passes through
// for the API to map to a client error.
func (s *Service) debit(userID int64, amount int) error {
	_, err := s.store.AdjustBalance(userID, -amount)
	return err
}

// settle credits a settlement and appends it to the history ledger. A
// failed credit is fatal to the action and writes no ledger record, so the
// ledger never shows a win whose payout did not land. The ledger append
// alone is best effort: a failed write is logged, never rolled back.
func (s *Service) settle(userID int64, gameType string, bet int, st *games.Settlement) error {
	if st == nil {
		return nil
	}
	if st.WinAmount > 0 {
		if _, err := s.store.AdjustBalance(userID, st.WinAmount); err != nil {
			s.logger.Error("failed to credit settlement",
				"user", userID, "game", gameType, "amount", st.WinAmount, "err", err)
			return fmt.Errorf("failed to credit settlement: %w", err)
		}
	}
	rec := store.HistoryRecord{
		UserID:    userID,
		GameType:  gameType,
		Bet:       bet,
		Outcome:   string(st.Outcome),
		WinAmount: st.WinAmount,
	}
	if err := s.store.AddHistory(&rec); err != nil {
		s.logger.Error("failed to append history",
			"user", userID, "game", gameType, "err", err)
	}
	return nil
}

func (s *Service) balance(userID int64) int {
	u, err := s.store.GetUser(userID)
	if err != nil {
		s.logger.Error("failed to read balance", "user", userID, "err", err)
		return 0
	}
	return u.Balance
}

// UpdateBalance applies a raw balance delta and returns the new balance.
func (s *Service) UpdateBalance(userID int64, delta int) (int, error) {
	return s.store.AdjustBalance(userID, delta)
}

// History returns the user's most recent settled wagers, newest first.
func (s *Service) History(userID int64, limit int) ([]store.HistoryRecord, error) {
	return s.store.GetHistory(userID, limit)
}

// RecordHistory appends an externally settled wager to the ledger.
func (s *Service) RecordHistory(rec *store.HistoryRecord) error {
	return s.store.AddHistory(rec)
}

// --- blackjack ---

// BlackjackDeal starts a new hand, replacing any settled one. A hand still
// in play must be finished first.
func (s *Service) BlackjackDeal(userID int64, bet int) (*BlackjackView, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	if ug.blackjack != nil && !ug.blackjack.Phase.Terminal() && ug.blackjack.Phase != games.BlackjackBet {
		return nil, games.ErrInvalidAction
	}
	if bet <= 0 {
		return nil, games.ErrInvalidBet
	}
	if err := s.debit(userID, bet); err != nil {
		return nil, err
	}

	g := games.NewBlackjack()
	settlement, err := g.Deal(bet, s.src)
	if err != nil {
		// The stake comes back if the deal never happened.
		s.refund(userID, bet)
		return nil, err
	}
	ug.blackjack = g
	if err := s.settle(userID, games.TypeBlackjack, g.Bet, settlement); err != nil {
		return nil, err
	}
	return s.blackjackView(userID, g, settlement), nil
}

// BlackjackHit draws one card for the player.
func (s *Service) BlackjackHit(userID int64) (*BlackjackView, error) {
	return s.blackjackAction(userID, func(g *games.Blackjack) (*games.Settlement, error) {
		return g.Hit()
	})
}

// BlackjackStand ends the player's turn and resolves the dealer.
func (s *Service) BlackjackStand(userID int64) (*BlackjackView, error) {
	return s.blackjackAction(userID, func(g *games.Blackjack) (*games.Settlement, error) {
		return g.Stand()
	})
}

// BlackjackDouble doubles the stake, taking the extra from the balance, and
// draws exactly one card.
func (s *Service) BlackjackDouble(userID int64) (*BlackjackView, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	g := ug.blackjack
	if g == nil {
		return nil, ErrNoGame
	}
	if !g.CanDouble() {
		return nil, games.ErrInvalidAction
	}
	extra := g.Bet
	if err := s.debit(userID, extra); err != nil {
		return nil, err
	}

	settlement, err := g.Double()
	if err != nil {
		s.refund(userID, extra)
		return nil, err
	}
	if err := s.settle(userID, games.TypeBlackjack, g.Bet, settlement); err != nil {
		return nil, err
	}
	return s.blackjackView(userID, g, settlement), nil
}

func (s *Service) blackjackAction(userID int64, fn func(*games.Blackjack) (*games.Settlement, error)) (*BlackjackView, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	g := ug.blackjack
	if g == nil {
		return nil, ErrNoGame
	}
	settlement, err := fn(g)
	if err != nil {
		return nil, err
	}
	if err := s.settle(userID, games.TypeBlackjack, g.Bet, settlement); err != nil {
		return nil, err
	}
	return s.blackjackView(userID, g, settlement), nil
}

func (s *Service) refund(userID int64, amount int) {
	if _, err := s.store.AdjustBalance(userID, amount); err != nil {
		s.logger.Error("failed to refund stake", "user", userID, "amount", amount, "err", err)
	}
}

// --- poker ---

// PokerDeal deals and settles one poker hand.
func (s *Service) PokerDeal(userID int64, bet int) (*PokerView, error) {
	if bet <= 0 {
		return nil, games.ErrInvalidBet
	}
	if err := s.debit(userID, bet); err != nil {
		return nil, err
	}

	deal, settlement, err := games.DealPoker(bet, s.src)
	if err != nil {
		s.refund(userID, bet)
		return nil, err
	}
	if err := s.settle(userID, games.TypePoker, bet, settlement); err != nil {
		return nil, err
	}
	return &PokerView{
		Hole:       cardViews(deal.Hole),
		Community:  cardViews(deal.Community),
		Best:       cardViews(deal.Best),
		RankName:   deal.RankName,
		Settlement: settlement,
		Balance:    s.balance(userID),
	}, nil
}

// --- slots ---

// SlotsSpin spins and settles one pull.
func (s *Service) SlotsSpin(userID int64, bet int) (*SlotsView, error) {
	if bet <= 0 {
		return nil, games.ErrInvalidBet
	}
	if err := s.debit(userID, bet); err != nil {
		return nil, err
	}

	spin, settlement, err := games.SpinSlots(bet, s.src)
	if err != nil {
		s.refund(userID, bet)
		return nil, err
	}
	if err := s.settle(userID, games.TypeSlots, bet, settlement); err != nil {
		return nil, err
	}
	return &SlotsView{
		Reels:      spin.Reels,
		Settlement: settlement,
		Balance:    s.balance(userID),
	}, nil
}

// --- dice456 ---

// Dice456Start opens a match and debits the stake.
func (s *Service) Dice456Start(userID int64, bet int) (*Dice456View, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	if ug.dice456 != nil && !ug.dice456.Phase.Terminal() {
		return nil, games.ErrInvalidAction
	}
	if bet <= 0 {
		return nil, games.ErrInvalidBet
	}
	if err := s.debit(userID, bet); err != nil {
		return nil, err
	}

	g := games.NewDice456(s.policy)
	if err := g.Start(bet); err != nil {
		s.refund(userID, bet)
		return nil, err
	}
	ug.dice456 = g
	return s.dice456View(userID, g, nil), nil
}

// Dice456Roll throws the dice for whichever side holds them: the player's
// rolls first, then the house side, each roll on its own request. The match
// settles once the house scores.
func (s *Service) Dice456Roll(userID int64) (*Dice456View, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	g := ug.dice456
	if g == nil {
		return nil, ErrNoGame
	}
	settlement, err := g.Roll(s.src)
	if err != nil {
		return nil, err
	}
	if err := s.settle(userID, games.TypeDice456, g.Bet, settlement); err != nil {
		return nil, err
	}
	return s.dice456View(userID, g, settlement), nil
}

// --- dice10000 ---

// Dice10000Start opens a game, debits the stake, and rolls the first set.
func (s *Service) Dice10000Start(userID int64, bet int) (*Dice10000View, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	if ug.dice10000 != nil && ug.dice10000.Phase == games.Dice10000Rolling {
		return nil, games.ErrInvalidAction
	}
	if bet <= 0 {
		return nil, games.ErrInvalidBet
	}
	if err := s.debit(userID, bet); err != nil {
		return nil, err
	}

	g := games.NewDice10000()
	if err := g.Start(bet, s.src); err != nil {
		s.refund(userID, bet)
		return nil, err
	}
	ug.dice10000 = g
	return s.dice10000View(userID, g, nil), nil
}

// Dice10000Roll rerolls all six dice.
func (s *Service) Dice10000Roll(userID int64) (*Dice10000View, error) {
	return s.dice10000Action(userID, func(g *games.Dice10000) (*games.Settlement, error) {
		return nil, g.Roll(s.src)
	})
}

// Dice10000Bank scores and consumes the selected dice.
func (s *Service) Dice10000Bank(userID int64, selected []int) (*Dice10000View, error) {
	return s.dice10000Action(userID, func(g *games.Dice10000) (*games.Settlement, error) {
		return g.Bank(selected, s.src)
	})
}

// Dice10000Forfeit abandons the game, settling it as a loss.
func (s *Service) Dice10000Forfeit(userID int64) (*Dice10000View, error) {
	return s.dice10000Action(userID, func(g *games.Dice10000) (*games.Settlement, error) {
		return g.Forfeit()
	})
}

func (s *Service) dice10000Action(userID int64, fn func(*games.Dice10000) (*games.Settlement, error)) (*Dice10000View, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	g := ug.dice10000
	if g == nil {
		return nil, ErrNoGame
	}
	settlement, err := fn(g)
	if err != nil {
		return nil, err
	}
	if err := s.settle(userID, games.TypeDice10000, g.Bet, settlement); err != nil {
		return nil, err
	}
	return s.dice10000View(userID, g, settlement), nil
}

// --- craps ---

// CrapsBet places a bet on the layout, debiting it immediately.
func (s *Service) CrapsBet(userID int64, kind games.CrapsBetKind, amount int) (*CrapsView, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	if ug.craps == nil {
		ug.craps = games.NewCraps()
	}
	g := ug.craps

	if amount <= 0 {
		return nil, games.ErrInvalidBet
	}
	if err := s.debit(userID, amount); err != nil {
		return nil, err
	}
	if err := g.PlaceBet(kind, amount); err != nil {
		s.refund(userID, amount)
		return nil, err
	}
	return s.crapsView(userID, g, games.CrapsRoll{}, nil), nil
}

// CrapsRoll throws the dice and settles every bet the roll decides, one
// ledger record per resolved bet.
func (s *Service) CrapsRoll(userID int64) (*CrapsView, error) {
	ug := s.userState(userID)
	ug.mu.Lock()
	defer ug.mu.Unlock()

	g := ug.craps
	if g == nil || g.TotalStaked() == 0 {
		return nil, ErrNoGame
	}
	roll, results, err := g.Roll(s.src)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if err := s.settle(userID, games.TypeCraps, results[i].Bet, &results[i].Settlement); err != nil {
			return nil, err
		}
	}
	return s.crapsView(userID, g, roll, results), nil
}
