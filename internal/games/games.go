package games

import "errors"

// Outcome classifies a settled wager the way the history ledger records it.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
)

// Settlement is the terminal result of a game transition. WinAmount is the
// total returned to the player (stake included for wins and pushes); engines
// report it as data and never touch balances themselves.
type Settlement struct {
	Outcome   Outcome `json:"outcome"`
	WinAmount int     `json:"winAmount"`
}

// Game type identifiers used in history records.
const (
	TypeSlots     = "slots"
	TypeBlackjack = "blackjack"
	TypePoker     = "poker"
	TypeDice456   = "dice456"
	TypeDice10000 = "dice10000"
	TypeCraps     = "craps"
)

var (
	// ErrInvalidAction means the action is not legal in the current phase.
	// The game state is left unmodified.
	ErrInvalidAction = errors.New("games: action not legal in current phase")

	// ErrInvalidBet means the bet amount is zero or negative.
	ErrInvalidBet = errors.New("games: bet must be a positive amount")
)

func win(amount int) *Settlement {
	return &Settlement{Outcome: OutcomeWin, WinAmount: amount}
}

func loss() *Settlement {
	return &Settlement{Outcome: OutcomeLoss, WinAmount: 0}
}

func push(stake int) *Settlement {
	return &Settlement{Outcome: OutcomePush, WinAmount: stake}
}
