package games

import (
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

// CrapsBetKind names a wager on the craps layout.
type CrapsBetKind string

const (
	CrapsPass     CrapsBetKind = "pass"
	CrapsDontPass CrapsBetKind = "dontPass"
	CrapsField    CrapsBetKind = "field"
	CrapsHard4    CrapsBetKind = "hard4"
	CrapsHard6    CrapsBetKind = "hard6"
	CrapsHard8    CrapsBetKind = "hard8"
	CrapsHard10   CrapsBetKind = "hard10"
)

var hardwaySums = []struct {
	kind   CrapsBetKind
	sum    int
	payout int
}{
	{CrapsHard4, 4, 8},
	{CrapsHard6, 6, 10},
	{CrapsHard8, 8, 10},
	{CrapsHard10, 10, 8},
}

// CrapsPhase tracks the puck: come-out or point established.
type CrapsPhase string

const (
	CrapsComeOut CrapsPhase = "comeOut"
	CrapsPoint   CrapsPhase = "point"
)

// CrapsRoll is one throw of the pair.
type CrapsRoll struct {
	Dice  [2]int `json:"dice"`
	Total int    `json:"total"`
}

// CrapsResult is one bet resolved by a roll. Resolved bets leave the layout;
// unresolved ones ride.
type CrapsResult struct {
	Kind       CrapsBetKind `json:"kind"`
	Bet        int          `json:"bet"`
	Settlement Settlement   `json:"settlement"`
}

// Craps is a running craps table for one player. Bets accumulate per kind and
// persist across rolls until a roll resolves them.
type Craps struct {
	Phase CrapsPhase           `json:"phase"`
	Point int                  `json:"point"`
	Bets  map[CrapsBetKind]int `json:"bets"`
}

// NewCraps returns a table on its come-out roll with an empty layout.
func NewCraps() *Craps {
	return &Craps{Phase: CrapsComeOut, Bets: make(map[CrapsBetKind]int)}
}

func validCrapsBet(kind CrapsBetKind) bool {
	switch kind {
	case CrapsPass, CrapsDontPass, CrapsField, CrapsHard4, CrapsHard6, CrapsHard8, CrapsHard10:
		return true
	}
	return false
}

// PlaceBet adds amount to the named bet. Line bets are only accepted on the
// come-out roll. The caller debits the amount before calling.
func (g *Craps) PlaceBet(kind CrapsBetKind, amount int) error {
	if !validCrapsBet(kind) {
		return ErrInvalidAction
	}
	if amount <= 0 {
		return ErrInvalidBet
	}
	if (kind == CrapsPass || kind == CrapsDontPass) && g.Phase != CrapsComeOut {
		return ErrInvalidAction
	}
	g.Bets[kind] += amount
	return nil
}

// TotalStaked is the sum riding on the layout.
func (g *Craps) TotalStaked() int {
	total := 0
	for _, bet := range g.Bets {
		total += bet
	}
	return total
}

// Roll throws the dice and resolves every bet the roll decides.
//
// The field is a single-roll bet: 2 and 12 pay triple, the other field
// numbers double, anything else loses. Hardways win their premium when the
// sum comes as a double, lose on the easy way or any seven, and otherwise
// ride. Pass and don't-pass follow the standard line rules, with 12 on the
// come-out a push for don't-pass.
func (g *Craps) Roll(src rng.Source) (CrapsRoll, []CrapsResult, error) {
	d1, d2 := rng.Die(src), rng.Die(src)
	roll := CrapsRoll{Dice: [2]int{d1, d2}, Total: d1 + d2}

	var results []CrapsResult
	settle := func(kind CrapsBetKind, f func(bet int) *Settlement) {
		bet, ok := g.Bets[kind]
		if !ok {
			return
		}
		results = append(results, CrapsResult{Kind: kind, Bet: bet, Settlement: *f(bet)})
		delete(g.Bets, kind)
	}
	winX := func(mult int) func(int) *Settlement {
		return func(bet int) *Settlement { return win(bet * mult) }
	}
	lost := func(int) *Settlement { return loss() }
	pushed := func(bet int) *Settlement { return push(bet) }

	switch roll.Total {
	case 2, 12:
		settle(CrapsField, winX(3))
	case 3, 4, 9, 10, 11:
		settle(CrapsField, winX(2))
	default:
		settle(CrapsField, lost)
	}

	for _, hw := range hardwaySums {
		switch {
		case roll.Total == 7:
			settle(hw.kind, lost)
		case roll.Total == hw.sum && d1 == d2:
			settle(hw.kind, winX(hw.payout))
		case roll.Total == hw.sum:
			settle(hw.kind, lost)
		}
	}

	switch g.Phase {
	case CrapsComeOut:
		switch roll.Total {
		case 7, 11:
			settle(CrapsPass, winX(2))
			settle(CrapsDontPass, lost)
		case 2, 3:
			settle(CrapsPass, lost)
			settle(CrapsDontPass, winX(2))
		case 12:
			settle(CrapsPass, lost)
			settle(CrapsDontPass, pushed)
		default:
			g.Phase = CrapsPoint
			g.Point = roll.Total
		}
	case CrapsPoint:
		switch roll.Total {
		case g.Point:
			settle(CrapsPass, winX(2))
			settle(CrapsDontPass, lost)
			g.Phase = CrapsComeOut
			g.Point = 0
		case 7:
			settle(CrapsPass, lost)
			settle(CrapsDontPass, winX(2))
			g.Phase = CrapsComeOut
			g.Point = 0
		}
	}

	return roll, results, nil
}
