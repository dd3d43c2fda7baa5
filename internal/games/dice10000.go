package games

import (
	"sort"

	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

// Dice10000Target is the banked total that wins the game.
const Dice10000Target = 10000

// ScoreDice10000 scores a selection of dice. Six of a kind scores the full
// target outright and a full 1-6 straight scores 1500. Otherwise triples
// score 1000 for ones, 500 for fives, and face value times 100 for the rest,
// with each die beyond the third adding another 100 (ones), 50 (fives), or
// one more multiple of the triple value. Loose ones and fives score 100 and
// 50 apiece. Everything else scores nothing.
func ScoreDice10000(dice []int) int {
	if len(dice) == 6 {
		allSame := true
		for _, d := range dice[1:] {
			if d != dice[0] {
				allSame = false
				break
			}
		}
		if allSame {
			return Dice10000Target
		}

		sorted := make([]int, 6)
		copy(sorted, dice)
		sort.Ints(sorted)
		straight := true
		for i, d := range sorted {
			if d != i+1 {
				straight = false
				break
			}
		}
		if straight {
			return 1500
		}
	}

	counts := make(map[int]int)
	for _, d := range dice {
		counts[d]++
	}

	score := 0
	for value, count := range counts {
		if count >= 3 {
			switch value {
			case 1:
				score += 1000 + (count-3)*100
			case 5:
				score += 500 + (count-3)*50
			default:
				score += value * 100 * (count - 2)
			}
			continue
		}
		switch value {
		case 1:
			score += count * 100
		case 5:
			score += count * 50
		}
	}
	return score
}

// Dice10000Phase is the game's position in the bet -> rolling -> done cycle.
type Dice10000Phase string

const (
	Dice10000Bet     Dice10000Phase = "bet"
	Dice10000Rolling Dice10000Phase = "rolling"
	Dice10000Done    Dice10000Phase = "done"
)

// Dice10000 is one run at banking ten thousand points. Six dice roll
// together; the player banks scoring selections, consumed dice are zeroed,
// and once every die is spent a fresh set rolls. Reaching the target pays
// double the stake; giving up forfeits it.
type Dice10000 struct {
	Phase     Dice10000Phase `json:"phase"`
	Bet       int            `json:"bet"`
	Dice      [6]int         `json:"dice"`
	Rolls     int            `json:"rolls"`
	Total     int            `json:"total"`
	LastScore int            `json:"lastScore"`
}

// NewDice10000 returns a game awaiting its bet.
func NewDice10000() *Dice10000 {
	return &Dice10000{Phase: Dice10000Bet}
}

// Start places the bet and rolls the first set of dice. The caller debits
// the bet before calling.
func (g *Dice10000) Start(bet int, src rng.Source) error {
	if g.Phase != Dice10000Bet {
		return ErrInvalidAction
	}
	if bet <= 0 {
		return ErrInvalidBet
	}
	g.Phase = Dice10000Rolling
	g.Bet = bet
	g.roll(src)
	return nil
}

func (g *Dice10000) roll(src rng.Source) {
	for i := range g.Dice {
		g.Dice[i] = rng.Die(src)
	}
	g.Rolls++
}

// Roll rerolls all six dice, abandoning whatever is showing.
func (g *Dice10000) Roll(src rng.Source) error {
	if g.Phase != Dice10000Rolling {
		return ErrInvalidAction
	}
	g.roll(src)
	return nil
}

// Bank scores the dice at the selected positions and consumes them. Banking
// past the target settles the game as a win; spending the last die rolls a
// fresh set.
func (g *Dice10000) Bank(selected []int, src rng.Source) (*Settlement, error) {
	if g.Phase != Dice10000Rolling {
		return nil, ErrInvalidAction
	}
	if len(selected) == 0 {
		return nil, ErrInvalidAction
	}
	seen := make(map[int]bool)
	values := make([]int, 0, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(g.Dice) || g.Dice[idx] == 0 || seen[idx] {
			return nil, ErrInvalidAction
		}
		seen[idx] = true
		values = append(values, g.Dice[idx])
	}

	g.LastScore = ScoreDice10000(values)
	g.Total += g.LastScore

	if g.Total >= Dice10000Target {
		g.Phase = Dice10000Done
		return win(g.Bet * 2), nil
	}

	for idx := range seen {
		g.Dice[idx] = 0
	}
	spent := true
	for _, d := range g.Dice {
		if d != 0 {
			spent = false
			break
		}
	}
	if spent {
		g.roll(src)
	}
	return nil, nil
}

// Forfeit ends the game as a loss.
func (g *Dice10000) Forfeit() (*Settlement, error) {
	if g.Phase != Dice10000Rolling {
		return nil, ErrInvalidAction
	}
	g.Phase = Dice10000Done
	return loss(), nil
}
