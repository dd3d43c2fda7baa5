package games

import (
	"fmt"
	"sort"

	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

// RerollPolicy limits how many times a side may roll while chasing a
// scoreable combination.
type RerollPolicy string

const (
	RerollUnlimited RerollPolicy = "unlimited"
	RerollThree     RerollPolicy = "three-rolls"
	RerollOne       RerollPolicy = "one-roll"
)

// limit returns the maximum roll count, 0 meaning unlimited.
func (p RerollPolicy) limit() int {
	switch p {
	case RerollOne:
		return 1
	case RerollThree:
		return 3
	default:
		return 0
	}
}

// Valid reports whether p is a known policy.
func (p RerollPolicy) Valid() bool {
	switch p {
	case RerollUnlimited, RerollThree, RerollOne:
		return true
	}
	return false
}

// Dice456Combo classifies three dice. Score orders combinations across
// tiers: 4-5-6 at 1000, a triple at its value times 100, a pair at the bare
// kicker, and 1-2-3 at zero. A roll with no pair and neither special
// sequence is not scoreable and must be rerolled.
type Dice456Combo struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Scoreable bool   `json:"scoreable"`
}

const dice456ScoreWin = 1000

// ClassifyDice456 scores one roll of three dice.
func ClassifyDice456(dice [3]int) Dice456Combo {
	s := []int{dice[0], dice[1], dice[2]}
	sort.Ints(s)

	switch {
	case s[0] == 4 && s[1] == 5 && s[2] == 6:
		return Dice456Combo{Name: "4-5-6", Score: dice456ScoreWin, Scoreable: true}
	case s[0] == 1 && s[1] == 2 && s[2] == 3:
		return Dice456Combo{Name: "1-2-3", Score: 0, Scoreable: true}
	case s[0] == s[2]:
		return Dice456Combo{Name: fmt.Sprintf("triple %ds", s[0]), Score: s[0] * 100, Scoreable: true}
	case s[0] == s[1]:
		return Dice456Combo{Name: fmt.Sprintf("point %d", s[2]), Score: s[2], Scoreable: true}
	case s[1] == s[2]:
		return Dice456Combo{Name: fmt.Sprintf("point %d", s[0]), Score: s[0], Scoreable: true}
	default:
		return Dice456Combo{Name: "no combination", Scoreable: false}
	}
}

// Dice456Phase is the match's position in the bet -> player -> opponent ->
// done cycle.
type Dice456Phase string

const (
	Dice456Bet             Dice456Phase = "bet"
	Dice456PlayerRolling   Dice456Phase = "rollingPlayer"
	Dice456OpponentRolling Dice456Phase = "rollingOpponent"
	Dice456Done            Dice456Phase = "done"
)

// Terminal reports whether the match has settled.
func (p Dice456Phase) Terminal() bool { return p == Dice456Done }

// Dice456 is one match of the three-dice combination game. The player rolls
// until scoreable (within the reroll policy), then the match waits in the
// opponent-rolling phase: each opponent roll takes its own trigger, so a
// pass-and-play opponent or the house can drive that side. The higher score
// takes the pot. Running out of rolls without a combination forfeits. A tied
// score restarts both sides.
type Dice456 struct {
	Phase  Dice456Phase `json:"phase"`
	Bet    int          `json:"bet"`
	Policy RerollPolicy `json:"policy"`

	Rolls         int          `json:"rolls"`
	OpponentRolls int          `json:"opponentRolls"`
	PlayerDice    [3]int       `json:"playerDice"`
	PlayerCombo   Dice456Combo `json:"playerCombo"`
	OpponentDice  [3]int       `json:"opponentDice"`
	OpponentCombo Dice456Combo `json:"opponentCombo"`
}

// NewDice456 returns a match awaiting its bet.
func NewDice456(policy RerollPolicy) *Dice456 {
	return &Dice456{Phase: Dice456Bet, Policy: policy}
}

// Start places the bet and opens the player's rolling phase. The caller
// debits the bet before calling.
func (g *Dice456) Start(bet int) error {
	if g.Phase != Dice456Bet {
		return ErrInvalidAction
	}
	if bet <= 0 {
		return ErrInvalidBet
	}
	g.Phase = Dice456PlayerRolling
	g.Bet = bet
	return nil
}

// CanReroll reports whether the side currently holding the dice has rolls
// left under the policy.
func (g *Dice456) CanReroll() bool {
	limit := g.Policy.limit()
	switch g.Phase {
	case Dice456PlayerRolling:
		return limit == 0 || g.Rolls < limit
	case Dice456OpponentRolling:
		return limit == 0 || g.OpponentRolls < limit
	}
	return false
}

func rollThree(src rng.Source) [3]int {
	return [3]int{rng.Die(src), rng.Die(src), rng.Die(src)}
}

// Roll throws the dice for whichever side currently holds them. An
// unscoreable roll with rolls remaining leaves that side open for a reroll;
// exhausting the policy without a combination forfeits the match to the
// other side. A scored player combination hands the dice to the opponent
// without settling; a scored opponent combination settles the match, except
// on a tied score, which restarts both sides.
func (g *Dice456) Roll(src rng.Source) (*Settlement, error) {
	switch g.Phase {
	case Dice456PlayerRolling:
		return g.rollPlayer(src)
	case Dice456OpponentRolling:
		return g.rollOpponent(src)
	}
	return nil, ErrInvalidAction
}

func (g *Dice456) rollPlayer(src rng.Source) (*Settlement, error) {
	g.Rolls++
	g.PlayerDice = rollThree(src)
	g.PlayerCombo = ClassifyDice456(g.PlayerDice)

	if !g.PlayerCombo.Scoreable {
		if g.CanReroll() {
			return nil, nil
		}
		g.Phase = Dice456Done
		return loss(), nil
	}

	// 4-5-6 wins and 1-2-3 loses outright; the opponent never rolls.
	switch g.PlayerCombo.Score {
	case dice456ScoreWin:
		g.Phase = Dice456Done
		return win(g.Bet * 2), nil
	case 0:
		g.Phase = Dice456Done
		return loss(), nil
	}

	// The dice pass to the opponent; their rolls take their own trigger.
	g.Phase = Dice456OpponentRolling
	return nil, nil
}

func (g *Dice456) rollOpponent(src rng.Source) (*Settlement, error) {
	g.OpponentRolls++
	g.OpponentDice = rollThree(src)
	g.OpponentCombo = ClassifyDice456(g.OpponentDice)

	if !g.OpponentCombo.Scoreable {
		if g.CanReroll() {
			return nil, nil
		}
		// The opponent ran out of rolls; the pot goes to the player.
		g.Phase = Dice456Done
		return win(g.Bet * 2), nil
	}

	switch {
	case g.PlayerCombo.Score > g.OpponentCombo.Score:
		g.Phase = Dice456Done
		return win(g.Bet * 2), nil
	case g.PlayerCombo.Score < g.OpponentCombo.Score:
		g.Phase = Dice456Done
		return loss(), nil
	default:
		// Tied score: both sides start over.
		g.Phase = Dice456PlayerRolling
		g.Rolls = 0
		g.OpponentRolls = 0
		g.PlayerCombo = Dice456Combo{}
		g.OpponentCombo = Dice456Combo{}
		return nil, nil
	}
}
