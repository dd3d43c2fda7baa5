package casino

import (
	"github.com/Techjunky-monk39/CasinoLive/internal/deck"
	"github.com/Techjunky-monk39/CasinoLive/internal/games"
)

// CardView is a card as the API shows it. A face-down card is rendered
// hidden with its suit and rank withheld.
type CardView struct {
	Suit   deck.Suit `json:"suit,omitempty"`
	Rank   deck.Rank `json:"rank,omitempty"`
	Hidden bool      `json:"hidden,omitempty"`
}

func cardView(c deck.Card) CardView {
	if !c.FaceUp {
		return CardView{Hidden: true}
	}
	return CardView{Suit: c.Suit, Rank: c.Rank}
}

func cardViews(cards []deck.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = cardView(c)
	}
	return out
}

// BlackjackView is the hand as the player may see it. While the hand is in
// play the dealer's hole card is hidden and the dealer score counts only the
// up card.
type BlackjackView struct {
	Phase       games.BlackjackPhase `json:"phase"`
	Bet         int                  `json:"bet"`
	Player      []CardView           `json:"player"`
	Dealer      []CardView           `json:"dealer"`
	PlayerScore int                  `json:"playerScore"`
	DealerScore int                  `json:"dealerScore"`
	Settlement  *games.Settlement    `json:"settlement,omitempty"`
	Balance     int                  `json:"balance"`
}

func (s *Service) blackjackView(userID int64, g *games.Blackjack, settlement *games.Settlement) *BlackjackView {
	return &BlackjackView{
		Phase:       g.Phase,
		Bet:         g.Bet,
		Player:      cardViews(g.Player),
		Dealer:      cardViews(g.Dealer),
		PlayerScore: g.PlayerScore(),
		DealerScore: g.DealerScore(),
		Settlement:  settlement,
		Balance:     s.balance(userID),
	}
}

// PokerView is one settled poker deal.
type PokerView struct {
	Hole       []CardView        `json:"hole"`
	Community  []CardView        `json:"community"`
	Best       []CardView        `json:"best"`
	RankName   string            `json:"rankName"`
	Settlement *games.Settlement `json:"settlement"`
	Balance    int               `json:"balance"`
}

// SlotsView is one settled spin.
type SlotsView struct {
	Reels      [3]games.SlotSymbol `json:"reels"`
	Settlement *games.Settlement   `json:"settlement"`
	Balance    int                 `json:"balance"`
}

// Dice456View is the match state after an action.
type Dice456View struct {
	Phase         games.Dice456Phase `json:"phase"`
	Bet           int                `json:"bet"`
	Rolls         int                `json:"rolls"`
	OpponentRolls int                `json:"opponentRolls"`
	CanReroll     bool               `json:"canReroll"`
	PlayerDice    [3]int             `json:"playerDice"`
	PlayerCombo   games.Dice456Combo `json:"playerCombo"`
	OpponentDice  [3]int             `json:"opponentDice"`
	OpponentCombo games.Dice456Combo `json:"opponentCombo"`
	Settlement    *games.Settlement  `json:"settlement,omitempty"`
	Balance       int                `json:"balance"`
}

func (s *Service) dice456View(userID int64, g *games.Dice456, settlement *games.Settlement) *Dice456View {
	return &Dice456View{
		Phase:         g.Phase,
		Bet:           g.Bet,
		Rolls:         g.Rolls,
		OpponentRolls: g.OpponentRolls,
		CanReroll:     g.CanReroll(),
		PlayerDice:    g.PlayerDice,
		PlayerCombo:   g.PlayerCombo,
		OpponentDice:  g.OpponentDice,
		OpponentCombo: g.OpponentCombo,
		Settlement:    settlement,
		Balance:       s.balance(userID),
	}
}

// Dice10000View is the game state after an action.
type Dice10000View struct {
	Phase      games.Dice10000Phase `json:"phase"`
	Bet        int                  `json:"bet"`
	Dice       [6]int               `json:"dice"`
	Rolls      int                  `json:"rolls"`
	Total      int                  `json:"total"`
	LastScore  int                  `json:"lastScore"`
	Settlement *games.Settlement    `json:"settlement,omitempty"`
	Balance    int                  `json:"balance"`
}

func (s *Service) dice10000View(userID int64, g *games.Dice10000, settlement *games.Settlement) *Dice10000View {
	return &Dice10000View{
		Phase:      g.Phase,
		Bet:        g.Bet,
		Dice:       g.Dice,
		Rolls:      g.Rolls,
		Total:      g.Total,
		LastScore:  g.LastScore,
		Settlement: settlement,
		Balance:    s.balance(userID),
	}
}

// CrapsView is the table after a bet or a roll. Roll and Results are only
// populated by a roll.
type CrapsView struct {
	Phase   games.CrapsPhase           `json:"phase"`
	Point   int                        `json:"point"`
	Bets    map[games.CrapsBetKind]int `json:"bets"`
	Roll    *games.CrapsRoll           `json:"roll,omitempty"`
	Results []games.CrapsResult        `json:"results,omitempty"`
	Balance int                        `json:"balance"`
}

func (s *Service) crapsView(userID int64, g *games.Craps, roll games.CrapsRoll, results []games.CrapsResult) *CrapsView {
	bets := make(map[games.CrapsBetKind]int, len(g.Bets))
	for kind, amount := range g.Bets {
		bets[kind] = amount
	}
	view := &CrapsView{
		Phase:   g.Phase,
		Point:   g.Point,
		Bets:    bets,
		Results: results,
		Balance: s.balance(userID),
	}
	if roll.Total != 0 {
		r := roll
		view.Roll = &r
	}
	return view
}
