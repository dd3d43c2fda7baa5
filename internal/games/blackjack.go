package games

import (
	"github.com/Techjunky-monk39/CasinoLive/internal/deck"
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

// BlackjackPhase is the hand's position in the bet -> playing -> terminal cycle.
type BlackjackPhase string

const (
	BlackjackBet        BlackjackPhase = "bet"
	BlackjackPlaying    BlackjackPhase = "playing"
	BlackjackPlayerBust BlackjackPhase = "playerBust"
	BlackjackDealerBust BlackjackPhase = "dealerBust"
	BlackjackPlayerWin  BlackjackPhase = "playerWin"
	BlackjackDealerWin  BlackjackPhase = "dealerWin"
	BlackjackPush       BlackjackPhase = "push"
)

// Terminal reports whether the phase is a settled one.
func (p BlackjackPhase) Terminal() bool {
	switch p {
	case BlackjackPlayerBust, BlackjackDealerBust, BlackjackPlayerWin, BlackjackDealerWin, BlackjackPush:
		return true
	}
	return false
}

// Blackjack holds one hand of blackjack. A fresh shuffled deck backs each
// hand; the deck is never replenished, so a draw from an empty deck fails
// with deck.ErrExhausted and leaves the hand untouched.
type Blackjack struct {
	Phase  BlackjackPhase
	Bet    int
	Player []deck.Card
	Dealer []deck.Card

	d *deck.Deck
}

// NewBlackjack returns a hand in the bet phase.
func NewBlackjack() *Blackjack {
	return &Blackjack{Phase: BlackjackBet}
}

// BlackjackScore is the ace-flexible total of the face-up cards: face cards
// count 10, aces start at 11 and drop to 1 one at a time while the total
// exceeds 21.
func BlackjackScore(cards []deck.Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		if !c.FaceUp {
			continue
		}
		switch c.Rank {
		case deck.Ace:
			total += 11
			aces++
		case deck.King, deck.Queen, deck.Jack, deck.Ten:
			total += 10
		default:
			total += c.Value()
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// PlayerScore is the current face-up total of the player hand.
func (g *Blackjack) PlayerScore() int { return BlackjackScore(g.Player) }

// DealerScore is the current face-up total of the dealer hand. While the hole
// card is face down it counts only the up card.
func (g *Blackjack) DealerScore() int { return BlackjackScore(g.Dealer) }

// Deal starts the hand: two player cards face up, two dealer cards with the
// second face down. The caller debits the bet before calling. If the player
// is dealt 21 the hand auto-stands and the returned settlement is non-nil.
func (g *Blackjack) Deal(bet int, src rng.Source) (*Settlement, error) {
	if g.Phase != BlackjackBet {
		return nil, ErrInvalidAction
	}
	if bet <= 0 {
		return nil, ErrInvalidBet
	}

	d := deck.NewShuffled(src)
	player, err := d.Deal(2)
	if err != nil {
		return nil, err
	}
	dealer, err := d.Deal(2)
	if err != nil {
		return nil, err
	}
	dealer[1].FaceUp = false

	g.Phase = BlackjackPlaying
	g.Bet = bet
	g.Player = player
	g.Dealer = dealer
	g.d = d

	if g.PlayerScore() == 21 {
		return g.Stand()
	}
	return nil, nil
}

// Hit draws one card into the player hand. Going over 21 busts the hand.
func (g *Blackjack) Hit() (*Settlement, error) {
	if g.Phase != BlackjackPlaying {
		return nil, ErrInvalidAction
	}
	card, err := g.d.DealOne()
	if err != nil {
		return nil, err
	}
	g.Player = append(g.Player, card)
	if g.PlayerScore() > 21 {
		g.Phase = BlackjackPlayerBust
		return loss(), nil
	}
	return nil, nil
}

// Stand flips the hole card, runs the dealer draw loop (hit below 17) and
// settles the hand.
func (g *Blackjack) Stand() (*Settlement, error) {
	if g.Phase != BlackjackPlaying {
		return nil, ErrInvalidAction
	}

	// Resolve on copies so a mid-draw exhausted deck leaves the hand intact.
	dealer := make([]deck.Card, len(g.Dealer))
	copy(dealer, g.Dealer)
	dealer[1].FaceUp = true

	for BlackjackScore(dealer) < 17 {
		card, err := g.d.DealOne()
		if err != nil {
			return nil, err
		}
		dealer = append(dealer, card)
	}
	g.Dealer = dealer

	playerScore := g.PlayerScore()
	dealerScore := BlackjackScore(dealer)

	switch {
	case dealerScore > 21:
		g.Phase = BlackjackDealerBust
		return win(g.Bet * 2), nil
	case playerScore > dealerScore:
		g.Phase = BlackjackPlayerWin
		return win(g.Bet * 2), nil
	case playerScore == dealerScore:
		g.Phase = BlackjackPush
		return push(g.Bet), nil
	default:
		g.Phase = BlackjackDealerWin
		return loss(), nil
	}
}

// CanDouble reports whether doubling down is legal right now. The caller uses
// this to debit the extra stake before committing the action.
func (g *Blackjack) CanDouble() bool {
	return g.Phase == BlackjackPlaying && len(g.Player) == 2
}

// Double doubles the stake, draws exactly one card, then busts or auto-stands.
// The caller debits the additional bet (equal to the original) beforehand.
func (g *Blackjack) Double() (*Settlement, error) {
	if !g.CanDouble() {
		return nil, ErrInvalidAction
	}
	card, err := g.d.DealOne()
	if err != nil {
		return nil, err
	}
	g.Bet *= 2
	g.Player = append(g.Player, card)
	if g.PlayerScore() > 21 {
		g.Phase = BlackjackPlayerBust
		return loss(), nil
	}
	return g.Stand()
}
