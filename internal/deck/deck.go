package deck

import (
	"errors"

	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

// ErrExhausted is returned when a deal asks for more cards than remain. Decks
// are never replenished mid-hand; callers start a fresh deck per hand instead.
var ErrExhausted = errors.New("deck: no cards remaining")

// Suit is one of the four French suits.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Rank is a card rank, A and 2-10 and J/Q/K.
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

var suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card is a playing card. Immutable once dealt except for the FaceUp toggle
// (dealer hole card).
type Card struct {
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	FaceUp bool `json:"faceUp"`
}

// String returns a short human-readable form like "A♠" or "10♦".
func (c Card) String() string {
	var s string
	switch c.Suit {
	case Hearts:
		s = "♥"
	case Diamonds:
		s = "♦"
	case Clubs:
		s = "♣"
	case Spades:
		s = "♠"
	}
	return string(c.Rank) + s
}

// Value returns the ordinal rank value with ace low: A=1, 2=2, ..., K=13.
func (c Card) Value() int {
	switch c.Rank {
	case Ace:
		return 1
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ten:
		return 10
	default:
		return int(c.Rank[0] - '0')
	}
}

// Deck is an ordered sequence of cards consumed from the end.
type Deck struct {
	cards []Card
}

// New builds the full 52-card deck, one card per (suit, rank) pair, all face up.
func New() *Deck {
	cards := make([]Card, 0, len(suits)*len(ranks))
	for _, s := range suits {
		for _, r := range ranks {
			cards = append(cards, Card{Suit: s, Rank: r, FaceUp: true})
		}
	}
	return &Deck{cards: cards}
}

// Shuffle applies an in-place Fisher-Yates shuffle using the given source.
func (d *Deck) Shuffle(src rng.Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// NewShuffled is New followed by Shuffle.
func NewShuffled(src rng.Source) *Deck {
	d := New()
	d.Shuffle(src)
	return d
}

// From builds a deck holding exactly the given cards in order. Cards are
// dealt from the end, so the last argument comes off first.
func From(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Deal removes and returns the last n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrExhausted
	}
	dealt := make([]Card, n)
	for i := 0; i < n; i++ {
		dealt[i] = d.cards[len(d.cards)-1]
		d.cards = d.cards[:len(d.cards)-1]
	}
	return dealt, nil
}

// DealOne removes and returns the top card.
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Remaining reports how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
