package games

import (
	"errors"
	"testing"

	"github.com/Techjunky-monk39/CasinoLive/internal/deck"
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

func card(r deck.Rank) deck.Card {
	return deck.Card{Suit: deck.Spades, Rank: r, FaceUp: true}
}

func holeCard(r deck.Rank) deck.Card {
	return deck.Card{Suit: deck.Hearts, Rank: r, FaceUp: false}
}

func playing(bet int, player, dealer []deck.Card, d *deck.Deck) *Blackjack {
	return &Blackjack{Phase: BlackjackPlaying, Bet: bet, Player: player, Dealer: dealer, d: d}
}

func TestBlackjackScore(t *testing.T) {
	cases := []struct {
		name  string
		cards []deck.Card
		want  int
	}{
		{"face cards count ten", []deck.Card{card(deck.King), card(deck.Queen)}, 20},
		{"ace counts eleven", []deck.Card{card(deck.Ace), card(deck.King)}, 21},
		{"ace drops to one", []deck.Card{card(deck.Ace), card(deck.Nine), card(deck.Five)}, 15},
		{"two aces make twenty-one", []deck.Card{card(deck.Ace), card(deck.Ace), card(deck.Nine)}, 21},
		{"face-down card not counted", []deck.Card{card(deck.King), holeCard(deck.Queen)}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BlackjackScore(tc.cards); got != tc.want {
				t.Errorf("BlackjackScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBlackjackDeal(t *testing.T) {
	g := NewBlackjack()
	settlement, err := g.Deal(10, rng.New(1))
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	if len(g.Player) != 2 {
		t.Errorf("expected 2 player cards, got %d", len(g.Player))
	}
	if len(g.Dealer) != 2 {
		t.Errorf("expected 2 dealer cards, got %d", len(g.Dealer))
	}
	if g.Phase == BlackjackPlaying {
		if settlement != nil {
			t.Error("got a settlement while still playing")
		}
		if g.Dealer[1].FaceUp {
			t.Error("dealer hole card should be face down while playing")
		}
	} else {
		// Dealt 21 auto-stands and must settle.
		if settlement == nil {
			t.Error("terminal deal returned no settlement")
		}
	}
}

func TestBlackjackDealRejectsBadBet(t *testing.T) {
	g := NewBlackjack()
	if _, err := g.Deal(0, rng.New(1)); !errors.Is(err, ErrInvalidBet) {
		t.Errorf("expected ErrInvalidBet, got %v", err)
	}
	if g.Phase != BlackjackBet {
		t.Errorf("rejected deal changed phase to %s", g.Phase)
	}
}

func TestBlackjackHitBust(t *testing.T) {
	g := playing(10,
		[]deck.Card{card(deck.King), card(deck.Queen)},
		[]deck.Card{card(deck.Nine), holeCard(deck.Seven)},
		deck.From(card(deck.Five)))

	settlement, err := g.Hit()
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if g.Phase != BlackjackPlayerBust {
		t.Errorf("expected playerBust, got %s", g.Phase)
	}
	if settlement == nil || settlement.Outcome != OutcomeLoss || settlement.WinAmount != 0 {
		t.Errorf("expected loss settlement, got %+v", settlement)
	}
}

func TestBlackjackHitBelowTwentyOneContinues(t *testing.T) {
	g := playing(10,
		[]deck.Card{card(deck.Five), card(deck.Six)},
		[]deck.Card{card(deck.Nine), holeCard(deck.Seven)},
		deck.From(card(deck.Four)))

	settlement, err := g.Hit()
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if settlement != nil {
		t.Errorf("expected no settlement at 15, got %+v", settlement)
	}
	if g.Phase != BlackjackPlaying {
		t.Errorf("expected playing, got %s", g.Phase)
	}
}

func TestBlackjackStand(t *testing.T) {
	t.Run("dealer busts", func(t *testing.T) {
		g := playing(10,
			[]deck.Card{card(deck.King), card(deck.Queen)},
			[]deck.Card{card(deck.Ten), holeCard(deck.Six)},
			deck.From(card(deck.King)))

		settlement, err := g.Stand()
		if err != nil {
			t.Fatalf("Stand failed: %v", err)
		}
		if g.Phase != BlackjackDealerBust {
			t.Errorf("expected dealerBust, got %s", g.Phase)
		}
		if settlement.Outcome != OutcomeWin || settlement.WinAmount != 20 {
			t.Errorf("expected win of 20, got %+v", settlement)
		}
		if !g.Dealer[1].FaceUp {
			t.Error("hole card still face down after stand")
		}
	})

	t.Run("push returns the stake", func(t *testing.T) {
		g := playing(10,
			[]deck.Card{card(deck.King), card(deck.Queen)},
			[]deck.Card{card(deck.King), holeCard(deck.Queen)},
			deck.From())

		settlement, err := g.Stand()
		if err != nil {
			t.Fatalf("Stand failed: %v", err)
		}
		if g.Phase != BlackjackPush {
			t.Errorf("expected push, got %s", g.Phase)
		}
		if settlement.Outcome != OutcomePush || settlement.WinAmount != 10 {
			t.Errorf("expected push of 10, got %+v", settlement)
		}
	})

	t.Run("dealer wins on higher total", func(t *testing.T) {
		g := playing(10,
			[]deck.Card{card(deck.Nine), card(deck.Nine)},
			[]deck.Card{card(deck.King), holeCard(deck.Queen)},
			deck.From())

		settlement, err := g.Stand()
		if err != nil {
			t.Fatalf("Stand failed: %v", err)
		}
		if g.Phase != BlackjackDealerWin {
			t.Errorf("expected dealerWin, got %s", g.Phase)
		}
		if settlement.Outcome != OutcomeLoss || settlement.WinAmount != 0 {
			t.Errorf("expected loss, got %+v", settlement)
		}
	})

	t.Run("dealer draws to seventeen", func(t *testing.T) {
		g := playing(10,
			[]deck.Card{card(deck.King), card(deck.Eight)},
			[]deck.Card{card(deck.Ten), holeCard(deck.Two)},
			deck.From(card(deck.Five)))

		settlement, err := g.Stand()
		if err != nil {
			t.Fatalf("Stand failed: %v", err)
		}
		if len(g.Dealer) != 3 {
			t.Errorf("expected dealer to draw one card, has %d", len(g.Dealer))
		}
		// Player 18 beats dealer 17.
		if g.Phase != BlackjackPlayerWin || settlement.WinAmount != 20 {
			t.Errorf("expected playerWin of 20, got phase %s settlement %+v", g.Phase, settlement)
		}
	})
}

func TestBlackjackStandExhaustedDeckLeavesHandIntact(t *testing.T) {
	g := playing(10,
		[]deck.Card{card(deck.King), card(deck.Eight)},
		[]deck.Card{card(deck.Ten), holeCard(deck.Two)},
		deck.From())

	_, err := g.Stand()
	if !errors.Is(err, deck.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if g.Phase != BlackjackPlaying {
		t.Errorf("failed stand changed phase to %s", g.Phase)
	}
	if g.Dealer[1].FaceUp {
		t.Error("failed stand flipped the hole card")
	}
}

func TestBlackjackDouble(t *testing.T) {
	t.Run("doubles the stake and stands", func(t *testing.T) {
		g := playing(10,
			[]deck.Card{card(deck.Five), card(deck.Six)},
			[]deck.Card{card(deck.King), holeCard(deck.Seven)},
			deck.From(card(deck.Nine)))

		settlement, err := g.Double()
		if err != nil {
			t.Fatalf("Double failed: %v", err)
		}
		if g.Bet != 20 {
			t.Errorf("expected bet 20 after double, got %d", g.Bet)
		}
		// Player 20 beats dealer 17; win returns twice the doubled stake.
		if settlement.Outcome != OutcomeWin || settlement.WinAmount != 40 {
			t.Errorf("expected win of 40, got %+v", settlement)
		}
	})

	t.Run("bust on the drawn card", func(t *testing.T) {
		g := playing(10,
			[]deck.Card{card(deck.King), card(deck.Six)},
			[]deck.Card{card(deck.King), holeCard(deck.Seven)},
			deck.From(card(deck.Ten)))

		settlement, err := g.Double()
		if err != nil {
			t.Fatalf("Double failed: %v", err)
		}
		if g.Phase != BlackjackPlayerBust {
			t.Errorf("expected playerBust, got %s", g.Phase)
		}
		if settlement.Outcome != OutcomeLoss {
			t.Errorf("expected loss, got %+v", settlement)
		}
	})

	t.Run("rejected after a hit", func(t *testing.T) {
		g := playing(10,
			[]deck.Card{card(deck.Two), card(deck.Three), card(deck.Four)},
			[]deck.Card{card(deck.King), holeCard(deck.Seven)},
			deck.From(card(deck.Ten)))

		if g.CanDouble() {
			t.Error("CanDouble true with three cards")
		}
		if _, err := g.Double(); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("expected ErrInvalidAction, got %v", err)
		}
	})
}

func TestBlackjackActionsRequirePlayingPhase(t *testing.T) {
	g := NewBlackjack()
	if _, err := g.Hit(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Hit in bet phase: expected ErrInvalidAction, got %v", err)
	}
	if _, err := g.Stand(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Stand in bet phase: expected ErrInvalidAction, got %v", err)
	}

	g.Phase = BlackjackPlayerWin
	if _, err := g.Deal(10, rng.New(1)); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Deal in terminal phase: expected ErrInvalidAction, got %v", err)
	}
}
