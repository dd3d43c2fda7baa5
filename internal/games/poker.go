package games

import (
	"sort"

	"github.com/Techjunky-monk39/CasinoLive/internal/deck"
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

// HandRank classifies a five-card poker hand, lowest to highest.
type HandRank int

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var handRankNames = map[HandRank]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (r HandRank) String() string { return handRankNames[r] }

// pokerPayouts maps a hand rank to its bet multiplier. Hands below a straight
// pay nothing.
var pokerPayouts = map[HandRank]int{
	RoyalFlush:    100,
	StraightFlush: 50,
	FourOfAKind:   25,
	FullHouse:     10,
	Flush:         6,
	Straight:      4,
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight checks five sorted ace-low values for consecutiveness. The
// broadway straight (10-J-Q-K-A) needs its own check since the ace counts 1.
func isStraight(values []int) bool {
	consecutive := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return true
	}
	return values[0] == 1 && values[1] == 10 && values[2] == 11 && values[3] == 12 && values[4] == 13
}

// RankHand classifies exactly five cards. Categories are mutually exclusive;
// the highest matching one wins.
func RankHand(cards []deck.Card) (HandRank, error) {
	if len(cards) != 5 {
		return HighCard, ErrInvalidAction
	}

	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Value()
	}
	sort.Ints(values)

	flush := isFlush(cards)
	straight := isStraight(values)

	if flush && straight {
		// Broadway straight in one suit: ace and king present.
		if values[0] == 1 && values[4] == 13 {
			return RoyalFlush, nil
		}
		return StraightFlush, nil
	}

	freq := make(map[int]int)
	for _, v := range values {
		freq[v]++
	}
	counts := make([]int, 0, len(freq))
	for _, n := range freq {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	switch {
	case counts[0] == 4:
		return FourOfAKind, nil
	case counts[0] == 3 && counts[1] == 2:
		return FullHouse, nil
	case flush:
		return Flush, nil
	case straight:
		return Straight, nil
	case counts[0] == 3:
		return ThreeOfAKind, nil
	case counts[0] == 2 && counts[1] == 2:
		return TwoPair, nil
	case counts[0] == 2:
		return Pair, nil
	default:
		return HighCard, nil
	}
}

// BestHand picks the highest-ranked five-card hand from seven cards
// (two hole cards plus the five community cards).
func BestHand(cards []deck.Card) ([]deck.Card, HandRank) {
	best := make([]deck.Card, 0, 5)
	bestRank := HighCard
	first := true

	pick := make([]deck.Card, 5)
	// C(7,5) = 21 combinations; brute force is fine.
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						pick[0], pick[1], pick[2], pick[3], pick[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						rank, err := RankHand(pick)
						if err != nil {
							continue
						}
						if first || rank > bestRank {
							first = false
							bestRank = rank
							best = append(best[:0], pick...)
						}
					}
				}
			}
		}
	}

	out := make([]deck.Card, len(best))
	copy(out, best)
	return out, bestRank
}

// PokerDeal is one settled hand of the table game: two hole cards, five
// community cards, and the best rank they make together.
type PokerDeal struct {
	Hole      []deck.Card `json:"hole"`
	Community []deck.Card `json:"community"`
	Best      []deck.Card `json:"best"`
	Rank      HandRank    `json:"rank"`
	RankName  string      `json:"rankName"`
}

// DealPoker deals a fresh hand and settles it immediately against the payout
// table. The caller debits the bet first.
func DealPoker(bet int, src rng.Source) (*PokerDeal, *Settlement, error) {
	if bet <= 0 {
		return nil, nil, ErrInvalidBet
	}

	d := deck.NewShuffled(src)
	hole, err := d.Deal(2)
	if err != nil {
		return nil, nil, err
	}
	community, err := d.Deal(5)
	if err != nil {
		return nil, nil, err
	}

	all := make([]deck.Card, 0, 7)
	all = append(all, hole...)
	all = append(all, community...)
	best, rank := BestHand(all)

	deal := &PokerDeal{
		Hole:      hole,
		Community: community,
		Best:      best,
		Rank:      rank,
		RankName:  rank.String(),
	}

	if mult, ok := pokerPayouts[rank]; ok {
		return deal, win(bet * mult), nil
	}
	return deal, loss(), nil
}
