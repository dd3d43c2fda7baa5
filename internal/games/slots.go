package games

import (
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
)

// SlotSymbol is one reel face.
type SlotSymbol string

const (
	SlotCherry  SlotSymbol = "🍒"
	SlotOrange  SlotSymbol = "🍊"
	SlotGrape   SlotSymbol = "🍇"
	SlotBell    SlotSymbol = "🔔"
	SlotDiamond SlotSymbol = "💎"
	SlotSeven   SlotSymbol = "7️⃣"
)

var slotSymbols = []SlotSymbol{SlotCherry, SlotOrange, SlotGrape, SlotBell, SlotDiamond, SlotSeven}

// slotMultipliers pays three of a kind at bet times the symbol's multiplier.
var slotMultipliers = map[SlotSymbol]int{
	SlotCherry:  25,
	SlotOrange:  50,
	SlotGrape:   100,
	SlotBell:    250,
	SlotDiamond: 500,
	SlotSeven:   1000,
}

// SlotSpin is one settled pull of the machine.
type SlotSpin struct {
	Reels [3]SlotSymbol `json:"reels"`
}

// SpinSlots draws three reels independently and uniformly. Only a triple
// pays; the win is bet times the matched symbol's multiplier. The caller
// debits the bet first.
func SpinSlots(bet int, src rng.Source) (*SlotSpin, *Settlement, error) {
	if bet <= 0 {
		return nil, nil, ErrInvalidBet
	}

	var spin SlotSpin
	for i := range spin.Reels {
		spin.Reels[i] = slotSymbols[src.Intn(len(slotSymbols))]
	}

	if spin.Reels[0] == spin.Reels[1] && spin.Reels[1] == spin.Reels[2] {
		return &spin, win(bet * slotMultipliers[spin.Reels[0]]), nil
	}
	return &spin, loss(), nil
}
