package casino

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Techjunky-monk39/CasinoLive/internal/games"
	"github.com/Techjunky-monk39/CasinoLive/internal/rng"
	"github.com/Techjunky-monk39/CasinoLive/internal/store"
)

// dieSource deals a fixed sequence of die faces, wrapping around.
type dieSource struct {
	faces []int
	i     int
}

func (s *dieSource) Intn(n int) int {
	if s.i >= len(s.faces) {
		s.i = 0
	}
	f := s.faces[s.i]
	s.i++
	return (f - 1) % n
}

func (s *dieSource) Float64() float64 { return 0 }

func newService(t *testing.T, src rng.Source, balance int) (*Service, *store.User) {
	t.Helper()
	st := store.NewMemory()
	u, err := st.CreateUser("player", "hash", balance)
	require.NoError(t, err)
	svc := New(st, log.New(io.Discard), src, games.RerollThree)
	return svc, u
}

func balanceOf(t *testing.T, svc *Service, userID int64) int {
	t.Helper()
	return svc.balance(userID)
}

func TestSlotsSpinDebitsAndRecords(t *testing.T) {
	// Mixed reels lose.
	svc, u := newService(t, &dieSource{faces: []int{1, 2, 3}}, 100)

	view, err := svc.SlotsSpin(u.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, games.OutcomeLoss, view.Settlement.Outcome)
	assert.Equal(t, 90, view.Balance)

	records, err := svc.History(u.ID, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, games.TypeSlots, records[0].GameType)
	assert.Equal(t, 10, records[0].Bet)
	assert.Equal(t, "loss", records[0].Outcome)
}

func TestSlotsSpinCreditsTriple(t *testing.T) {
	// Face 1 maps to the first symbol on every reel.
	svc, u := newService(t, &dieSource{faces: []int{1, 1, 1}}, 100)

	view, err := svc.SlotsSpin(u.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, games.OutcomeWin, view.Settlement.Outcome)
	// Triple cherries pay 25x.
	assert.Equal(t, 100-10+250, view.Balance)
}

func TestSlotsSpinInsufficientFunds(t *testing.T) {
	svc, u := newService(t, &dieSource{faces: []int{1}}, 5)

	_, err := svc.SlotsSpin(u.ID, 10)
	assert.ErrorIs(t, err, store.ErrInsufficientFunds)
	assert.Equal(t, 5, balanceOf(t, svc, u.ID))

	records, err := svc.History(u.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// creditFailStore rejects credits so settlement failures can be provoked.
type creditFailStore struct {
	store.Store
}

var errCreditFailed = errors.New("credit failed")

func (s *creditFailStore) AdjustBalance(userID int64, delta int) (int, error) {
	if delta > 0 {
		return 0, errCreditFailed
	}
	return s.Store.AdjustBalance(userID, delta)
}

func TestSlotsSpinFailedCreditIsFatal(t *testing.T) {
	st := store.NewMemory()
	u, err := st.CreateUser("player", "hash", 100)
	require.NoError(t, err)
	svc := New(&creditFailStore{Store: st}, log.New(io.Discard), &dieSource{faces: []int{1, 1, 1}}, games.RerollThree)

	// Triple cherries should pay, but the credit fails, so the action
	// fails and no win reaches the ledger.
	_, err = svc.SlotsSpin(u.ID, 10)
	require.ErrorIs(t, err, errCreditFailed)

	records, err := st.GetHistory(u.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBlackjackHandSettlesBalance(t *testing.T) {
	svc, u := newService(t, rng.New(7), 10000)

	expected := 10000
	var view *BlackjackView
	for i := 0; i < 20; i++ {
		v, err := svc.BlackjackDeal(u.ID, 50)
		require.NoError(t, err)
		expected -= 50
		if v.Settlement != nil {
			expected += v.Settlement.WinAmount
			continue
		}
		view = v
		break
	}
	require.NotNil(t, view, "never dealt a playable hand")
	assert.Equal(t, games.BlackjackPlaying, view.Phase)
	require.Len(t, view.Dealer, 2)
	assert.True(t, view.Dealer[1].Hidden, "hole card visible while playing")

	final, err := svc.BlackjackStand(u.ID)
	require.NoError(t, err)
	require.NotNil(t, final.Settlement)
	expected += final.Settlement.WinAmount
	assert.Equal(t, expected, final.Balance)
	assert.False(t, final.Dealer[1].Hidden, "hole card hidden after stand")

	records, err := svc.History(u.ID, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, games.TypeBlackjack, records[0].GameType)
}

func TestBlackjackActionsWithoutHand(t *testing.T) {
	svc, u := newService(t, rng.New(1), 100)

	_, err := svc.BlackjackHit(u.ID)
	assert.ErrorIs(t, err, ErrNoGame)
	_, err = svc.BlackjackStand(u.ID)
	assert.ErrorIs(t, err, ErrNoGame)
	_, err = svc.BlackjackDouble(u.ID)
	assert.ErrorIs(t, err, ErrNoGame)
}

func TestBlackjackDoubleDebitsExtraStake(t *testing.T) {
	svc, u := newService(t, rng.New(11), 10000)

	expected := 10000
	var view *BlackjackView
	for i := 0; i < 20; i++ {
		v, err := svc.BlackjackDeal(u.ID, 50)
		require.NoError(t, err)
		expected -= 50
		if v.Settlement != nil {
			expected += v.Settlement.WinAmount
			continue
		}
		view = v
		break
	}
	require.NotNil(t, view, "never dealt a playable hand")

	final, err := svc.BlackjackDouble(u.ID)
	require.NoError(t, err)
	expected -= 50 // the doubled half of the stake
	require.NotNil(t, final.Settlement)
	expected += final.Settlement.WinAmount
	assert.Equal(t, 100, final.Bet)
	assert.Equal(t, expected, final.Balance)
}

func TestPokerDealSettles(t *testing.T) {
	svc, u := newService(t, rng.New(3), 1000)

	view, err := svc.PokerDeal(u.ID, 20)
	require.NoError(t, err)
	assert.Len(t, view.Hole, 2)
	assert.Len(t, view.Community, 5)
	assert.Equal(t, 1000-20+view.Settlement.WinAmount, view.Balance)

	records, err := svc.History(u.ID, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, games.TypePoker, records[0].GameType)
}

func TestDice456WinPaysDouble(t *testing.T) {
	svc, u := newService(t, &dieSource{faces: []int{4, 5, 6}}, 100)

	view, err := svc.Dice456Start(u.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, games.Dice456PlayerRolling, view.Phase)
	assert.Equal(t, 90, view.Balance)

	view, err = svc.Dice456Roll(u.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Settlement)
	assert.Equal(t, games.OutcomeWin, view.Settlement.Outcome)
	assert.Equal(t, 90+20, view.Balance)
}

func TestDice456HouseSideRollsSeparately(t *testing.T) {
	// Player rolls point 6, then the house side rolls point 3.
	svc, u := newService(t, &dieSource{faces: []int{2, 2, 6, 4, 4, 3}}, 100)

	_, err := svc.Dice456Start(u.ID, 10)
	require.NoError(t, err)

	view, err := svc.Dice456Roll(u.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Settlement)
	assert.Equal(t, games.Dice456OpponentRolling, view.Phase)
	assert.Equal(t, 90, view.Balance)

	view, err = svc.Dice456Roll(u.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Settlement)
	assert.Equal(t, games.OutcomeWin, view.Settlement.Outcome)
	assert.Equal(t, 90+20, view.Balance)
}

func TestDice456CannotStartTwice(t *testing.T) {
	svc, u := newService(t, &dieSource{faces: []int{1, 4, 6}}, 100)

	_, err := svc.Dice456Start(u.ID, 10)
	require.NoError(t, err)
	_, err = svc.Dice456Start(u.ID, 10)
	assert.ErrorIs(t, err, games.ErrInvalidAction)
	assert.Equal(t, 90, balanceOf(t, svc, u.ID))
}

func TestDice10000WinFlow(t *testing.T) {
	svc, u := newService(t, &dieSource{faces: []int{6, 6, 6, 6, 6, 6}}, 100)

	view, err := svc.Dice10000Start(u.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 90, view.Balance)
	assert.Equal(t, [6]int{6, 6, 6, 6, 6, 6}, view.Dice)

	view, err = svc.Dice10000Bank(u.ID, []int{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.NotNil(t, view.Settlement)
	assert.Equal(t, games.OutcomeWin, view.Settlement.Outcome)
	assert.Equal(t, 90+20, view.Balance)
	assert.Equal(t, games.Dice10000Done, view.Phase)
}

func TestDice10000Forfeit(t *testing.T) {
	svc, u := newService(t, &dieSource{faces: []int{2, 3, 4, 6, 6, 2}}, 100)

	_, err := svc.Dice10000Start(u.ID, 10)
	require.NoError(t, err)

	view, err := svc.Dice10000Forfeit(u.ID)
	require.NoError(t, err)
	assert.Equal(t, games.OutcomeLoss, view.Settlement.Outcome)
	assert.Equal(t, 90, view.Balance)
}

func TestCrapsBetAndRoll(t *testing.T) {
	svc, u := newService(t, &dieSource{faces: []int{3, 4}}, 100)

	view, err := svc.CrapsBet(u.ID, games.CrapsPass, 10)
	require.NoError(t, err)
	assert.Equal(t, 90, view.Balance)
	assert.Equal(t, 10, view.Bets[games.CrapsPass])

	// A natural seven on the come-out pays the pass line double.
	view, err = svc.CrapsRoll(u.ID)
	require.NoError(t, err)
	require.Len(t, view.Results, 1)
	assert.Equal(t, games.OutcomeWin, view.Results[0].Settlement.Outcome)
	assert.Equal(t, 90+20, view.Balance)
	assert.Empty(t, view.Bets)

	records, err := svc.History(u.ID, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, games.TypeCraps, records[0].GameType)
}

func TestCrapsRollWithoutBets(t *testing.T) {
	svc, u := newService(t, &dieSource{faces: []int{3, 4}}, 100)

	_, err := svc.CrapsRoll(u.ID)
	assert.ErrorIs(t, err, ErrNoGame)
}

func TestUpdateBalance(t *testing.T) {
	svc, u := newService(t, rng.New(1), 100)

	balance, err := svc.UpdateBalance(u.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 150, balance)

	_, err = svc.UpdateBalance(u.ID, -500)
	assert.ErrorIs(t, err, store.ErrInsufficientFunds)
}
