package blackjack

import (
	"context"
	"testing"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/lock"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/saradorri/casino/internal/infrastructure/repository"
	"github.com/saradorri/casino/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc      *UseCase
	rng     *testutil.Randomizer
	users   domain.UserRepository
	wallets domain.WalletRepository
	hands   domain.BlackjackHandRepository
	outbox  domain.OutboxRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := logger.NewNop()

	f := &fixture{
		rng:     testutil.NewRandomizer(),
		users:   repository.NewUserRepository(db),
		wallets: repository.NewWalletRepository(db),
		hands:   repository.NewBlackjackHandRepository(db),
		outbox:  repository.NewOutboxRepository(db),
	}
	f.uc = NewBlackjackUseCase(Deps{
		DB:         db,
		HandRepo:   f.hands,
		WalletRepo: f.wallets,
		UserRepo:   f.users,
		OutboxRepo: f.outbox,
		Clock:      testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		Random:     f.rng,
		Locker:     lock.NewUserLockManager(5*time.Second, log),
		Logger:     log,
	}, DefaultConfig())
	return f
}

func (f *fixture) player(t *testing.T, balance int64) int64 {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{Username: "player", Password: "x"}
	require.NoError(t, f.users.Create(ctx, user))
	_, err := f.wallets.GetOrCreate(ctx, user.ID, balance)
	require.NoError(t, err)
	return user.ID
}

func (f *fixture) balance(t *testing.T, userID int64) int64 {
	t.Helper()
	w, err := f.wallets.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	return w.Balance
}

func cards(t *testing.T, codes ...string) domain.Cards {
	t.Helper()
	out := make(domain.Cards, 0, len(codes))
	for _, code := range codes {
		c, err := domain.ParseCard(code)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

// stackedShuffle arranges a fresh deck so that top comes off the shoe in order:
// player, dealer, player, dealer, then any further draws.
func stackedShuffle(t *testing.T, top ...string) func(n int, swap func(i, j int)) {
	want := cards(t, top...)
	return func(n int, swap func(i, j int)) {
		order := domain.NewDeck()
		if n != len(order) {
			return
		}
		for k, c := range want {
			target := n - 1 - k
			for i := range order {
				if order[i] == c {
					order[i], order[target] = order[target], order[i]
					swap(i, target)
					break
				}
			}
		}
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, code), "expected %s, got %v", code, err)
}

func TestDeal_NaturalKeepsPlaying(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.player(t, 1000)

	// unshuffled deck deals AS, KS, QS, JS
	hand, err := f.uc.Deal(ctx, userID, 10)
	require.NoError(t, err)

	assert.Equal(t, cards(t, "AS", "QS"), hand.PlayerCards)
	assert.Equal(t, cards(t, "KS", "JS"), hand.DealerCards)
	assert.True(t, hand.PlayerCards.IsNatural())
	assert.Equal(t, domain.HandStatusPlaying, hand.Status)
	assert.Nil(t, hand.Result)
	assert.Nil(t, hand.FinishedAt)
	assert.Equal(t, int64(990), f.balance(t, userID))

	active, err := f.uc.ActiveHand(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, hand.ID, active.ID)
	assert.Equal(t, domain.HandStatusPlaying, active.Status)

	events, err := f.outbox.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestStand_NaturalPaysThreeToTwo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.player(t, 1000)

	_, err := f.uc.Deal(ctx, userID, 10)
	require.NoError(t, err)

	hand, err := f.uc.Stand(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cards(t, "KS", "JS"), hand.DealerCards)
	assert.Equal(t, domain.HandStatusFinished, hand.Status)
	assert.Equal(t, domain.HandResultBlackjack, *hand.Result)
	assert.Equal(t, int64(25), *hand.Payout)
	assert.NotNil(t, hand.FinishedAt)
	assert.Equal(t, int64(1015), f.balance(t, userID))

	ledger, err := f.wallets.ListTransactions(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, domain.WalletTransactionBlackjackPayout, ledger[0].Type)
	assert.Equal(t, int64(25), ledger[0].Amount)
	assert.Equal(t, domain.WalletTransactionBlackjackBet, ledger[1].Type)
	assert.Equal(t, int64(-10), ledger[1].Amount)

	events, err := f.outbox.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeBlackjackHandFinished, events[0].Type)
	assert.Equal(t, "blackjack", events[0].Data["result"])

	_, err = f.uc.ActiveHand(ctx, userID)
	assertCode(t, err, domain.ErrCodeHandNotFound)
}

func TestStand_NaturalPayoutIsFloored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.player(t, 100)

	_, err := f.uc.Deal(ctx, userID, 5)
	require.NoError(t, err)
	hand, err := f.uc.Stand(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), *hand.Payout)
	assert.Equal(t, int64(107), f.balance(t, userID))
}

func TestStand_BothNaturalsPush(t *testing.T) {
	f := newFixture(t)
	f.rng.WithShuffle(stackedShuffle(t, "AS", "AH", "KS", "KH"))
	ctx := context.Background()
	userID := f.player(t, 100)

	_, err := f.uc.Deal(ctx, userID, 40)
	require.NoError(t, err)
	hand, err := f.uc.Stand(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandResultPush, *hand.Result)
	assert.Equal(t, int64(40), *hand.Payout)
	assert.Equal(t, int64(100), f.balance(t, userID))
}

func TestHit_BustLosesWithoutDealerDrawing(t *testing.T) {
	f := newFixture(t)
	f.rng.WithShuffle(stackedShuffle(t, "10H", "9C", "6D", "5S", "KH"))
	ctx := context.Background()
	userID := f.player(t, 100)

	hand, err := f.uc.Deal(ctx, userID, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.HandStatusPlaying, hand.Status)
	assert.Equal(t, 16, hand.PlayerValue())

	active, err := f.uc.ActiveHand(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, hand.ID, active.ID)

	hand, err = f.uc.Hit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 26, hand.PlayerValue())
	assert.Equal(t, domain.HandStatusFinished, hand.Status)
	assert.Equal(t, domain.HandResultLose, *hand.Result)
	assert.Equal(t, int64(0), *hand.Payout)
	assert.Equal(t, cards(t, "9C", "5S"), hand.DealerCards)
	assert.Equal(t, int64(90), f.balance(t, userID))

	_, err = f.uc.Hit(ctx, userID)
	assertCode(t, err, domain.ErrCodeHandNotFound)
}

func TestHit_TwentyOneStandsAutomatically(t *testing.T) {
	f := newFixture(t)
	f.rng.WithShuffle(stackedShuffle(t, "5H", "10C", "6D", "7S", "10D"))
	ctx := context.Background()
	userID := f.player(t, 100)

	_, err := f.uc.Deal(ctx, userID, 10)
	require.NoError(t, err)

	hand, err := f.uc.Hit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 21, hand.PlayerValue())
	assert.Equal(t, 17, hand.DealerValue())
	assert.Equal(t, domain.HandResultWin, *hand.Result)
	assert.Equal(t, int64(20), *hand.Payout)
	assert.Equal(t, int64(110), f.balance(t, userID))
}

func TestHit_BelowTwentyOneKeepsPlaying(t *testing.T) {
	f := newFixture(t)
	f.rng.WithShuffle(stackedShuffle(t, "2H", "10C", "3D", "7S", "4C"))
	ctx := context.Background()
	userID := f.player(t, 100)

	_, err := f.uc.Deal(ctx, userID, 10)
	require.NoError(t, err)

	hand, err := f.uc.Hit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandStatusPlaying, hand.Status)
	assert.Nil(t, hand.Result)

	stored, err := f.uc.ActiveHand(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cards(t, "2H", "3D", "4C"), stored.PlayerCards)
	assert.Len(t, stored.Shoe, 47)
}

func TestStand_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		deck   []string
		result domain.HandResult
		payout int64
		dealer int
	}{
		{"DealerDrawsToSeventeenAndWins", []string{"10H", "10C", "9D", "4S", "2C", "5H"}, domain.HandResultLose, 0, 21},
		{"DealerBusts", []string{"10H", "10C", "2D", "6S", "KD"}, domain.HandResultWin, 20, 26},
		{"PlayerHigher", []string{"10H", "10C", "9D", "8S"}, domain.HandResultWin, 20, 18},
		{"Push", []string{"10H", "10C", "8D", "8S"}, domain.HandResultPush, 10, 18},
		{"DealerStandsOnSoftSeventeen", []string{"10H", "AC", "6D", "6S"}, domain.HandResultLose, 0, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.rng.WithShuffle(stackedShuffle(t, tt.deck...))
			ctx := context.Background()
			userID := f.player(t, 100)

			_, err := f.uc.Deal(ctx, userID, 10)
			require.NoError(t, err)

			hand, err := f.uc.Stand(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, domain.HandStatusFinished, hand.Status)
			assert.Equal(t, tt.result, *hand.Result)
			assert.Equal(t, tt.payout, *hand.Payout)
			assert.Equal(t, tt.dealer, hand.DealerValue())
			assert.Equal(t, 90+tt.payout, f.balance(t, userID))

			_, err = f.uc.Stand(ctx, userID)
			assertCode(t, err, domain.ErrCodeHandNotFound)
		})
	}
}

func TestDeal_Rejections(t *testing.T) {
	f := newFixture(t)
	f.rng.WithShuffle(stackedShuffle(t, "10H", "10C", "2D", "6S"))
	ctx := context.Background()
	userID := f.player(t, 100)

	_, err := f.uc.Deal(ctx, userID, 0)
	assertCode(t, err, domain.ErrCodeInvalidAmount)
	_, err = f.uc.Deal(ctx, userID, 5001)
	assertCode(t, err, domain.ErrCodeInvalidAmount)
	_, err = f.uc.Deal(ctx, userID, 101)
	assertCode(t, err, domain.ErrCodeInsufficientBalance)
	assert.Equal(t, int64(100), f.balance(t, userID))

	_, err = f.uc.Deal(ctx, userID, 10)
	require.NoError(t, err)
	_, err = f.uc.Deal(ctx, userID, 10)
	assertCode(t, err, domain.ErrCodeHandAlreadyActive)
	assert.Equal(t, int64(90), f.balance(t, userID))

	_, err = f.uc.Deal(ctx, 9999, 10)
	assertCode(t, err, domain.ErrCodeUserNotFound)

	require.NoError(t, f.users.SetBlocked(ctx, userID, true))
	_, err = f.uc.Deal(ctx, userID, 10)
	assertCode(t, err, domain.ErrCodeUserBlocked)
}

func TestHitStand_WithoutHand(t *testing.T) {
	f := newFixture(t)
	userID := f.player(t, 100)

	_, err := f.uc.Hit(context.Background(), userID)
	assertCode(t, err, domain.ErrCodeHandNotFound)
	_, err = f.uc.Stand(context.Background(), userID)
	assertCode(t, err, domain.ErrCodeHandNotFound)
}

func TestRecentHands(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.player(t, 1000)

	for i := 0; i < 3; i++ {
		_, err := f.uc.Deal(ctx, userID, 10)
		require.NoError(t, err)
		_, err = f.uc.Stand(ctx, userID)
		require.NoError(t, err)
	}

	hands, err := f.uc.RecentHands(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Greater(t, hands[0].ID, hands[1].ID)
}

func TestDraw_RebuildsExhaustedShoeFromUndealtCards(t *testing.T) {
	f := newFixture(t)
	hand := &domain.BlackjackHand{
		PlayerCards: cards(t, "AS", "KS"),
		DealerCards: cards(t, "QS", "JS"),
		Shoe:        domain.Cards{},
	}

	card := f.uc.draw(hand)
	assert.Equal(t, domain.Card{Rank: "10", Suit: "S"}, card)
	assert.Len(t, hand.Shoe, 47)
	for _, c := range append(hand.PlayerCards, hand.DealerCards...) {
		assert.False(t, hand.Shoe.Contains(c))
	}
}

func TestDraw_FallsBackToFullDeckWhenNothingIsLeft(t *testing.T) {
	f := newFixture(t)
	hand := &domain.BlackjackHand{
		PlayerCards: domain.NewDeck(),
		DealerCards: domain.Cards{},
		Shoe:        domain.Cards{},
	}

	card := f.uc.draw(hand)
	assert.Equal(t, domain.Card{Rank: "A", Suit: "S"}, card)
	assert.Len(t, hand.Shoe, 51)
}
