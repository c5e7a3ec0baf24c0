package roulette

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/lock"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/saradorri/casino/internal/infrastructure/repository"
	"github.com/saradorri/casino/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc      *UseCase
	db      *gorm.DB
	clock   *testutil.Clock
	rng     *testutil.Randomizer
	users   domain.UserRepository
	wallets domain.WalletRepository
	rounds  domain.RoundRepository
	bets    domain.BetRepository
	outbox  domain.OutboxRepository
}

func newFixture(t *testing.T, draws ...int) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := logger.NewLogger("test", "error")

	f := &fixture{
		db:      db,
		clock:   testutil.NewClock(base),
		rng:     testutil.NewRandomizer(draws...),
		users:   repository.NewUserRepository(db),
		wallets: repository.NewWalletRepository(db),
		rounds:  repository.NewRoundRepository(db),
		bets:    repository.NewBetRepository(db),
		outbox:  repository.NewOutboxRepository(db),
	}
	f.uc = NewRouletteUseCase(Deps{
		DB:         db,
		RoundRepo:  f.rounds,
		BetRepo:    f.bets,
		WalletRepo: f.wallets,
		UserRepo:   f.users,
		OutboxRepo: f.outbox,
		Clock:      f.clock,
		Random:     f.rng,
		Locker:     lock.NewUserLockManager(5*time.Second, log),
		Logger:     log,
	}, DefaultConfig())
	return f
}

func (f *fixture) player(t *testing.T, name string, balance int64) *domain.User {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{Username: name, Password: "x"}
	require.NoError(t, f.users.Create(ctx, user))
	_, err := f.wallets.GetOrCreate(ctx, user.ID, balance)
	require.NoError(t, err)
	return user
}

func (f *fixture) balance(t *testing.T, userID int64) int64 {
	t.Helper()
	w, err := f.wallets.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w.Balance
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestSync_OpensFirstRound(t *testing.T) {
	f := newFixture(t)

	round, err := f.uc.SyncAndGetCurrentRound(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), round.Seq)
	assert.Equal(t, domain.RoundStatusOpen, round.Status)
	assert.True(t, round.StartedAt.Equal(base))
	assert.True(t, round.EndsAt.Equal(base.Add(30*time.Second)))
	assert.False(t, round.IsResolved())
}

func TestSync_Lifecycle(t *testing.T) {
	f := newFixture(t, 7)
	ctx := context.Background()

	first, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)

	f.clock.Set(base.Add(29 * time.Second))
	same, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, same.ID)
	assert.Equal(t, domain.RoundStatusOpen, same.Status)

	f.clock.Set(base.Add(30 * time.Second))
	settled, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, settled.ID)
	assert.Equal(t, domain.RoundStatusFinished, settled.Status)
	require.True(t, settled.IsResolved())
	assert.Equal(t, 7, *settled.ResultNumber)
	assert.Equal(t, domain.ColorRed, *settled.ResultColor)

	f.clock.Set(base.Add(44 * time.Second))
	cooling, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, cooling.ID)

	f.clock.Set(base.Add(45 * time.Second))
	next, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.Seq)
	assert.Equal(t, domain.RoundStatusOpen, next.Status)
	assert.True(t, next.EndsAt.Equal(base.Add(75*time.Second)))
}

func TestPlaceBet_NumberWins(t *testing.T) {
	f := newFixture(t, 17)
	ctx := context.Background()
	user := f.player(t, "alice", 1000)

	bet, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindNumber, "17", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(990), f.balance(t, user.ID))

	f.clock.Advance(30 * time.Second)
	round, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17, *round.ResultNumber)

	settled, err := f.bets.ListByRoundAndUser(ctx, bet.RoundID, user.ID)
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.True(t, *settled[0].IsWin)
	assert.Equal(t, int64(360), *settled[0].Payout)
	assert.Equal(t, int64(1350), f.balance(t, user.ID))

	ledger, err := f.wallets.ListTransactions(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, domain.WalletTransactionPayout, ledger[0].Type)
	assert.Equal(t, int64(360), ledger[0].Amount)
	assert.Equal(t, domain.WalletTransactionBet, ledger[1].Type)
	assert.Equal(t, int64(-10), ledger[1].Amount)
}

func TestPlaceBet_ZeroLosesEverything(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	user := f.player(t, "bob", 1000)

	_, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindColor, "black", 50)
	require.NoError(t, err)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindParity, "even", 50)
	require.NoError(t, err)

	f.clock.Advance(31 * time.Second)
	round, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ColorGreen, *round.ResultColor)

	bets, err := f.bets.ListByRound(ctx, round.ID)
	require.NoError(t, err)
	for _, b := range bets {
		assert.False(t, *b.IsWin)
		assert.Equal(t, int64(0), *b.Payout)
	}
	assert.Equal(t, int64(900), f.balance(t, user.ID))
}

func TestPlaceBet_AdmissionChecks(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		blocked bool
		noWall  bool
		kind    domain.BetKind
		value   string
		amount  int64
		code    string
	}{
		{name: "BlockedBeforeWallet", blocked: true, noWall: true, kind: domain.BetKindColor, value: "red", amount: 10, code: domain.ErrCodeUserBlocked},
		{name: "WalletMissing", noWall: true, kind: domain.BetKindColor, value: "red", amount: 0, code: domain.ErrCodeWalletNotFound},
		{name: "ZeroAmount", balance: 10, kind: domain.BetKindColor, value: "red", amount: 0, code: domain.ErrCodeInvalidAmount},
		{name: "AboveMax", balance: 10000, kind: domain.BetKindColor, value: "red", amount: 5001, code: domain.ErrCodeInvalidAmount},
		{name: "AmountCheckedBeforeBalance", balance: 10, kind: domain.BetKindColor, value: "red", amount: 5001, code: domain.ErrCodeInvalidAmount},
		{name: "BalanceCheckedBeforeSelection", balance: 50, kind: domain.BetKindNumber, value: "99", amount: 100, code: domain.ErrCodeInsufficientBalance},
		{name: "NumberZeroRejected", balance: 100, kind: domain.BetKindNumber, value: "0", amount: 10, code: domain.ErrCodeInvalidBet},
		{name: "NumberAboveRange", balance: 100, kind: domain.BetKindNumber, value: "37", amount: 10, code: domain.ErrCodeInvalidBet},
		{name: "NumberNotInteger", balance: 100, kind: domain.BetKindNumber, value: "seven", amount: 10, code: domain.ErrCodeInvalidBet},
		{name: "GreenRejected", balance: 100, kind: domain.BetKindColor, value: "green", amount: 10, code: domain.ErrCodeInvalidBet},
		{name: "BadParity", balance: 100, kind: domain.BetKindParity, value: "maybe", amount: 10, code: domain.ErrCodeInvalidBet},
		{name: "UnknownKind", balance: 100, kind: domain.BetKind("split"), value: "1-2", amount: 10, code: domain.ErrCodeInvalidBet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			user := &domain.User{Username: "u", Password: "x"}
			require.NoError(t, f.users.Create(ctx, user))
			if tt.blocked {
				require.NoError(t, f.users.SetBlocked(ctx, user.ID, true))
			}
			if !tt.noWall {
				_, err := f.wallets.GetOrCreate(ctx, user.ID, tt.balance)
				require.NoError(t, err)
			}

			_, err := f.uc.PlaceBet(ctx, user.ID, tt.kind, tt.value, tt.amount)
			assertCode(t, err, tt.code)

			if !tt.noWall {
				assert.Equal(t, tt.balance, f.balance(t, user.ID))
			}
		})
	}
}

func TestPlaceBet_AmountBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.player(t, "whale", 20000)

	_, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindColor, "red", 5000)
	require.NoError(t, err)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindColor, "black", 5001)
	assertCode(t, err, domain.ErrCodeInvalidAmount)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindColor, "black", 0)
	assertCode(t, err, domain.ErrCodeInvalidAmount)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindParity, "odd", 1)
	require.NoError(t, err)

	assert.Equal(t, int64(20000-5001), f.balance(t, user.ID))
}

func TestPlaceBet_NormalisesSelection(t *testing.T) {
	f := newFixture(t)
	user := f.player(t, "carol", 100)

	bet, err := f.uc.PlaceBet(context.Background(), user.ID, domain.BetKindColor, "  RED ", 5)
	require.NoError(t, err)
	assert.Equal(t, "red", bet.Value)
}

func TestPlaceBet_BettingClosed(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	user := f.player(t, "late", 100)

	_, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)

	f.clock.Advance(30 * time.Second)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindColor, "red", 10)
	assertCode(t, err, domain.ErrCodeBettingClosed)
	assert.Equal(t, int64(100), f.balance(t, user.ID))

	// still cooling down
	f.clock.Advance(10 * time.Second)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindColor, "red", 10)
	assertCode(t, err, domain.ErrCodeBettingClosed)
}

func TestPlaceBet_PerRoundLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.player(t, "busy", 1000)

	for n := 1; n <= 10; n++ {
		_, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindNumber, strconv.Itoa(n), 1)
		require.NoError(t, err)
	}
	_, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindNumber, "11", 1)
	assertCode(t, err, domain.ErrCodeBetLimitReached)
	assert.Equal(t, int64(990), f.balance(t, user.ID))
}

func TestPlaceBet_DuplicateWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.player(t, "bot", 1000)

	_, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindParity, "odd", 10)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindParity, "odd", 10)
	assertCode(t, err, domain.ErrCodeDuplicateBet)

	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindParity, "even", 10)
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	_, err = f.uc.PlaceBet(ctx, user.ID, domain.BetKindParity, "odd", 10)
	require.NoError(t, err)
}

func TestResolveRound_Idempotent(t *testing.T) {
	f := newFixture(t, 17, 4)
	ctx := context.Background()
	user := f.player(t, "dave", 100)

	bet, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindNumber, "17", 1)
	require.NoError(t, err)

	first, err := f.uc.ResolveRound(ctx, bet.RoundID)
	require.NoError(t, err)
	balance := f.balance(t, user.ID)
	assert.Equal(t, int64(99+36), balance)

	second, err := f.uc.ResolveRound(ctx, bet.RoundID)
	require.NoError(t, err)
	assert.Equal(t, *first.ResultNumber, *second.ResultNumber)
	assert.True(t, first.ResolvedAt.Equal(*second.ResolvedAt))
	assert.Equal(t, balance, f.balance(t, user.ID))

	events, err := f.outbox.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeRoundSettled, events[0].Type)
	assert.Equal(t, float64(17), events[0].Data["number"])
	assert.Equal(t, float64(36), events[0].Data["total_payout"])

	_, err = f.uc.ResolveRound(ctx, 9999)
	assertCode(t, err, domain.ErrCodeRoundNotFound)
}

func TestResolveRound_AggregatesCreditsPerUser(t *testing.T) {
	f := newFixture(t, 18)
	ctx := context.Background()
	alice := f.player(t, "alice", 100)
	bob := f.player(t, "bob", 100)

	for _, b := range []struct {
		user  int64
		kind  domain.BetKind
		value string
	}{
		{alice.ID, domain.BetKindColor, "red"},
		{alice.ID, domain.BetKindParity, "even"},
		{alice.ID, domain.BetKindNumber, "18"},
		{bob.ID, domain.BetKindColor, "black"},
		{bob.ID, domain.BetKindParity, "odd"},
	} {
		_, err := f.uc.PlaceBet(ctx, b.user, b.kind, b.value, 10)
		require.NoError(t, err)
	}

	f.clock.Advance(30 * time.Second)
	_, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(70+20+20+360), f.balance(t, alice.ID))
	assert.Equal(t, int64(80), f.balance(t, bob.ID))

	ledger, err := f.wallets.ListTransactions(ctx, alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, domain.WalletTransactionPayout, ledger[0].Type)
	assert.Equal(t, int64(400), ledger[0].Amount)
	assert.Equal(t, int64(70), ledger[0].OldBalance)
}

func TestSync_ConcurrentCallersSettleOnce(t *testing.T) {
	f := newFixture(t, 17, 20, 30, 2)
	ctx := context.Background()
	user := f.player(t, "eve", 100)

	_, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindNumber, "17", 10)
	require.NoError(t, err)

	f.clock.Set(base.Add(30*time.Second + time.Millisecond))

	const callers = 4
	results := make([]*domain.Round, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.uc.SyncAndGetCurrentRound(ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.True(t, results[i].IsResolved())
		assert.Equal(t, *results[0].ResultNumber, *results[i].ResultNumber)
		assert.Equal(t, *results[0].ResultColor, *results[i].ResultColor)
	}

	events, err := f.outbox.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	expected := int64(90)
	if *results[0].ResultNumber == 17 {
		expected += 360
	}
	assert.Equal(t, expected, f.balance(t, user.ID))
}

func TestSync_ConcurrentOpenersConverge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const callers = 5
	ids := make([]int64, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			round, err := f.uc.SyncAndGetCurrentRound(ctx)
			if assert.NoError(t, err) {
				ids[i] = round.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	count, err := f.rounds.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPlaceBet_ConcurrentNeverOverdraws(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.player(t, "frank", 50)

	_, err := f.uc.SyncAndGetCurrentRound(ctx)
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.PlaceBet(ctx, user.ID, domain.BetKindNumber, strconv.Itoa(i+1), 10)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.True(t, domain.HasCode(err, domain.ErrCodeInsufficientBalance), "unexpected error %v", err)
	}
	assert.Equal(t, 5, accepted)
	assert.Equal(t, int64(0), f.balance(t, user.ID))
}

func TestState_IncludesBalanceAndHistory(t *testing.T) {
	f := newFixture(t, 9)
	ctx := context.Background()
	user := f.player(t, "gina", 200)

	_, err := f.uc.PlaceBet(ctx, user.ID, domain.BetKindColor, "red", 20)
	require.NoError(t, err)

	mine, err := f.uc.CurrentBets(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	f.clock.Advance(30 * time.Second)
	state, err := f.uc.State(ctx, &user.ID)
	require.NoError(t, err)
	assert.True(t, state.ServerTime.Equal(f.clock.Now()))
	assert.Equal(t, domain.RoundStatusFinished, state.Round.Status)
	require.Len(t, state.History, 1)
	assert.Equal(t, 9, *state.History[0].ResultNumber)
	require.NotNil(t, state.Balance)
	assert.Equal(t, int64(220), *state.Balance)

	anon, err := f.uc.State(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, anon.Balance)

	_, err = f.uc.GetRound(ctx, 12345)
	assertCode(t, err, domain.ErrCodeRoundNotFound)
}
