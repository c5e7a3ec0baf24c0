package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/saradorri/casino/internal/infrastructure/repository"
	"github.com/saradorri/casino/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	uc      domain.AdminUseCase
	db      *gorm.DB
	users   domain.UserRepository
	wallets domain.WalletRepository
	admin   *domain.User
	player  *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	f := &fixture{
		db:      db,
		users:   repository.NewUserRepository(db),
		wallets: repository.NewWalletRepository(db),
	}
	f.uc = NewAdminUseCase(db, f.users, f.wallets,
		repository.NewRoundRepository(db), repository.NewBetRepository(db),
		testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		logger.NewNop(), 1000)

	f.admin = &domain.User{Username: "admin", Password: "x", Role: domain.RoleAdmin}
	f.player = &domain.User{Username: "player", Password: "x", Role: domain.RoleUser}
	require.NoError(t, f.users.Create(ctx, f.admin))
	require.NoError(t, f.users.Create(ctx, f.player))
	_, err := f.wallets.GetOrCreate(ctx, f.player.ID, 500)
	require.NoError(t, err)
	return f
}

func TestSetBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	wallet, err := f.uc.SetBalance(ctx, f.admin.ID, f.player.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, int64(120), wallet.Balance)

	ledger, err := f.wallets.ListTransactions(ctx, f.player.ID, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, domain.WalletTransactionAdjustment, ledger[0].Type)
	assert.Equal(t, int64(-380), ledger[0].Amount)
	assert.Equal(t, int64(500), ledger[0].OldBalance)

	_, err = f.uc.SetBalance(ctx, f.admin.ID, f.player.ID, -1)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidAmount))

	_, err = f.uc.SetBalance(ctx, f.player.ID, f.player.ID, 1_000_000)
	assert.True(t, domain.HasCode(err, "FORBIDDEN"))
}

func TestSetBalance_OpensMissingWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	wallet, err := f.uc.SetBalance(ctx, f.admin.ID, f.admin.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, wallet.UserID)
	assert.Equal(t, int64(250), wallet.Balance)

	ledger, err := f.wallets.ListTransactions(ctx, f.admin.ID, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, int64(0), ledger[0].OldBalance)
	assert.Equal(t, int64(250), ledger[0].Amount)
}

func TestGrantBonus_CreditsEveryUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	credited, err := f.uc.GrantBonus(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, credited)

	player, err := f.wallets.GetByUserID(ctx, f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), player.Balance)

	// the admin had no wallet and gets one opened at zero
	admin, err := f.wallets.GetByUserID(ctx, f.admin.ID)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, int64(1000), admin.Balance)

	for _, id := range []int64{f.player.ID, f.admin.ID} {
		ledger, err := f.wallets.ListTransactions(ctx, id, 10)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, int64(1000), ledger[0].Amount)
		assert.Equal(t, fmt.Sprintf("bonus:%d", f.admin.ID), ledger[0].Reference)
	}

	credited, err = f.uc.GrantBonus(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, credited)
	player, err = f.wallets.GetByUserID(ctx, f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), player.Balance)
}

func TestGrantBonus_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.GrantBonus(ctx, f.player.ID)
	assert.True(t, domain.HasCode(err, "FORBIDDEN"))

	player, err := f.wallets.GetByUserID(ctx, f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), player.Balance)
	admin, err := f.wallets.GetByUserID(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestToggleBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.uc.ToggleBlock(ctx, f.admin.ID, f.player.ID)
	require.NoError(t, err)
	assert.True(t, user.IsBlocked)

	stored, err := f.users.GetByID(ctx, f.player.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBlocked)

	user, err = f.uc.ToggleBlock(ctx, f.admin.ID, f.player.ID)
	require.NoError(t, err)
	assert.False(t, user.IsBlocked)

	_, err = f.uc.ToggleBlock(ctx, f.admin.ID, f.admin.ID)
	assert.Error(t, err)

	_, err = f.uc.ToggleBlock(ctx, f.admin.ID, 9999)
	assert.True(t, domain.HasCode(err, domain.ErrCodeUserNotFound))
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Rounds)
	assert.Equal(t, "0.0000", stats.PayoutRatio)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	round := &domain.Round{Seq: 1, StartedAt: now, EndsAt: now.Add(30 * time.Second), Status: domain.RoundStatusOpen}
	inserted, err := repository.NewRoundRepository(f.db).CreateIfAbsent(ctx, round)
	require.NoError(t, err)
	require.True(t, inserted)

	bets := repository.NewBetRepository(f.db)
	for _, amount := range []int64{10, 20, 30} {
		require.NoError(t, bets.Create(ctx, &domain.Bet{
			UserID: f.player.ID, RoundID: round.ID, Kind: domain.BetKindColor, Value: "red", Amount: amount, PlacedAt: now,
		}))
	}
	list, err := bets.ListByRound(ctx, round.ID)
	require.NoError(t, err)
	_, err = bets.ApplyOutcome(ctx, domain.BetOutcome{BetID: list[0].ID, IsWin: true, Payout: 20}, now)
	require.NoError(t, err)

	stats, err = f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Rounds)
	assert.Equal(t, int64(3), stats.Bets)
	assert.Equal(t, int64(60), stats.TotalStaked)
	assert.Equal(t, int64(20), stats.TotalPaidOut)
	assert.Equal(t, int64(40), stats.HouseResult)
	assert.Equal(t, "0.3333", stats.PayoutRatio)
}
