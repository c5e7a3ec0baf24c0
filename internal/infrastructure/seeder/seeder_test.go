package seeder

import (
	"context"
	"testing"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/repository"
	"github.com/saradorri/casino/internal/testutil"
	"github.com/saradorri/casino/internal/usecase/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedUsers_CreatesAccountsAndWallets(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewUserRepository(db)
	wallets := repository.NewWalletRepository(db)
	s := NewSeeder(users, wallets, 1000)
	ctx := context.Background()

	require.NoError(t, s.SeedUsers(ctx))
	// second run is a no-op
	require.NoError(t, s.SeedUsers(ctx))

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(len(DefaultAccounts)), count)

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, user.HashPassword(DefaultPassword), admin.Password)

	w, err := wallets.GetByUserID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, int64(1000), w.Balance)
}
