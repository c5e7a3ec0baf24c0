package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/saradorri/casino/internal/config"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/domain/mocks"
	"github.com/saradorri/casino/internal/infrastructure/auth"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/saradorri/casino/internal/infrastructure/repository"
	"github.com/saradorri/casino/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser() *domain.User {
	return &domain.User{
		ID:        123,
		Username:  "test_user",
		Password:  HashPassword("secret"),
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func newUseCase(ctrl *gomock.Controller) (*mocks.MockUserRepository, *mocks.MockWalletRepository, auth.JWTService, domain.UserUseCase) {
	userRepo := mocks.NewMockUserRepository(ctrl)
	walletRepo := mocks.NewMockWalletRepository(ctrl)
	jwtSvc := auth.NewJWTService(&config.JWTConfig{Secret: "test", Expiry: time.Hour})
	uc := NewUserUseCase(userRepo, walletRepo, nil, nil, jwtSvc, logger.NewLogger("test", "error"), 1000)
	return userRepo, walletRepo, jwtSvc, uc
}

func TestAuthenticate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo, walletRepo, jwtSvc, uc := newUseCase(ctrl)
	user := createTestUser()

	userRepo.EXPECT().GetByUsername(gomock.Any(), "test_user").Return(user, nil)
	walletRepo.EXPECT().GetOrCreate(gomock.Any(), int64(123), int64(1000)).Return(&domain.Wallet{UserID: 123, Balance: 1000}, nil)

	token, err := uc.Authenticate(context.Background(), "test_user", "secret")
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(123), claims.UserID)
	assert.False(t, claims.IsAdmin())
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		setup    func(userRepo *mocks.MockUserRepository, walletRepo *mocks.MockWalletRepository)
		code     string
	}{
		{
			name:     "EmptyCredentials",
			username: "",
			password: "secret",
			setup:    func(*mocks.MockUserRepository, *mocks.MockWalletRepository) {},
			code:     domain.ErrCodeInvalidCredentials,
		},
		{
			name:     "UnknownUser",
			username: "ghost",
			password: "secret",
			setup: func(userRepo *mocks.MockUserRepository, _ *mocks.MockWalletRepository) {
				userRepo.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			code: domain.ErrCodeInvalidCredentials,
		},
		{
			name:     "WrongPassword",
			username: "test_user",
			password: "nope",
			setup: func(userRepo *mocks.MockUserRepository, _ *mocks.MockWalletRepository) {
				userRepo.EXPECT().GetByUsername(gomock.Any(), "test_user").Return(createTestUser(), nil)
			},
			code: domain.ErrCodeInvalidCredentials,
		},
		{
			name:     "BlockedUser",
			username: "test_user",
			password: "secret",
			setup: func(userRepo *mocks.MockUserRepository, _ *mocks.MockWalletRepository) {
				user := createTestUser()
				user.IsBlocked = true
				userRepo.EXPECT().GetByUsername(gomock.Any(), "test_user").Return(user, nil)
			},
			code: domain.ErrCodeUserBlocked,
		},
		{
			name:     "DatabaseError",
			username: "test_user",
			password: "secret",
			setup: func(userRepo *mocks.MockUserRepository, _ *mocks.MockWalletRepository) {
				userRepo.EXPECT().GetByUsername(gomock.Any(), "test_user").Return(nil, errors.New("connection refused"))
			},
			code: domain.ErrCodeDatabaseQuery,
		},
		{
			name:     "WalletError",
			username: "test_user",
			password: "secret",
			setup: func(userRepo *mocks.MockUserRepository, walletRepo *mocks.MockWalletRepository) {
				userRepo.EXPECT().GetByUsername(gomock.Any(), "test_user").Return(createTestUser(), nil)
				walletRepo.EXPECT().GetOrCreate(gomock.Any(), int64(123), int64(1000)).Return(nil, errors.New("boom"))
			},
			code: domain.ErrCodeDatabaseQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo, walletRepo, _, uc := newUseCase(ctrl)
			tt.setup(userRepo, walletRepo)

			token, err := uc.Authenticate(context.Background(), tt.username, tt.password)
			assert.Empty(t, token)
			assert.True(t, domain.HasCode(err, tt.code), "expected %s, got %v", tt.code, err)
		})
	}
}

func TestGetUserInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo, walletRepo, _, uc := newUseCase(ctrl)
	user := createTestUser()

	userRepo.EXPECT().GetByID(gomock.Any(), int64(123)).Return(user, nil)
	walletRepo.EXPECT().GetByUserID(gomock.Any(), int64(123)).Return(&domain.Wallet{UserID: 123, Balance: 420}, nil)

	profile, err := uc.GetUserInfo(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, user, profile.User)
	assert.Equal(t, int64(420), profile.Balance)

	userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(nil, nil)
	_, err = uc.GetUserInfo(context.Background(), 7)
	assert.True(t, domain.HasCode(err, domain.ErrCodeUserNotFound))

	_, err = uc.GetUserInfo(context.Background(), 0)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidFormat))
}

func TestProfileStats_CombinesBothGames(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	bets := repository.NewBetRepository(db)
	hands := repository.NewBlackjackHandRepository(db)
	jwtSvc := auth.NewJWTService(&config.JWTConfig{Secret: "test", Expiry: time.Hour})
	uc := NewUserUseCase(repository.NewUserRepository(db), repository.NewWalletRepository(db),
		bets, hands, jwtSvc, logger.NewNop(), 1000)
	now := time.Now()

	stats, err := uc.ProfileStats(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, &domain.ProfileStats{}, stats)

	for _, o := range []domain.BetOutcome{{IsWin: true, Payout: 36}, {IsWin: false}} {
		bet := &domain.Bet{UserID: 9, RoundID: 1, Kind: domain.BetKindNumber, Value: "7", Amount: 1, PlacedAt: now}
		require.NoError(t, bets.Create(ctx, bet))
		o.BetID = bet.ID
		_, err := bets.ApplyOutcome(ctx, o, now)
		require.NoError(t, err)
	}
	for _, result := range []domain.HandResult{domain.HandResultLose, domain.HandResultLose} {
		hand := &domain.BlackjackHand{
			UserID:      9,
			PlayerCards: domain.Cards{{Rank: "10", Suit: "S"}},
			DealerCards: domain.Cards{{Rank: "K", Suit: "H"}},
			Shoe:        domain.Cards{},
			BetAmount:   20,
			CreatedAt:   now,
		}
		hand.Finish(result, 0, now)
		require.NoError(t, hands.Create(ctx, hand))
	}

	stats, err = uc.ProfileStats(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Wins)
	assert.Equal(t, int64(3), stats.Losses)
	assert.Equal(t, int64(35), stats.WonSum)
	assert.Equal(t, int64(41), stats.LostSum)
	assert.Equal(t, int64(35), stats.BiggestWin)
	assert.Equal(t, int64(20), stats.BiggestLoss)
	assert.Equal(t, int64(25), stats.Luck)

	_, err = uc.ProfileStats(ctx, 0)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidFormat))
}

func TestNewProfileStats_LuckRoundsHalfUp(t *testing.T) {
	assert.Equal(t, int64(67), domain.NewProfileStats(domain.PlayStats{Wins: 2, Losses: 1}).Luck)
	assert.Equal(t, int64(50), domain.NewProfileStats(domain.PlayStats{Wins: 1, Losses: 1}).Luck)
	assert.Equal(t, int64(0), domain.NewProfileStats(domain.PlayStats{}).Luck)
}

func TestHashPassword(t *testing.T) {
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", HashPassword("secret"))
	assert.True(t, verifyPassword("secret", HashPassword("secret")))
	assert.False(t, verifyPassword("", ""))
}
