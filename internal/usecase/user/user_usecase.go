package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/auth"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UserUseCase implements domain.UserUseCase
type UserUseCase struct {
	userRepo        domain.UserRepository
	walletRepo      domain.WalletRepository
	betRepo         domain.BetRepository
	handRepo        domain.BlackjackHandRepository
	jwtSvc          auth.JWTService
	logger          *logger.Logger
	startingBalance int64
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(
	userRepo domain.UserRepository,
	walletRepo domain.WalletRepository,
	betRepo domain.BetRepository,
	handRepo domain.BlackjackHandRepository,
	jwtSvc auth.JWTService,
	logger *logger.Logger,
	startingBalance int64,
) domain.UserUseCase {
	return &UserUseCase{
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		betRepo:         betRepo,
		handRepo:        handRepo,
		jwtSvc:          jwtSvc,
		logger:          logger,
		startingBalance: startingBalance,
	}
}

// Authenticate validates user credentials, makes sure the user has a wallet and returns a JWT token
func (uc *UserUseCase) Authenticate(ctx context.Context, username, password string) (string, error) {
	log := uc.logger.WithContext(ctx)
	log.Info("Starting user authentication", zap.String("username", username))

	if username == "" || password == "" {
		log.Warn("Authentication attempt with empty credentials",
			zap.String("username", username),
			zap.Bool("has_password", password != ""))
		return "", invalidCredentials()
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		log.Error("Failed to get user from database during authentication",
			zap.String("username", username),
			zap.Error(err))
		return "", domain.NewDatabaseError("get user", err)
	}

	if user == nil {
		log.Warn("Authentication failed - user not found", zap.String("username", username))
		return "", invalidCredentials()
	}

	if !verifyPassword(password, user.Password) {
		log.Warn("Authentication failed - invalid password",
			zap.Int64("user_id", user.ID),
			zap.String("username", username))
		return "", invalidCredentials()
	}

	if user.IsBlocked {
		log.Warn("Authentication failed - user is blocked", zap.Int64("user_id", user.ID))
		return "", domain.NewAppError(domain.ErrCodeUserBlocked, "User is blocked", http.StatusForbidden, nil)
	}

	wallet, err := uc.walletRepo.GetOrCreate(ctx, user.ID, uc.startingBalance)
	if err != nil {
		log.Error("Failed to ensure wallet",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
		return "", domain.NewDatabaseError("get or create wallet", err)
	}

	token, err := uc.jwtSvc.GenerateToken(user)
	if err != nil {
		log.Error("Failed to generate JWT token",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
		return "", domain.NewAppError(domain.ErrCodeTokenInvalid, "Token generation failed", http.StatusInternalServerError, err)
	}

	log.Info("User authentication successful",
		zap.Int64("user_id", user.ID),
		zap.String("username", username),
		zap.Int64("balance", wallet.Balance))

	return token, nil
}

// GetUserInfo retrieves the user and its wallet balance
func (uc *UserUseCase) GetUserInfo(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	if userID <= 0 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid user ID", http.StatusBadRequest, nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.WithContext(ctx).Error("Failed to get user from database",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(domain.ErrCodeUserNotFound, "User")
	}

	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get wallet", err)
	}
	if wallet == nil {
		return nil, domain.NewNotFoundError(domain.ErrCodeWalletNotFound, "Wallet")
	}

	return &domain.UserProfile{User: user, Balance: wallet.Balance}, nil
}

// ProfileStats combines the user's settled roulette bets and finished blackjack hands
func (uc *UserUseCase) ProfileStats(ctx context.Context, userID int64) (*domain.ProfileStats, error) {
	if userID <= 0 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid user ID", http.StatusBadRequest, nil)
	}

	roulette, err := uc.betRepo.UserStats(ctx, userID)
	if err != nil {
		uc.logger.WithContext(ctx).Error("Failed to aggregate bets",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, domain.NewDatabaseError("aggregate bets", err)
	}
	blackjack, err := uc.handRepo.UserStats(ctx, userID)
	if err != nil {
		uc.logger.WithContext(ctx).Error("Failed to aggregate hands",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, domain.NewDatabaseError("aggregate hands", err)
	}

	return domain.NewProfileStats(roulette.Add(*blackjack)), nil
}

// HashPassword returns the stored form of a password
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// verifyPassword checks if the provided password matches the stored hash
func verifyPassword(password, hashedPassword string) bool {
	if password == "" || hashedPassword == "" {
		return false
	}
	return HashPassword(password) == hashedPassword
}

func invalidCredentials() *domain.AppError {
	return domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized, nil)
}
