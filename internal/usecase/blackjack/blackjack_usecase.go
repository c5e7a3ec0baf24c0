package blackjack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxRecentHands = 50

// Config holds blackjack stake limits
type Config struct {
	MinBet int64
	MaxBet int64
}

// DefaultConfig returns the standard table limits
func DefaultConfig() Config {
	return Config{MinBet: 1, MaxBet: 5000}
}

// Deps groups the collaborators of the blackjack use case
type Deps struct {
	DB         *gorm.DB
	HandRepo   domain.BlackjackHandRepository
	WalletRepo domain.WalletRepository
	UserRepo   domain.UserRepository
	OutboxRepo domain.OutboxRepository
	Clock      domain.Clock
	Random     domain.Randomizer
	Locker     domain.Locker
	Logger     *logger.Logger
}

// UseCase implements domain.BlackjackUseCase
type UseCase struct {
	db         *gorm.DB
	handRepo   domain.BlackjackHandRepository
	walletRepo domain.WalletRepository
	userRepo   domain.UserRepository
	outboxRepo domain.OutboxRepository
	clock      domain.Clock
	rng        domain.Randomizer
	locker     domain.Locker
	logger     *logger.Logger
	cfg        Config
}

// NewBlackjackUseCase creates a new blackjack use case
func NewBlackjackUseCase(deps Deps, cfg Config) *UseCase {
	deps.Logger.Info("BlackjackUseCase initialized",
		zap.Int64("minBet", cfg.MinBet),
		zap.Int64("maxBet", cfg.MaxBet))
	return &UseCase{
		db:         deps.DB,
		handRepo:   deps.HandRepo,
		walletRepo: deps.WalletRepo,
		userRepo:   deps.UserRepo,
		outboxRepo: deps.OutboxRepo,
		clock:      deps.Clock,
		rng:        deps.Random,
		locker:     deps.Locker,
		logger:     deps.Logger,
		cfg:        cfg,
	}
}

// ActiveHand returns the user's unfinished hand
func (uc *UseCase) ActiveHand(ctx context.Context, userID int64) (*domain.BlackjackHand, error) {
	hand, err := uc.handRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get active hand", err)
	}
	if hand == nil {
		return nil, handNotFound()
	}
	return hand, nil
}

// RecentHands returns the user's latest hands, newest first
func (uc *UseCase) RecentHands(ctx context.Context, userID int64, limit int) ([]*domain.BlackjackHand, error) {
	if limit <= 0 || limit > maxRecentHands {
		limit = maxRecentHands
	}
	hands, err := uc.handRepo.ListRecentByUserID(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewDatabaseError("list hands", err)
	}
	return hands, nil
}

// inUserTx runs fn inside one transaction while holding the user's blackjack lock
func (uc *UseCase) inUserTx(ctx context.Context, userID int64, fn func(tx *gorm.DB) (*domain.BlackjackHand, error)) (*domain.BlackjackHand, error) {
	lockKey := fmt.Sprintf("blackjack:user:%d", userID)
	release, err := uc.locker.Lock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer release()

	tx := uc.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		uc.logger.Error("Failed to start database transaction", zap.Error(tx.Error))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", http.StatusInternalServerError, tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	hand, err := fn(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		uc.logger.Error("Failed to commit database transaction", zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", http.StatusInternalServerError, err)
	}
	return hand, nil
}

func handNotFound() *domain.AppError {
	return domain.NewNotFoundError(domain.ErrCodeHandNotFound, "Active hand")
}

func invalidHandState(status domain.HandStatus) *domain.AppError {
	return domain.NewConflictError(domain.ErrCodeInvalidHandState, fmt.Sprintf("Hand is %s", status))
}
