package roulette

import (
	"context"
	"net/http"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxHistory = 100

// Config holds round timing and admission limits
type Config struct {
	RoundDuration   time.Duration
	Cooldown        time.Duration
	MinBet          int64
	MaxBet          int64
	MaxBetsPerRound int
	DuplicateWindow time.Duration
	HistorySize     int
}

// DefaultConfig returns the standard table limits
func DefaultConfig() Config {
	return Config{
		RoundDuration:   30 * time.Second,
		Cooldown:        15 * time.Second,
		MinBet:          1,
		MaxBet:          5000,
		MaxBetsPerRound: 10,
		DuplicateWindow: 3 * time.Second,
		HistorySize:     10,
	}
}

// Deps groups the collaborators of the roulette use case
type Deps struct {
	DB         *gorm.DB
	RoundRepo  domain.RoundRepository
	BetRepo    domain.BetRepository
	WalletRepo domain.WalletRepository
	UserRepo   domain.UserRepository
	OutboxRepo domain.OutboxRepository
	Clock      domain.Clock
	Random     domain.Randomizer
	Locker     domain.Locker
	Logger     *logger.Logger
}

// UseCase implements domain.RouletteUseCase
type UseCase struct {
	db         *gorm.DB
	roundRepo  domain.RoundRepository
	betRepo    domain.BetRepository
	walletRepo domain.WalletRepository
	userRepo   domain.UserRepository
	outboxRepo domain.OutboxRepository
	clock      domain.Clock
	rng        domain.Randomizer
	locker     domain.Locker
	logger     *logger.Logger
	cfg        Config
}

// NewRouletteUseCase creates a new roulette use case
func NewRouletteUseCase(deps Deps, cfg Config) *UseCase {
	deps.Logger.Info("RouletteUseCase initialized",
		zap.Duration("roundDuration", cfg.RoundDuration),
		zap.Duration("cooldown", cfg.Cooldown))
	return &UseCase{
		db:         deps.DB,
		roundRepo:  deps.RoundRepo,
		betRepo:    deps.BetRepo,
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

// GetRound returns a round by id
func (uc *UseCase) GetRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	round, err := uc.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, domain.NewDatabaseError("get round", err)
	}
	if round == nil {
		return nil, domain.NewNotFoundError(domain.ErrCodeRoundNotFound, "Round")
	}
	return round, nil
}

// RecentResults returns the latest finished rounds, newest first
func (uc *UseCase) RecentResults(ctx context.Context, limit int) ([]*domain.Round, error) {
	if limit <= 0 {
		limit = uc.cfg.HistorySize
	}
	if limit > maxHistory {
		limit = maxHistory
	}
	rounds, err := uc.roundRepo.ListResolved(ctx, limit)
	if err != nil {
		return nil, domain.NewDatabaseError("list resolved rounds", err)
	}
	return rounds, nil
}

// CurrentBets returns the caller's bets in the current round
func (uc *UseCase) CurrentBets(ctx context.Context, userID int64) ([]*domain.Bet, error) {
	round, err := uc.SyncAndGetCurrentRound(ctx)
	if err != nil {
		return nil, err
	}
	bets, err := uc.betRepo.ListByRoundAndUser(ctx, round.ID, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("list bets", err)
	}
	return bets, nil
}

// State returns the polling snapshot. userID is nil for anonymous callers.
func (uc *UseCase) State(ctx context.Context, userID *int64) (*domain.RouletteState, error) {
	round, err := uc.SyncAndGetCurrentRound(ctx)
	if err != nil {
		return nil, err
	}

	history, err := uc.RecentResults(ctx, uc.cfg.HistorySize)
	if err != nil {
		return nil, err
	}

	state := &domain.RouletteState{
		ServerTime: uc.clock.Now(),
		Round:      round,
		History:    history,
	}

	if userID != nil {
		wallet, err := uc.walletRepo.GetByUserID(ctx, *userID)
		if err != nil {
			return nil, domain.NewDatabaseError("get wallet", err)
		}
		if wallet != nil {
			balance := wallet.Balance
			state.Balance = &balance
		}
	}

	return state, nil
}

func (uc *UseCase) beginTx(ctx context.Context) (*gorm.DB, error) {
	tx := uc.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		uc.logger.Error("Failed to start database transaction", zap.Error(tx.Error))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", http.StatusInternalServerError, tx.Error)
	}
	return tx, nil
}

func (uc *UseCase) commitTx(tx *gorm.DB) error {
	if err := tx.Commit().Error; err != nil {
		uc.logger.Error("Failed to commit database transaction", zap.Error(err))
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", http.StatusInternalServerError, err)
	}
	return nil
}
