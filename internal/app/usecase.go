package app

import (
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/auth"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/saradorri/casino/internal/usecase/admin"
	"github.com/saradorri/casino/internal/usecase/blackjack"
	"github.com/saradorri/casino/internal/usecase/roulette"
	"github.com/saradorri/casino/internal/usecase/user"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func (a *application) InitUserUseCase(
	ur domain.UserRepository,
	wr domain.WalletRepository,
	br domain.BetRepository,
	hr domain.BlackjackHandRepository,
	jwt auth.JWTService,
	log *logger.Logger,
) domain.UserUseCase {
	return user.NewUserUseCase(ur, wr, br, hr, jwt, log, a.config.Wallet.StartingBalance)
}

// GameDeps is the shared set of collaborators both games take
type GameDeps struct {
	fx.In

	DB         *gorm.DB
	UserRepo   domain.UserRepository
	WalletRepo domain.WalletRepository
	RoundRepo  domain.RoundRepository
	BetRepo    domain.BetRepository
	HandRepo   domain.BlackjackHandRepository
	OutboxRepo domain.OutboxRepository
	Clock      domain.Clock
	Random     domain.Randomizer
	Locker     domain.Locker
	Logger     *logger.Logger
}

func (a *application) InitRouletteUseCase(d GameDeps) domain.RouletteUseCase {
	cfg := a.config.Roulette
	return roulette.NewRouletteUseCase(roulette.Deps{
		DB:         d.DB,
		RoundRepo:  d.RoundRepo,
		BetRepo:    d.BetRepo,
		WalletRepo: d.WalletRepo,
		UserRepo:   d.UserRepo,
		OutboxRepo: d.OutboxRepo,
		Clock:      d.Clock,
		Random:     d.Random,
		Locker:     d.Locker,
		Logger:     d.Logger,
	}, roulette.Config{
		RoundDuration:   cfg.RoundDuration,
		Cooldown:        cfg.Cooldown,
		MinBet:          cfg.MinBet,
		MaxBet:          cfg.MaxBet,
		MaxBetsPerRound: cfg.MaxBetsPerRound,
		DuplicateWindow: cfg.DuplicateWindow,
		HistorySize:     cfg.HistorySize,
	})
}

func (a *application) InitBlackjackUseCase(d GameDeps) domain.BlackjackUseCase {
	return blackjack.NewBlackjackUseCase(blackjack.Deps{
		DB:         d.DB,
		HandRepo:   d.HandRepo,
		WalletRepo: d.WalletRepo,
		UserRepo:   d.UserRepo,
		OutboxRepo: d.OutboxRepo,
		Clock:      d.Clock,
		Random:     d.Random,
		Locker:     d.Locker,
		Logger:     d.Logger,
	}, blackjack.Config{
		MinBet: a.config.Blackjack.MinBet,
		MaxBet: a.config.Blackjack.MaxBet,
	})
}

func (a *application) InitAdminUseCase(d GameDeps) domain.AdminUseCase {
	return admin.NewAdminUseCase(
		d.DB, d.UserRepo, d.WalletRepo, d.RoundRepo, d.BetRepo,
		d.Clock, d.Logger, a.config.Wallet.BonusAmount,
	)
}
