package app

import (
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func (a *application) InitRepository(db *gorm.DB) (
	domain.UserRepository,
	domain.WalletRepository,
	domain.RoundRepository,
	domain.BetRepository,
	domain.BlackjackHandRepository,
	domain.OutboxRepository,
) {
	return repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		repository.NewRoundRepository(db),
		repository.NewBetRepository(db),
		repository.NewBlackjackHandRepository(db),
		repository.NewOutboxRepository(db)
}
