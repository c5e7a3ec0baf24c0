package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminUseCase implements domain.AdminUseCase
type AdminUseCase struct {
	db          *gorm.DB
	userRepo    domain.UserRepository
	walletRepo  domain.WalletRepository
	roundRepo   domain.RoundRepository
	betRepo     domain.BetRepository
	clock       domain.Clock
	logger      *logger.Logger
	bonusAmount int64
}

// NewAdminUseCase creates a new admin use case
func NewAdminUseCase(
	db *gorm.DB,
	userRepo domain.UserRepository,
	walletRepo domain.WalletRepository,
	roundRepo domain.RoundRepository,
	betRepo domain.BetRepository,
	clock domain.Clock,
	logger *logger.Logger,
	bonusAmount int64,
) domain.AdminUseCase {
	return &AdminUseCase{
		db:          db,
		userRepo:    userRepo,
		walletRepo:  walletRepo,
		roundRepo:   roundRepo,
		betRepo:     betRepo,
		clock:       clock,
		logger:      logger,
		bonusAmount: bonusAmount,
	}
}

// SetBalance overwrites a user's balance and records the difference in the ledger
func (uc *AdminUseCase) SetBalance(ctx context.Context, adminID, userID int64, balance int64) (*domain.Wallet, error) {
	if balance < 0 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidAmount, "Balance cannot be negative", http.StatusBadRequest, nil)
	}

	var updated *domain.Wallet
	err := uc.inTx(ctx, func(tx *gorm.DB) error {
		if err := uc.requireAdmin(ctx, tx, adminID); err != nil {
			return err
		}
		walletRepo := uc.walletRepo.WithTransaction(tx)

		current, err := walletRepo.GetOrCreate(ctx, userID, 0)
		if err != nil {
			return domain.NewDatabaseError("get or create wallet", err)
		}

		updated, err = walletRepo.SetBalance(ctx, userID, balance)
		if err != nil {
			return walletError("set balance", err)
		}
		return uc.recordAdjustment(ctx, walletRepo, adminID, userID, current.Balance, updated.Balance, "admin:%d")
	})
	if err != nil {
		return nil, err
	}

	uc.logger.WithContext(ctx).Info("Balance set by admin",
		zap.Int64("adminID", adminID),
		zap.Int64("userID", userID),
		zap.Int64("balance", updated.Balance))
	return updated, nil
}

// GrantBonus credits the configured bonus to every user in one transaction.
// Users without a wallet get one opened at zero first.
func (uc *AdminUseCase) GrantBonus(ctx context.Context, adminID int64) (int, error) {
	var credited int
	err := uc.inTx(ctx, func(tx *gorm.DB) error {
		if err := uc.requireAdmin(ctx, tx, adminID); err != nil {
			return err
		}
		walletRepo := uc.walletRepo.WithTransaction(tx)

		ids, err := uc.userRepo.WithTransaction(tx).ListIDs(ctx)
		if err != nil {
			return domain.NewDatabaseError("list users", err)
		}
		for _, userID := range ids {
			if _, err := walletRepo.GetOrCreate(ctx, userID, 0); err != nil {
				return domain.NewDatabaseError("get or create wallet", err)
			}
			updated, err := walletRepo.Credit(ctx, userID, uc.bonusAmount)
			if err != nil {
				return walletError("credit bonus", err)
			}
			err = uc.recordAdjustment(ctx, walletRepo, adminID, userID, updated.Balance-uc.bonusAmount, updated.Balance, "bonus:%d")
			if err != nil {
				return err
			}
		}
		credited = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.logger.WithContext(ctx).Info("Bonus granted to all users",
		zap.Int64("adminID", adminID),
		zap.Int("users", credited),
		zap.Int64("bonus", uc.bonusAmount))
	return credited, nil
}

// ToggleBlock flips the blocked flag of a user. Admins cannot block themselves.
func (uc *AdminUseCase) ToggleBlock(ctx context.Context, adminID, userID int64) (*domain.User, error) {
	if adminID == userID {
		return nil, domain.NewAppError(domain.ErrCodeInvalidFormat, "Admins cannot block themselves", http.StatusBadRequest, nil)
	}

	var user *domain.User
	err := uc.inTx(ctx, func(tx *gorm.DB) error {
		if err := uc.requireAdmin(ctx, tx, adminID); err != nil {
			return err
		}
		userRepo := uc.userRepo.WithTransaction(tx)

		var err error
		user, err = userRepo.GetByID(ctx, userID)
		if err != nil {
			return domain.NewDatabaseError("get user", err)
		}
		if user == nil {
			return domain.NewNotFoundError(domain.ErrCodeUserNotFound, "User")
		}

		user.IsBlocked = !user.IsBlocked
		if err := userRepo.SetBlocked(ctx, user.ID, user.IsBlocked); err != nil {
			return domain.NewDatabaseError("set blocked", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.WithContext(ctx).Info("User block toggled",
		zap.Int64("adminID", adminID),
		zap.Int64("userID", userID),
		zap.Bool("blocked", user.IsBlocked))
	return user, nil
}

// Stats aggregates roulette activity across all rounds
func (uc *AdminUseCase) Stats(ctx context.Context) (*domain.CasinoStats, error) {
	rounds, err := uc.roundRepo.Count(ctx)
	if err != nil {
		return nil, domain.NewDatabaseError("count rounds", err)
	}
	totals, err := uc.betRepo.Totals(ctx)
	if err != nil {
		return nil, domain.NewDatabaseError("sum bets", err)
	}

	ratio := decimal.Zero
	if totals.Staked > 0 {
		ratio = decimal.NewFromInt(totals.PaidOut).Div(decimal.NewFromInt(totals.Staked))
	}

	return &domain.CasinoStats{
		Rounds:       rounds,
		Bets:         totals.BetCount,
		TotalStaked:  totals.Staked,
		TotalPaidOut: totals.PaidOut,
		HouseResult:  totals.Staked - totals.PaidOut,
		PayoutRatio:  ratio.StringFixed(4),
	}, nil
}

func (uc *AdminUseCase) requireAdmin(ctx context.Context, tx *gorm.DB, adminID int64) error {
	admin, err := uc.userRepo.WithTransaction(tx).GetByID(ctx, adminID)
	if err != nil {
		return domain.NewDatabaseError("get admin", err)
	}
	if admin == nil || !admin.IsAdmin() {
		return domain.NewForbiddenError("Admin role required")
	}
	return nil
}

func (uc *AdminUseCase) recordAdjustment(ctx context.Context, walletRepo domain.WalletRepository, adminID, userID, oldBalance, newBalance int64, refFormat string) error {
	err := walletRepo.RecordTransaction(ctx, &domain.WalletTransaction{
		UserID:     userID,
		Type:       domain.WalletTransactionAdjustment,
		Amount:     newBalance - oldBalance,
		OldBalance: oldBalance,
		NewBalance: newBalance,
		Reference:  fmt.Sprintf(refFormat, adminID),
		CreatedAt:  uc.clock.Now(),
	})
	if err != nil {
		return domain.NewDatabaseError("record wallet transaction", err)
	}
	return nil
}

func (uc *AdminUseCase) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := uc.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		uc.logger.Error("Failed to start database transaction", zap.Error(tx.Error))
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", http.StatusInternalServerError, tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		uc.logger.Error("Failed to commit database transaction", zap.Error(err))
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", http.StatusInternalServerError, err)
	}
	return nil
}

func walletError(op string, err error) error {
	if errors.Is(err, domain.ErrWalletNotFound) {
		return domain.NewNotFoundError(domain.ErrCodeWalletNotFound, "Wallet")
	}
	return domain.NewDatabaseError(op, err)
}
