package roulette

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlaceBet admits a bet on the current round. The user's bets are serialised by
// the per-user lock, and the round row is share-locked so settlement cannot
// interleave between the checks and the insert.
func (uc *UseCase) PlaceBet(ctx context.Context, userID int64, kind domain.BetKind, value string, amount int64) (*domain.Bet, error) {
	started := time.Now()
	bet, err := uc.placeBet(ctx, userID, kind, value, amount)
	if err != nil {
		metrics.RecordBet("fail", string(kind), amount, started)
		return nil, err
	}
	metrics.RecordBet("success", string(kind), amount, started)
	return bet, nil
}

func (uc *UseCase) placeBet(ctx context.Context, userID int64, kind domain.BetKind, value string, amount int64) (*domain.Bet, error) {
	log := uc.logger.WithContext(ctx)

	current, err := uc.SyncAndGetCurrentRound(ctx)
	if err != nil {
		return nil, err
	}

	lockKey := fmt.Sprintf("roulette:user:%d", userID)
	release, err := uc.locker.Lock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := uc.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	bet, err := uc.admit(ctx, tx, current.ID, userID, kind, value, amount)
	if err != nil {
		tx.Rollback()
		log.Info("Bet rejected",
			zap.Int64("userID", userID),
			zap.Int64("roundID", current.ID),
			zap.String("kind", string(kind)),
			zap.String("value", value),
			zap.Int64("amount", amount),
			zap.Error(err))
		return nil, err
	}

	if err := uc.commitTx(tx); err != nil {
		return nil, err
	}

	log.Info("Bet placed",
		zap.Int64("betID", bet.ID),
		zap.Int64("userID", userID),
		zap.Int64("roundID", bet.RoundID),
		zap.String("kind", string(bet.Kind)),
		zap.String("value", bet.Value),
		zap.Int64("amount", bet.Amount))
	return bet, nil
}

// admit runs the ordered admission checks and the debit+insert inside tx
func (uc *UseCase) admit(ctx context.Context, tx *gorm.DB, roundID, userID int64, kind domain.BetKind, value string, amount int64) (*domain.Bet, error) {
	userRepo := uc.userRepo.WithTransaction(tx)
	walletRepo := uc.walletRepo.WithTransaction(tx)
	roundRepo := uc.roundRepo.WithTransaction(tx)
	betRepo := uc.betRepo.WithTransaction(tx)

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(domain.ErrCodeUserNotFound, "User")
	}
	if user.IsBlocked {
		return nil, domain.NewAppError(domain.ErrCodeUserBlocked, "User is blocked", http.StatusForbidden, nil)
	}

	wallet, err := walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get wallet", err)
	}
	if wallet == nil {
		return nil, domain.NewNotFoundError(domain.ErrCodeWalletNotFound, "Wallet")
	}

	if amount < uc.cfg.MinBet || amount > uc.cfg.MaxBet {
		return nil, domain.NewAppError(domain.ErrCodeInvalidAmount,
			fmt.Sprintf("Bet amount must be between %d and %d", uc.cfg.MinBet, uc.cfg.MaxBet),
			http.StatusBadRequest, nil)
	}

	if amount > wallet.Balance {
		return nil, insufficientBalance()
	}

	round, err := roundRepo.GetByIDForShare(ctx, roundID)
	if err != nil {
		return nil, domain.NewDatabaseError("get round", err)
	}
	now := uc.clock.Now()
	if round == nil || !round.AcceptsBets(now) {
		return nil, domain.NewAppError(domain.ErrCodeBettingClosed, "Betting is closed for this round", http.StatusConflict, nil)
	}

	sel, err := domain.ParseSelection(kind, value)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeInvalidBet, err.Error(), http.StatusBadRequest, nil)
	}

	existing, err := betRepo.ListByRoundAndUser(ctx, round.ID, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("list bets", err)
	}
	if len(existing) >= uc.cfg.MaxBetsPerRound {
		return nil, domain.NewAppError(domain.ErrCodeBetLimitReached,
			fmt.Sprintf("At most %d bets per round", uc.cfg.MaxBetsPerRound),
			http.StatusTooManyRequests, nil)
	}
	if isDuplicate(existing, sel, now, uc.cfg.DuplicateWindow) {
		return nil, domain.NewAppError(domain.ErrCodeDuplicateBet, "Identical bet placed moments ago", http.StatusTooManyRequests, nil)
	}

	debited, err := walletRepo.Debit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, insufficientBalance()
		}
		if errors.Is(err, domain.ErrWalletNotFound) {
			return nil, domain.NewNotFoundError(domain.ErrCodeWalletNotFound, "Wallet")
		}
		return nil, domain.NewDatabaseError("debit wallet", err)
	}

	bet := &domain.Bet{
		UserID:   userID,
		RoundID:  round.ID,
		Kind:     sel.Kind(),
		Value:    sel.Value(),
		Amount:   amount,
		PlacedAt: now,
	}
	if err := betRepo.Create(ctx, bet); err != nil {
		return nil, domain.NewDatabaseError("create bet", err)
	}

	if err := walletRepo.RecordTransaction(ctx, &domain.WalletTransaction{
		UserID:     userID,
		Type:       domain.WalletTransactionBet,
		Amount:     -amount,
		OldBalance: debited.Balance + amount,
		NewBalance: debited.Balance,
		Reference:  fmt.Sprintf("bet:%d", bet.ID),
		CreatedAt:  now,
	}); err != nil {
		return nil, domain.NewDatabaseError("record wallet transaction", err)
	}

	return bet, nil
}

// isDuplicate reports an identical selection placed less than window before now
func isDuplicate(existing []*domain.Bet, sel domain.BetSelection, now time.Time, window time.Duration) bool {
	for _, b := range existing {
		if b.Kind == sel.Kind() && b.Value == sel.Value() && now.Sub(b.PlacedAt) < window {
			return true
		}
	}
	return false
}

func insufficientBalance() *domain.AppError {
	return domain.NewAppError(domain.ErrCodeInsufficientBalance, "Insufficient balance", http.StatusBadRequest, nil)
}
