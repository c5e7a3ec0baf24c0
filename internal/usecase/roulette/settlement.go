package roulette

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// settlementSummary describes what one settlement applied
type settlementSummary struct {
	result    domain.RoundResult
	betCount  int
	winners   int
	staked    int64
	paidOut   int64
	creditsBy map[int64]int64
}

// ResolveRound draws the result of an open round and pays its bets. Only the
// caller that flips the round from open to finished applies anything; every
// other caller gets the stored round back unchanged.
func (uc *UseCase) ResolveRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	started := time.Now()

	round, err := uc.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round.Status != domain.RoundStatusOpen {
		return round, nil
	}

	result := domain.NewRoundResult(uc.rng.Intn(domain.MaxPocket + 1))

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

	summary, err := uc.settle(ctx, tx, round, result)
	if err != nil {
		tx.Rollback()
		uc.logger.Error("Round settlement failed", zap.Int64("roundID", roundID), zap.Error(err))
		return nil, err
	}
	if summary == nil {
		tx.Rollback()
		uc.logger.Debug("Round already settled by a concurrent request", zap.Int64("roundID", roundID))
		return uc.GetRound(ctx, roundID)
	}

	if err := uc.commitTx(tx); err != nil {
		return nil, err
	}

	metrics.RecordSettlement(string(result.Color), summary.paidOut, started)
	uc.logger.Info("Round settled",
		zap.Int64("roundID", roundID),
		zap.Int("number", result.Number),
		zap.String("color", string(result.Color)),
		zap.Int("bets", summary.betCount),
		zap.Int("winners", summary.winners),
		zap.Int64("staked", summary.staked),
		zap.Int64("paidOut", summary.paidOut))

	return uc.GetRound(ctx, roundID)
}

// settle applies the result inside tx. A nil summary means another caller won the round.
func (uc *UseCase) settle(ctx context.Context, tx *gorm.DB, round *domain.Round, result domain.RoundResult) (*settlementSummary, error) {
	roundRepo := uc.roundRepo.WithTransaction(tx)
	betRepo := uc.betRepo.WithTransaction(tx)
	walletRepo := uc.walletRepo.WithTransaction(tx)
	outboxRepo := uc.outboxRepo.WithTransaction(tx)

	now := uc.clock.Now()
	won, err := roundRepo.Finish(ctx, round.ID, result, now)
	if err != nil {
		return nil, domain.NewDatabaseError("finish round", err)
	}
	if !won {
		return nil, nil
	}

	bets, err := betRepo.ListByRound(ctx, round.ID)
	if err != nil {
		return nil, domain.NewDatabaseError("list bets", err)
	}

	summary := &settlementSummary{result: result, creditsBy: make(map[int64]int64)}
	for _, bet := range bets {
		outcome := uc.outcome(bet, result)
		applied, err := betRepo.ApplyOutcome(ctx, outcome, now)
		if err != nil {
			return nil, domain.NewDatabaseError("apply bet outcome", err)
		}
		if !applied {
			continue
		}
		summary.betCount++
		summary.staked += bet.Amount
		if outcome.IsWin {
			summary.winners++
			summary.paidOut += outcome.Payout
			summary.creditsBy[bet.UserID] += outcome.Payout
		}
	}

	userIDs := make([]int64, 0, len(summary.creditsBy))
	for id := range summary.creditsBy {
		userIDs = append(userIDs, id)
	}
	slices.Sort(userIDs)

	for _, userID := range userIDs {
		payout := summary.creditsBy[userID]
		wallet, err := walletRepo.Credit(ctx, userID, payout)
		if err != nil {
			return nil, domain.NewDatabaseError(fmt.Sprintf("credit wallet of user %d", userID), err)
		}
		if err := walletRepo.RecordTransaction(ctx, &domain.WalletTransaction{
			UserID:     userID,
			Type:       domain.WalletTransactionPayout,
			Amount:     payout,
			OldBalance: wallet.Balance - payout,
			NewBalance: wallet.Balance,
			Reference:  fmt.Sprintf("round:%d", round.ID),
			CreatedAt:  now,
		}); err != nil {
			return nil, domain.NewDatabaseError("record wallet transaction", err)
		}
	}

	event := &domain.OutboxEvent{
		ID:   uuid.NewString(),
		Type: domain.EventTypeRoundSettled,
		Data: domain.JSONB{
			"round_id":     round.ID,
			"seq":          round.Seq,
			"number":       result.Number,
			"color":        string(result.Color),
			"bet_count":    summary.betCount,
			"winners":      summary.winners,
			"total_stake":  summary.staked,
			"total_payout": summary.paidOut,
			"resolved_at":  now,
		},
		Status:    domain.EventStatusPending,
		CreatedAt: now,
	}
	if err := outboxRepo.Save(ctx, event); err != nil {
		return nil, domain.NewDatabaseError("save outbox event", err)
	}

	return summary, nil
}

// outcome computes the payout of one bet. A stored selection that no longer
// parses is settled as a loss.
func (uc *UseCase) outcome(bet *domain.Bet, result domain.RoundResult) domain.BetOutcome {
	sel, err := bet.Selection()
	if err != nil {
		uc.logger.Error("Stored bet has an invalid selection, settling as lost",
			zap.Int64("betID", bet.ID),
			zap.String("kind", string(bet.Kind)),
			zap.String("value", bet.Value),
			zap.Error(err))
		return domain.BetOutcome{BetID: bet.ID}
	}
	isWin, payout := domain.ResolvePayout(sel, bet.Amount, result)
	return domain.BetOutcome{BetID: bet.ID, IsWin: isWin, Payout: payout}
}
