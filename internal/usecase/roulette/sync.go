package roulette

import (
	"context"

	"github.com/saradorri/casino/internal/domain"
	"go.uber.org/zap"
)

// SyncAndGetCurrentRound advances the round lifecycle if the clock requires it and
// returns the current round. Concurrent callers converge on the same round.
func (uc *UseCase) SyncAndGetCurrentRound(ctx context.Context) (*domain.Round, error) {
	latest, err := uc.roundRepo.GetLatest(ctx)
	if err != nil {
		return nil, domain.NewDatabaseError("get latest round", err)
	}

	now := uc.clock.Now()
	switch domain.NextTransition(latest, now, uc.cfg.Cooldown) {
	case domain.TransitionSettle:
		return uc.ResolveRound(ctx, latest.ID)
	case domain.TransitionOpenRound:
		return uc.openRound(ctx, latest)
	default:
		return latest, nil
	}
}

// openRound inserts the round following latest. Losing the race on seq is not an
// error: the winner's round is returned instead.
func (uc *UseCase) openRound(ctx context.Context, latest *domain.Round) (*domain.Round, error) {
	var seq int64 = 1
	if latest != nil {
		seq = latest.Seq + 1
	}

	now := uc.clock.Now()
	round := &domain.Round{
		Seq:       seq,
		StartedAt: now,
		EndsAt:    now.Add(uc.cfg.RoundDuration),
		Status:    domain.RoundStatusOpen,
	}

	inserted, err := uc.roundRepo.CreateIfAbsent(ctx, round)
	if err != nil {
		uc.logger.Error("Failed to open round", zap.Int64("seq", seq), zap.Error(err))
		return nil, domain.NewDatabaseError("create round", err)
	}
	if inserted {
		uc.logger.Info("Round opened",
			zap.Int64("roundID", round.ID),
			zap.Int64("seq", seq),
			zap.Time("endsAt", round.EndsAt))
	} else {
		uc.logger.Debug("Round already opened by a concurrent request", zap.Int64("seq", seq))
	}

	current, err := uc.roundRepo.GetLatest(ctx)
	if err != nil {
		return nil, domain.NewDatabaseError("get latest round", err)
	}
	return current, nil
}
