package repository

import (
	"context"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"gorm.io/gorm"
)

// BetRepository implements domain.BetRepository
type BetRepository struct {
	db *gorm.DB
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *gorm.DB) domain.BetRepository {
	return &BetRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *BetRepository) WithTransaction(tx *gorm.DB) domain.BetRepository {
	return &BetRepository{db: tx}
}

// Create inserts a new bet
func (r *BetRepository) Create(ctx context.Context, bet *domain.Bet) error {
	return r.db.WithContext(ctx).Create(bet).Error
}

// ListByRound returns every bet of a round in placement order
func (r *BetRepository) ListByRound(ctx context.Context, roundID int64) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("id ASC").
		Find(&bets).Error
	return bets, err
}

// ListByRoundAndUser returns the bets a user placed on a round in placement order
func (r *BetRepository) ListByRoundAndUser(ctx context.Context, roundID, userID int64) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.WithContext(ctx).
		Where("round_id = ? AND user_id = ?", roundID, userID).
		Order("id ASC").
		Find(&bets).Error
	return bets, err
}

// ApplyOutcome writes the outcome only if the bet has none yet
func (r *BetRepository) ApplyOutcome(ctx context.Context, outcome domain.BetOutcome, settledAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.Bet{}).
		Where("id = ? AND is_win IS NULL", outcome.BetID).
		Updates(map[string]interface{}{
			"is_win":     outcome.IsWin,
			"payout":     outcome.Payout,
			"settled_at": settledAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Totals aggregates stakes and payouts across every bet
func (r *BetRepository) Totals(ctx context.Context) (*domain.BetTotals, error) {
	var row struct {
		Staked   int64
		PaidOut  int64
		BetCount int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Bet{}).
		Select("COALESCE(SUM(amount), 0) AS staked, COALESCE(SUM(payout), 0) AS paid_out, COUNT(*) AS bet_count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domain.BetTotals{Staked: row.Staked, PaidOut: row.PaidOut, BetCount: row.BetCount}, nil
}

// UserStats summarises the settled bets of a user
func (r *BetRepository) UserStats(ctx context.Context, userID int64) (*domain.PlayStats, error) {
	bets := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Bet{}).Where("user_id = ?", userID)
	}

	won, err := aggregateOutcomes(bets().Where("is_win = ?", true), "payout - amount")
	if err != nil {
		return nil, err
	}
	lost, err := aggregateOutcomes(bets().Where("is_win = ?", false), "amount")
	if err != nil {
		return nil, err
	}
	return won.stats(lost), nil
}

// outcomeAggregate is the count, sum and maximum of one side of a user's record
type outcomeAggregate struct {
	Settled int64
	Net     int64
	Biggest int64
}

func (w outcomeAggregate) stats(lost outcomeAggregate) *domain.PlayStats {
	return &domain.PlayStats{
		Wins:        w.Settled,
		Losses:      lost.Settled,
		WonSum:      w.Net,
		LostSum:     lost.Net,
		BiggestWin:  w.Biggest,
		BiggestLoss: lost.Biggest,
	}
}

func aggregateOutcomes(query *gorm.DB, expr string) (outcomeAggregate, error) {
	var row outcomeAggregate
	err := query.
		Select("COUNT(*) AS settled, COALESCE(SUM(" + expr + "), 0) AS net, COALESCE(MAX(" + expr + "), 0) AS biggest").
		Scan(&row).Error
	return row, err
}
