package repository

import (
	"context"
	"errors"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoundRepository implements domain.RoundRepository
type RoundRepository struct {
	db *gorm.DB
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *gorm.DB) domain.RoundRepository {
	return &RoundRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *RoundRepository) WithTransaction(tx *gorm.DB) domain.RoundRepository {
	return &RoundRepository{db: tx}
}

// GetByID retrieves a round by ID
func (r *RoundRepository) GetByID(ctx context.Context, id int64) (*domain.Round, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByIDForShare retrieves a round holding a shared row lock until the transaction ends
func (r *RoundRepository) GetByIDForShare(ctx context.Context, id int64) (*domain.Round, error) {
	return r.first(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).
		Where("id = ?", id))
}

// GetLatest retrieves the round with the highest sequence number
func (r *RoundRepository) GetLatest(ctx context.Context) (*domain.Round, error) {
	return r.first(r.db.WithContext(ctx).Order("seq DESC"))
}

// CreateIfAbsent inserts the round unless its sequence number is already taken
func (r *RoundRepository) CreateIfAbsent(ctx context.Context, round *domain.Round) (bool, error) {
	now := time.Now()
	round.CreatedAt = now
	round.UpdatedAt = now
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "seq"}}, DoNothing: true}).
		Create(round)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Finish moves the round from open to finished. Only one caller can win.
func (r *RoundRepository) Finish(ctx context.Context, id int64, result domain.RoundResult, resolvedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Round{}).
		Where("id = ? AND status = ?", id, domain.RoundStatusOpen).
		Updates(map[string]interface{}{
			"status":        domain.RoundStatusFinished,
			"result_number": result.Number,
			"result_color":  result.Color,
			"resolved_at":   resolvedAt,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListResolved returns the most recently finished rounds, newest first
func (r *RoundRepository) ListResolved(ctx context.Context, limit int) ([]*domain.Round, error) {
	var rounds []*domain.Round
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.RoundStatusFinished).
		Order("seq DESC").
		Limit(limit).
		Find(&rounds).Error
	return rounds, err
}

// Count returns the number of rounds ever created
func (r *RoundRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Round{}).Count(&n).Error
	return n, err
}

func (r *RoundRepository) first(q *gorm.DB) (*domain.Round, error) {
	var round domain.Round
	if err := q.First(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &round, nil
}
