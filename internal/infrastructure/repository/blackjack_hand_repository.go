package repository

import (
	"context"
	"errors"

	"github.com/saradorri/casino/internal/domain"
	"gorm.io/gorm"
)

// BlackjackHandRepository implements domain.BlackjackHandRepository
type BlackjackHandRepository struct {
	db *gorm.DB
}

// NewBlackjackHandRepository creates a new hand repository
func NewBlackjackHandRepository(db *gorm.DB) domain.BlackjackHandRepository {
	return &BlackjackHandRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *BlackjackHandRepository) WithTransaction(tx *gorm.DB) domain.BlackjackHandRepository {
	return &BlackjackHandRepository{db: tx}
}

// Create inserts a new hand
func (r *BlackjackHandRepository) Create(ctx context.Context, hand *domain.BlackjackHand) error {
	return r.db.WithContext(ctx).Create(hand).Error
}

// GetActiveByUserID returns the unfinished hand of a user, nil when there is none
func (r *BlackjackHandRepository) GetActiveByUserID(ctx context.Context, userID int64) (*domain.BlackjackHand, error) {
	var hand domain.BlackjackHand
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, domain.HandStatusFinished).
		Order("id DESC").
		First(&hand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hand, nil
}

// Save writes the mutable columns of the hand if its stored status is still expected
func (r *BlackjackHandRepository) Save(ctx context.Context, hand *domain.BlackjackHand, expected domain.HandStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.BlackjackHand{}).
		Where("id = ? AND status = ?", hand.ID, expected).
		Updates(map[string]interface{}{
			"player_cards": hand.PlayerCards,
			"dealer_cards": hand.DealerCards,
			"shoe":         hand.Shoe,
			"status":       hand.Status,
			"result":       hand.Result,
			"payout":       hand.Payout,
			"finished_at":  hand.FinishedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListRecentByUserID returns the latest hands of a user, newest first
func (r *BlackjackHandRepository) ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*domain.BlackjackHand, error) {
	var hands []*domain.BlackjackHand
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&hands).Error
	return hands, err
}

// UserStats summarises the finished hands of a user
func (r *BlackjackHandRepository) UserStats(ctx context.Context, userID int64) (*domain.PlayStats, error) {
	hands := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.BlackjackHand{}).
			Where("user_id = ? AND status = ?", userID, domain.HandStatusFinished)
	}

	won, err := aggregateOutcomes(
		hands().Where("result IN ?", []string{string(domain.HandResultWin), string(domain.HandResultBlackjack)}),
		"payout - bet_amount")
	if err != nil {
		return nil, err
	}
	lost, err := aggregateOutcomes(hands().Where("result = ?", domain.HandResultLose), "bet_amount")
	if err != nil {
		return nil, err
	}
	return won.stats(lost), nil
}
