package repository

import (
	"context"
	"errors"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository implements domain.WalletRepository
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) domain.WalletRepository {
	return &WalletRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *WalletRepository) WithTransaction(tx *gorm.DB) domain.WalletRepository {
	return &WalletRepository{db: tx}
}

// GetByUserID retrieves the wallet of a user, nil when none exists
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &wallet, nil
}

// GetOrCreate returns the wallet of a user, creating it with initialBalance when missing.
// Concurrent callers converge on the same row.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID int64, initialBalance int64) (*domain.Wallet, error) {
	now := time.Now()
	wallet := &domain.Wallet{
		UserID:    userID,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(wallet).Error
	if err != nil {
		return nil, err
	}
	return r.mustGet(ctx, userID)
}

// Debit subtracts amount only when the balance covers it
func (r *WalletRepository) Debit(ctx context.Context, userID int64, amount int64) (*domain.Wallet, error) {
	result := r.db.WithContext(ctx).Model(&domain.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrWalletNotFound
		}
		return nil, domain.ErrInsufficientFunds
	}
	return r.mustGet(ctx, userID)
}

// Credit adds amount to the balance
func (r *WalletRepository) Credit(ctx context.Context, userID int64, amount int64) (*domain.Wallet, error) {
	result := r.db.WithContext(ctx).Model(&domain.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrWalletNotFound
	}
	return r.mustGet(ctx, userID)
}

// SetBalance overwrites the balance
func (r *WalletRepository) SetBalance(ctx context.Context, userID int64, balance int64) (*domain.Wallet, error) {
	result := r.db.WithContext(ctx).Model(&domain.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    balance,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrWalletNotFound
	}
	return r.mustGet(ctx, userID)
}

// RecordTransaction appends a ledger row
func (r *WalletRepository) RecordTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

// ListTransactions returns the most recent ledger rows of a user, newest first
func (r *WalletRepository) ListTransactions(ctx context.Context, userID int64, limit int) ([]*domain.WalletTransaction, error) {
	var txs []*domain.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (r *WalletRepository) mustGet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrWalletNotFound
	}
	return wallet, nil
}
