package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrWalletNotFound is returned by wallet repositories when no wallet exists for the user
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrInsufficientFunds is returned when a conditional debit matched no row
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Wallet holds the non-negative balance of a user
type Wallet struct {
	ID        int64     `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex;not null;type:bigint"`
	Balance   int64     `json:"balance" gorm:"type:bigint;not null;default:0;check:balance >= 0"`
	Version   int       `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for Wallet
func (w Wallet) TableName() string {
	return "wallets"
}

// WalletTransactionType represents the reason of a balance change
type WalletTransactionType string

const (
	WalletTransactionBet             WalletTransactionType = "bet"
	WalletTransactionPayout          WalletTransactionType = "payout"
	WalletTransactionBlackjackBet    WalletTransactionType = "blackjack_bet"
	WalletTransactionBlackjackPayout WalletTransactionType = "blackjack_payout"
	WalletTransactionAdjustment      WalletTransactionType = "adjustment"
)

// WalletTransaction is an append-only ledger row describing one balance change
type WalletTransaction struct {
	ID         int64                 `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID     int64                 `json:"user_id" gorm:"index;not null;type:bigint"`
	Type       WalletTransactionType `json:"type" gorm:"type:varchar(32);not null"`
	Amount     int64                 `json:"amount" gorm:"type:bigint;not null"`
	OldBalance int64                 `json:"old_balance" gorm:"type:bigint;not null"`
	NewBalance int64                 `json:"new_balance" gorm:"type:bigint;not null"`
	Reference  string                `json:"reference" gorm:"type:varchar(64);not null"`
	CreatedAt  time.Time             `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for WalletTransaction
func (t WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// WalletRepository defines the interface for wallet persistence.
// Debit and Credit are single atomic statements and return the wallet as it is after the change.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*Wallet, error)
	GetOrCreate(ctx context.Context, userID int64, initialBalance int64) (*Wallet, error)
	Debit(ctx context.Context, userID int64, amount int64) (*Wallet, error)
	Credit(ctx context.Context, userID int64, amount int64) (*Wallet, error)
	SetBalance(ctx context.Context, userID int64, balance int64) (*Wallet, error)
	RecordTransaction(ctx context.Context, tx *WalletTransaction) error
	ListTransactions(ctx context.Context, userID int64, limit int) ([]*WalletTransaction, error)
	WithTransaction(tx *gorm.DB) WalletRepository
}
