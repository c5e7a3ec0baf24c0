package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HandStatus represents the state of a blackjack hand
type HandStatus string

const (
	HandStatusPlaying    HandStatus = "playing"
	HandStatusDealerTurn HandStatus = "dealer_turn"
	HandStatusFinished   HandStatus = "finished"
)

// HandResult represents how a finished hand ended for the player
type HandResult string

const (
	HandResultWin       HandResult = "win"
	HandResultLose      HandResult = "lose"
	HandResultPush      HandResult = "push"
	HandResultBlackjack HandResult = "blackjack"
)

// Blackjack limits
const (
	BlackjackValue = 21
	DealerStandsOn = 17
)

// naturalMultiplier pays 3:2 on a natural, stake included
var naturalMultiplier = decimal.RequireFromString("2.5")

// BlackjackHand is one deal-to-finish cycle of cards for one user against the dealer
type BlackjackHand struct {
	ID          int64       `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID      int64       `json:"user_id" gorm:"index;not null;type:bigint"`
	PlayerCards Cards       `json:"player_cards" gorm:"type:text;not null"`
	DealerCards Cards       `json:"dealer_cards" gorm:"type:text;not null"`
	Shoe        Cards       `json:"-" gorm:"type:text;not null"`
	BetAmount   int64       `json:"bet_amount" gorm:"type:bigint;not null"`
	Status      HandStatus  `json:"status" gorm:"type:varchar(16);not null;index"`
	Result      *HandResult `json:"result" gorm:"type:varchar(16)"`
	Payout      *int64      `json:"payout" gorm:"type:bigint"`
	CreatedAt   time.Time   `json:"created_at" gorm:"not null"`
	FinishedAt  *time.Time  `json:"finished_at"`
}

// TableName specifies the table name for BlackjackHand
func (h BlackjackHand) TableName() string {
	return "blackjack_hands"
}

// PlayerValue returns the current value of the player's cards
func (h *BlackjackHand) PlayerValue() int {
	return h.PlayerCards.Total()
}

// DealerValue returns the current value of the dealer's cards
func (h *BlackjackHand) DealerValue() int {
	return h.DealerCards.Total()
}

// IsActive reports whether the hand still awaits a player decision or the dealer
func (h *BlackjackHand) IsActive() bool {
	return h.Status != HandStatusFinished
}

// Finish records the final result of the hand
func (h *BlackjackHand) Finish(result HandResult, payout int64, at time.Time) {
	h.Status = HandStatusFinished
	h.Result = &result
	h.Payout = &payout
	h.FinishedAt = &at
}

// HandOutcome compares the player's and dealer's final cards and returns the
// result and the payout for a stake of amount. Fractional payouts are floored.
func HandOutcome(player, dealer Cards, amount int64) (HandResult, int64) {
	playerValue, dealerValue := player.Total(), dealer.Total()

	switch {
	case playerValue > BlackjackValue:
		return HandResultLose, 0
	case player.IsNatural() && dealer.IsNatural():
		return HandResultPush, amount
	case player.IsNatural():
		return HandResultBlackjack, decimal.NewFromInt(amount).Mul(naturalMultiplier).Floor().IntPart()
	case dealerValue > BlackjackValue || playerValue > dealerValue:
		return HandResultWin, amount * 2
	case playerValue == dealerValue:
		return HandResultPush, amount
	default:
		return HandResultLose, 0
	}
}

// BlackjackHandRepository defines the interface for hand persistence
type BlackjackHandRepository interface {
	Create(ctx context.Context, hand *BlackjackHand) error
	GetActiveByUserID(ctx context.Context, userID int64) (*BlackjackHand, error)
	// Save persists the hand only if its stored status still equals expected and reports whether it did.
	Save(ctx context.Context, hand *BlackjackHand, expected HandStatus) (bool, error)
	ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*BlackjackHand, error)
	// UserStats summarises the finished hands of a user. Pushes count as neither win nor loss.
	UserStats(ctx context.Context, userID int64) (*PlayStats, error)
	WithTransaction(tx *gorm.DB) BlackjackHandRepository
}

// BlackjackUseCase defines the interface for blackjack business logic
type BlackjackUseCase interface {
	Deal(ctx context.Context, userID int64, amount int64) (*BlackjackHand, error)
	Hit(ctx context.Context, userID int64) (*BlackjackHand, error)
	Stand(ctx context.Context, userID int64) (*BlackjackHand, error)
	ActiveHand(ctx context.Context, userID int64) (*BlackjackHand, error)
	RecentHands(ctx context.Context, userID int64, limit int) ([]*BlackjackHand, error)
}
