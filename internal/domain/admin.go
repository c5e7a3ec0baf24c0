package domain

import "context"

// CasinoStats aggregates activity across all roulette rounds
type CasinoStats struct {
	Rounds       int64  `json:"rounds"`
	Bets         int64  `json:"bets"`
	TotalStaked  int64  `json:"total_staked"`
	TotalPaidOut int64  `json:"total_paid_out"`
	HouseResult  int64  `json:"house_result"`
	PayoutRatio  string `json:"payout_ratio"`
}

// AdminUseCase defines the interface for administrative operations
type AdminUseCase interface {
	SetBalance(ctx context.Context, adminID, userID int64, balance int64) (*Wallet, error)
	GrantBonus(ctx context.Context, adminID int64) (int, error)
	ToggleBlock(ctx context.Context, adminID, userID int64) (*User, error)
	Stats(ctx context.Context) (*CasinoStats, error)
}
