package domain

import (
	"context"
	"time"
)

// RouletteState is the snapshot served to polling clients
type RouletteState struct {
	ServerTime time.Time
	Round      *Round
	History    []*Round
	Balance    *int64
}

// RouletteUseCase defines the interface for roulette business logic
type RouletteUseCase interface {
	// SyncAndGetCurrentRound lazily advances the round lifecycle and returns the current round.
	SyncAndGetCurrentRound(ctx context.Context) (*Round, error)
	PlaceBet(ctx context.Context, userID int64, kind BetKind, value string, amount int64) (*Bet, error)
	// ResolveRound settles an open round. Calling it again for a finished round changes nothing.
	ResolveRound(ctx context.Context, roundID int64) (*Round, error)
	GetRound(ctx context.Context, roundID int64) (*Round, error)
	RecentResults(ctx context.Context, limit int) ([]*Round, error)
	CurrentBets(ctx context.Context, userID int64) ([]*Bet, error)
	State(ctx context.Context, userID *int64) (*RouletteState, error)
}

// Clock is the source of wall-clock time
type Clock interface {
	Now() time.Time
}

// Randomizer provides uniform integers and shuffles
type Randomizer interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Locker serialises work per key across concurrent requests.
// The returned release func frees only the acquisition it came from.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
