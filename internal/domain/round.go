package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RoundStatus represents the lifecycle status of a roulette round
type RoundStatus string

const (
	RoundStatusOpen     RoundStatus = "open"
	RoundStatusFinished RoundStatus = "finished"
)

// Color is the colour of a roulette pocket
type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
	ColorGreen Color = "green"
)

// Wheel bounds
const (
	MinPocket = 0
	MaxPocket = 36
)

var redPockets = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {},
	12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {},
	30: {}, 32: {}, 34: {}, 36: {},
}

// ColorOf returns the colour of a pocket number
func ColorOf(number int) Color {
	if number == 0 {
		return ColorGreen
	}
	if _, ok := redPockets[number]; ok {
		return ColorRed
	}
	return ColorBlack
}

// Round is one timed cycle of roulette betting ending in a single shared draw.
// Result fields are either all nil or all set.
type Round struct {
	ID           int64       `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	Seq          int64       `json:"seq" gorm:"uniqueIndex;not null;type:bigint"`
	StartedAt    time.Time   `json:"started_at" gorm:"not null"`
	EndsAt       time.Time   `json:"ends_at" gorm:"not null"`
	Status       RoundStatus `json:"status" gorm:"type:varchar(16);not null;default:'open';index"`
	ResultNumber *int        `json:"result_number" gorm:"type:smallint"`
	ResultColor  *Color      `json:"result_color" gorm:"type:varchar(8)"`
	ResolvedAt   *time.Time  `json:"resolved_at"`
	CreatedAt    time.Time   `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for Round
func (r Round) TableName() string {
	return "roulette_rounds"
}

// IsResolved reports whether the round carries a result
func (r *Round) IsResolved() bool {
	return r.ResultNumber != nil && r.ResultColor != nil && r.ResolvedAt != nil
}

// AcceptsBets reports whether bets may still be attached to the round at now
func (r *Round) AcceptsBets(now time.Time) bool {
	return r.Status == RoundStatusOpen && now.Before(r.EndsAt)
}

// RoundTransition is the action needed to bring the latest round up to date
type RoundTransition int

const (
	TransitionNone RoundTransition = iota
	TransitionOpenRound
	TransitionSettle
)

func (t RoundTransition) String() string {
	switch t {
	case TransitionOpenRound:
		return "open_round"
	case TransitionSettle:
		return "settle"
	default:
		return "none"
	}
}

// NextTransition computes the transition the round lifecycle requires at now.
// latest may be nil when no round has ever been created.
func NextTransition(latest *Round, now time.Time, cooldown time.Duration) RoundTransition {
	if latest == nil {
		return TransitionOpenRound
	}
	switch latest.Status {
	case RoundStatusOpen:
		if !now.Before(latest.EndsAt) {
			return TransitionSettle
		}
	case RoundStatusFinished:
		if !now.Before(latest.EndsAt.Add(cooldown)) {
			return TransitionOpenRound
		}
	}
	return TransitionNone
}

// RoundResult is the outcome of a draw
type RoundResult struct {
	Number int
	Color  Color
}

// NewRoundResult builds the result for a drawn pocket
func NewRoundResult(number int) RoundResult {
	return RoundResult{Number: number, Color: ColorOf(number)}
}

// RoundRepository defines the interface for round persistence
type RoundRepository interface {
	GetByID(ctx context.Context, id int64) (*Round, error)
	GetByIDForShare(ctx context.Context, id int64) (*Round, error)
	GetLatest(ctx context.Context) (*Round, error)
	// CreateIfAbsent inserts the round unless one with the same Seq exists and reports whether it inserted.
	CreateIfAbsent(ctx context.Context, round *Round) (bool, error)
	// Finish moves an open round to finished with its result and reports whether this call did it.
	Finish(ctx context.Context, id int64, result RoundResult, resolvedAt time.Time) (bool, error)
	ListResolved(ctx context.Context, limit int) ([]*Round, error)
	Count(ctx context.Context) (int64, error)
	WithTransaction(tx *gorm.DB) RoundRepository
}
