package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// BetKind is the category of a roulette wager
type BetKind string

const (
	BetKindNumber BetKind = "number"
	BetKindColor  BetKind = "color"
	BetKindParity BetKind = "parity"
)

// Parity of a pocket number
type Parity string

const (
	ParityEven Parity = "even"
	ParityOdd  Parity = "odd"
)

// Payout multipliers, stake included
const (
	NumberMultiplier int64 = 36
	ColorMultiplier  int64 = 2
	ParityMultiplier int64 = 2
)

// BetSelection is what a bet is placed on. The set of implementations is closed:
// NumberSelection, ColorSelection and ParitySelection.
type BetSelection interface {
	Kind() BetKind
	Value() string
	// Wins reports whether the selection wins against a non-zero result.
	Wins(result RoundResult) bool
	Multiplier() int64
	sealed()
}

// NumberSelection is a straight-up bet on a single pocket 1-36
type NumberSelection struct {
	Number int
}

func (s NumberSelection) Kind() BetKind                { return BetKindNumber }
func (s NumberSelection) Value() string                { return strconv.Itoa(s.Number) }
func (s NumberSelection) Wins(result RoundResult) bool { return result.Number == s.Number }
func (s NumberSelection) Multiplier() int64            { return NumberMultiplier }
func (NumberSelection) sealed()                        {}

// ColorSelection is a bet on red or black
type ColorSelection struct {
	Color Color
}

func (s ColorSelection) Kind() BetKind                { return BetKindColor }
func (s ColorSelection) Value() string                { return string(s.Color) }
func (s ColorSelection) Wins(result RoundResult) bool { return result.Color == s.Color }
func (s ColorSelection) Multiplier() int64            { return ColorMultiplier }
func (ColorSelection) sealed()                        {}

// ParitySelection is a bet on even or odd
type ParitySelection struct {
	Parity Parity
}

func (s ParitySelection) Kind() BetKind { return BetKindParity }
func (s ParitySelection) Value() string { return string(s.Parity) }
func (s ParitySelection) Wins(result RoundResult) bool {
	even := result.Number%2 == 0
	return (s.Parity == ParityEven && even) || (s.Parity == ParityOdd && !even)
}
func (s ParitySelection) Multiplier() int64 { return ParityMultiplier }
func (ParitySelection) sealed()             {}

// ParseSelection validates a kind/value pair and returns the matching selection
func ParseSelection(kind BetKind, value string) (BetSelection, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch kind {
	case BetKindNumber:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("number bet value %q is not an integer", value)
		}
		if n < 1 || n > MaxPocket {
			return nil, fmt.Errorf("number bet value %d out of range 1-%d", n, MaxPocket)
		}
		return NumberSelection{Number: n}, nil
	case BetKindColor:
		c := Color(value)
		if c != ColorRed && c != ColorBlack {
			return nil, fmt.Errorf("color bet value %q must be red or black", value)
		}
		return ColorSelection{Color: c}, nil
	case BetKindParity:
		p := Parity(value)
		if p != ParityEven && p != ParityOdd {
			return nil, fmt.Errorf("parity bet value %q must be even or odd", value)
		}
		return ParitySelection{Parity: p}, nil
	default:
		return nil, fmt.Errorf("unknown bet kind %q", kind)
	}
}

// ResolvePayout applies the payout rule to a stake on a selection. Zero loses every bet.
func ResolvePayout(sel BetSelection, amount int64, result RoundResult) (bool, int64) {
	if result.Number == 0 {
		return false, 0
	}
	if !sel.Wins(result) {
		return false, 0
	}
	return true, amount * sel.Multiplier()
}

// Bet is a stake on a round. Outcome fields are written once by settlement.
type Bet struct {
	ID        int64      `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID    int64      `json:"user_id" gorm:"index:idx_bets_round_user,priority:2;not null;type:bigint"`
	RoundID   int64      `json:"round_id" gorm:"index:idx_bets_round_user,priority:1;not null;type:bigint"`
	Kind      BetKind    `json:"kind" gorm:"type:varchar(16);not null"`
	Value     string     `json:"value" gorm:"type:varchar(16);not null"`
	Amount    int64      `json:"amount" gorm:"type:bigint;not null"`
	IsWin     *bool      `json:"is_win"`
	Payout    *int64     `json:"payout" gorm:"type:bigint"`
	PlacedAt  time.Time  `json:"placed_at" gorm:"not null"`
	SettledAt *time.Time `json:"settled_at"`
}

// TableName specifies the table name for Bet
func (b Bet) TableName() string {
	return "bets"
}

// Selection parses the stored kind/value back into a selection
func (b *Bet) Selection() (BetSelection, error) {
	return ParseSelection(b.Kind, b.Value)
}

// IsSettled reports whether the bet already carries an outcome
func (b *Bet) IsSettled() bool {
	return b.IsWin != nil
}

// BetOutcome is a settled result for one bet
type BetOutcome struct {
	BetID  int64
	IsWin  bool
	Payout int64
}

// BetTotals aggregates stakes and payouts across all bets
type BetTotals struct {
	Staked   int64
	PaidOut  int64
	BetCount int64
}

// BetRepository defines the interface for bet persistence
type BetRepository interface {
	Create(ctx context.Context, bet *Bet) error
	ListByRound(ctx context.Context, roundID int64) ([]*Bet, error)
	ListByRoundAndUser(ctx context.Context, roundID, userID int64) ([]*Bet, error)
	// ApplyOutcome writes the outcome of an unsettled bet and reports whether it did.
	ApplyOutcome(ctx context.Context, outcome BetOutcome, settledAt time.Time) (bool, error)
	Totals(ctx context.Context) (*BetTotals, error)
	// UserStats summarises the settled bets of a user
	UserStats(ctx context.Context, userID int64) (*PlayStats, error)
	WithTransaction(tx *gorm.DB) BetRepository
}
