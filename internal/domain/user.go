package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Role represents the access level of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a player in the system
type User struct {
	ID        int64          `json:"user_id" gorm:"primaryKey;column:id;autoIncrement"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null;type:varchar(64)"`
	Password  string         `json:"-" gorm:"not null;type:varchar(128)"`
	Role      Role           `json:"role" gorm:"type:varchar(16);not null;default:'user'"`
	IsBlocked bool           `json:"is_blocked" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for User
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository defines the interface for user data
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	ListIDs(ctx context.Context) ([]int64, error)
	WithTransaction(tx *gorm.DB) UserRepository
}

// UserProfile is a user together with its wallet balance
type UserProfile struct {
	User    *User
	Balance int64
}

// PlayStats summarises a user's settled wagers of one game.
// Amounts are net of the stake: a win counts payout minus stake, a loss counts the stake.
type PlayStats struct {
	Wins        int64 `json:"wins"`
	Losses      int64 `json:"losses"`
	WonSum      int64 `json:"won_sum"`
	LostSum     int64 `json:"lost_sum"`
	BiggestWin  int64 `json:"biggest_win"`
	BiggestLoss int64 `json:"biggest_loss"`
}

// Add combines two summaries
func (s PlayStats) Add(o PlayStats) PlayStats {
	return PlayStats{
		Wins:        s.Wins + o.Wins,
		Losses:      s.Losses + o.Losses,
		WonSum:      s.WonSum + o.WonSum,
		LostSum:     s.LostSum + o.LostSum,
		BiggestWin:  max(s.BiggestWin, o.BiggestWin),
		BiggestLoss: max(s.BiggestLoss, o.BiggestLoss),
	}
}

// ProfileStats is a user's record across roulette and blackjack
type ProfileStats struct {
	PlayStats
	// Luck is the share of won wagers in percent, rounded half up
	Luck int64 `json:"luck"`
}

// NewProfileStats derives the luck percentage from combined stats
func NewProfileStats(stats PlayStats) *ProfileStats {
	var luck int64
	if total := stats.Wins + stats.Losses; total > 0 {
		luck = (stats.Wins*100 + total/2) / total
	}
	return &ProfileStats{PlayStats: stats, Luck: luck}
}

// UserUseCase defines the interface for user business logic
type UserUseCase interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	GetUserInfo(ctx context.Context, userID int64) (*UserProfile, error)
	ProfileStats(ctx context.Context, userID int64) (*ProfileStats, error)
}
