// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/saradorri/casino/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
// A single connection is used so concurrent callers serialise on the database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// Clock is a settable clock for tests
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the frozen time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Randomizer returns scripted draws and applies a scripted shuffle
type Randomizer struct {
	mu      sync.Mutex
	draws   []int
	shuffle func(n int, swap func(i, j int))
}

// NewRandomizer returns a randomizer that yields draws in order, then repeats the last one
func NewRandomizer(draws ...int) *Randomizer {
	return &Randomizer{draws: draws}
}

// WithShuffle sets the shuffle applied to decks
func (r *Randomizer) WithShuffle(shuffle func(n int, swap func(i, j int))) *Randomizer {
	r.shuffle = shuffle
	return r
}

// Intn returns the next scripted value, clamped into [0, n)
func (r *Randomizer) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.draws) == 0 {
		return 0
	}
	v := r.draws[0]
	if len(r.draws) > 1 {
		r.draws = r.draws[1:]
	}
	return ((v % n) + n) % n
}

// Shuffle applies the scripted shuffle, or leaves the order untouched
func (r *Randomizer) Shuffle(n int, swap func(i, j int)) {
	if r.shuffle != nil {
		r.shuffle(n, swap)
	}
}
