package seeder

import (
	"context"
	"fmt"
	"log"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/usecase/user"
)

// DefaultPassword is the password every seeded account logs in with
const DefaultPassword = "password123"

// Account describes one seeded user
type Account struct {
	Username string
	Role     domain.Role
}

// DefaultAccounts are the demo players plus a single admin
var DefaultAccounts = []Account{
	{Username: "user1", Role: domain.RoleUser},
	{Username: "user2", Role: domain.RoleUser},
	{Username: "user3", Role: domain.RoleUser},
	{Username: "user4", Role: domain.RoleUser},
	{Username: "admin", Role: domain.RoleAdmin},
}

// Seeder handles database seeding operations
type Seeder struct {
	userRepo        domain.UserRepository
	walletRepo      domain.WalletRepository
	startingBalance int64
}

// NewSeeder creates a new seeder instance
func NewSeeder(userRepo domain.UserRepository, walletRepo domain.WalletRepository, startingBalance int64) *Seeder {
	return &Seeder{
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		startingBalance: startingBalance,
	}
}

// SeedUsers creates the default accounts and their wallets. Existing usernames are left alone.
func (s *Seeder) SeedUsers(ctx context.Context) error {
	return s.Seed(ctx, DefaultAccounts)
}

// Seed creates the given accounts, skipping usernames that already exist
func (s *Seeder) Seed(ctx context.Context, accounts []Account) error {
	log.Printf("Seeding %d users...", len(accounts))

	passwordHash := user.HashPassword(DefaultPassword)

	for _, a := range accounts {
		existing, err := s.userRepo.GetByUsername(ctx, a.Username)
		if err != nil {
			return fmt.Errorf("look up %s: %w", a.Username, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping.", a.Username)
			continue
		}

		u := &domain.User{
			Username: a.Username,
			Password: passwordHash,
			Role:     a.Role,
		}
		if err := s.userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("create %s: %w", a.Username, err)
		}
		if _, err := s.walletRepo.GetOrCreate(ctx, u.ID, s.startingBalance); err != nil {
			return fmt.Errorf("create wallet for %s: %w", a.Username, err)
		}
		log.Printf("Created user %s.", a.Username)
	}

	log.Printf("User seeding completed successfully")
	return nil
}
