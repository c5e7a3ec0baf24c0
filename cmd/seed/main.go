package main

import (
	"context"
	"flag"
	"log"

	"github.com/saradorri/casino/internal/config"
	"github.com/saradorri/casino/internal/infrastructure/database"
	"github.com/saradorri/casino/internal/infrastructure/repository"
	"github.com/saradorri/casino/internal/infrastructure/seeder"
)

func main() {
	var (
		configPath = flag.String("config", "./config", "Path to config directory")
		configFile = flag.String("env", config.GetEnvironment(), "Environment")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath, *configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(&database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	newSeeder := seeder.NewSeeder(
		repository.NewUserRepository(db.DB),
		repository.NewWalletRepository(db.DB),
		cfg.Wallet.StartingBalance,
	)

	log.Println("Starting database seeding...")
	if err := newSeeder.SeedUsers(context.Background()); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Println("Database seeding completed successfully")
}
