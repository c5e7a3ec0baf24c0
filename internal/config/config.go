package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Roulette  RouletteConfig  `mapstructure:"roulette"`
	Blackjack BlackjackConfig `mapstructure:"blackjack"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Lock      LockConfig      `mapstructure:"lock"`
	Events    EventsConfig    `mapstructure:"events"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// RouletteConfig holds the round timing and bet admission limits
type RouletteConfig struct {
	RoundDuration   time.Duration `mapstructure:"roundDuration"`
	Cooldown        time.Duration `mapstructure:"cooldown"`
	MinBet          int64         `mapstructure:"minBet"`
	MaxBet          int64         `mapstructure:"maxBet"`
	MaxBetsPerRound int           `mapstructure:"maxBetsPerRound"`
	DuplicateWindow time.Duration `mapstructure:"duplicateWindow"`
	HistorySize     int           `mapstructure:"historySize"`
}

// BlackjackConfig holds blackjack stake limits
type BlackjackConfig struct {
	MinBet int64 `mapstructure:"minBet"`
	MaxBet int64 `mapstructure:"maxBet"`
}

// WalletConfig holds wallet defaults
type WalletConfig struct {
	StartingBalance int64 `mapstructure:"startingBalance"`
	BonusAmount     int64 `mapstructure:"bonusAmount"`
}

// LockConfig selects the per-user lock implementation
type LockConfig struct {
	Driver        string        `mapstructure:"driver"`
	Timeout       time.Duration `mapstructure:"timeout"`
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redisAddr"`
	RedisPassword string        `mapstructure:"redisPassword"`
	RedisDB       int           `mapstructure:"redisDB"`
}

// EventsConfig selects and configures the outbox event publisher
type EventsConfig struct {
	Driver       string   `mapstructure:"driver"`
	WebhookURL   string   `mapstructure:"webhookURL"`
	KafkaBrokers []string `mapstructure:"kafkaBrokers"`
	KafkaTopic   string   `mapstructure:"kafkaTopic"`
	NatsURL      string   `mapstructure:"natsURL"`
	NatsSubject  string   `mapstructure:"natsSubject"`
	NatsToken    string   `mapstructure:"natsToken"`
}

// OutboxConfig holds outbox processor settings
type OutboxConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	BatchSize  int           `mapstructure:"batchSize"`
	MaxRetries int           `mapstructure:"maxRetries"`
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetMigrationURL returns the database URL in the form golang-migrate expects
func (c *Config) GetMigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the server address for binding
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// ApplyDefaults fills zero values with the documented defaults
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Roulette.RoundDuration <= 0 {
		c.Roulette.RoundDuration = 30 * time.Second
	}
	if c.Roulette.Cooldown <= 0 {
		c.Roulette.Cooldown = 15 * time.Second
	}
	if c.Roulette.MinBet <= 0 {
		c.Roulette.MinBet = 1
	}
	if c.Roulette.MaxBet <= 0 {
		c.Roulette.MaxBet = 5000
	}
	if c.Roulette.MaxBetsPerRound <= 0 {
		c.Roulette.MaxBetsPerRound = 10
	}
	if c.Roulette.DuplicateWindow <= 0 {
		c.Roulette.DuplicateWindow = 3 * time.Second
	}
	if c.Roulette.HistorySize <= 0 {
		c.Roulette.HistorySize = 10
	}
	if c.Blackjack.MinBet <= 0 {
		c.Blackjack.MinBet = 1
	}
	if c.Blackjack.MaxBet <= 0 {
		c.Blackjack.MaxBet = 5000
	}
	if c.Wallet.StartingBalance <= 0 {
		c.Wallet.StartingBalance = 1000
	}
	if c.Wallet.BonusAmount <= 0 {
		c.Wallet.BonusAmount = 1000
	}
	if c.Lock.Driver == "" {
		c.Lock.Driver = "memory"
	}
	if c.Lock.Timeout <= 0 {
		c.Lock.Timeout = 5 * time.Second
	}
	if c.Lock.TTL <= 0 {
		c.Lock.TTL = 10 * time.Second
	}
	if c.Events.Driver == "" {
		c.Events.Driver = "log"
	}
	if c.Outbox.Interval <= 0 {
		c.Outbox.Interval = 5 * time.Second
	}
	if c.Outbox.BatchSize <= 0 {
		c.Outbox.BatchSize = 100
	}
	if c.Outbox.MaxRetries <= 0 {
		c.Outbox.MaxRetries = 5
	}
}

// GetEnvironment returns the current environment
func GetEnvironment() string {
	if env := os.Getenv("GAME_ENV"); env != "" {
		return env
	}
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "development"
}
