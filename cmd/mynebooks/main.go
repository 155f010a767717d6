package main

import (
	"MyneBooks/internal/adapters/postgres"
	"MyneBooks/internal/adapters/security"
	"MyneBooks/internal/core/ports"
	"MyneBooks/internal/shared/config"
	"MyneBooks/internal/shared/logger"
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mynebooks",
	Short:         "Telegram bot for finding and sharing books",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the base logger.
func setup() (*config.Config, zerolog.Logger, error) {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel)
	baseLogger.Debug().
		Str("app_env", cfg.AppEnv).
		Strs("prefixes", cfg.Bot.Prefixes).
		Str("mode", cfg.Bot.Mode).
		Msg("Configuration loaded")

	return cfg, baseLogger, nil
}

// store is the opened chat storage.
type store struct {
	db    *postgres.DB
	chats ports.ChatRepository
}

func (s *store) Close() { s.db.Close() }

// openStore connects to Postgres, creates the schema if needed and builds
// the chat repository.
func openStore(ctx context.Context, cfg *config.Config, baseLogger *zerolog.Logger) (*store, error) {
	if err := cfg.ValidateForStorage(); err != nil {
		return nil, err
	}

	// 1. Initialize the Security Service
	keyBytes, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ENCRYPTION_KEY, it must be hex-encoded: %w", err)
	}
	secSvc, err := security.NewAESService(keyBytes, baseLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize security service: %w", err)
	}

	// 2. Initialize Database
	db, err := postgres.NewDB(ctx, cfg.Database.URL, cfg.Database.MaxConns, baseLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	// 3. Initialize Repositories
	return &store{
		db:    db,
		chats: postgres.NewChatRepository(db, secSvc, baseLogger),
	}, nil
}
