package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/diskv"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/memory"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/redis"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
)

// OpenStore opens the driver selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply database migrations: %w", err)
		}
		logger.Info("database migrations applied successfully", "file", cfg.DatabaseFile)
		return db, nil

	case "diskv":
		st, err := diskv.NewStore(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open state dir: %w", err)
		}
		logger.Info("using file state store", "dir", cfg.StateDir)
		return st, nil

	case "redis":
		st, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("using redis store", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
		return st, nil

	case "memory":
		logger.Warn("using in-memory store, session and pending payments are lost on exit")
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewSealer picks the credential sealing key: CREDENTIAL_KEY when set, a
// throwaway key for the memory driver, else the key file (created on
// first start).
func NewSealer(cfg Config, logger *slog.Logger) (*cryptox.Sealer, error) {
	switch {
	case cfg.CredentialKey != "":
		logger.Info("credential key loaded from environment")
		return cryptox.NewSealer([]byte(cfg.CredentialKey))

	case cfg.StoreDriver == "memory":
		return cryptox.NewEphemeralSealer()

	default:
		material, err := cryptox.LoadOrGenerateKeyFile(cfg.CredentialKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load credential key: %w", err)
		}
		logger.Info("credential key file configured", "path", cfg.CredentialKeyPath)
		return cryptox.NewSealer(material)
	}
}
