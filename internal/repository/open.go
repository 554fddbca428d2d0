package repository

import (
	"context"
	"fmt"

	"propertychat/internal/config"

	"github.com/rs/zerolog/log"
)

// Open connects the storage backend selected by STORAGE_DRIVER
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Info().Bool("seeded", cfg.Storage.SeedData).Msg("using in-memory storage")
		if cfg.Storage.SeedData {
			return NewSeededMemoryRepository(), nil
		}
		return NewMemoryRepository(), nil

	case "postgres", "postgresql", "":
		repo, err := NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, err
		}

		if cfg.PostgreSQL.AutoSchema {
			if err := repo.EnsureSchema(ctx); err != nil {
				repo.Close()
				return nil, err
			}
		}
		if cfg.Storage.SeedData {
			if _, err := repo.SeedIfEmpty(ctx); err != nil {
				repo.Close()
				return nil, err
			}
		}

		log.Info().Str("host", cfg.PostgreSQL.Host).Str("database", cfg.PostgreSQL.Database).Msg("connected to PostgreSQL")
		return repo, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
