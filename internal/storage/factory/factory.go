package factory

import (
	"context"
	"fmt"

	"github.com/gawa-wiki/gawa/internal/storage"
	"github.com/gawa-wiki/gawa/internal/storage/in_mem"
	"github.com/gawa-wiki/gawa/internal/storage/pg"
	"github.com/gawa-wiki/gawa/internal/storage/sqlite"
)

// NewStore creates a storage.Store based on the configured storage type.
func NewStore(ctx context.Context, cfg *StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		return pg.NewStore(pool), nil

	case storage.SQLite:
		return sqlite.Open(cfg.SQLitePath)

	case storage.InMem:
		return in_mem.NewInMemStore(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStore), cfg.Type)
	}
}
