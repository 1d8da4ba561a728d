package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gawa-wiki/gawa/internal/storage"
	"github.com/gawa-wiki/gawa/internal/storage/pg"
)

type StorageConfig struct {
	storage.Type
	Pg         *pg.PoolConfig
	SQLitePath string
}

func LoadEnv() (*StorageConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		storageType = storage.InMem
	}
	if storageType != storage.PG && storageType != storage.SQLite && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.PG, storage.SQLite, storage.InMem})
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if storageType == storage.SQLite && sqlitePath == "" {
		sqlitePath = "gawa.db"
	}

	return &StorageConfig{
		Type:       storageType,
		Pg:         pgCfg,
		SQLitePath: sqlitePath,
	}, nil
}
