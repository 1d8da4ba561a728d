package main

import (
	"log/slog"
	"os"

	"github.com/gawa-wiki/gawa/internal/storage/factory"
	"github.com/gawa-wiki/gawa/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type GawaConfig struct {
	StorageConfig factory.StorageConfig
	CatalogPath   string
	SeedDemo      bool
}

func (as *AppConfig) Load() (*GawaConfig, error) {

	err := env.LoadDotEnv(as.ENV, "cmd/gawa_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	return &GawaConfig{
		StorageConfig: *storageCfg,
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		SeedDemo:      os.Getenv("SEED_DEMO") == "true",
	}, nil
}
