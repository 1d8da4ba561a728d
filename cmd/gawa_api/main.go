package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gawa-wiki/gawa/internal/catalog"
	"github.com/gawa-wiki/gawa/internal/router"
	"github.com/gawa-wiki/gawa/internal/search"
	"github.com/gawa-wiki/gawa/internal/seed"
	"github.com/gawa-wiki/gawa/internal/server"
	"github.com/gawa-wiki/gawa/internal/stats"
	"github.com/gawa-wiki/gawa/internal/storage/factory"
	pkgserver "github.com/gawa-wiki/gawa/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := factory.NewStore(ctx, &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create store", "error", err, "type", cfg.StorageConfig.Type)
		os.Exit(1)
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			slog.Error("Failed to load catalog file", "error", err, "path", cfg.CatalogPath)
			os.Exit(1)
		}
	}

	if cfg.SeedDemo {
		seeded, err := seed.IfEmpty(ctx, store, cat, time.Now().UTC())
		if err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		if seeded {
			slog.Info("Seeded demo dataset")
		}
	}

	s := server.NewServer(sCfg)

	var hc pkgserver.HealthChecker = pkgserver.NewOkHealthChecker()
	if pinger, ok := store.(interface {
		Ping(ctx context.Context) error
	}); ok {
		hc = pkgserver.NewPingHealthChecker(pinger.Ping)
	}
	s.SetupHealthChecks(hc)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "GAWA API is running")
	})

	router.NewStatsRouter(s.Echo, stats.NewEngine(store)).Bind()
	router.NewResultsRouter(s.Echo, search.NewEngine(store, cat)).Bind()
	router.NewCatalogRouter(s.Echo, cat).Bind()

	slog.Info("Starting server", "port", sCfg.Port, "storage", cfg.StorageConfig.Type)
	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
