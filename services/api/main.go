package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aetherhq/aether/services/api/catalog"
	"github.com/aetherhq/aether/services/api/cleaning"
	"github.com/aetherhq/aether/services/api/config"
	"github.com/aetherhq/aether/services/api/history"
	httpserver "github.com/aetherhq/aether/services/api/http"
	"github.com/aetherhq/aether/services/api/ingest"
	"github.com/aetherhq/aether/services/api/registry"
	"github.com/aetherhq/aether/services/api/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zap.L().Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	entries, err := catalog.Load(cfg.Data.CatalogFile)
	if err != nil {
		zap.L().Fatal("catalog load error", zap.Error(err))
	}
	reg := registry.New(entries)

	raw, err := history.NewRepository(cfg.Data.HistoricalFile).Load()
	if err != nil {
		zap.L().Fatal("historical data load error", zap.Error(err))
	}
	cleaned, stats := cleaning.Clean(raw)
	zap.L().Info("historical data cleaned",
		zap.Int("rows_loaded", stats.RowsLoaded),
		zap.Int("rows_kept", stats.RowsKept),
		zap.Int("rows_dropped", stats.RowsDropped),
		zap.Float64("percent_cleaned", stats.PercentCleaned))

	readingStore, err := store.Open(ctx, cfg.Storage.Driver, cfg.StorageDSN())
	if err != nil {
		zap.L().Fatal("store error", zap.Error(err))
	}
	defer readingStore.Close()

	persisted, err := readingStore.LoadAll(ctx)
	if err != nil {
		zap.L().Fatal("store hydration error", zap.Error(err))
	}
	reg.Hydrate(persisted)
	zap.L().Info("registry hydrated", zap.Int("readings", len(persisted)))

	svc := ingest.New(reg, readingStore, cfg.Pollutants, time.Now().UTC())

	srv, err := httpserver.New(cfg, svc, reg, cleaned, stats)
	if err != nil {
		zap.L().Fatal("server setup error", zap.Error(err))
	}
	zap.L().Info("REST API listening", zap.String("addr", cfg.ListenAddr()))

	if err := srv.Run(ctx); err != nil {
		zap.L().Fatal("server error", zap.Error(err))
	}
}
