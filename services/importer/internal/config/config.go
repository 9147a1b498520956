package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the reading-log importer.
type Config struct {
	SourcePath  string
	Driver      string
	TargetDSN   string
	DryRun      bool
	SkipUnknown bool
	CatalogFile string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.SourcePath = strings.TrimSpace(os.Getenv("IMPORT_SOURCE"))
	if cfg.SourcePath == "" {
		return cfg, errors.New("IMPORT_SOURCE is required")
	}

	cfg.Driver = strings.TrimSpace(os.Getenv("IMPORT_DRIVER"))
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.Driver != "sqlite" && cfg.Driver != "postgres" {
		return cfg, fmt.Errorf("unsupported IMPORT_DRIVER: %s", cfg.Driver)
	}

	cfg.TargetDSN = strings.TrimSpace(os.Getenv("IMPORT_TARGET"))
	if cfg.TargetDSN == "" {
		return cfg, errors.New("IMPORT_TARGET is required")
	}

	cfg.CatalogFile = strings.TrimSpace(os.Getenv("IMPORT_CATALOG"))

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	skip := strings.TrimSpace(os.Getenv("IMPORT_SKIP_UNKNOWN"))
	cfg.SkipUnknown = skip == "1" || strings.EqualFold(skip, "true")

	return cfg, nil
}
