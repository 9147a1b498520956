// Command importer migrates a JSON-file reading log into a SQL-backed
// reading store (sqlite or postgres), preserving log order. Intended as a
// one-shot job when moving a deployment off the file backend.
package main

import (
	"context"
	"log"
	"time"

	"github.com/aetherhq/aether/services/api/catalog"
	"github.com/aetherhq/aether/services/api/registry"
	"github.com/aetherhq/aether/services/api/store"
	"github.com/aetherhq/aether/services/importer/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("importer failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	source := store.NewFileStore(cfg.SourcePath)
	readings, err := source.LoadAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("loaded %d readings from %s", len(readings), cfg.SourcePath)

	if cfg.SkipUnknown {
		if cfg.CatalogFile == "" {
			log.Printf("IMPORT_SKIP_UNKNOWN set without IMPORT_CATALOG; importing all readings")
		} else {
			entries, err := catalog.Load(cfg.CatalogFile)
			if err != nil {
				return err
			}
			reg := registry.New(entries)
			kept := readings[:0]
			for _, r := range readings {
				if reg.Has(r.SensorID) {
					kept = append(kept, r)
				}
			}
			log.Printf("filtered to %d readings for %d catalog sensors", len(kept), reg.Len())
			readings = kept
		}
	}

	if cfg.DryRun {
		for _, r := range readings {
			log.Printf("dry-run: would import sensor=%s ts=%s", r.SensorID, r.Timestamp.Format(time.RFC3339))
		}
		return nil
	}

	target, err := store.Open(ctx, cfg.Driver, cfg.TargetDSN)
	if err != nil {
		return err
	}
	defer target.Close()

	for _, r := range readings {
		if err := target.Append(ctx, r); err != nil {
			return err
		}
	}

	log.Printf("imported %d readings into %s store", len(readings), cfg.Driver)
	return nil
}
