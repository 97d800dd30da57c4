package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medatlas/hospital-discovery/internal/adapters/database"
	"github.com/medatlas/hospital-discovery/internal/adapters/search"
	"github.com/medatlas/hospital-discovery/internal/application/services"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/postgres"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/typesense"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/observability"
	"github.com/medatlas/hospital-discovery/pkg/config"
)

// Backfills the Typesense hospital index from the catalog, once or on an
// interval.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("hospital-discovery-indexer", cfg.Server.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("interval", interval).Msg("reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	index := search.NewTypesenseAdapter(tsClient)
	if reset {
		if err := index.Drop(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to drop collection, continuing")
		}
	}
	if err := index.InitSchema(ctx); err != nil {
		return err
	}

	catalog := database.NewHospitalAdapter(pgClient)
	snapshot, err := catalog.Snapshot(ctx)
	if err != nil {
		return err
	}

	// Only publicly listed hospitals are ever searchable
	candidates := services.FilterCandidates(snapshot)

	indexed := 0
	for _, hospital := range candidates {
		if err := index.Index(ctx, hospital); err != nil {
			log.Warn().Err(err).Str("hospital_id", hospital.ID).Msg("failed to index hospital")
			continue
		}
		indexed++
	}

	log.Info().Int("indexed", indexed).Int("candidates", len(candidates)).Msg("reindex done")
	return nil
}
