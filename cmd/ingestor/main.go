package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"menu_agent/internal/adapters/observability"
	"menu_agent/internal/adapters/upstream"
	"menu_agent/internal/app"
	"menu_agent/internal/shared"
	"menu_agent/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.UpstreamBase).
		Int("workers", cfg.Workers).
		Str("store", cfg.StoreDriver).
		Msg("ingestor starting")

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer closeRepo()

	cache, closeCache, err := storage.OpenCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cache open failed")
	}
	defer closeCache()

	client, err := upstream.New(cfg.UpstreamBase, cfg.UpstreamKey, cfg.UpstreamRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upstream client")
	}
	ing := app.NewIngestionService(client, repo, app.NewCatalogService(repo, cache))

	payloads, err := ing.FetchRestaurants(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing upstream restaurants failed")
	}
	log.Info().Int("restaurants", len(payloads)).Msg("upstream catalog fetched")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var (
		wg       sync.WaitGroup
		imported atomic.Int64
		failed   atomic.Int64
	)

	for _, p := range payloads {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("ingestion interrupted")
			break
		}

		wg.Add(1)
		go func(payload map[string]any) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := ing.IngestRestaurant(ctx, payload)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("restaurant", res.Name).Err(err).Msg("ingest failed")
				return
			}
			if res.Existing {
				log.Info().Str("restaurant", res.Name).Msg("already present, skipped")
				return
			}
			imported.Add(1)
			log.Info().
				Str("restaurant", res.Name).
				Int64("id", res.RestaurantID).
				Int("items", res.Items).
				Int("skipped", res.Skipped).
				Msg("ingest ok")
		}(p)
	}

	wg.Wait()
	log.Info().Int64("imported", imported.Load()).Int64("failed", failed.Load()).Msg("ingestion completed")
	if failed.Load() > 0 {
		stop()
		closeCache()
		closeRepo()
		os.Exit(1)
	}
}
