package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"propertychat/internal/config"
	"propertychat/internal/ingest"
	"propertychat/internal/observability"
	"propertychat/internal/repository"
	"propertychat/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	dir := flag.String("dir", "", "directory holding scraped listing payloads (*.json)")
	workers := flag.Int("workers", 4, "number of concurrent inserts")
	embed := flag.Bool("embed", false, "compute description embeddings for imported listings")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("property-ingest", cfg.Logging.Format, cfg.Logging.Level)

	if *dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(cfg, *dir, *workers, *embed))
}

func run(cfg *config.Config, dir string, workers int, embed bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// listings are imported as-is, without the mock seed
	cfg.Storage.SeedData = false
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to open storage")
		return 1
	}
	defer store.Close()

	var embedder ingest.Embedder
	if embed {
		client := service.NewOpenAIClient(&cfg.OpenAI)
		if !client.IsEnabled() {
			log.Error().Msg("-embed requires OPENAI_API_KEY")
			return 1
		}
		embedder = service.NewPropertyService(store, nil, client, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}

	result, err := ingest.NewImporter(store, embedder, workers).ImportDir(ctx, dir)
	if err != nil {
		log.Error().Err(err).Msg("import failed")
		return 1
	}

	for _, e := range result.Errors {
		log.Warn().Str("error", e).Msg("import error")
	}
	log.Info().
		Int("imported", result.Imported).
		Int("failed", result.Failed).
		Int("embedded", result.Embedded).
		Msg("done")

	if result.Failed > 0 {
		return 1
	}
	return 0
}
