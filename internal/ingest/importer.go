package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"propertychat/internal/model"
	"propertychat/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Embedder computes and stores embeddings for freshly imported properties
type Embedder interface {
	EmbedProperties(ctx context.Context, properties []model.Property) (int, []string)
}

// Result summarises one import run
type Result struct {
	Imported int
	Failed   int
	Embedded int
	Errors   []string
}

// Importer writes listing payloads into the property store
type Importer struct {
	store    repository.PropertyStore
	embedder Embedder
	validate *validator.Validate
	workers  int
}

// NewImporter creates a new importer. embedder may be nil to skip embedding.
func NewImporter(store repository.PropertyStore, embedder Embedder, workers int) *Importer {
	if workers <= 0 {
		workers = 1
	}
	return &Importer{
		store:    store,
		embedder: embedder,
		validate: validator.New(),
		workers:  workers,
	}
}

// ImportDir imports every *.json file in dir
func (im *Importer) ImportDir(ctx context.Context, dir string) (*Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(files)

	log.Info().Str("dir", dir).Int("files", len(files)).Msg("importing listing payloads")

	payloads := make([][]byte, 0, len(files))
	names := make([]string, 0, len(files))
	var readErrs []string
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			readErrs = append(readErrs, fmt.Sprintf("%s: %v", filepath.Base(f), err))
			continue
		}
		payloads = append(payloads, data)
		names = append(names, filepath.Base(f))
	}

	result := im.Import(ctx, names, payloads)
	result.Failed += len(readErrs)
	result.Errors = append(readErrs, result.Errors...)
	return result, nil
}

// Import decodes, validates and stores the payloads concurrently. names label the
// payloads in error messages. Listings already present are updated in place.
func (im *Importer) Import(ctx context.Context, names []string, payloads [][]byte) *Result {
	var (
		mu       sync.Mutex
		result   = &Result{}
		imported []model.Property
	)

	p := pool.New().WithMaxGoroutines(im.workers)
	for i := range payloads {
		name, data := names[i], payloads[i]
		p.Go(func() {
			stored, err := im.importOne(ctx, data)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
				log.Warn().Err(err).Str("file", name).Msg("failed to import listing")
				return
			}
			result.Imported++
			imported = append(imported, *stored)
		})
	}
	p.Wait()

	sort.Strings(result.Errors)
	sort.Slice(imported, func(i, j int) bool { return imported[i].ID < imported[j].ID })

	if im.embedder != nil && len(imported) > 0 {
		embedded, errs := im.embedder.EmbedProperties(ctx, imported)
		result.Embedded = embedded
		result.Errors = append(result.Errors, errs...)
	}

	log.Info().
		Int("imported", result.Imported).
		Int("failed", result.Failed).
		Int("embedded", result.Embedded).
		Msg("import finished")

	return result
}

func (im *Importer) importOne(ctx context.Context, data []byte) (*model.Property, error) {
	payload, err := Decode(data)
	if err != nil {
		return nil, err
	}
	prop, err := Transform(payload)
	if err != nil {
		return nil, err
	}
	if err := im.validate.Struct(prop); err != nil {
		return nil, fmt.Errorf("invalid listing %s: %w", *prop.ListingID, err)
	}
	return im.store.CreateProperty(ctx, prop)
}
