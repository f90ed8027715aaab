package app

import (
	"context"

	"github.com/gutenku/gutenku/internal/config"
	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/db"
	"github.com/gutenku/gutenku/internal/gutenberg"
	"github.com/gutenku/gutenku/internal/haiku"
	"github.com/gutenku/gutenku/internal/markov"
	"github.com/gutenku/gutenku/internal/puzzle"
)

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Store     *db.Store
	Catalog   *corpus.Catalog
	Gutenberg *gutenberg.Client
	Evaluator *markov.Evaluator
	Trainer   *markov.Trainer
	Generator *haiku.Generator
	Puzzle    *puzzle.Service
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	catalog, err := corpus.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		store.Close()
		return nil, err
	}

	client := gutenberg.NewClient()
	if cfg.GutenbergMirror != "" {
		client = client.WithBaseURL(cfg.GutenbergMirror)
	}

	// The evaluator degrades to neutral scores until a model is trained.
	evaluator := markov.NewEvaluator()
	evaluator.Load(cfg.MarkovModelPath)

	trainer := markov.NewTrainer()
	if cfg.TrainWorkers > 0 {
		trainer.Workers = cfg.TrainWorkers
	}

	extractor := haiku.NewExtractor(
		haiku.NewNormalizer(),
		haiku.NewFilter(),
		haiku.NewSyllableCounter(),
	)
	selector := haiku.NewSelector(haiku.NewSentimentScorer(), evaluator)

	generator := haiku.NewGenerator(store, store, extractor, selector)
	generator.CacheTTL = cfg.CacheTTL
	generator.MinCachedDocs = cfg.MinCachedDocs

	return &App{
		Config:    cfg,
		Store:     store,
		Catalog:   catalog,
		Gutenberg: client,
		Evaluator: evaluator,
		Trainer:   trainer,
		Generator: generator,
		Puzzle:    puzzle.NewService(catalog, store),
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
