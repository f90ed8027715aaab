package markov

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrTrainingInProgress is returned when a second training run is started
// while one is active. Training is single-writer: it re-serializes the
// shared model file.
var ErrTrainingInProgress = errors.New("markov training already in progress")

// Trainer builds a chain from a chapter corpus and persists it. Chapters are
// independent, so training fans out across workers and merges the partial
// tables at the end.
type Trainer struct {
	running atomic.Bool
	// Workers caps the training goroutines. Zero means GOMAXPROCS.
	Workers int
}

// NewTrainer creates a Trainer.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// Train builds a chain over every chapter text and writes it to modelPath
// with an atomic swap. Concurrent scoring reads during the run observe the
// previous model snapshot until the swap lands.
func (t *Trainer) Train(ctx context.Context, chapters []string, modelPath string) (*Chain, error) {
	if !t.running.CompareAndSwap(false, true) {
		return nil, ErrTrainingInProgress
	}
	defer t.running.Store(false)

	workers := t.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(chapters) {
		workers = len(chapters)
	}
	if workers < 1 {
		workers = 1
	}

	slog.Info("training markov model", "chapters", len(chapters), "workers", workers)

	var mu sync.Mutex
	merged := NewChain()

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan string)

	g.Go(func() error {
		defer close(jobs)
		for _, chapter := range chapters {
			select {
			case jobs <- chapter:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			partial := NewChain()
			for chapter := range jobs {
				partial.Train(chapter)
			}

			mu.Lock()
			merged.Merge(partial)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := merged.Save(modelPath); err != nil {
		return nil, err
	}

	slog.Info("markov model trained", "states", len(merged.Transitions), "transitions", merged.Count, "path", modelPath)

	return merged, nil
}
