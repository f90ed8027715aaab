package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gutenku/gutenku/internal/app"
	"github.com/gutenku/gutenku/internal/config"
)

var trainWorkers int

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the Markov coherence model",
	Long: `Train the bigram Markov chain on every imported chapter and persist
the model. The generate command picks the model up on its next start;
a running process can keep serving the old model until then.

Examples:
  gutenku train               # train with one worker per CPU
  gutenku train --workers 2   # cap the worker pool`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&trainWorkers, "workers", 0, "Training workers (0 = one per CPU)")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if trainWorkers > 0 {
		cfg.TrainWorkers = trainWorkers
	}

	if err := cfg.ValidateForTraining(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("start application: %w", err)
	}
	defer application.Close()

	books, err := application.Store.Books(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	var chapters []string
	for _, book := range books {
		for _, chapter := range book.Chapters {
			chapters = append(chapters, chapter.Content)
		}
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters imported; run 'gutenku import' first")
	}

	slog.Info("training markov model",
		"chapters", len(chapters),
		"model", cfg.MarkovModelPath,
	)

	chain, err := application.Trainer.Train(ctx, chapters, cfg.MarkovModelPath)
	if err != nil {
		return fmt.Errorf("train model: %w", err)
	}

	application.Evaluator.Reload(chain)

	fmt.Printf("Trained on %d chapters: %d bigram transitions\n", len(chapters), chain.Count)
	fmt.Printf("Model saved to %s\n", cfg.MarkovModelPath)

	return nil
}
