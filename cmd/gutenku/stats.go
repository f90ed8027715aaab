package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gutenku/gutenku/internal/app"
	"github.com/gutenku/gutenku/internal/config"
	"github.com/gutenku/gutenku/internal/haiku"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and cache statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Close()

	books, err := application.Store.CountBooks(ctx)
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}

	chapters, err := application.Store.CountChapters(ctx)
	if err != nil {
		return fmt.Errorf("count chapters: %w", err)
	}

	cached, err := application.Store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count cached haikus: %w", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	puzzleVersion, err := application.Puzzle.Version(today)
	if err != nil {
		return fmt.Errorf("puzzle version: %w", err)
	}

	fmt.Println("=== GutenKu Statistics ===")
	fmt.Println()
	fmt.Printf("Books imported:   %d\n", books)
	fmt.Printf("Chapters stored:  %d\n", chapters)
	fmt.Printf("Cached haikus:    %d\n", cached)
	fmt.Println()
	fmt.Printf("Haiku version:    %s\n", haiku.Version(today, cached))
	fmt.Printf("Puzzle version:   %s\n", puzzleVersion)
	fmt.Printf("Catalog books:    %d\n", len(application.Catalog.Books))
	return nil
}
