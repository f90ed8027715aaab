package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gutenku/gutenku/internal/app"
	"github.com/gutenku/gutenku/internal/config"
	"github.com/gutenku/gutenku/internal/haiku"
)

var (
	generateUseAI     bool
	generateSkipCache bool
	generateTheme     string
	generateStrategy  string
	generateCount     int
	generateJSON      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a haiku from the imported corpus",
	Long: `Run the extraction pipeline over every imported book and print the
winning haiku.

Examples:
  gutenku generate                       # sentiment-ranked haiku
  gutenku generate --ai                  # Markov-coherence ranking
  gutenku generate --theme sea           # restrict to chapters about the sea
  gutenku generate --strategy random -n 10  # seeded draw from the top 10`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateUseAI, "ai", false, "Rank with the Markov coherence model")
	generateCmd.Flags().BoolVar(&generateSkipCache, "no-cache", false, "Bypass the haiku cache")
	generateCmd.Flags().StringVar(&generateTheme, "theme", "", "Require a theme word in the haiku")
	generateCmd.Flags().StringVar(&generateStrategy, "strategy", "", "Selection strategy: markov, sentiment, or random")
	generateCmd.Flags().IntVarP(&generateCount, "selection-count", "n", 0, "Pool size for random selection")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the full result as JSON")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("start application: %w", err)
	}
	defer application.Close()

	result, err := application.Generator.Generate(ctx, haiku.Request{
		UseAI:          generateUseAI,
		SkipCache:      generateSkipCache,
		Theme:          generateTheme,
		Strategy:       haiku.Strategy(generateStrategy),
		SelectionCount: generateCount,
	})
	if err != nil {
		return fmt.Errorf("generate haiku: %w", err)
	}

	if generateJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Println(strings.Join(result.Verses[:], "\n"))
	fmt.Println()
	fmt.Printf("— %s, %s", result.BookTitle, result.BookAuthor)
	if result.ChapterTitle != "" {
		fmt.Printf(" (%s)", result.ChapterTitle)
	}
	fmt.Println()
	if result.CacheUsed {
		fmt.Println("(from cache)")
	}

	return nil
}
