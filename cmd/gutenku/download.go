package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gutenku/gutenku/internal/config"
	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/gutenberg"
)

var downloadBook string

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download catalog books from Project Gutenberg",
	Long: `Download the plain-text editions of every catalog book into the
books directory. Already-downloaded books are skipped.

Examples:
  gutenku download               # fetch the whole catalog
  gutenku download --book 1342   # fetch one book by reference`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadBook, "book", "", "Download one book by reference")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForDownload(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	catalog, err := corpus.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	client := gutenberg.NewClient()
	if cfg.GutenbergMirror != "" {
		client = client.WithBaseURL(cfg.GutenbergMirror)
	}

	books := catalog.Books
	if downloadBook != "" {
		book, ok := catalog.ByReference(downloadBook)
		if !ok {
			return fmt.Errorf("book %s is not in the catalog", downloadBook)
		}
		books = []corpus.CatalogBook{book}
	}

	downloaded := 0
	for _, book := range books {
		path, err := client.FetchToFile(ctx, book.Reference(), cfg.BooksDir)
		if err != nil {
			slog.Error("failed to download book", "title", book.Title, "error", err)
			continue
		}
		fmt.Printf("  ✓ %s -> %s\n", book.Title, path)
		downloaded++
	}

	fmt.Printf("\nDownloaded: %d of %d\n", downloaded, len(books))
	return nil
}
