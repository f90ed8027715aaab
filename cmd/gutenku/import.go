package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gutenku/gutenku/internal/app"
	"github.com/gutenku/gutenku/internal/config"
	"github.com/gutenku/gutenku/internal/corpus"
)

var importBook string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse downloaded books into the database",
	Long: `Parse the downloaded plain-text books into chapters and store them
in the database. Books missing from the books directory are fetched
from Project Gutenberg first.

Examples:
  gutenku import               # import the whole catalog
  gutenku import --book 1342   # import one book by reference`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importBook, "book", "", "Import one book by reference")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if err := cfg.ValidateForDownload(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Close()

	books := application.Catalog.Books
	if importBook != "" {
		book, ok := application.Catalog.ByReference(importBook)
		if !ok {
			return fmt.Errorf("book %s is not in the catalog", importBook)
		}
		books = []corpus.CatalogBook{book}
	}

	imported := 0
	for _, entry := range books {
		raw, err := loadBookText(cmd, application, entry.Reference())
		if err != nil {
			slog.Error("failed to load book text", "title", entry.Title, "error", err)
			continue
		}

		book := corpus.ParseBook(entry.Reference(), entry.Title, entry.Author, raw)
		if len(book.Chapters) == 0 {
			slog.Warn("book produced no chapters, skipping", "title", entry.Title)
			continue
		}

		if err := application.Store.ImportBook(ctx, book); err != nil {
			slog.Error("failed to import book", "title", entry.Title, "error", err)
			continue
		}

		fmt.Printf("  ✓ %s (%d chapters)\n", entry.Title, len(book.Chapters))
		imported++
	}

	fmt.Printf("\nImported: %d of %d\n", imported, len(books))
	return nil
}

// loadBookText reads the downloaded copy of a book, fetching it from
// Project Gutenberg when the books directory does not have one yet.
func loadBookText(cmd *cobra.Command, application *app.App, reference string) (string, error) {
	path := filepath.Join(application.Config.BooksDir, reference+".txt")

	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	return application.Gutenberg.Fetch(cmd.Context(), reference)
}
