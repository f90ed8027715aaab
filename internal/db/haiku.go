package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/haiku"
)

// Books loads the full corpus: every book with its chapters in reading
// order. Satisfies haiku.BookSource.
func (s *Store) Books(ctx context.Context) ([]corpus.Book, error) {
	rows, err := s.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]corpus.Book, 0, len(rows))
	for _, row := range rows {
		book, err := s.Book(ctx, row.Reference)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// Book loads one book with its chapters.
func (s *Store) Book(ctx context.Context, reference string) (corpus.Book, error) {
	row, err := s.GetBook(ctx, reference)
	if err != nil {
		return corpus.Book{}, fmt.Errorf("get book %s: %w", reference, err)
	}

	chapterRows, err := s.ListChapters(ctx, reference)
	if err != nil {
		return corpus.Book{}, fmt.Errorf("list chapters of %s: %w", reference, err)
	}

	book := corpus.Book{
		Reference: row.Reference,
		Title:     row.Title,
		Author:    row.Author,
		Chapters:  make([]corpus.Chapter, 0, len(chapterRows)),
	}
	for _, ch := range chapterRows {
		book.Chapters = append(book.Chapters, corpus.Chapter{
			ID:      ch.ID,
			Title:   ch.Title,
			Content: ch.Content,
		})
	}
	return book, nil
}

// ImportBook replaces a book's stored chapters with the parsed ones. The
// swap runs in one transaction so readers never see a half-imported book.
func (s *Store) ImportBook(ctx context.Context, book corpus.Book) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	q := s.Queries.WithTx(tx)

	if err := q.UpsertBook(ctx, BookRow{
		Reference: book.Reference,
		Title:     book.Title,
		Author:    book.Author,
	}); err != nil {
		return fmt.Errorf("upsert book %s: %w", book.Reference, err)
	}

	if err := q.DeleteChapters(ctx, book.Reference); err != nil {
		return fmt.Errorf("clear chapters of %s: %w", book.Reference, err)
	}

	for position, chapter := range book.Chapters {
		id := chapter.ID
		if id == "" {
			id = uuid.NewString()
		}
		if err := q.InsertChapter(ctx, ChapterRow{
			ID:            id,
			BookReference: book.Reference,
			Position:      position,
			Title:         chapter.Title,
			Content:       chapter.Content,
		}); err != nil {
			return fmt.Errorf("insert chapter %d of %s: %w", position, book.Reference, err)
		}
	}

	return tx.Commit()
}

// FindByFingerprint returns the cached result for a fingerprint, or nil on a
// miss. Satisfies haiku.Repository.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (*haiku.Result, error) {
	row, err := s.GetCachedHaiku(ctx, fingerprint, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	var result haiku.Result
	if err := json.Unmarshal([]byte(row.Result), &result); err != nil {
		return nil, fmt.Errorf("decode cached haiku %s: %w", row.ID, err)
	}
	return &result, nil
}

// Save commits a result to the cache under its fingerprint with the given
// lifetime. Satisfies haiku.Repository.
func (s *Store) Save(ctx context.Context, fingerprint string, result *haiku.Result, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode haiku: %w", err)
	}

	return s.SaveCachedHaiku(ctx, CachedHaikuRow{
		ID:          uuid.NewString(),
		Fingerprint: fingerprint,
		Result:      string(payload),
		ExpiresAt:   time.Now().Add(ttl).Unix(),
	})
}

// Count reports the number of live cached haikus. Satisfies
// haiku.Repository.
func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.CountCachedHaiku(ctx, time.Now())
	return int(count), err
}

// Sample draws one live cached haiku at random, or nil on an empty cache.
func (s *Store) Sample(ctx context.Context) (*haiku.Result, error) {
	row, err := s.SampleCachedHaiku(ctx, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache sample: %w", err)
	}

	var result haiku.Result
	if err := json.Unmarshal([]byte(row.Result), &result); err != nil {
		return nil, fmt.Errorf("decode cached haiku %s: %w", row.ID, err)
	}
	return &result, nil
}
