package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB and *sql.Tx the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the hand-written SQL accessors for the schema.
type Queries struct {
	db DBTX
}

// New creates Queries backed by db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries running against the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// BookRow is one row of the books table.
type BookRow struct {
	Reference string
	Title     string
	Author    string
}

// ChapterRow is one row of the chapters table.
type ChapterRow struct {
	ID            string
	BookReference string
	Position      int
	Title         string
	Content       string
}

// CachedHaikuRow is one row of the haiku_cache table. Result holds the
// committed haiku as JSON; ExpiresAt is unix seconds.
type CachedHaikuRow struct {
	ID          string
	Fingerprint string
	Result      string
	ExpiresAt   int64
}

// UpsertBook inserts or refreshes a book's metadata.
func (q *Queries) UpsertBook(ctx context.Context, book BookRow) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO books (reference, title, author) VALUES (?, ?, ?)
		ON CONFLICT(reference) DO UPDATE SET title = excluded.title, author = excluded.author
	`, book.Reference, book.Title, book.Author)
	return err
}

// GetBook fetches one book by its Gutenberg reference.
func (q *Queries) GetBook(ctx context.Context, reference string) (BookRow, error) {
	var book BookRow
	err := q.db.QueryRowContext(ctx,
		"SELECT reference, title, author FROM books WHERE reference = ?", reference,
	).Scan(&book.Reference, &book.Title, &book.Author)
	return book, err
}

// ListBooks returns every book ordered by reference.
func (q *Queries) ListBooks(ctx context.Context) ([]BookRow, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT reference, title, author FROM books ORDER BY reference")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []BookRow
	for rows.Next() {
		var book BookRow
		if err := rows.Scan(&book.Reference, &book.Title, &book.Author); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// CountBooks returns the number of imported books.
func (q *Queries) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	return count, err
}

// InsertChapter adds one chapter row.
func (q *Queries) InsertChapter(ctx context.Context, chapter ChapterRow) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO chapters (id, book_reference, position, title, content)
		VALUES (?, ?, ?, ?, ?)
	`, chapter.ID, chapter.BookReference, chapter.Position, chapter.Title, chapter.Content)
	return err
}

// DeleteChapters removes every chapter of a book, clearing the way for a
// re-import.
func (q *Queries) DeleteChapters(ctx context.Context, bookReference string) error {
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM chapters WHERE book_reference = ?", bookReference)
	return err
}

// ListChapters returns a book's chapters in reading order.
func (q *Queries) ListChapters(ctx context.Context, bookReference string) ([]ChapterRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, book_reference, position, title, content
		FROM chapters WHERE book_reference = ? ORDER BY position
	`, bookReference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []ChapterRow
	for rows.Next() {
		var ch ChapterRow
		if err := rows.Scan(&ch.ID, &ch.BookReference, &ch.Position, &ch.Title, &ch.Content); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// CountChapters returns the number of stored chapters across all books.
func (q *Queries) CountChapters(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chapters").Scan(&count)
	return count, err
}

// SaveCachedHaiku inserts or refreshes the cache row for a fingerprint.
func (q *Queries) SaveCachedHaiku(ctx context.Context, row CachedHaikuRow) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO haiku_cache (id, fingerprint, result, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET result = excluded.result, expires_at = excluded.expires_at
	`, row.ID, row.Fingerprint, row.Result, row.ExpiresAt)
	return err
}

// GetCachedHaiku fetches the unexpired cache row for a fingerprint.
// Returns sql.ErrNoRows when absent or expired.
func (q *Queries) GetCachedHaiku(ctx context.Context, fingerprint string, now time.Time) (CachedHaikuRow, error) {
	var row CachedHaikuRow
	err := q.db.QueryRowContext(ctx, `
		SELECT id, fingerprint, result, expires_at
		FROM haiku_cache WHERE fingerprint = ? AND expires_at > ?
	`, fingerprint, now.Unix()).Scan(&row.ID, &row.Fingerprint, &row.Result, &row.ExpiresAt)
	return row, err
}

// SampleCachedHaiku returns one unexpired cache row at random.
// Returns sql.ErrNoRows on an empty cache.
func (q *Queries) SampleCachedHaiku(ctx context.Context, now time.Time) (CachedHaikuRow, error) {
	var row CachedHaikuRow
	err := q.db.QueryRowContext(ctx, `
		SELECT id, fingerprint, result, expires_at
		FROM haiku_cache WHERE expires_at > ? ORDER BY RANDOM() LIMIT 1
	`, now.Unix()).Scan(&row.ID, &row.Fingerprint, &row.Result, &row.ExpiresAt)
	return row, err
}

// CountCachedHaiku counts the unexpired cache rows.
func (q *Queries) CountCachedHaiku(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM haiku_cache WHERE expires_at > ?", now.Unix()).Scan(&count)
	return count, err
}

// PurgeExpiredHaiku deletes expired cache rows and reports how many went.
func (q *Queries) PurgeExpiredHaiku(ctx context.Context, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		"DELETE FROM haiku_cache WHERE expires_at <= ?", now.Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
