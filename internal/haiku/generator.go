package haiku

import (
	"context"
	"fmt"
	"hash/fnv"
	"iter"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/seeded"
)

// Request carries the generate-haiku query contract.
type Request struct {
	// UseAI enables the enhanced (Markov-primary) ranking.
	UseAI bool
	// SkipCache forces a fresh computation, bypassing the cache both ways.
	SkipCache bool
	// AppendImage is part of the query contract but honored by the caller's
	// presentation layer; the core never renders.
	AppendImage bool
	// SelectionCount restricts random selection to the top-ranked pool.
	SelectionCount int `validate:"omitempty,min=1,max=50"`
	// Theme restricts extraction to chapters containing a theme word.
	Theme string `validate:"omitempty,max=64"`
	// Strategy overrides the policy derived from UseAI.
	Strategy Strategy `validate:"omitempty,oneof=markov sentiment random"`
}

// strategy resolves the effective selection policy.
func (r Request) strategy() Strategy {
	if r.Strategy != "" {
		return r.Strategy
	}
	if r.UseAI {
		return StrategyMarkov
	}
	return StrategySentiment
}

// BookSource yields the corpus the pipeline draws from. Books are immutable
// once loaded.
type BookSource interface {
	Books(ctx context.Context) ([]corpus.Book, error)
}

// Repository is the external cache gateway. The pipeline is idempotent per
// fingerprint; the repository persists committed results and answers
// fingerprint lookups and counts.
type Repository interface {
	FindByFingerprint(ctx context.Context, fingerprint string) (*Result, error)
	Save(ctx context.Context, fingerprint string, result *Result, ttl time.Duration) error
	Count(ctx context.Context) (int, error)
	Sample(ctx context.Context) (*Result, error)
}

// DefaultCacheTTL is how long a committed haiku stays sampleable.
const DefaultCacheTTL = 24 * time.Hour

// DefaultMinCachedDocs is how many live cache rows must exist before
// Generate starts answering from a random cached haiku.
const DefaultMinCachedDocs = 100

// Generator runs the whole pipeline: book selection, extraction, scoring,
// selection, and the cache discipline around it.
type Generator struct {
	source    BookSource
	repo      Repository
	extractor *Extractor
	selector  *Selector
	validate  *validator.Validate
	group     singleflight.Group

	// CacheTTL bounds the lifetime of saved results.
	CacheTTL time.Duration
	// MinCachedDocs is the warm-cache threshold for random sampling.
	MinCachedDocs int
}

// NewGenerator wires the pipeline. repo may be nil to disable caching.
func NewGenerator(source BookSource, repo Repository, extractor *Extractor, selector *Selector) *Generator {
	return &Generator{
		source:        source,
		repo:          repo,
		extractor:     extractor,
		selector:      selector,
		validate:      validator.New(),
		CacheTTL:      DefaultCacheTTL,
		MinCachedDocs: DefaultMinCachedDocs,
	}
}

// Generate runs one pipeline pass to completion and returns the committed
// haiku. Identical (book-set, theme, strategy) fingerprints are computed at
// most once concurrently and, with the cache enabled, return identical
// results on every call.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := g.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()
	strategy := req.strategy()

	// A warm cache answers unthemed requests with a random committed
	// haiku; themed requests always go through extraction.
	if g.repo != nil && !req.SkipCache && req.Theme == "" && g.MinCachedDocs > 0 {
		if n, err := g.repo.Count(ctx); err == nil && n >= g.MinCachedDocs {
			sampled, err := g.repo.Sample(ctx)
			if err != nil {
				slog.Warn("cache sample failed, generating instead", "error", err)
			} else if sampled != nil {
				return sampled, nil
			}
		}
	}

	books, err := g.source.Books(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", ErrNoHaikuFound)
	}

	fingerprint := Fingerprint(books, req.Theme, strategy)

	if g.repo != nil && !req.SkipCache {
		cached, err := g.repo.FindByFingerprint(ctx, fingerprint)
		if err != nil {
			slog.Warn("cache lookup failed, generating instead", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	value, err, _ := g.group.Do(fingerprint, func() (any, error) {
		return g.compute(ctx, books, req, strategy, fingerprint)
	})
	if err != nil {
		return nil, err
	}

	// Concurrent callers on one fingerprint all receive the same pointer
	// from singleflight; the shared value stays immutable and per-caller
	// fields are stamped on a copy.
	shared := value.(*Result)

	if g.repo != nil && !req.SkipCache {
		cacheCopy := *shared
		cacheCopy.CacheUsed = true
		if err := g.repo.Save(ctx, fingerprint, &cacheCopy, g.CacheTTL); err != nil {
			slog.Warn("cache save failed", "error", err)
		}
	}

	result := *shared
	result.ExecutionTime = time.Since(start).Seconds()
	return &result, nil
}

// compute is the pure pipeline pass: deterministic given the fingerprint.
func (g *Generator) compute(ctx context.Context, books []corpus.Book, req Request, strategy Strategy, fingerprint string) (*Result, error) {
	random := seeded.Random(fingerprintSeed(fingerprint))

	if req.Theme != "" {
		return g.computeThemed(ctx, books, req, strategy, random)
	}

	// Walk books in a fingerprint-seeded order; the first chapter producing
	// candidates decides the haiku. Books are canonicalized by reference
	// first so the walk does not depend on source enumeration order.
	canonical := make([]corpus.Book, len(books))
	copy(canonical, books)
	sort.Slice(canonical, func(i, j int) bool { return canonical[i].Reference < canonical[j].Reference })

	order := seeded.Shuffle(canonical, random)

	for _, book := range order {
		for chapterOrder, chapter := range book.Chapters {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			winner, err := g.selector.Select(
				withChapterOrder(g.extractor.Candidates(chapter.Content), chapterOrder),
				strategy, random, req.SelectionCount,
			)
			if err != nil {
				continue
			}

			return buildResult(&book, chapter, winner), nil
		}
	}

	return nil, ErrNoHaikuFound
}

// computeThemed pools candidates across every chapter containing a theme
// word; the winning haiku must itself carry one.
func (g *Generator) computeThemed(ctx context.Context, books []corpus.Book, req Request, strategy Strategy, random func() float64) (*Result, error) {
	words := strings.Fields(strings.ToLower(req.Theme))

	type located struct {
		book    *corpus.Book
		chapter corpus.Chapter
	}
	byOrder := make(map[int]located)

	pool := func(yield func(VerseCandidate) bool) {
		order := 0
		for b := range books {
			book := &books[b]
			for _, chapter := range book.Chapters {
				if ctx.Err() != nil {
					return
				}
				if !containsAnyWord(chapter.Content, words) {
					continue
				}

				byOrder[order] = located{book: book, chapter: chapter}
				for c := range withChapterOrder(g.extractor.Candidates(chapter.Content), order) {
					if !candidateContainsWord(c, words) {
						continue
					}
					if !yield(c) {
						return
					}
				}
				order++
			}
		}
	}

	winner, err := g.selector.Select(pool, strategy, random, req.SelectionCount)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc := byOrder[winner.ChapterOrder]
	return buildResult(loc.book, loc.chapter, winner), nil
}

func withChapterOrder(candidates iter.Seq[VerseCandidate], order int) iter.Seq[VerseCandidate] {
	return func(yield func(VerseCandidate) bool) {
		for c := range candidates {
			c.ChapterOrder = order
			if !yield(c) {
				return
			}
		}
	}
}

func containsAnyWord(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func candidateContainsWord(c VerseCandidate, words []string) bool {
	for _, verse := range c.Verses {
		if containsAnyWord(verse, words) {
			return true
		}
	}
	return false
}

func buildResult(book *corpus.Book, chapter corpus.Chapter, winner VerseCandidate) *Result {
	return &Result{
		BookReference: book.Reference,
		BookTitle:     book.Title,
		BookAuthor:    book.Author,
		ChapterID:     chapter.ID,
		ChapterTitle:  chapter.Title,
		RawVerses:     winner.Verses,
		Verses:        CleanVerses(winner.Verses),
	}
}

// Fingerprint derives the deterministic cache key for a computation:
// the sorted book-set, the theme, and the selection strategy.
func Fingerprint(books []corpus.Book, theme string, strategy Strategy) string {
	refs := make([]string, len(books))
	for i, b := range books {
		refs[i] = b.Reference
	}
	sort.Strings(refs)

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", strings.Join(refs, ","), strings.ToLower(theme), strategy)

	return fmt.Sprintf("%x", h.Sum64())
}

func fingerprintSeed(fingerprint string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(fingerprint))
	return h.Sum32()
}

// CacheCount reports how many committed haikus the cache currently holds.
// Returns 0 without a repository.
func (g *Generator) CacheCount(ctx context.Context) (int, error) {
	if g.repo == nil {
		return 0, nil
	}
	return g.repo.Count(ctx)
}

// Version formats the freshness token callers use for ETag-style
// invalidation: "{date}-{cacheCount}".
func Version(date string, cacheCount int) string {
	return fmt.Sprintf("%s-%d", date, cacheCount)
}
