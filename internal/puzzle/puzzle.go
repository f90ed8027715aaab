// Package puzzle implements the daily book-guessing game: deterministic
// date-seeded book selection, progressive hints, emoticon reveals, and haiku
// lifelines. Everything is recomputable from the date alone; the only state
// a player carries is their own reveal progress.
package puzzle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/seeded"
)

// LaunchDate anchors puzzle numbering. The first puzzle day is number 1.
var LaunchDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	// SelectableBooksLimit caps the autocomplete book list.
	SelectableBooksLimit = 50
	// ReducedBooksLimit caps the list after the reduce-books lifeline.
	ReducedBooksLimit = 30
	// BaseVisibleEmoticons is how many emoticons round 1 shows for free.
	BaseVisibleEmoticons = 2
	// MaxHaikuLifelines bounds the haiku reveal lifeline.
	MaxHaikuLifelines = 3

	// reduceSeedOffset keeps the reduce-books draw independent from the main
	// daily draw on the same date.
	reduceSeedOffset = 7777
)

// ChapterSource loads a stored book with its chapters, keyed by the corpus
// reference. The haiku lifelines draw their sentences from it.
type ChapterSource interface {
	Book(ctx context.Context, reference string) (corpus.Book, error)
}

// BookValue is the compact book identity shown in guess lists.
type BookValue struct {
	Reference string `json:"reference"`
	Title     string `json:"title"`
	Author    string `json:"author"`
}

// Hint is one progressive reveal step. Round 1 is always the emoticon hint.
type Hint struct {
	Round   int    `json:"round"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// DailyRequest carries the get-daily-puzzle query contract.
type DailyRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
	// RevealedRounds lists the hint rounds the player has unlocked. Round 1
	// is always included.
	RevealedRounds []int
	// VisibleEmoticonCount limits the emoticon prefix shown in round 1.
	VisibleEmoticonCount int `validate:"omitempty,min=1,max=12"`
	// RevealedHaikuCount is how many haiku lifelines the player has spent.
	RevealedHaikuCount int `validate:"omitempty,min=0,max=3"`
}

// Daily is one day's puzzle as seen by a player mid-game.
type Daily struct {
	Date                  string      `json:"date"`
	PuzzleNumber          int         `json:"puzzleNumber"`
	Hints                 []Hint      `json:"hints"`
	Haikus                []string    `json:"haikus"`
	EmoticonCount         int         `json:"emoticonCount"`
	NextPuzzleAvailableAt time.Time   `json:"nextPuzzleAvailableAt"`
	AvailableBooks        []BookValue `json:"availableBooks"`
}

// GuessResult answers one submitted guess.
type GuessResult struct {
	IsCorrect bool `json:"isCorrect"`
	// NextHint is set after a wrong guess with rounds remaining.
	NextHint *Hint `json:"nextHint,omitempty"`
	// CorrectBook is revealed on a win or when the rounds run out.
	CorrectBook *BookValue `json:"correctBook,omitempty"`
}

// Service computes daily puzzles over a fixed catalog.
type Service struct {
	catalog  *corpus.Catalog
	chapters ChapterSource
	lifeline *lifelineBuilder
	validate *validator.Validate

	// Now is the clock used for next-puzzle timing. Tests override it.
	Now func() time.Time
}

// NewService wires a Service. chapters may be nil; haiku lifelines then come
// back empty.
func NewService(catalog *corpus.Catalog, chapters ChapterSource) *Service {
	return &Service{
		catalog:  catalog,
		chapters: chapters,
		lifeline: newLifelineBuilder(),
		validate: validator.New(),
		Now:      time.Now,
	}
}

// PuzzleNumber converts a date to its sequential puzzle index: whole days
// since launch plus one, so launch day is puzzle 1. Consecutive dates map to
// consecutive numbers.
func PuzzleNumber(dateStr string) (int, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", seeded.ErrInvalidSeed, dateStr)
	}
	days := int(date.Sub(LaunchDate).Hours() / 24)
	return days + 1, nil
}

// Version is the puzzle freshness token: "{puzzleNumber}-{bookCount}".
// Clients drop local state when either component moves.
func (s *Service) Version(dateStr string) (string, error) {
	number, err := PuzzleNumber(dateStr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", number, len(s.catalog.Books)), nil
}

// SelectDailyBook picks the date's answer. Each cycle of len(books) days
// reshuffles the catalog under a cycle-derived seed, so every book appears
// exactly once per cycle and no consecutive-day pattern survives a reshuffle.
func (s *Service) SelectDailyBook(dateStr string) (corpus.CatalogBook, error) {
	number, err := PuzzleNumber(dateStr)
	if err != nil {
		return corpus.CatalogBook{}, err
	}

	books := s.catalog.Books
	cycle := (number - 1) / len(books)
	position := (number - 1) % len(books)
	if position < 0 {
		cycle--
		position += len(books)
	}

	cycleSeed := uint32(cycle*1_000_000 + 42)
	shuffled := seeded.Shuffle(books, seeded.Random(cycleSeed))

	return shuffled[position], nil
}

// Daily assembles the player view of one day's puzzle.
func (s *Service) Daily(ctx context.Context, req DailyRequest) (*Daily, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if req.VisibleEmoticonCount == 0 {
		req.VisibleEmoticonCount = BaseVisibleEmoticons
	}

	seed, err := seeded.DateToSeed(req.Date)
	if err != nil {
		return nil, err
	}
	random := seeded.Random(seed)

	book, err := s.SelectDailyBook(req.Date)
	if err != nil {
		return nil, err
	}

	number, err := PuzzleNumber(req.Date)
	if err != nil {
		return nil, err
	}

	allHints := GenerateHints(book, random)

	revealed := map[int]bool{1: true}
	for _, round := range req.RevealedRounds {
		revealed[round] = true
	}

	hints := make([]Hint, 0, len(allHints))
	for _, hint := range allHints {
		if !revealed[hint.Round] {
			continue
		}
		if hint.Type == HintEmoticons {
			shuffledEmoticons := seeded.Shuffle(book.Emoticons, random)
			visible := min(req.VisibleEmoticonCount, len(shuffledEmoticons))
			hint.Content = strings.Join(shuffledEmoticons[:visible], "")
		}
		hints = append(hints, hint)
	}

	haikus, err := s.lifelineHaikus(ctx, book, MaxHaikuLifelines, random)
	if err != nil {
		return nil, err
	}
	if req.RevealedHaikuCount < len(haikus) {
		haikus = haikus[:req.RevealedHaikuCount]
	}

	now := s.Now().UTC()
	nextPuzzle := now.Truncate(24 * time.Hour).Add(24 * time.Hour)

	return &Daily{
		Date:                  req.Date,
		PuzzleNumber:          number,
		Hints:                 hints,
		Haikus:                haikus,
		EmoticonCount:         len(book.Emoticons),
		NextPuzzleAvailableAt: nextPuzzle,
		AvailableBooks:        s.availableBooks(book, req.Date),
	}, nil
}

// Emoticons returns the date's shuffled emoticon prefix and the full count.
func (s *Service) Emoticons(dateStr string, visibleCount int) (string, int, error) {
	book, err := s.SelectDailyBook(dateStr)
	if err != nil {
		return "", 0, err
	}

	seed, err := seeded.DateToSeed(dateStr)
	if err != nil {
		return "", 0, err
	}

	shuffled := seeded.Shuffle(book.Emoticons, seeded.Random(seed))
	visible := min(visibleCount, len(shuffled))

	return strings.Join(shuffled[:visible], ""), len(shuffled), nil
}

// Haiku reveals the lifeline haiku at index for the date, or "" when the
// book's sentence pools cannot fill that many haikus.
func (s *Service) Haiku(ctx context.Context, dateStr string, index int) (string, error) {
	if index < 0 || index >= MaxHaikuLifelines {
		return "", fmt.Errorf("haiku index %d out of range", index)
	}

	book, err := s.SelectDailyBook(dateStr)
	if err != nil {
		return "", err
	}

	seed, err := seeded.DateToSeed(dateStr)
	if err != nil {
		return "", err
	}

	haikus, err := s.lifelineHaikus(ctx, book, index+1, seeded.Random(seed))
	if err != nil {
		return "", err
	}
	if index >= len(haikus) {
		return "", nil
	}
	return haikus[index], nil
}

// ReduceBooks is the fifty-fifty style lifeline: a deterministic shortlist
// that always contains the day's answer. The draw uses an offset seed so it
// stays independent from the main puzzle randomness.
func (s *Service) ReduceBooks(dateStr string) ([]BookValue, error) {
	book, err := s.SelectDailyBook(dateStr)
	if err != nil {
		return nil, err
	}

	seed, err := seeded.DateToSeed(dateStr)
	if err != nil {
		return nil, err
	}
	random := seeded.Random(seed + reduceSeedOffset)

	others := make([]corpus.CatalogBook, 0, len(s.catalog.Books))
	for _, b := range s.catalog.Books {
		if b.ID != book.ID {
			others = append(others, b)
		}
	}

	shuffled := seeded.Shuffle(others, random)
	keep := min(ReducedBooksLimit-1, len(shuffled))
	final := append(shuffled[:keep:keep], book)
	final = seeded.Shuffle(final, random)

	values := make([]BookValue, len(final))
	for i, b := range final {
		values[i] = toBookValue(b)
	}
	return values, nil
}

// SubmitGuess checks a guess against the day's answer. A wrong guess with
// rounds remaining earns the next hint; otherwise the answer is revealed.
func (s *Service) SubmitGuess(dateStr, guessedReference string, currentRound int) (*GuessResult, error) {
	book, err := s.SelectDailyBook(dateStr)
	if err != nil {
		return nil, err
	}

	if book.Reference() == guessedReference {
		value := toBookValue(book)
		return &GuessResult{IsCorrect: true, CorrectBook: &value}, nil
	}

	seed, err := seeded.DateToSeed(dateStr)
	if err != nil {
		return nil, err
	}
	hints := GenerateHints(book, seeded.Random(seed))

	nextRound := currentRound + 1
	for _, hint := range hints {
		if hint.Round == nextRound {
			return &GuessResult{IsCorrect: false, NextHint: &hint}, nil
		}
	}

	value := toBookValue(book)
	return &GuessResult{IsCorrect: false, CorrectBook: &value}, nil
}

// availableBooks builds the autocomplete list: the first N catalog books with
// the answer swapped in when it falls outside, shuffled under the date seed.
func (s *Service) availableBooks(correct corpus.CatalogBook, dateStr string) []BookValue {
	books := s.catalog.Books
	limit := min(SelectableBooksLimit, len(books))
	selected := make([]corpus.CatalogBook, limit)
	copy(selected, books[:limit])

	found := false
	for _, b := range selected {
		if b.ID == correct.ID {
			found = true
			break
		}
	}
	if !found {
		selected[limit-1] = correct
	}

	seed, _ := seeded.DateToSeed(dateStr)
	selected = seeded.Shuffle(selected, seeded.Random(seed))

	values := make([]BookValue, len(selected))
	for i, b := range selected {
		values[i] = toBookValue(b)
	}
	return values
}

func (s *Service) lifelineHaikus(ctx context.Context, book corpus.CatalogBook, count int, random func() float64) ([]string, error) {
	if s.chapters == nil {
		return nil, nil
	}
	stored, err := s.chapters.Book(ctx, book.Reference())
	if err != nil {
		// A catalog book without imported chapters simply has no lifelines.
		return nil, nil
	}
	return s.lifeline.Build(stored.Chapters, count, random), nil
}

func toBookValue(b corpus.CatalogBook) BookValue {
	return BookValue{
		Reference: b.Reference(),
		Title:     b.Title,
		Author:    b.Author,
	}
}
