// Package haiku implements the extraction and selection engine: chapter text
// is normalized into quotes, filtered, syllable-counted, assembled into 5-7-5
// verse candidates, scored, and committed to one deterministic winner.
package haiku

import "github.com/gutenku/gutenku/internal/corpus"

// Quote is a contiguous normalized fragment of chapter text. Quotes are the
// atomic unit of extraction: they are never split mid-sentence.
type Quote struct {
	// Index is the quote's position within its chapter.
	Index int
	// Raw preserves the original fragment, casing included.
	Raw string
	// Text is the normalized form used for matching and counting.
	Text string
	// Syllables is the heuristic syllable count of Text.
	Syllables int
	// Valid reports whether the quote survived the blacklist filter.
	Valid bool
}

// VerseCandidate is a triple of quote segments whose syllable counts are
// exactly 5, 7, 5. Candidates are ranked and either promoted to a Result or
// discarded.
type VerseCandidate struct {
	// Verses holds the raw text of the three lines. A line may merge several
	// consecutive quotes.
	Verses [3]string
	// ChapterOrder and QuoteOrder position the candidate for tie-breaking:
	// candidates are compared by chapter first, then by the index of the
	// first quote of the first line.
	ChapterOrder int
	QuoteOrder   int
	// Sentiment is the combined polarity score of the three lines.
	Sentiment float64
	// Coherence is the Markov-chain flow score across the three lines.
	Coherence float64
	// Score is the composite rank once weighting is applied.
	Score float64
}

// Result is the committed output of one pipeline run. Immutable once built.
type Result struct {
	BookReference string    `json:"bookReference"`
	BookTitle     string    `json:"bookTitle"`
	BookAuthor    string    `json:"bookAuthor"`
	ChapterID     string    `json:"chapterId"`
	ChapterTitle  string    `json:"chapterTitle"`
	RawVerses     [3]string `json:"rawVerses"`
	Verses        [3]string `json:"verses"`
	CacheUsed     bool      `json:"cacheUsed"`
	ExecutionTime float64   `json:"executionTime"`
}

// Chapter pairs a corpus chapter with its owning book for extraction.
type Chapter struct {
	Book    *corpus.Book
	Order   int
	Chapter corpus.Chapter
}
