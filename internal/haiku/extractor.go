package haiku

import "iter"

// Default minimum number of usable quotes a chapter must yield before any
// candidate is emitted. Chapters below this are too sparse to phrase well.
const DefaultMinQuotes = 12

var verseTargets = [3]int{5, 7, 5}

// Extractor runs the combinatorial 5-7-5 search over the normalized,
// blacklist-passed quotes of one chapter.
type Extractor struct {
	normalizer *Normalizer
	filter     *Filter
	counter    *SyllableCounter

	// MinQuotes is the minimal usable-quote count for a chapter to be
	// searched at all. Zero disables the threshold.
	MinQuotes int
}

// NewExtractor wires an extractor from its collaborators.
func NewExtractor(n *Normalizer, f *Filter, c *SyllableCounter) *Extractor {
	return &Extractor{
		normalizer: n,
		filter:     f,
		counter:    c,
		MinQuotes:  DefaultMinQuotes,
	}
}

// PrepareQuotes normalizes chapter content and annotates every quote with
// its syllable count and validity. The returned slice preserves chapter
// order; invalid quotes are kept (flagged) so callers can inspect them.
func (e *Extractor) PrepareQuotes(content string) []Quote {
	var quotes []Quote
	for q := range e.normalizer.Quotes(content) {
		q.Syllables = e.counter.Count(q.Text)
		q.Valid = q.Syllables > 0 && e.filter.IsValid(q.Text)
		quotes = append(quotes, q)
	}
	return quotes
}

// Candidates returns a lazy, finite, restartable sequence of verse
// candidates for the chapter content. Segment boundaries only align on quote
// boundaries: quotes are merged whole into a line or not at all, and a quote
// overshooting its line target aborts that window — it can never be trimmed.
func (e *Extractor) Candidates(content string) iter.Seq[VerseCandidate] {
	return func(yield func(VerseCandidate) bool) {
		prepared := e.PrepareQuotes(content)

		usable := prepared[:0:0]
		for _, q := range prepared {
			if q.Valid {
				usable = append(usable, q)
			}
		}

		if len(usable) < e.MinQuotes {
			return
		}

		for start := range usable {
			candidate, ok := assemble(usable[start:])
			if !ok {
				continue
			}
			candidate.QuoteOrder = usable[start].Index
			if !yield(candidate) {
				return
			}
		}
	}
}

// assemble greedily packs consecutive quotes into 5, 7, and 5 syllable
// lines starting at quotes[0].
func assemble(quotes []Quote) (VerseCandidate, bool) {
	var c VerseCandidate
	idx := 0

	for line, target := range verseTargets {
		sum := 0
		text := ""

		for idx < len(quotes) && sum < target {
			q := quotes[idx]
			sum += q.Syllables
			if text == "" {
				text = q.Text
			} else {
				text += " " + q.Text
			}
			idx++
		}

		if sum != target {
			return VerseCandidate{}, false
		}
		c.Verses[line] = text
	}

	return c, true
}
