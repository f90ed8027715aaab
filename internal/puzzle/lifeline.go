package puzzle

import (
	"regexp"
	"strings"

	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/haiku"
	"github.com/gutenku/gutenku/internal/seeded"
)

// Lifeline sentences get a relaxed validity check: longer lines pass, and
// only hard formatting problems reject. More of the book qualifies, which is
// the point — a lifeline haiku should sound like the book.
const lifelineSentenceMaxLength = 50

var (
	lifelineFormattingRe = regexp.MustCompile(`[@#\[\]{}()"“”|]`)
	lifelineSpecialsRe   = regexp.MustCompile(`[0-9*$%_~&]`)
	lifelineAllCapsRe    = regexp.MustCompile(`^[A-Z\s!:.?]+$`)
)

// lifelineBuilder assembles deterministic 5-7-5 haikus from a book's
// sentence pools for the reveal lifeline.
type lifelineBuilder struct {
	normalizer *haiku.Normalizer
	counter    *haiku.SyllableCounter
}

func newLifelineBuilder() *lifelineBuilder {
	return &lifelineBuilder{
		normalizer: haiku.NewNormalizer(),
		counter:    haiku.NewSyllableCounter(),
	}
}

func validLifelineSentence(sentence string) bool {
	if lifelineFormattingRe.MatchString(sentence) {
		return false
	}
	if lifelineSpecialsRe.MatchString(sentence) {
		return false
	}
	if lifelineAllCapsRe.MatchString(sentence) {
		return false
	}
	return len(sentence) < lifelineSentenceMaxLength
}

// pools splits chapter sentences into the 5- and 7-syllable buckets.
func (b *lifelineBuilder) pools(chapters []corpus.Chapter) (five, seven []string) {
	for _, chapter := range chapters {
		for quote := range b.normalizer.Quotes(chapter.Content) {
			if !validLifelineSentence(quote.Text) {
				continue
			}
			switch b.counter.Count(quote.Text) {
			case 5:
				five = append(five, quote.Text)
			case 7:
				seven = append(seven, quote.Text)
			}
		}
	}
	return five, seven
}

// Build assembles up to count haikus from the chapters' sentence pools,
// consuming the seeded generator. Each haiku takes two unused 5-syllable
// lines and one unused 7-syllable line; when the pools run dry the list is
// cut short. Verses are cleaned for display and joined with newlines.
func (b *lifelineBuilder) Build(chapters []corpus.Chapter, count int, random func() float64) []string {
	five, seven := b.pools(chapters)
	if len(five) < 2 || len(seven) < 1 {
		return nil
	}

	usedFive := map[string]bool{}
	usedSeven := map[string]bool{}
	var haikus []string

	for range count {
		availableFive := unused(five, usedFive)
		availableSeven := unused(seven, usedSeven)
		if len(availableFive) < 2 || len(availableSeven) < 1 {
			break
		}

		v1 := seeded.Pick(availableFive, random)
		usedFive[v1] = true

		v2 := seeded.Pick(availableSeven, random)
		usedSeven[v2] = true

		remaining := availableFive
		if filtered := without(availableFive, v1); len(filtered) > 0 {
			remaining = filtered
		}
		v3 := seeded.Pick(remaining, random)
		usedFive[v3] = true

		verses := haiku.CleanVerses([3]string{v1, v2, v3})
		haikus = append(haikus, strings.Join(verses[:], "\n"))
	}

	return haikus
}

func unused(pool []string, used map[string]bool) []string {
	out := make([]string, 0, len(pool))
	for _, s := range pool {
		if !used[s] {
			out = append(out, s)
		}
	}
	return out
}

func without(pool []string, drop string) []string {
	out := make([]string, 0, len(pool))
	for _, s := range pool {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
