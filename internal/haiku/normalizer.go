package haiku

import (
	"iter"
	"regexp"
	"strings"
)

var (
	// Editorial insertions like "[Illustration: ...]" or "[Footnote 3]".
	editorialMarkerRe = regexp.MustCompile(`\[[^\]]*\]`)
	// Honorific dots would otherwise split sentences mid-name.
	honorificDotRe = regexp.MustCompile(`\b(Mr|Mrs|Dr|St)\.`)
	// Sentence-ending punctuation followed by whitespace.
	sentenceSplitRe = regexp.MustCompile(`[.?!,;]+\s+`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Normalizer splits raw chapter text into candidate quote units. It is a pure
// function of its input: no state is kept between invocations.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Quotes returns a lazy, finite sequence of quote units from text. The
// sequence restarts from the beginning on each range. Original casing is
// preserved in both Raw and Text so downstream blacklist checks see it.
func (n *Normalizer) Quotes(text string) iter.Seq[Quote] {
	return func(yield func(Quote) bool) {
		prepared := honorificDotRe.ReplaceAllString(text, "$1")
		prepared = editorialMarkerRe.ReplaceAllString(prepared, " ")

		index := 0
		for _, fragment := range sentenceSplitRe.Split(prepared, -1) {
			normalized := strings.TrimSpace(whitespaceRe.ReplaceAllString(fragment, " "))
			if normalized == "" {
				continue
			}

			q := Quote{
				Index: index,
				Raw:   strings.TrimSpace(fragment),
				Text:  normalized,
			}
			index++

			if !yield(q) {
				return
			}
		}
	}
}

// CleanVerse prepares a raw verse for display: whitespace is collapsed,
// wrapping quote marks and trailing punctuation are dropped, and the first
// letter is capitalized.
func CleanVerse(verse string) string {
	v := strings.TrimSpace(whitespaceRe.ReplaceAllString(verse, " "))
	v = strings.Trim(v, `'"`+"“”‘’")
	v = strings.TrimSuffix(v, "...")
	v = strings.TrimRight(v, ".,!;?")
	v = strings.TrimSpace(v)

	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

// CleanVerses applies CleanVerse to each line of a candidate.
func CleanVerses(verses [3]string) [3]string {
	var out [3]string
	for i, v := range verses {
		out[i] = CleanVerse(v)
	}
	return out
}
