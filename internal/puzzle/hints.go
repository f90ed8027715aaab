package puzzle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/seeded"
)

// Hint types. Round 1 is always HintEmoticons; the rest are drawn from the
// pool.
const (
	HintEmoticons          = "emoticons"
	HintTitleWordCount     = "title_word_count"
	HintGenre              = "genre"
	HintEra                = "era"
	HintProtagonist        = "protagonist"
	HintPublicationCentury = "publication_century"
	HintSetting            = "setting"
	HintQuote              = "quote"
	HintFirstLetter        = "first_letter"
	HintAuthorNationality  = "author_nationality"
	HintAuthorName         = "author_name"
)

// hintsPerDay is how many pool hints follow the emoticon round.
const hintsPerDay = 5

// hintDefinition pairs a hint type with its difficulty. Lower difficulty
// reveals less and is ordered into earlier rounds.
type hintDefinition struct {
	typ        string
	difficulty int
	generate   func(book corpus.CatalogBook, random func() float64) string
}

var hintPool = []hintDefinition{
	{
		typ:        HintTitleWordCount,
		difficulty: 2,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			count := len(strings.Fields(book.Title))
			if count == 1 {
				return "1 word"
			}
			return fmt.Sprintf("%d words", count)
		},
	},
	{
		typ:        HintGenre,
		difficulty: 3,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			return book.Genre
		},
	},
	{
		typ:        HintEra,
		difficulty: 3,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			return book.Era
		},
	},
	{
		typ:        HintProtagonist,
		difficulty: 4,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			return book.Protagonist
		},
	},
	{
		typ:        HintPublicationCentury,
		difficulty: 4,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			century := book.PublicationYear/100 + 1
			return fmt.Sprintf("Published in the %s century", ordinal(century))
		},
	},
	{
		typ:        HintSetting,
		difficulty: 5,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			return book.Setting
		},
	},
	{
		typ:        HintQuote,
		difficulty: 6,
		generate: func(book corpus.CatalogBook, random func() float64) string {
			if len(book.NotableQuotes) == 0 {
				return "A famous quote from this book..."
			}
			return seeded.Pick(book.NotableQuotes, random)
		},
	},
	{
		typ:        HintFirstLetter,
		difficulty: 7,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			return strings.ToUpper(book.Title[:1]) + "..."
		},
	},
	{
		typ:        HintAuthorNationality,
		difficulty: 8,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			return book.AuthorNationality
		},
	},
	{
		typ:        HintAuthorName,
		difficulty: 10,
		generate: func(book corpus.CatalogBook, _ func() float64) string {
			return strings.Fields(book.Author)[0]
		},
	},
}

// GenerateHints builds the day's six hints: the emoticon round plus five
// drawn from the pool under the date-seeded generator. Era and publication
// century never appear together; the five are ordered by ascending
// difficulty into rounds 2 through 6.
func GenerateHints(book corpus.CatalogBook, random func() float64) []Hint {
	hints := []Hint{{
		Round:   1,
		Type:    HintEmoticons,
		Content: strings.Join(book.Emoticons, ""),
	}}

	shuffled := seeded.Shuffle(hintPool, random)
	selected := make([]hintDefinition, hintsPerDay)
	copy(selected, shuffled[:hintsPerDay])

	// Era and century overlap too much; keep at most one of the pair.
	eraIndex, hasCentury := -1, false
	for i, def := range selected {
		switch def.typ {
		case HintEra:
			eraIndex = i
		case HintPublicationCentury:
			hasCentury = true
		}
	}
	if eraIndex >= 0 && hasCentury {
		for _, def := range shuffled[hintsPerDay:] {
			if def.typ != HintEra && def.typ != HintPublicationCentury {
				selected[eraIndex] = def
				break
			}
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].difficulty < selected[j].difficulty
	})

	for i, def := range selected {
		hints = append(hints, Hint{
			Round:   i + 2,
			Type:    def.typ,
			Content: def.generate(book, random),
		})
	}

	return hints
}

func ordinal(n int) string {
	switch n {
	case 21:
		return "21st"
	case 22:
		return "22nd"
	case 23:
		return "23rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
