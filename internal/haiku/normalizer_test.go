package haiku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectQuotes(n *Normalizer, text string) []Quote {
	var quotes []Quote
	for q := range n.Quotes(text) {
		quotes = append(quotes, q)
	}
	return quotes
}

func TestNormalizer_Quotes(t *testing.T) {
	n := NewNormalizer()

	t.Run("splits on sentence punctuation", func(t *testing.T) {
		quotes := collectQuotes(n, "Today is sunny. The weather for tomorrow might be rainy. And I want to be free.")
		require.Len(t, quotes, 3)
		assert.Equal(t, "Today is sunny", quotes[0].Text)
		assert.Equal(t, "The weather for tomorrow might be rainy", quotes[1].Text)
		assert.Equal(t, "And I want to be free.", quotes[2].Text)
	})

	t.Run("commas and semicolons split too", func(t *testing.T) {
		quotes := collectQuotes(n, "the wind rose, the trees bent; night fell")
		require.Len(t, quotes, 3)
		assert.Equal(t, "the wind rose", quotes[0].Text)
		assert.Equal(t, "the trees bent", quotes[1].Text)
		assert.Equal(t, "night fell", quotes[2].Text)
	})

	t.Run("honorific dots do not split", func(t *testing.T) {
		quotes := collectQuotes(n, "Mr. Darcy bowed. She left.")
		require.Len(t, quotes, 2)
		assert.Equal(t, "Mr Darcy bowed", quotes[0].Text)
	})

	t.Run("editorial markers are removed before splitting", func(t *testing.T) {
		quotes := collectQuotes(n, "The pond [Illustration: a pond] froze over. Winter came.")
		require.Len(t, quotes, 2)
		assert.Equal(t, "The pond froze over", quotes[0].Text)
	})

	t.Run("whitespace is collapsed and indices are sequential", func(t *testing.T) {
		quotes := collectQuotes(n, "a  long\n  pause. then   silence.")
		require.Len(t, quotes, 2)
		assert.Equal(t, "a long pause", quotes[0].Text)
		assert.Equal(t, 0, quotes[0].Index)
		assert.Equal(t, 1, quotes[1].Index)
	})

	t.Run("sequence restarts on each range", func(t *testing.T) {
		seq := n.Quotes("one two. three four.")
		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
		}
		assert.Equal(t, first, second)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, collectQuotes(n, ""))
		assert.Empty(t, collectQuotes(n, "   \n\t  "))
	})
}

func TestCleanVerse(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"the river wound slowly", "The river wound slowly"},
		{"  spaced   out  words ", "Spaced out words"},
		{"'a quoted line'", "A quoted line"},
		{"“smart quotes too”", "Smart quotes too"},
		{"already Capital", "Already Capital"},
		{"a trailing stop.", "A trailing stop"},
		{"faded away...", "Faded away"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanVerse(tc.in), "input %q", tc.in)
	}
}

func TestCleanVerses(t *testing.T) {
	got := CleanVerses([3]string{"the sun rises,", "over the  cold hills", "'a new day begins.'"})
	assert.Equal(t, [3]string{"The sun rises", "Over the cold hills", "A new day begins"}, got)
}
