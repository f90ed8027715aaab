package puzzle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gutenku/gutenku/internal/corpus"
	"github.com/gutenku/gutenku/internal/haiku"
	"github.com/gutenku/gutenku/internal/seeded"
)

func TestValidLifelineSentence(t *testing.T) {
	assert.True(t, validLifelineSentence("The old man is glad"))
	assert.True(t, validLifelineSentence("A longer sentence is still fine here"),
		"the cap is relaxed to fifty characters")

	assert.False(t, validLifelineSentence("the pond [Footnote] froze"))
	assert.False(t, validLifelineSentence(`he said "never"`))
	assert.False(t, validLifelineSentence("chapter 12 begins"))
	assert.False(t, validLifelineSentence("THE END"))
	assert.False(t, validLifelineSentence("a sentence that rambles on far past the fifty character cap"))
}

func TestLifelineBuilder_Build(t *testing.T) {
	builder := newLifelineBuilder()
	chapters := []corpus.Chapter{
		{Content: "The old man is glad. A river runs to the sea. She wept in the rain."},
	}

	t.Run("assembles a five seven five haiku", func(t *testing.T) {
		haikus := builder.Build(chapters, 3, seeded.Random(20260210))
		require.Len(t, haikus, 1, "the pools only cover one haiku")

		lines := strings.Split(haikus[0], "\n")
		require.Len(t, lines, 3)

		counter := haiku.NewSyllableCounter()
		assert.Equal(t, 5, counter.Count(lines[0]))
		assert.Equal(t, 7, counter.Count(lines[1]))
		assert.Equal(t, 5, counter.Count(lines[2]))
	})

	t.Run("deterministic per seed", func(t *testing.T) {
		a := builder.Build(chapters, 3, seeded.Random(7))
		b := builder.Build(chapters, 3, seeded.Random(7))
		assert.Equal(t, a, b)
	})

	t.Run("thin pools produce nothing", func(t *testing.T) {
		thin := []corpus.Chapter{{Content: "The old man is glad."}}
		assert.Empty(t, builder.Build(thin, 3, seeded.Random(1)))
	})

	t.Run("richer pools fill multiple haikus", func(t *testing.T) {
		rich := []corpus.Chapter{{Content: "The old man is glad. A river runs to the sea. " +
			"She wept in the rain. He slept on the floor. A cold wind blew from the sea. " +
			"The boy ran to town. Night fell on the dark still town. The sun rose at dawn."}}

		haikus := builder.Build(rich, 3, seeded.Random(3))
		assert.GreaterOrEqual(t, len(haikus), 2)
		for _, h := range haikus {
			assert.Len(t, strings.Split(h, "\n"), 3)
		}
	})
}
