package haiku

import (
	"iter"
	"testing"

	"github.com/gutenku/gutenku/internal/seeded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCoherence scores verses by a canned table keyed on the first line.
type fixedCoherence struct {
	scores map[string]float64
}

func (f *fixedCoherence) EvaluateVerses(verses [3]string) float64 {
	return f.scores[verses[0]]
}

func candidateSeq(cands ...VerseCandidate) iter.Seq[VerseCandidate] {
	return func(yield func(VerseCandidate) bool) {
		for _, c := range cands {
			if !yield(c) {
				return
			}
		}
	}
}

func TestSelector_Score(t *testing.T) {
	coherence := &fixedCoherence{scores: map[string]float64{"a lovely day": 0.5}}
	s := NewSelector(NewSentimentScorer(), coherence)

	c := s.Score(VerseCandidate{Verses: [3]string{"a lovely day", "the table", "the window"}}, StrategyMarkov)

	assert.Positive(t, c.Sentiment, "one positive verse lifts the mean")
	assert.Equal(t, 0.5, c.Coherence)
	assert.InDelta(t, 0.7*c.Coherence+0.3*c.Sentiment, c.Score, 1e-12)

	c = s.Score(VerseCandidate{Verses: [3]string{"a lovely day", "the table", "the window"}}, StrategySentiment)
	assert.Equal(t, c.Sentiment, c.Score, "sentiment strategy ignores coherence")
}

func TestSelector_Score_NilCoherence(t *testing.T) {
	s := NewSelector(NewSentimentScorer(), nil)

	c := s.Score(VerseCandidate{Verses: [3]string{"grief and woe", "the dark hall", "cold rain"}}, StrategyMarkov)
	assert.Zero(t, c.Coherence)
	assert.InDelta(t, 0.3*c.Sentiment, c.Score, 1e-12)
}

func TestSelector_Select(t *testing.T) {
	coherence := &fixedCoherence{scores: map[string]float64{
		"first":  0.2,
		"second": 0.9,
		"third":  0.9,
	}}
	s := NewSelector(NewSentimentScorer(), coherence)
	neutral := [3]VerseCandidate{
		{Verses: [3]string{"first", "x", "x"}},
		{Verses: [3]string{"second", "x", "x"}},
		{Verses: [3]string{"third", "x", "x"}},
	}

	t.Run("highest composite wins", func(t *testing.T) {
		got, err := s.Select(candidateSeq(neutral[:]...), StrategyMarkov, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Verses[0], "ties resolve to the earliest candidate")
	})

	t.Run("sentiment strategy ranks by sentiment alone", func(t *testing.T) {
		cands := []VerseCandidate{
			{Verses: [3]string{"grief and woe", "x", "x"}},
			{Verses: [3]string{"a lovely day", "x", "x"}},
		}
		got, err := s.Select(candidateSeq(cands...), StrategySentiment, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, "a lovely day", got.Verses[0])
	})

	t.Run("empty sequence returns ErrNoHaikuFound", func(t *testing.T) {
		_, err := s.Select(candidateSeq(), StrategyMarkov, nil, 0)
		assert.ErrorIs(t, err, ErrNoHaikuFound)
	})

	t.Run("random strategy is reproducible per seed", func(t *testing.T) {
		a, err := s.Select(candidateSeq(neutral[:]...), StrategyRandom, seeded.Random(7), 0)
		require.NoError(t, err)
		b, err := s.Select(candidateSeq(neutral[:]...), StrategyRandom, seeded.Random(7), 0)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("pool size restricts the random draw", func(t *testing.T) {
		for seed := uint32(0); seed < 20; seed++ {
			got, err := s.Select(candidateSeq(neutral[:]...), StrategyRandom, seeded.Random(seed), 2)
			require.NoError(t, err)
			assert.NotEqual(t, "first", got.Verses[0], "the lowest-ranked candidate is outside the pool")
		}
	})
}

func TestTopByScore(t *testing.T) {
	scored := []VerseCandidate{
		{Score: 0.1},
		{Score: 0.9},
		{Score: 0.5},
		{Score: 0.9},
	}
	top := topByScore(scored, 2)
	require.Len(t, top, 2)
	assert.Equal(t, 0.9, top[0].Score)
	assert.Equal(t, 0.9, top[1].Score)
	assert.Len(t, scored, 4, "input slice is not truncated")
}
