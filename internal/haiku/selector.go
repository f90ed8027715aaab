package haiku

import (
	"iter"

	"github.com/gutenku/gutenku/internal/seeded"
)

// Strategy names the selection policy applied to the ranked candidates.
type Strategy string

const (
	// StrategyMarkov ranks by the composite score with Markov coherence as
	// the primary signal. Used when enhanced (AI) scoring is requested.
	StrategyMarkov Strategy = "markov"
	// StrategySentiment ranks by sentiment alone.
	StrategySentiment Strategy = "sentiment"
	// StrategyRandom picks uniformly from the candidate pool using the
	// caller's deterministic generator.
	StrategyRandom Strategy = "random"
)

// CoherenceScorer scores how well three verses flow together. Implemented by
// markov.Evaluator; a nil scorer means neutral coherence.
type CoherenceScorer interface {
	EvaluateVerses(verses [3]string) float64
}

// Selector combines the filter and score signals over a candidate sequence
// and commits to at most one winner.
type Selector struct {
	sentiment *SentimentScorer
	coherence CoherenceScorer

	// Composite weights. Coherence is the primary signal by default.
	CoherenceWeight float64
	SentimentWeight float64
}

// NewSelector wires a selector. coherence may be nil.
func NewSelector(sentiment *SentimentScorer, coherence CoherenceScorer) *Selector {
	return &Selector{
		sentiment:       sentiment,
		coherence:       coherence,
		CoherenceWeight: 0.7,
		SentimentWeight: 0.3,
	}
}

// Score annotates a candidate with its sentiment, coherence, and composite
// rank under the given strategy.
func (s *Selector) Score(c VerseCandidate, strategy Strategy) VerseCandidate {
	sum := 0.0
	for _, verse := range c.Verses {
		sum += s.sentiment.Analyze(verse)
	}
	c.Sentiment = sum / 3

	if s.coherence != nil {
		c.Coherence = s.coherence.EvaluateVerses(c.Verses)
	}

	switch strategy {
	case StrategySentiment:
		c.Score = c.Sentiment
	default:
		c.Score = s.CoherenceWeight*c.Coherence + s.SentimentWeight*c.Sentiment
	}

	return c
}

// Select ranks every candidate and returns the winner. Ties resolve to the
// earliest candidate in sequence order (chapter order, then quote order), so
// selection is fully deterministic. StrategyRandom instead draws from the
// pool with the supplied generator; since the generator is seeded by the
// caller, even random selection is reproducible. poolSize > 0 restricts the
// draw to the top-ranked candidates.
//
// Returns ErrNoHaikuFound when the sequence is empty.
func (s *Selector) Select(candidates iter.Seq[VerseCandidate], strategy Strategy, random func() float64, poolSize int) (VerseCandidate, error) {
	scored := make([]VerseCandidate, 0, 16)
	for c := range candidates {
		scored = append(scored, s.Score(c, strategy))
	}

	if len(scored) == 0 {
		return VerseCandidate{}, ErrNoHaikuFound
	}

	if strategy == StrategyRandom {
		pool := scored
		if poolSize > 0 && poolSize < len(pool) {
			pool = topByScore(scored, poolSize)
		}
		return seeded.Pick(pool, random), nil
	}

	best := scored[0]
	for _, c := range scored[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, nil
}

// topByScore returns the n best-scored candidates in descending score
// order, ties resolved toward the earlier candidate.
func topByScore(scored []VerseCandidate, n int) []VerseCandidate {
	pool := make([]VerseCandidate, len(scored))
	copy(pool, scored)

	// Selection by score with the stable order-based tie-break; pools are
	// small, a partial selection pass is enough.
	for i := 0; i < n; i++ {
		best := i
		for j := i + 1; j < len(pool); j++ {
			if pool[j].Score > pool[best].Score {
				best = j
			}
		}
		pool[i], pool[best] = pool[best], pool[i]
	}

	return pool[:n]
}
