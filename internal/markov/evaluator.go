package markov

import (
	"log/slog"
	"strings"
	"sync/atomic"
)

// Evaluator scores verse sequences against a loaded chain. When no model is
// available it degrades to a neutral 0 — coherence is an enhancement signal,
// never a hard requirement.
type Evaluator struct {
	chain atomic.Pointer[Chain]
}

// NewEvaluator creates an evaluator with no model loaded.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Load reads the model at path. A missing or corrupt file logs a warning and
// leaves the evaluator in neutral mode rather than failing.
func (e *Evaluator) Load(path string) {
	chain, err := Load(path)
	if err != nil {
		slog.Warn("markov model unavailable, scoring degrades to neutral", "path", path, "error", err)
		return
	}

	e.chain.Store(chain)
	slog.Info("markov model loaded", "states", len(chain.Transitions), "transitions", chain.Count)
}

// Reload swaps in a freshly trained chain. Safe against concurrent readers.
func (e *Evaluator) Reload(chain *Chain) {
	e.chain.Store(chain)
}

// Ready reports whether a model is loaded.
func (e *Evaluator) Ready() bool {
	return e.chain.Load() != nil
}

// EvaluateVerses scores the coherence of a candidate's concatenated verse
// text: the token sequence is walked through the model and transition
// probabilities are summed (floor constant for unseen states). Returns 0
// when no model is loaded.
func (e *Evaluator) EvaluateVerses(verses [3]string) float64 {
	chain := e.chain.Load()
	if chain == nil {
		return 0
	}

	return chain.Score(Tokenize(strings.Join(verses[:], " ")))
}
