// Package markov implements the bigram transition model used to score the
// coherence of candidate verse sequences, plus its offline training and
// serialization.
package markov

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FloorProbability is credited for transitions never seen in training, so an
// unseen pair damps a candidate's score instead of zeroing it out.
const FloorProbability = 0.001

var wordRe = regexp.MustCompile(`[a-z']+`)

// Coordinating conjunctions are skipped during training; they connect
// anything to anything and would flatten the distributions.
var excludedWords = map[string]struct{}{
	"for": {}, "and": {}, "nor": {}, "but": {}, "or": {}, "yet": {}, "so": {},
}

// Chain is a word-bigram transition table. Training mutates it; scoring is
// read-only, so a loaded chain is safe for concurrent readers.
type Chain struct {
	Transitions map[string]map[string]int `json:"transitions"`
	Totals      map[string]int            `json:"totals"`
	Count       int                       `json:"count"`
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{
		Transitions: make(map[string]map[string]int),
		Totals:      make(map[string]int),
	}
}

// Tokenize lowercases text and extracts word tokens, dropping excluded
// conjunctions.
func Tokenize(text string) []string {
	var words []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		w = strings.Trim(w, "'")
		if w == "" {
			continue
		}
		if _, skip := excludedWords[w]; skip {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Train extends the transition table with every adjacent word pair in text.
func (c *Chain) Train(text string) {
	words := Tokenize(text)

	for i := 0; i+1 < len(words); i++ {
		from, to := words[i], words[i+1]

		transitions, ok := c.Transitions[from]
		if !ok {
			transitions = make(map[string]int)
			c.Transitions[from] = transitions
		}

		transitions[to]++
		c.Totals[from]++
		c.Count++
	}
}

// Merge folds another chain's counts into c. Used to combine per-worker
// partial models after parallel training.
func (c *Chain) Merge(other *Chain) {
	for from, transitions := range other.Transitions {
		dst, ok := c.Transitions[from]
		if !ok {
			dst = make(map[string]int)
			c.Transitions[from] = dst
		}
		for to, n := range transitions {
			dst[to] += n
		}
		c.Totals[from] += other.Totals[from]
	}
	c.Count += other.Count
}

// Probability returns the trained transition probability from → to, or the
// floor constant when the pair (or the state itself) was never observed.
// Probabilities over any known state sum to 1.
func (c *Chain) Probability(from, to string) float64 {
	transitions, ok := c.Transitions[from]
	if !ok {
		return FloorProbability
	}

	n := transitions[to]
	if n == 0 {
		return FloorProbability
	}

	return float64(n) / float64(c.Totals[from])
}

// Score walks the token sequence through the model and sums the transition
// probabilities, normalized by the number of transitions. An input with
// fewer than two tokens scores 0.
func (c *Chain) Score(tokens []string) float64 {
	if len(tokens) < 2 {
		return 0
	}

	sum := 0.0
	for i := 0; i+1 < len(tokens); i++ {
		sum += c.Probability(tokens[i], tokens[i+1])
	}

	return sum / float64(len(tokens)-1)
}

// Save serializes the chain as JSON, writing to a temp file and renaming so
// concurrent readers only ever observe a complete model.
func (c *Chain) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".markov-*.json")
	if err != nil {
		return fmt.Errorf("create temp model: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close model: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("swap model: %w", err)
	}

	return nil
}

// Load reads a serialized chain from path.
func Load(path string) (*Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	chain := NewChain()
	if err := json.Unmarshal(data, chain); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	return chain, nil
}
