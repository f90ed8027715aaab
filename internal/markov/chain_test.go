package markov

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Train(t *testing.T) {
	t.Run("counts adjacent pairs", func(t *testing.T) {
		chain := NewChain()
		chain.Train("the river flows. the river sings.")

		assert.Equal(t, 2, chain.Transitions["the"]["river"])
		assert.Equal(t, 1, chain.Transitions["river"]["flows"])
		assert.Equal(t, 1, chain.Transitions["river"]["sings"])
	})

	t.Run("skips coordinating conjunctions", func(t *testing.T) {
		chain := NewChain()
		chain.Train("rain and snow")

		assert.NotContains(t, chain.Transitions, "and")
		assert.Equal(t, 1, chain.Transitions["rain"]["snow"])
	})

	t.Run("probabilities over a state sum to one", func(t *testing.T) {
		chain := NewChain()
		chain.Train("the river flows the mountain sleeps the river wakes")

		sum := 0.0
		for to := range chain.Transitions["the"] {
			sum += chain.Probability("the", to)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})
}

func TestChain_Score(t *testing.T) {
	chain := NewChain()
	chain.Train("the moon rises over water")

	t.Run("trained sequence beats unseen sequence", func(t *testing.T) {
		trained := chain.Score([]string{"the", "moon", "rises"})
		unseen := chain.Score([]string{"carriage", "doctor", "letter"})
		assert.Greater(t, trained, unseen)
	})

	t.Run("unseen transitions floor instead of zeroing", func(t *testing.T) {
		score := chain.Score([]string{"carriage", "doctor"})
		assert.Equal(t, FloorProbability, score)
	})

	t.Run("short input scores zero", func(t *testing.T) {
		assert.Zero(t, chain.Score([]string{"moon"}))
		assert.Zero(t, chain.Score(nil))
	})
}

func TestChain_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	chain := NewChain()
	chain.Train("the moon rises over still water tonight")
	require.NoError(t, chain.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, chain.Count, loaded.Count)
	assert.Equal(t, chain.Transitions, loaded.Transitions)
	assert.Equal(t, chain.Totals, loaded.Totals)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestEvaluator(t *testing.T) {
	t.Run("neutral without a model", func(t *testing.T) {
		e := NewEvaluator()
		assert.False(t, e.Ready())
		assert.Zero(t, e.EvaluateVerses([3]string{"one", "two", "three"}))
	})

	t.Run("missing file degrades silently", func(t *testing.T) {
		e := NewEvaluator()
		e.Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.False(t, e.Ready())
	})

	t.Run("scores after reload", func(t *testing.T) {
		chain := NewChain()
		chain.Train("the moon rises over the water")

		e := NewEvaluator()
		e.Reload(chain)
		require.True(t, e.Ready())

		score := e.EvaluateVerses([3]string{"the moon", "rises over", "the water"})
		assert.Greater(t, score, FloorProbability)
	})
}

func TestTrainer(t *testing.T) {
	t.Run("trains and persists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.json")
		chapters := []string{
			"the river flows past the old mill",
			"the miller sleeps while the river sings",
			strings.Repeat("water under stone ", 50),
		}

		trainer := NewTrainer()
		chain, err := trainer.Train(context.Background(), chapters, path)
		require.NoError(t, err)
		assert.Positive(t, chain.Count)

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, chain.Count, loaded.Count)
	})

	t.Run("merge equals sequential training", func(t *testing.T) {
		texts := []string{
			"snow falls on the quiet garden",
			"the garden waits under snow",
			"falls the night on the garden wall",
		}

		sequential := NewChain()
		for _, text := range texts {
			sequential.Train(text)
		}

		path := filepath.Join(t.TempDir(), "model.json")
		trainer := NewTrainer()
		trainer.Workers = 3
		parallel, err := trainer.Train(context.Background(), texts, path)
		require.NoError(t, err)

		assert.Equal(t, sequential.Count, parallel.Count)
		assert.Equal(t, sequential.Transitions, parallel.Transitions)
		assert.Equal(t, sequential.Totals, parallel.Totals)
	})

	t.Run("second concurrent run is rejected", func(t *testing.T) {
		trainer := NewTrainer()
		trainer.running.Store(true)

		_, err := trainer.Train(context.Background(), []string{"text"}, filepath.Join(t.TempDir(), "m.json"))
		assert.ErrorIs(t, err, ErrTrainingInProgress)
	})
}
