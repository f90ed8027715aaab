package seeded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	t.Run("same seed yields identical sequences", func(t *testing.T) {
		a := Random(20260106)
		b := Random(20260106)

		for i := 0; i < 100; i++ {
			assert.Equal(t, a(), b(), "sequence diverged at draw %d", i)
		}
	})

	t.Run("values stay in unit interval", func(t *testing.T) {
		r := Random(42)
		for i := 0; i < 1000; i++ {
			v := r()
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a := Random(1)
		b := Random(2)

		same := true
		for i := 0; i < 10; i++ {
			if a() != b() {
				same = false
				break
			}
		}
		assert.False(t, same, "seeds 1 and 2 should produce different draws")
	})
}

func TestDateToSeed(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		seed, err := DateToSeed("2026-01-06")
		require.NoError(t, err)
		assert.Equal(t, uint32(20260106), seed)
	})

	t.Run("empty string is the documented zero fallback", func(t *testing.T) {
		seed, err := DateToSeed("")
		require.NoError(t, err)
		assert.Equal(t, uint32(0), seed)
	})

	t.Run("malformed dates", func(t *testing.T) {
		for _, input := range []string{"2026", "2026-01", "yyyy-mm-dd", "2026-13-01", "2026-01-32", "2026-00-10"} {
			_, err := DateToSeed(input)
			assert.ErrorIs(t, err, ErrInvalidSeed, "input %q", input)
		}
	})
}

func TestShuffle(t *testing.T) {
	t.Run("deterministic for a given seed", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

		first := Shuffle(items, Random(20260101))
		second := Shuffle(items, Random(20260101))
		assert.Equal(t, first, second)
	})

	t.Run("does not modify the input", func(t *testing.T) {
		items := []string{"a", "b", "c", "d"}
		Shuffle(items, Random(7))
		assert.Equal(t, []string{"a", "b", "c", "d"}, items)
	})

	t.Run("is a permutation", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5}
		shuffled := Shuffle(items, Random(99))
		assert.ElementsMatch(t, items, shuffled)
	})
}
