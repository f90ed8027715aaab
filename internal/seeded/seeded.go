// Package seeded provides the deterministic PRNG primitive shared by the
// haiku selection pipeline and the daily puzzle. All outputs derived from a
// seed are reproducible: two generators built from the same seed yield
// identical sequences.
package seeded

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSeed is returned when a date string cannot be converted to a seed.
var ErrInvalidSeed = fmt.Errorf("invalid seed date")

// Random returns a mulberry32 generator producing floats in [0, 1).
// The mixing function is fixed: multiply, xor-shift, xor-multiply, xor-shift.
func Random(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6D2B79F5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296.0
	}
}

// DateToSeed converts a YYYY-MM-DD date string to a numeric seed:
// year*10000 + month*100 + day. An empty string returns 0 — a defined
// fallback, not an error. Any other malformed input returns ErrInvalidSeed.
func DateToSeed(dateStr string) (uint32, error) {
	if dateStr == "" {
		return 0, nil
	}

	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, dateStr)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, dateStr)
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, dateStr)
	}

	return uint32(year*10000 + month*100 + day), nil
}

// Shuffle returns a new slice holding a Fisher-Yates permutation of items
// driven by random. The input slice is not modified.
func Shuffle[T any](items []T, random func() float64) []T {
	result := make([]T, len(items))
	copy(result, items)

	for i := len(result) - 1; i > 0; i-- {
		j := int(random() * float64(i+1))
		result[i], result[j] = result[j], result[i]
	}

	return result
}

// Pick selects one element of items using random. Items must be non-empty.
func Pick[T any](items []T, random func() float64) T {
	return items[int(random()*float64(len(items)))]
}
