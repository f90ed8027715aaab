package haiku

import "strings"

// SyllableCounter estimates spoken syllable counts with phonetic heuristics.
// It is approximate by design: vowel runs are counted as one syllable each,
// a silent trailing "e" is dropped, and a small exception table covers
// irregular words the rules misjudge. It is not a dictionary lookup and will
// be wrong on genuinely ambiguous words; the extraction pipeline only needs
// it to be consistent, which it is.
type SyllableCounter struct{}

// NewSyllableCounter creates a SyllableCounter.
func NewSyllableCounter() *SyllableCounter {
	return &SyllableCounter{}
}

// Irregular words whose vowel-run count does not match how they are spoken.
var syllableExceptions = map[string]int{
	"quiet":     2,
	"poem":      2,
	"poet":      2,
	"idea":      3,
	"real":      1,
	"create":    2,
	"science":   2,
	"being":     2,
	"doing":     2,
	"going":     2,
	"every":     2,
	"evening":   2,
	"interest":  3,
	"beautiful": 3,
	"area":      3,
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// Vowel pairs normally spoken as two syllables (hiatus), so a single vowel
// run containing one earns an extra count: "ma-ri-o", "di-a-ry". The pair is
// not split after t, s, c, or g, where it fuses into one sound ("nation",
// "passion", "special", "religion").
var hiatusPairs = []string{"ia", "io", "eo", "ua", "uo"}

var hiatusFusingConsonants = "tscg"

func countHiatus(w string) int {
	count := 0
	for _, pair := range hiatusPairs {
		for i := strings.Index(w, pair); i >= 0; {
			if i == 0 || !strings.ContainsRune(hiatusFusingConsonants, rune(w[i-1])) {
				count++
			}
			next := strings.Index(w[i+1:], pair)
			if next < 0 {
				break
			}
			i += 1 + next
		}
	}
	return count
}

// Count sums the syllable counts of every word in text. Zero-length or
// letterless tokens count as 0; the function never fails.
func (s *SyllableCounter) Count(text string) int {
	total := 0
	for _, word := range strings.Fields(text) {
		total += s.CountWord(word)
	}
	return total
}

// CountWord counts syllables in a single word. Apostrophes are not
// separators: the word stays one token, and the contraction's parts are
// counted together ("it's" = 2, matching the reference syllabifier).
func (s *SyllableCounter) CountWord(word string) int {
	cleaned := normalizeWord(word)
	if cleaned == "" {
		return 0
	}

	if n, ok := syllableExceptions[cleaned]; ok {
		return n
	}

	// Contractions: count each apostrophe-delimited part. Short clitics like
	// "'s" or "'t" floor at one, which reproduces the reference counts.
	if strings.Contains(cleaned, "'") {
		total := 0
		for _, part := range strings.Split(cleaned, "'") {
			if part == "" {
				continue
			}
			total += s.CountWord(part)
		}
		return total
	}

	return countPlainWord(cleaned)
}

func countPlainWord(w string) int {
	// Very short words are one syllable regardless of spelling ("be", "I").
	if len(w) < 3 {
		return 1
	}

	count := 0
	inRun := false
	for i := 0; i < len(w); i++ {
		if !isVowel(w[i]) {
			inRun = false
			continue
		}
		if !inRun {
			count++
			inRun = true
		}
	}

	count += countHiatus(w)

	// Silent trailing "e", unless dropping it would leave nothing ("the") or
	// the ending is consonant+"le" ("table").
	if strings.HasSuffix(w, "e") && count > 1 && !hasConsonantLeEnding(w) {
		count--
	}

	if count == 0 {
		return 1
	}
	return count
}

func hasConsonantLeEnding(w string) bool {
	return len(w) >= 3 && strings.HasSuffix(w, "le") && !isVowel(w[len(w)-3])
}

// normalizeWord lowercases and keeps only letters and inner apostrophes.
func normalizeWord(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if (r >= 'a' && r <= 'z') || r == '\'' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "'")
}
