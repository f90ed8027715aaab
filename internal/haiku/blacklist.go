package haiku

import (
	"regexp"
	"strings"
)

var (
	// Deny-listed patterns. Literary text has unpredictable punctuation, so
	// the filter is permissive by default and only rejects known-bad shapes.
	bracketMarkerRe = regexp.MustCompile(`[\[\]]`)
	quotationMarkRe = regexp.MustCompile("[\"“”‘’]")
	specialCharsRe  = regexp.MustCompile(`[@#0-9/_*$%;~&+={}()|:\x{2014}]|--|[\r\n]`)
	trailingCommaRe = regexp.MustCompile(`,$`)
	trailingHonorRe = regexp.MustCompile(`(?i)\b(Mr|Mrs|Dr|St)$`)
	trailingConjRe  = regexp.MustCompile(`(?i)\b(or|and|of)$`)
	allCapsQuoteRe  = regexp.MustCompile(`^[A-Z\s!:.?']+$`)
	upperCaseWordRe = regexp.MustCompile(`^[A-Z]{2,}$`)
	singleLetterRe  = regexp.MustCompile(`^[A-Za-z]$`)
)

// Lone single-letter words that are legitimate English tokens.
var singleLetterExceptions = map[string]struct{}{
	"I": {},
	"a": {},
	"A": {},
	"O": {},
}

// Filter rejects quotes containing disallowed characters or tokens.
type Filter struct {
	// MaxLength rejects quotes too long to phrase as a verse. Zero disables
	// the check.
	MaxLength int
}

// NewFilter creates a Filter with the default verse length cap.
func NewFilter() *Filter {
	return &Filter{MaxLength: 30}
}

// IsValid reports whether the quote may enter the candidate pool.
func (f *Filter) IsValid(quote string) bool {
	if f.MaxLength > 0 && len(quote) >= f.MaxLength {
		return false
	}
	if f.HasBlacklistedChars(quote) {
		return false
	}
	// A quote that is entirely upper case is a chapter header, not prose.
	// A single all-caps word is only a secondary signal and passes.
	if allCapsQuoteRe.MatchString(quote) && f.HasUpperCaseWords(quote) {
		return false
	}
	return true
}

// HasBlacklistedChars reports whether the quote contains any deny-listed
// character or token: editorial bracket markers, quotation marks, special
// characters, a comma directly before line end, a trailing honorific or
// conjunction, or an isolated single-letter word outside the exception set.
// Multi-letter abbreviations ("CC") are exempt from the single-letter rule.
func (f *Filter) HasBlacklistedChars(quote string) bool {
	if bracketMarkerRe.MatchString(quote) ||
		quotationMarkRe.MatchString(quote) ||
		specialCharsRe.MatchString(quote) ||
		trailingCommaRe.MatchString(quote) ||
		trailingHonorRe.MatchString(quote) ||
		trailingConjRe.MatchString(quote) {
		return true
	}

	for _, word := range strings.Fields(quote) {
		word = strings.Trim(word, ".,!?;:'")
		if !singleLetterRe.MatchString(word) {
			continue
		}
		if _, ok := singleLetterExceptions[word]; !ok {
			return true
		}
	}

	return false
}

// HasUpperCaseWords reports whether the quote contains an all-caps word of
// length > 1. This is a secondary signal used on whole-quote shapes, never a
// rejection reason on its own.
func (f *Filter) HasUpperCaseWords(quote string) bool {
	for _, word := range strings.Fields(quote) {
		word = strings.Trim(word, ".,!?;:'")
		if upperCaseWordRe.MatchString(word) {
			return true
		}
	}
	return false
}
