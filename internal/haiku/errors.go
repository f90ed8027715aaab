package haiku

import "errors"

// ErrNoHaikuFound is returned when extraction produces zero valid 5-7-5
// combinations for the selected chapters. Callers retry with a different
// book or chapter selection.
var ErrNoHaikuFound = errors.New("no haiku found")
