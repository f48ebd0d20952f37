// Package normalize provides utilities for normalizing catalog text fields.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name trims surrounding whitespace and collapses internal runs of
// whitespace to a single space. It does not change letter case.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold returns the Unicode case-folded form of s, for case-insensitive
// comparison and uniqueness keys. Unlike strings.ToLower this handles
// cases like the Kelvin sign and dotless i correctly.
func Fold(s string) string {
	// cases.Caser carries internal state, so build one per call.
	return cases.Fold().String(s)
}

// FoldedName is shorthand for Fold(Name(s)), the canonical uniqueness key
// for author names.
func FoldedName(s string) string {
	return Fold(Name(s))
}
