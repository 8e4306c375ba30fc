// Package normalize implements the key-normalization rule shared by the compiler and the
// loader: strip a trailing NUL terminator, then case-fold to lower case. Both compile-time
// sorting/de-duplication and lookup-time queries must apply exactly this transform so that keys
// differing only by case collide consistently.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Key normalizes a dictionary key: trailing NUL is stripped, then the result is case-folded to
// lower case via Unicode case folding (not locale-sensitive title casing), matching the legacy
// format's key-comparison semantics. Internal whitespace and punctuation are left intact.
func Key(key string) string {
	key = strings.TrimSuffix(key, "\x00")
	return foldCaser.String(key)
}

// KeyBytes is the []byte-oriented equivalent of Key: it normalizes raw key bytes and returns
// the result as a string.
func KeyBytes(key []byte) string {
	return Key(string(key))
}
