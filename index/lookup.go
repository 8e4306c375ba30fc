package index

import (
	"sort"
	"unicode/utf8"

	"github.com/ikey4u/wikit/codec"
)

// DefaultLimit bounds the number of results Lookup returns absent an explicit limit.
const DefaultLimit = 20

// fuzzinessFor maps a query's rune length to the bounded edit distance used for fuzzy
// matching: short queries tolerate no slack (distance dominates short strings too easily),
// medium queries tolerate one edit, longer queries tolerate two.
func fuzzinessFor(runeLen int) int {
	switch {
	case runeLen <= 2:
		return 0
	case runeLen <= 5:
		return 1
	default:
		return 2
	}
}

// Lookup returns up to limit entries matching query: an exact match first if present, followed
// by entries within the query's Levenshtein fuzziness band, in the table's natural (sorted)
// order. limit<=0 uses DefaultLimit. query is expected to already be normalized the same way
// the table's keys were when built.
func (ix *Index) Lookup(query string, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var results []Entry
	seen := -1

	if i, ok := ix.search(query); ok {
		results = append(results, ix.entryAt(i))
		seen = i
		if len(results) >= limit {
			return results
		}
	}

	fuzziness := fuzzinessFor(utf8.RuneCountInString(query))
	if fuzziness == 0 && seen < 0 {
		return results
	}

	queryRunes := []rune(query)
	for i := 0; i < ix.count && len(results) < limit; i++ {
		if i == seen {
			continue
		}
		key := ix.keyAt(i)
		if codec.WithinLevenshtein(queryRunes, []rune(key), fuzziness) {
			results = append(results, ix.entryAt(i))
		}
	}

	return results
}

// search performs a binary search for query's exact position, returning its index and true if
// found.
func (ix *Index) search(query string) (int, bool) {
	i := sort.Search(ix.count, func(i int) bool { return ix.keyAt(i) >= query })
	if i < ix.count && ix.keyAt(i) == query {
		return i, true
	}
	return 0, false
}
