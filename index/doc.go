// Package index implements the ordered-key index embedded in a compiled dictionary file.
//
// On disk the index is a flat, sorted table of fixed-size entries (key length, key-blob
// offset, 64-bit value) followed by a single key-bytes blob holding every entry's key text back
// to back. Exact lookup is a binary search over the fixed-size entries; fuzzy lookup is a
// forward scan with a bounded Levenshtein distance and an early exit once enough matches are
// collected. The table is small and simple enough to be memory-mapped directly by the loader
// with no further parsing.
package index
