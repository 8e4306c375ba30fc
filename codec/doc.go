// Package codec provides the leaf-level primitives shared by the legacy parser and the
// ordered-key index: checksumming, decompression, legacy-format decryption, text decoding, and
// bounded edit-distance comparison.
//
// # Overview
//
// The legacy dictionary format wraps every framed block in an Adler-32 checksum, compresses key
// and meaning blocks with either raw passthrough, LZO1X, or zlib, and optionally encrypts
// key-block-info bytes with a small RIPEMD-128-keyed stream cipher. Keys and meanings are
// encoded in one of a handful of legacy text encodings. The ordered-key index additionally needs
// a bounded Levenshtein distance to support fuzzy lookup.
//
// Each concern here is a small, allocation-conscious primitive with no knowledge of the
// container formats that use it; see the legacy and index packages for how they are composed.
package codec
