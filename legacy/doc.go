// Package legacy parses the third-party legacy binary dictionary format (engine versions "1.x"
// and "2.x"): a UTF-16LE XML-like header, a key-block section mapping keys to meaning offsets,
// and a meaning-block section holding the concatenated meaning text. Both sections are framed in
// Adler-32-checked, optionally LZO1X/zlib-compressed blocks; the key-block-info blob may also be
// encrypted with a RIPEMD-128-keyed stream cipher.
//
// Parse returns an ordered (possibly duplicate-keyed) record stream; ParseHeader stops after the
// header for callers that only need metadata, mirroring the original tool's header-only inspect
// mode.
package legacy
