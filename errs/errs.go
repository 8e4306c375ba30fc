// Package errs defines the sentinel error values returned across wikit's packages.
//
// Callers should check error kind with errors.Is against these sentinels rather than string
// matching. Call sites wrap a sentinel with operation/path/offset context using
// fmt.Errorf("%w: ...", errs.ErrX, ...) so the original sentinel remains reachable through the
// wrapping chain.
package errs

import "errors"

var (
	// ErrIO is returned for any filesystem operation failure (open/read/write/seek/sync) not
	// covered by the more specific ErrSourceIO/ErrOutputIO below.
	ErrIO = errors.New("wikit: i/o error")

	// ErrSourceIO is returned by Compile for a read failure against the input source file.
	ErrSourceIO = errors.New("wikit: source i/o error")

	// ErrOutputIO is returned by Compile for a write failure against the output file (including
	// its temp-write-then-rename sequence).
	ErrOutputIO = errors.New("wikit: output i/o error")

	// ErrBadMagic is returned when a compiled file does not start with the WIKIT516 magic.
	ErrBadMagic = errors.New("wikit: bad magic")

	// ErrUnsupportedVersion is returned when a compiled file's format_version is not recognized.
	ErrUnsupportedVersion = errors.New("wikit: unsupported format version")

	// ErrHeaderTruncated is returned when a compiled file's header region is shorter than its
	// declared size, or a size field would place a region outside the file.
	ErrHeaderTruncated = errors.New("wikit: header truncated")

	// ErrSourceFormat is returned when the legacy parser encounters structurally impossible
	// input (bad prologue, block counts that don't add up, unknown pack type, and similar).
	ErrSourceFormat = errors.New("wikit: malformed legacy source")

	// ErrSourceChecksum is returned when an Adler-32 check fails anywhere in a legacy file.
	ErrSourceChecksum = errors.New("wikit: legacy checksum mismatch")

	// ErrSourceEncrypted is returned when a legacy file declares key-block encryption (enc=1),
	// which is not supported.
	ErrSourceEncrypted = errors.New("wikit: unsupported key-block encryption")

	// ErrDecodeError is returned when text decoding fails under the declared encoding.
	ErrDecodeError = errors.New("wikit: text decode error")

	// ErrIndexBuildOrder is returned when the index builder receives out-of-order or duplicate
	// keys; this indicates a bug in the caller, since the compiler is responsible for sorting
	// and de-duplicating records before streaming them to the index builder.
	ErrIndexBuildOrder = errors.New("wikit: index keys not strictly ascending")

	// ErrTooLarge is returned when a size field would not fit the compiled file's width
	// constraints (name/desc limited to 64 KiB, script/style to 4 GiB, and the whole header
	// region holding all four of them to 0xffff bytes, the reach of its 2-byte size field).
	ErrTooLarge = errors.New("wikit: field exceeds size limit")
)
