// Package compiler writes a compiled dictionary file from a record.Source plus optional
// identity metadata and CSS/JS assets.
//
// The on-disk layout is: an 8-byte magic, a 4-byte format version, a back-patched header
// region (name, description, index/data region descriptors, script, style), a data region of
// framed DataEntry records, and an index region holding the serialized ordered-key table. All
// multi-byte integers are big-endian. Compile writes to a temp file in the output's directory
// and renames it into place only after a successful fsync, so a crash or an error mid-compile
// never leaves a partial file at the requested path.
package compiler
