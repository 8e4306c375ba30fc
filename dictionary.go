package wikit

import (
	"encoding/binary"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"

	"github.com/ikey4u/wikit/errs"
	"github.com/ikey4u/wikit/index"
	"github.com/ikey4u/wikit/normalize"
)

// Entry is one resolved lookup result: a matched key and its decoded meaning text.
type Entry struct {
	Key     string
	Meaning string
}

// Dictionary is a loaded, read-only compiled dictionary file.
type Dictionary struct {
	f      *os.File
	header Header
	mapped mmap.MMap
	idx    *index.Index
}

// Load opens path, validates its header, and memory-maps the file read-only, serving lookups from
// the index region of that mapping.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrIO, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", errs.ErrIO, path, err)
	}

	// Read only the fixed preamble, then only the header region it points to, rather than the
	// whole file: a dictionary's data region can be arbitrarily large, and Load only needs the
	// header's handful of offset/size fields before it can hand lookup off to the mmap below.
	preamble := make([]byte, preambleSize)
	if _, err := f.ReadAt(preamble, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: read preamble of %s: %v", errs.ErrHeaderTruncated, path, err)
	}

	headerSize, err := parseHeaderSize(preamble)
	if err != nil {
		f.Close()
		return nil, err
	}

	headerRegion := make([]byte, headerSize)
	if _, err := f.ReadAt(headerRegion, preambleSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: read header region of %s: %v", errs.ErrHeaderTruncated, path, err)
	}

	h, _, err := parseHeader(headerRegion, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}

	// mmap-go requires Map's offset to be page-aligned, and index_offset is not guaranteed to
	// be; map the whole read-only file instead (as small as a dictionary's header+data region
	// typically is relative to the OS's lazy page-in behavior) and slice into it for the index
	// region specifically.
	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", errs.ErrIO, path, err)
	}

	idx, err := index.Open(mapped[h.IndexOffset : h.IndexOffset+h.IndexSize])
	if err != nil {
		mapped.Unmap()
		f.Close()
		return nil, err
	}

	return &Dictionary{f: f, header: h, mapped: mapped, idx: idx}, nil
}

// Header returns the dictionary's parsed metadata.
func (d *Dictionary) Header() Header { return d.header }

// Script returns the embedded JS asset, or nil if none was compiled in.
func (d *Dictionary) Script() []byte { return d.header.Script }

// Style returns the embedded CSS asset, or nil if none was compiled in.
func (d *Dictionary) Style() []byte { return d.header.Style }

// Lookup normalizes word and queries the index for exact and fuzzy matches, resolving each
// candidate's data-region offset to its decoded meaning text. It fails only on IO; a candidate
// whose decode fails is silently dropped from the result, and no match at all yields an empty
// slice with a nil error.
func (d *Dictionary) Lookup(word string) ([]Entry, error) {
	key := normalize.Key(word)

	var entries []Entry
	for _, cand := range d.idx.Lookup(key, index.DefaultLimit) {
		meaning, ok, err := d.resolveMeaning(cand.Value)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: cand.Key, Meaning: meaning})
	}

	return entries, nil
}

// resolveMeaning reads the DataEntry at offset: a 1-byte type tag, a 4-byte BE size, and size
// bytes of payload. ok is false (with a nil error) when the entry isn't a text meaning or its
// bytes don't decode as UTF-8, signaling "skip this candidate" rather than a call failure.
func (d *Dictionary) resolveMeaning(offset uint64) (string, bool, error) {
	var head [5]byte
	if _, err := d.f.ReadAt(head[:], int64(offset)); err != nil {
		return "", false, fmt.Errorf("%w: read data entry at %d: %v", errs.ErrIO, offset, err)
	}

	const dataEntryText = 1
	if head[0] != dataEntryText {
		return "", false, nil
	}
	size := binary.BigEndian.Uint32(head[1:5])

	payload := make([]byte, size)
	if _, err := d.f.ReadAt(payload, int64(offset)+5); err != nil {
		return "", false, fmt.Errorf("%w: read data entry payload at %d: %v", errs.ErrIO, offset, err)
	}
	if !utf8.Valid(payload) {
		return "", false, nil
	}

	return string(payload), true, nil
}

// Close unmaps the file mapping and closes the underlying file handle.
func (d *Dictionary) Close() error {
	if err := d.mapped.Unmap(); err != nil {
		return fmt.Errorf("%w: unmap: %v", errs.ErrIO, err)
	}
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", errs.ErrIO, err)
	}
	return nil
}
