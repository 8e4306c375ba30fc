package index

import (
	"fmt"

	"github.com/ikey4u/wikit/errs"
)

// Index is a read-only view over a serialized table, typically a memory-mapped file region.
type Index struct {
	data       []byte
	count      int
	entriesOff int
	blobOff    int
}

// Open parses data (the bytes Build wrote) without copying it, validating that every entry's
// key span lies within the blob.
func Open(data []byte) (*Index, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: index table truncated", errs.ErrSourceFormat)
	}

	count := int(be.Uint32(data[0:4]))
	entriesOff := 4
	blobOff := entriesOff + count*entrySize
	if blobOff > len(data) {
		return nil, fmt.Errorf("%w: index entry table (%d entries) exceeds %d bytes", errs.ErrSourceFormat, count, len(data))
	}

	ix := &Index{data: data, count: count, entriesOff: entriesOff, blobOff: blobOff}
	for i := 0; i < count; i++ {
		e := ix.rawEntryAt(i)
		start := blobOff + int(e.KeyOffset)
		end := start + int(e.KeyLen)
		if start < blobOff || end > len(data) {
			return nil, fmt.Errorf("%w: index entry[%d] key span [%d:%d] out of range", errs.ErrSourceFormat, i, start, end)
		}
	}

	return ix, nil
}

// Len returns the number of entries in the table.
func (ix *Index) Len() int { return ix.count }

// All returns every entry in the table's natural (sorted) order.
func (ix *Index) All() []Entry {
	entries := make([]Entry, ix.count)
	for i := range entries {
		entries[i] = ix.entryAt(i)
	}
	return entries
}

func (ix *Index) rawEntryAt(i int) rawEntry {
	off := ix.entriesOff + i*entrySize
	return getRawEntry(ix.data[off : off+entrySize])
}

func (ix *Index) keyAt(i int) string {
	e := ix.rawEntryAt(i)
	start := ix.blobOff + int(e.KeyOffset)
	return string(ix.data[start : start+int(e.KeyLen)])
}

func (ix *Index) entryAt(i int) Entry {
	e := ix.rawEntryAt(i)
	return Entry{Key: ix.keyAt(i), Value: e.Value}
}
