package index

import "github.com/ikey4u/wikit/endian"

// entrySize is the fixed on-disk width of one table entry: a 2-byte key length, a 4-byte
// offset into the key blob, and an 8-byte value (a data-region offset, in this codebase).
const entrySize = 2 + 4 + 8

// Entry is one (key, value) pair as returned by a lookup.
type Entry struct {
	Key   string
	Value uint64
}

// rawEntry is the fixed-size, fixed-field-order on-disk representation of one Entry, without
// its key text (which lives in the shared key blob, addressed by KeyOffset/KeyLen).
type rawEntry struct {
	KeyLen    uint16
	KeyOffset uint32
	Value     uint64
}

var be = endian.GetBigEndianEngine()

func putRawEntry(buf []byte, e rawEntry) {
	be.PutUint16(buf[0:2], e.KeyLen)
	be.PutUint32(buf[2:6], e.KeyOffset)
	be.PutUint64(buf[6:14], e.Value)
}

func getRawEntry(buf []byte) rawEntry {
	return rawEntry{
		KeyLen:    be.Uint16(buf[0:2]),
		KeyOffset: be.Uint32(buf[2:6]),
		Value:     be.Uint64(buf[6:14]),
	}
}
