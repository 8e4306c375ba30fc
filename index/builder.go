package index

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ikey4u/wikit/errs"
)

// Item is one (key, value) pair fed to Build, already normalized, sorted ascending, and
// de-duplicated by the caller (the compiler).
type Item struct {
	Key   string
	Value uint64
}

// Build writes items as a sorted fixed-size-entry table followed by a single key-bytes blob,
// and returns the number of bytes written. It requires items to already be in strict ascending,
// duplicate-free key order; a violation is reported as errs.ErrIndexBuildOrder rather than
// silently re-sorting, since the compiler is expected to have handled that upstream and a
// violation here means a caller bug.
func Build(w io.Writer, items []Item) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	var entryCountBuf [4]byte
	be.PutUint32(entryCountBuf[:], uint32(len(items)))
	n, err := bw.Write(entryCountBuf[:])
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("%w: index entry count: %v", errs.ErrIO, err)
	}

	var blobOffset uint32
	entryBuf := make([]byte, entrySize)
	prevKey := ""
	for i, item := range items {
		if i > 0 && item.Key <= prevKey {
			return written, fmt.Errorf("%w: key %q does not strictly follow %q", errs.ErrIndexBuildOrder, item.Key, prevKey)
		}
		prevKey = item.Key

		keyLen := len(item.Key)
		if keyLen > 0xffff {
			return written, fmt.Errorf("%w: key %q exceeds %d bytes", errs.ErrTooLarge, item.Key, 0xffff)
		}

		putRawEntry(entryBuf, rawEntry{KeyLen: uint16(keyLen), KeyOffset: blobOffset, Value: item.Value})
		n, err := bw.Write(entryBuf)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w: index entry[%d]: %v", errs.ErrIO, i, err)
		}

		blobOffset += uint32(keyLen)
	}

	for i, item := range items {
		n, err := bw.WriteString(item.Key)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w: index key blob[%d]: %v", errs.ErrIO, i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("%w: index flush: %v", errs.ErrIO, err)
	}

	return written, nil
}
