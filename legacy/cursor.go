package legacy

import (
	"fmt"

	"github.com/ikey4u/wikit/endian"
	"github.com/ikey4u/wikit/errs"
)

// cursor is a forward-only view over an in-memory legacy file buffer. All multi-byte framing
// integers in this format are big-endian (the header size prefix, the key/meaning layout
// integers, and the variable-width counters); little-endian fields (pack_type, the header's
// Adler-32 trailer) are read through the package-level endian.GetLittleEndianEngine() (see
// header.go's "le" variable) at their call sites instead of through the cursor. A block's own
// Adler-32 trailer is big-endian, unlike the header's.
type cursor struct {
	buf []byte
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrSourceFormat, n, len(c.buf))
	}
	b := c.buf[:n]
	c.buf = c.buf[n:]
	return b, nil
}

// takeUint reads a big-endian unsigned integer of the given byte width (the legacy format's
// "integer width", 4 bytes for engine version <2.0, 8 bytes for >=2.0).
func (c *cursor) takeUint(width int) (uint64, error) {
	b, err := c.take(width)
	if err != nil {
		return 0, err
	}
	return endian.VarWidthUint(b), nil
}

func (c *cursor) len() int {
	return len(c.buf)
}
