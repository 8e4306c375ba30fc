package compiler

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ikey4u/wikit/endian"
	"github.com/ikey4u/wikit/errs"
)

var be = endian.GetBigEndianEngine()

// countingWriter wraps a bufio.Writer and tracks the logical file offset of the next byte to be
// written, so the compiler can record region boundaries as it streams output sequentially.
type countingWriter struct {
	bw  *bufio.Writer
	pos int64
}

func newCountingWriter(w io.Writer) *countingWriter {
	return &countingWriter{bw: bufio.NewWriterSize(w, 256*1024)}
}

func (c *countingWriter) write(p []byte) error {
	n, err := c.bw.Write(p)
	c.pos += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrOutputIO, err)
	}
	return nil
}

func (c *countingWriter) writeUint8(v uint8) error {
	return c.write([]byte{v})
}

func (c *countingWriter) writeUint16(v uint16) error {
	var buf [2]byte
	be.PutUint16(buf[:], v)
	return c.write(buf[:])
}

func (c *countingWriter) writeUint32(v uint32) error {
	var buf [4]byte
	be.PutUint32(buf[:], v)
	return c.write(buf[:])
}

func (c *countingWriter) writeUint64(v uint64) error {
	var buf [8]byte
	be.PutUint64(buf[:], v)
	return c.write(buf[:])
}

func (c *countingWriter) writeShortField(s string) error {
	if len(s) > MaxShortFieldSize {
		return fmt.Errorf("%w: field of %d bytes exceeds %d byte limit", errs.ErrTooLarge, len(s), MaxShortFieldSize)
	}
	if err := c.writeUint16(uint16(len(s))); err != nil {
		return err
	}
	return c.write([]byte(s))
}

func (c *countingWriter) writeLongField(b []byte) error {
	if len(b) > MaxLongFieldSize {
		return fmt.Errorf("%w: field of %d bytes exceeds %d byte limit", errs.ErrTooLarge, len(b), MaxLongFieldSize)
	}
	if err := c.writeUint32(uint32(len(b))); err != nil {
		return err
	}
	return c.write(b)
}

func (c *countingWriter) flush() error {
	if err := c.bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrOutputIO, err)
	}
	return nil
}
