package wikit

import (
	"encoding/binary"
	"fmt"

	"github.com/ikey4u/wikit/compiler"
	"github.com/ikey4u/wikit/errs"
)

// Header is a compiled dictionary's parsed metadata.
type Header struct {
	Name        string
	Desc        string
	IndexFormat uint8
	IndexOffset uint64
	IndexSize   uint64
	DataOffset  uint64
	DataSize    uint64
	Script      []byte
	Style       []byte
}

// preambleSize is the fixed-width magic+format_version+header_size prefix that precedes the
// variable-length header region.
const preambleSize = 8 + 4 + 2

// parseHeaderSize reads just the fixed preamble (data must be at least preambleSize bytes) and
// returns the byte size of the header region that immediately follows it, so the caller can read
// exactly that many more bytes before calling parseHeader.
func parseHeaderSize(data []byte) (int, error) {
	if len(data) < preambleSize {
		return 0, fmt.Errorf("%w: file shorter than fixed preamble", errs.ErrHeaderTruncated)
	}

	if string(data[:len(compiler.Magic)]) != compiler.Magic {
		return 0, fmt.Errorf("%w: got %q", errs.ErrBadMagic, data[:len(compiler.Magic)])
	}
	pos := len(compiler.Magic)

	version := binary.BigEndian.Uint32(data[pos : pos+4])
	pos += 4
	if version != compiler.FormatVersion {
		return 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	return int(binary.BigEndian.Uint16(data[pos : pos+2])), nil
}

// parseHeader decodes the header region (exactly the headerSize bytes returned by
// parseHeaderSize, immediately following the fixed preamble) and validates that every region it
// describes fits inside a file of fileLen bytes, without requiring the whole file in memory.
func parseHeader(headerRegion []byte, fileLen int64) (Header, int, error) {
	headerStart := preambleSize
	headerSize := len(headerRegion)

	h, err := decodeHeaderFields(headerRegion)
	if err != nil {
		return Header{}, 0, err
	}

	size := uint64(fileLen)
	if h.IndexOffset+h.IndexSize > size || h.DataOffset+h.DataSize > size {
		return Header{}, 0, fmt.Errorf("%w: a region extends past end of file (len=%d)", errs.ErrHeaderTruncated, size)
	}
	if h.DataOffset < uint64(headerStart+headerSize) {
		return Header{}, 0, fmt.Errorf("%w: data region overlaps header region", errs.ErrHeaderTruncated)
	}
	if h.IndexOffset < uint64(headerStart+headerSize) {
		return Header{}, 0, fmt.Errorf("%w: index region overlaps header region", errs.ErrHeaderTruncated)
	}
	if h.IndexOffset < h.DataOffset+h.DataSize && h.DataOffset < h.IndexOffset+h.IndexSize {
		return Header{}, 0, fmt.Errorf("%w: index region overlaps data region", errs.ErrHeaderTruncated)
	}

	return h, headerStart + headerSize, nil
}

func decodeHeaderFields(b []byte) (Header, error) {
	var h Header
	pos := 0

	read := func(n int) ([]byte, error) {
		if pos+n > len(b) {
			return nil, fmt.Errorf("%w: header field truncated at offset %d", errs.ErrHeaderTruncated, pos)
		}
		out := b[pos : pos+n]
		pos += n
		return out, nil
	}

	nameSizeBuf, err := read(2)
	if err != nil {
		return Header{}, err
	}
	nameSize := int(binary.BigEndian.Uint16(nameSizeBuf))
	nameBuf, err := read(nameSize)
	if err != nil {
		return Header{}, err
	}
	h.Name = string(nameBuf)

	descSizeBuf, err := read(2)
	if err != nil {
		return Header{}, err
	}
	descSize := int(binary.BigEndian.Uint16(descSizeBuf))
	descBuf, err := read(descSize)
	if err != nil {
		return Header{}, err
	}
	h.Desc = string(descBuf)

	indexFormatBuf, err := read(1)
	if err != nil {
		return Header{}, err
	}
	h.IndexFormat = indexFormatBuf[0]

	indexOffsetBuf, err := read(8)
	if err != nil {
		return Header{}, err
	}
	h.IndexOffset = binary.BigEndian.Uint64(indexOffsetBuf)

	indexSizeBuf, err := read(8)
	if err != nil {
		return Header{}, err
	}
	h.IndexSize = binary.BigEndian.Uint64(indexSizeBuf)

	dataOffsetBuf, err := read(8)
	if err != nil {
		return Header{}, err
	}
	h.DataOffset = binary.BigEndian.Uint64(dataOffsetBuf)

	dataSizeBuf, err := read(8)
	if err != nil {
		return Header{}, err
	}
	h.DataSize = binary.BigEndian.Uint64(dataSizeBuf)

	scriptSizeBuf, err := read(4)
	if err != nil {
		return Header{}, err
	}
	scriptSize := int(binary.BigEndian.Uint32(scriptSizeBuf))
	scriptBuf, err := read(scriptSize)
	if err != nil {
		return Header{}, err
	}
	if scriptSize > 0 {
		h.Script = append([]byte(nil), scriptBuf...)
	}

	styleSizeBuf, err := read(4)
	if err != nil {
		return Header{}, err
	}
	styleSize := int(binary.BigEndian.Uint32(styleSizeBuf))
	styleBuf, err := read(styleSize)
	if err != nil {
		return Header{}, err
	}
	if styleSize > 0 {
		h.Style = append([]byte(nil), styleBuf...)
	}

	return h, nil
}
