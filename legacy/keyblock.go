package legacy

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ikey4u/wikit/codec"
	"github.com/ikey4u/wikit/errs"
	"github.com/ikey4u/wikit/normalize"
)

// keyLayout is the fixed-size block describing the key-block-info and key-block sections.
type keyLayout struct {
	blockCount uint64
	keyCount   uint64
	infoSize   uint64
	blocksSize uint64
}

// parseKeyLayout reads the 16-byte (Version<20) or 44-byte (Version>=20) key layout block. For
// Version>=20 the last 4 bytes are a big-endian Adler-32 over the preceding bytes.
func parseKeyLayout(c *cursor, h Header) (keyLayout, error) {
	if h.Enc == 1 {
		return keyLayout{}, fmt.Errorf("%w: key layout is creator-encrypted", errs.ErrSourceEncrypted)
	}

	size := 16
	if h.Version >= 20 {
		size = 44
	}

	raw, err := c.take(size)
	if err != nil {
		return keyLayout{}, fmt.Errorf("legacy key layout: %w", err)
	}

	if h.Version >= 20 {
		body, adlerBuf := raw[:size-4], raw[size-4:]
		want := codec.Adler32(body)
		got := binary.BigEndian.Uint32(adlerBuf)
		if want != got {
			return keyLayout{}, fmt.Errorf("%w: key layout adler32 want=%#x got=%#x", errs.ErrSourceChecksum, want, got)
		}
		raw = body
	}

	lc := newCursor(raw)

	var layout keyLayout
	if layout.blockCount, err = lc.takeUint(h.IntegerWidth); err != nil {
		return keyLayout{}, err
	}
	if layout.keyCount, err = lc.takeUint(h.IntegerWidth); err != nil {
		return keyLayout{}, err
	}
	if h.Version >= 20 {
		if _, err = lc.takeUint(h.IntegerWidth); err != nil { // info_unpacked_size, unused
			return keyLayout{}, err
		}
	}
	if layout.infoSize, err = lc.takeUint(h.IntegerWidth); err != nil {
		return keyLayout{}, err
	}
	if layout.blocksSize, err = lc.takeUint(h.IntegerWidth); err != nil {
		return keyLayout{}, err
	}

	return layout, nil
}

// blockInfo describes one key block: how many keys it holds and its framed size on disk.
type blockInfo struct {
	keyCount     uint64
	packedSize   uint64
	unpackedSize uint64
}

// parseKeyBlockInfo reads layout.infoSize bytes and parses blockCount blockInfo records out of
// them, decrypting (if Enc==2) and decompressing the blob first as needed.
func parseKeyBlockInfo(c *cursor, h Header, layout keyLayout) ([]blockInfo, error) {
	raw, err := c.take(int(layout.infoSize))
	if err != nil {
		return nil, fmt.Errorf("legacy key block info: %w", err)
	}

	infoBuf := raw
	if h.Version >= 20 {
		if len(raw) < 8 {
			return nil, fmt.Errorf("%w: key block info shorter than 8-byte pack-type/seed prefix (got %d bytes)", errs.ErrSourceFormat, len(raw))
		}
		packType := le.Uint32(raw[0:4])
		adlerSeed := le.Uint32(raw[4:8])
		data := append([]byte(nil), raw[8:]...)

		if h.Enc == 2 {
			key := codec.DeriveBlockInfoKey(adlerSeed)
			codec.DecryptBlockInfo(data, key)
		}

		if packType != 0 {
			// The reference implementation only ever zlib-decodes this particular blob (it
			// never LZO-compresses key-block-info), so a nonzero pack type always means zlib
			// here, unlike the key/meaning blocks below which dispatch on the pack type.
			infoBuf, err = codec.Decompress(codec.PackZlib, data, -1)
			if err != nil {
				return nil, fmt.Errorf("legacy key block info decompress: %w", err)
			}
		} else {
			infoBuf = data
		}
	}

	ic := newCursor(infoBuf)
	sizeFieldWidth := h.IntegerWidth / 4

	infos := make([]blockInfo, 0, layout.blockCount)
	for i := uint64(0); i < layout.blockCount; i++ {
		count, err := ic.takeUint(h.IntegerWidth)
		if err != nil {
			return nil, fmt.Errorf("%w: key block info[%d] count: %v", errs.ErrSourceFormat, i, err)
		}

		firstLen, err := ic.takeUint(sizeFieldWidth)
		if err != nil {
			return nil, err
		}
		if _, err = ic.take(keyTextByteLen(h, firstLen)); err != nil {
			return nil, fmt.Errorf("%w: key block info[%d] first key: %v", errs.ErrSourceFormat, i, err)
		}

		lastLen, err := ic.takeUint(sizeFieldWidth)
		if err != nil {
			return nil, err
		}
		if _, err = ic.take(keyTextByteLen(h, lastLen)); err != nil {
			return nil, fmt.Errorf("%w: key block info[%d] last key: %v", errs.ErrSourceFormat, i, err)
		}

		packed, err := ic.takeUint(h.IntegerWidth)
		if err != nil {
			return nil, err
		}
		unpacked, err := ic.takeUint(h.IntegerWidth)
		if err != nil {
			return nil, err
		}

		infos = append(infos, blockInfo{keyCount: count, packedSize: packed, unpackedSize: unpacked})
	}

	return infos, nil
}

// keyTextByteLen converts a key-block-info character count into the byte span to skip, which
// differs by version: pre-2.0 blocks store the terminator-exclusive character count, 2.0+
// blocks store it inclusive of one extra terminator character.
func keyTextByteLen(h Header, charCount uint64) int {
	n := charCount
	if h.Version >= 20 {
		n++
	}
	if h.Encoding == codec.EncodingUTF16LE {
		return int(n) * 2
	}
	return int(n)
}

// keyEntry is one (key, meaning-offset) pair collected from the key blocks, in file order.
type keyEntry struct {
	key    string
	offset uint64
}

// parseKeyBlocks reads and decompresses each framed key block described by infos, splitting its
// payload into (offset, key) records on the encoding's NUL terminator.
func parseKeyBlocks(c *cursor, h Header, infos []blockInfo) ([]keyEntry, error) {
	nul := []byte{0}
	if h.Encoding == codec.EncodingUTF16LE {
		nul = []byte{0, 0}
	}

	var entries []keyEntry
	for i, info := range infos {
		packed, err := c.take(int(info.packedSize))
		if err != nil {
			return nil, fmt.Errorf("legacy key block[%d]: %w", i, err)
		}

		pc := newCursor(packed)
		packTypeBuf, err := pc.take(4)
		if err != nil {
			return nil, err
		}
		packType := le.Uint32(packTypeBuf)

		adlerBuf, err := pc.take(4)
		if err != nil {
			return nil, err
		}
		adlerWant := binary.BigEndian.Uint32(adlerBuf)

		decoded, err := codec.Decompress(codec.PackType(packType), pc.buf, int(info.unpackedSize))
		if err != nil {
			return nil, fmt.Errorf("legacy key block[%d] decompress: %w", i, err)
		}

		// Version>=20 key blocks are always checksummed; pre-2.0 key blocks only when zlib
		// compressed, so pre-2.0 raw and LZO1X key blocks carry no Adler-32 enforcement.
		if h.Version >= 20 || packType == uint32(codec.PackZlib) {
			got := codec.Adler32(decoded)
			if got != adlerWant {
				return nil, fmt.Errorf("%w: key block[%d] adler32 want=%#x got=%#x", errs.ErrSourceChecksum, i, adlerWant, got)
			}
		}

		dc := decoded
		for len(dc) > 0 {
			if len(dc) < h.IntegerWidth {
				return nil, fmt.Errorf("%w: key block[%d] truncated offset", errs.ErrSourceFormat, i)
			}
			ec := newCursor(dc[:h.IntegerWidth])
			offset, _ := ec.takeUint(h.IntegerWidth)
			rest := dc[h.IntegerWidth:]

			idx := bytes.Index(rest, nul)
			if idx < 0 {
				return nil, fmt.Errorf("%w: key block[%d] missing key terminator", errs.ErrSourceFormat, i)
			}

			keyText, err := codec.DecodeText(h.Encoding, rest[:idx])
			if err != nil {
				return nil, fmt.Errorf("%w: key block[%d] key decode: %v", errs.ErrDecodeError, i, err)
			}

			entries = append(entries, keyEntry{key: normalize.Key(keyText), offset: offset})
			dc = rest[idx+len(nul):]
		}
	}

	return entries, nil
}
