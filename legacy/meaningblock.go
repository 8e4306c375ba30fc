package legacy

import (
	"encoding/binary"
	"fmt"

	"github.com/ikey4u/wikit/codec"
	"github.com/ikey4u/wikit/errs"
)

// meaningLayout is the fixed-size block describing the meaning-block-info and meaning-block
// sections. The key-count and info-size fields are read (to keep the cursor aligned) but unused:
// the meaning-block-info array is simply blockCount pairs of (packedSize, unpackedSize)
// immediately following this layout, with no separate length-prefixed info blob.
type meaningLayout struct {
	blockCount uint64
	blocksSize uint64
}

func parseMeaningLayout(c *cursor, h Header) (meaningLayout, error) {
	blockCount, err := c.takeUint(h.IntegerWidth)
	if err != nil {
		return meaningLayout{}, fmt.Errorf("legacy meaning layout block count: %w", err)
	}
	if _, err = c.takeUint(h.IntegerWidth); err != nil { // key_count, unused
		return meaningLayout{}, err
	}
	if _, err = c.takeUint(h.IntegerWidth); err != nil { // meaning_info_size, unused
		return meaningLayout{}, err
	}
	blocksSize, err := c.takeUint(h.IntegerWidth)
	if err != nil {
		return meaningLayout{}, fmt.Errorf("legacy meaning layout blocks size: %w", err)
	}

	return meaningLayout{blockCount: blockCount, blocksSize: blocksSize}, nil
}

type meaningBlockInfo struct {
	packedSize   uint64
	unpackedSize uint64
}

// parseMeaningBlocks reads the meaning-block-info array, then the framed meaning blocks, and
// returns their concatenated decompressed payloads as one linear buffer addressed by the key
// blocks' meaning offsets.
func parseMeaningBlocks(c *cursor, h Header, layout meaningLayout) ([]byte, error) {
	infos := make([]meaningBlockInfo, layout.blockCount)
	for i := range infos {
		packed, err := c.takeUint(h.IntegerWidth)
		if err != nil {
			return nil, fmt.Errorf("legacy meaning block info[%d]: %w", i, err)
		}
		unpacked, err := c.takeUint(h.IntegerWidth)
		if err != nil {
			return nil, fmt.Errorf("legacy meaning block info[%d]: %w", i, err)
		}
		infos[i] = meaningBlockInfo{packedSize: packed, unpackedSize: unpacked}
	}

	blocksBuf, err := c.take(int(layout.blocksSize))
	if err != nil {
		return nil, fmt.Errorf("legacy meaning blocks: %w", err)
	}
	bc := newCursor(blocksBuf)

	var out []byte
	for i, info := range infos {
		packed, err := bc.take(int(info.packedSize))
		if err != nil {
			return nil, fmt.Errorf("legacy meaning block[%d]: %w", i, err)
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
			return nil, fmt.Errorf("legacy meaning block[%d] decompress: %w", i, err)
		}

		// Unlike key blocks, meaning blocks are checksummed whenever the engine version is
		// >=2.0, regardless of pack type (matching the reference implementation).
		if h.Version >= 20 {
			got := codec.Adler32(decoded)
			if got != adlerWant {
				return nil, fmt.Errorf("%w: meaning block[%d] adler32 want=%#x got=%#x", errs.ErrSourceChecksum, i, adlerWant, got)
			}
		}

		out = append(out, decoded...)
	}

	return out, nil
}
