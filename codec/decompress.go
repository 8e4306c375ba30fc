package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/woozymasta/lzo"

	"github.com/ikey4u/wikit/internal/pool"
)

// PackType identifies how a legacy block's payload is compressed.
type PackType uint32

const (
	PackRaw  PackType = 0
	PackLZO1X PackType = 1
	PackZlib PackType = 2
)

// Decompress decompresses payload according to packType. unpackedSize is the expected output
// size declared by the legacy block-info record; it is the output size passed to the LZO1X
// decoder and, when positive, an allocation hint for the zlib path. The raw path ignores it, and
// the zlib output length is not compared against it.
func Decompress(packType PackType, payload []byte, unpackedSize int) ([]byte, error) {
	switch packType {
	case PackRaw:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	case PackLZO1X:
		out, err := lzo.Decompress1X(payload, unpackedSize)
		if err != nil {
			return nil, fmt.Errorf("lzo1x decompress: %w", err)
		}
		return out, nil
	case PackZlib:
		r, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("zlib open: %w", err)
		}
		defer r.Close()

		// Inflate into a pooled scratch buffer rather than letting io.ReadAll grow a fresh
		// slice per block; legacy dictionaries can carry thousands of key/meaning blocks, and
		// this buffer is returned to the pool below once its bytes are copied out.
		bb := pool.GetBlockBuffer()
		defer pool.PutBlockBuffer(bb)
		if unpackedSize > 0 {
			bb.Grow(unpackedSize)
		}

		if _, err := io.Copy(bb, r); err != nil {
			return nil, fmt.Errorf("zlib inflate: %w", err)
		}

		out := make([]byte, bb.Len())
		copy(out, bb.Bytes())
		return out, nil
	default:
		return nil, fmt.Errorf("unknown pack type %d", packType)
	}
}
