package codec

import "math/bits"

// RIPEMD-128 has no implementation anywhere in the example corpus (the retrieved third-party
// packages cover xxhash, LZO, zlib/zstd/LZ4/S2, but no RIPEMD variant), so this is a from-scratch
// implementation of the published algorithm (Dobbertin, Bosselaers, Preneel, 1996). It is the
// one primitive in this package with no library grounding; see DESIGN.md for the justification.

const ripemd128BlockSize = 64

var ripemd128LeftWordOrder = [64]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
}

var ripemd128RightWordOrder = [64]int{
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
}

var ripemd128LeftShift = [64]int{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
}

var ripemd128RightShift = [64]int{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
}

var ripemd128LeftConst = [4]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc}
var ripemd128RightConst = [4]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x00000000}

func ripemd128F(round int, x, y, z uint32) uint32 {
	switch round {
	case 0:
		return x ^ y ^ z
	case 1:
		return (x & y) | (^x & z)
	case 2:
		return (x | ^y) ^ z
	default:
		return (x & z) | (y &^ z)
	}
}

// RIPEMD128Sum computes the RIPEMD-128 digest of data.
func RIPEMD128Sum(data []byte) [16]byte {
	h0, h1, h2, h3 := uint32(0x67452301), uint32(0xefcdab89), uint32(0x98badcfe), uint32(0x10325476)

	msg := padRIPEMD128(data)
	var x [16]uint32

	for off := 0; off < len(msg); off += ripemd128BlockSize {
		block := msg[off : off+ripemd128BlockSize]
		for i := 0; i < 16; i++ {
			x[i] = uint32(block[i*4]) | uint32(block[i*4+1])<<8 | uint32(block[i*4+2])<<16 | uint32(block[i*4+3])<<24
		}

		al, bl, cl, dl := h0, h1, h2, h3
		ar, br, cr, dr := h0, h1, h2, h3

		for j := 0; j < 64; j++ {
			round := j / 16

			t := bits.RotateLeft32(al+ripemd128F(round, bl, cl, dl)+x[ripemd128LeftWordOrder[j]]+ripemd128LeftConst[round], ripemd128LeftShift[j])
			al, dl, cl, bl = dl, cl, bl, t

			rround := 3 - round
			t = bits.RotateLeft32(ar+ripemd128F(rround, br, cr, dr)+x[ripemd128RightWordOrder[j]]+ripemd128RightConst[round], ripemd128RightShift[j])
			ar, dr, cr, br = dr, cr, br, t
		}

		t := h1 + cl + dr
		h1 = h2 + dl + ar
		h2 = h3 + al + br
		h3 = h0 + bl + cr
		h0 = t
	}

	var out [16]byte
	putLE32(out[0:4], h0)
	putLE32(out[4:8], h1)
	putLE32(out[8:12], h2)
	putLE32(out[12:16], h3)
	return out
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// padRIPEMD128 applies the MD4-family padding: a single 1-bit, zero bits up to 56 mod 64 bytes,
// then the original bit length as a little-endian 64-bit integer.
func padRIPEMD128(data []byte) []byte {
	bitLen := uint64(len(data)) * 8

	padLen := 56 - (len(data)+1)%64
	if padLen < 0 {
		padLen += 64
	}

	out := make([]byte, 0, len(data)+1+padLen+8)
	out = append(out, data...)
	out = append(out, 0x80)
	out = append(out, make([]byte, padLen)...)

	var lenBytes [8]byte
	for i := 0; i < 8; i++ {
		lenBytes[i] = byte(bitLen >> (8 * i))
	}
	out = append(out, lenBytes[:]...)

	return out
}
