package codec

import "hash/adler32"

// Adler32 computes the Adler-32 checksum of data. It is a thin wrapper over the standard
// library's hash/adler32, the canonical implementation of this exact checksum; there is no
// third-party alternative in the ecosystem worth displacing it with.
func Adler32(data []byte) uint32 {
	return adler32.Checksum(data)
}
