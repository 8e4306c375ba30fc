package codec

// DeriveBlockInfoKey derives the 16-byte RIPEMD-128 key used to decrypt a legacy key-block-info
// blob when the header declares enc=2. The key material is the little-endian Adler-32 seed
// bytes followed by the fixed suffix 0x95 0x36 0x00 0x00, matching the legacy reference
// implementation's key schedule.
func DeriveBlockInfoKey(adlerSeed uint32) [16]byte {
	var material [8]byte
	material[0] = byte(adlerSeed)
	material[1] = byte(adlerSeed >> 8)
	material[2] = byte(adlerSeed >> 16)
	material[3] = byte(adlerSeed >> 24)
	material[4] = 0x95
	material[5] = 0x36
	material[6] = 0x00
	material[7] = 0x00

	return RIPEMD128Sum(material[:])
}

// DecryptBlockInfo decrypts ciphertext in place using the legacy key-block-info stream cipher.
// The cipher nibble-swaps each ciphertext byte, XORs it against a running state derived from
// the previous ciphertext byte, the byte position, and the key stream, then updates the running
// state to the original ciphertext byte.
func DecryptBlockInfo(ciphertext []byte, key [16]byte) {
	prev := byte(0x36)
	for i, c := range ciphertext {
		t := (c>>4 | c<<4) & 0xFF
		t = t ^ prev ^ byte(i&0xFF) ^ key[i%len(key)]
		prev = c
		ciphertext[i] = t
	}
}
