package codec

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdler32(t *testing.T) {
	assert.Equal(t, uint32(1), Adler32(nil))
	assert.Equal(t, uint32(0x11e60398), Adler32([]byte("Wikipedia")))
}

func TestRIPEMD128Vectors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "cdf26213a150dc3ecb610f18f6b38b46"},
		{"abc", "c14a12199c66e4ba84636b0f69144c77"},
	}

	for _, tt := range tests {
		sum := RIPEMD128Sum([]byte(tt.input))
		assert.Equal(t, tt.want, hex.EncodeToString(sum[:]), "input=%q", tt.input)
	}
}

func TestDeriveBlockInfoKeyLength(t *testing.T) {
	key := DeriveBlockInfoKey(0xdeadbeef)
	assert.Len(t, key, 16)
}

func TestDecryptBlockInfoDeterministic(t *testing.T) {
	// The legacy stream cipher is used only to obscure key-block-info bytes; it is not a
	// reversible-by-inverse-function cipher in this codebase (the reference decryptor applies
	// the same transform described in the format), so this test only asserts determinism and
	// that distinct keys produce distinct ciphertext, not a round trip.
	key1 := DeriveBlockInfoKey(1)
	key2 := DeriveBlockInfoKey(2)

	plain := []byte("some key block info payload.....")

	c1 := append([]byte(nil), plain...)
	DecryptBlockInfo(c1, key1)

	c2 := append([]byte(nil), plain...)
	DecryptBlockInfo(c2, key1)

	assert.Equal(t, c1, c2, "decryption must be deterministic for the same key")

	c3 := append([]byte(nil), plain...)
	DecryptBlockInfo(c3, key2)
	assert.NotEqual(t, c1, c3, "different keys must produce different output")
}

func TestDecompressRaw(t *testing.T) {
	payload := []byte("hello, raw block")
	out, err := Decompress(PackRaw, payload, len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecompressZlib(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte("hello, zlib block"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, err := Decompress(PackZlib, buf.Bytes(), len("hello, zlib block"))
	require.NoError(t, err)
	assert.Equal(t, "hello, zlib block", string(out))
}

func TestDecompressUnknownPackType(t *testing.T) {
	_, err := Decompress(PackType(99), []byte("x"), 1)
	assert.Error(t, err)
}

func TestDecodeTextUTF8(t *testing.T) {
	out, err := DecodeText(EncodingUTF8, []byte("hello\x00"))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestDecodeTextUTF16LE(t *testing.T) {
	raw := []byte{'h', 0, 'i', 0, 0, 0}
	out, err := DecodeText(EncodingUTF16LE, raw)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestNormalizeEncodingName(t *testing.T) {
	assert.Equal(t, EncodingGB18030, NormalizeEncodingName("GBK"))
	assert.Equal(t, EncodingGB18030, NormalizeEncodingName("gb2312"))
	assert.Equal(t, EncodingUTF16LE, NormalizeEncodingName("UTF-16"))
	assert.Equal(t, EncodingUTF8, NormalizeEncodingName(""))
	assert.Equal(t, EncodingUTF8, NormalizeEncodingName("UTF-8"))
}

func TestWithinLevenshtein(t *testing.T) {
	tests := []struct {
		a, b  string
		bound int
		want  bool
	}{
		{"cat", "cat", 0, true},
		{"cat", "bat", 1, true},
		{"cat", "bat", 0, false},
		{"cat", "cats", 1, true},
		{"kitten", "sitting", 2, false},
		{"kitten", "sitting", 3, true},
	}

	for _, tt := range tests {
		got := WithinLevenshtein([]rune(tt.a), []rune(tt.b), tt.bound)
		assert.Equal(t, tt.want, got, "a=%q b=%q bound=%d", tt.a, tt.b, tt.bound)
	}
}
