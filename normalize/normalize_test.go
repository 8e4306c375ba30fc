package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already lower", "hello", "hello"},
		{"upper case", "HELLO", "hello"},
		{"mixed case", "HeLLo", "hello"},
		{"trailing NUL", "hello\x00", "hello"},
		{"trailing NUL mixed case", "HELLO\x00", "hello"},
		{"internal whitespace preserved", "Good Morning", "good morning"},
		{"punctuation preserved", "don't", "don't"},
		{"empty string", "", ""},
		{"unicode", "CAFÉ", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestKeyIdempotent(t *testing.T) {
	inputs := []string{"Hello\x00", "WORLD", "", "Already Normalized"}
	for _, in := range inputs {
		once := Key(in)
		twice := Key(once)
		assert.Equal(t, once, twice, "normalize(normalize(k)) must equal normalize(k) for %q", in)
	}
}

func TestKeyBytes(t *testing.T) {
	assert.Equal(t, "hello", KeyBytes([]byte("HELLO\x00")))
}
