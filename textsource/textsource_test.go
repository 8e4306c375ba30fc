package textsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikey4u/wikit/record"
)

func TestReaderBasicStanzas(t *testing.T) {
	input := "hello\nA common greeting.\n</>\nworld\nThe Earth.\n</>\n"
	r := New(strings.NewReader(input))

	recs, err := record.Collect(r)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "hello", recs[0].Key)
	assert.Equal(t, "A common greeting.", recs[0].Meaning)
	assert.Equal(t, "world", recs[1].Key)
	assert.Equal(t, "The Earth.", recs[1].Meaning)
}

func TestReaderMultilineMeaning(t *testing.T) {
	input := "key\nline one\nline two\nline three\n</>\n"
	r := New(strings.NewReader(input))

	recs, err := record.Collect(r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "line one\nline two\nline three", recs[0].Meaning)
}

func TestReaderKeyNormalization(t *testing.T) {
	input := "HeLLo\nmeaning\n</>\n"
	r := New(strings.NewReader(input))

	recs, err := record.Collect(r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "hello", recs[0].Key)
}

func TestReaderSkipsBlankLinesBetweenStanzas(t *testing.T) {
	input := "\n\nkey\nmeaning\n</>\n\n"
	r := New(strings.NewReader(input))

	recs, err := record.Collect(r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "key", recs[0].Key)
}

func TestReaderUnterminatedLastStanza(t *testing.T) {
	input := "key\nmeaning without closing tag"
	r := New(strings.NewReader(input))

	recs, err := record.Collect(r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "meaning without closing tag", recs[0].Meaning)
}

func TestReaderEmptyInput(t *testing.T) {
	r := New(strings.NewReader(""))

	recs, err := record.Collect(r)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReaderTruncatesOverlongField(t *testing.T) {
	longMeaning := strings.Repeat("x", 100)
	input := "key\n" + longMeaning + "\n</>\n"
	r := New(strings.NewReader(input), WithMaxFieldSize(10))

	recs, err := record.Collect(r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Len(t, recs[0].Meaning, 10)
}
