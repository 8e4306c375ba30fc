package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	recs []Record
	i    int
	err  error
}

func (s *fakeSource) Next() (Record, bool, error) {
	if s.err != nil && s.i == len(s.recs) {
		return Record{}, false, s.err
	}
	if s.i >= len(s.recs) {
		return Record{}, false, nil
	}
	r := s.recs[s.i]
	s.i++
	return r, true, nil
}

func TestCollect(t *testing.T) {
	src := &fakeSource{recs: []Record{{Key: "a", Meaning: "1"}, {Key: "b", Meaning: "2"}}}

	out, err := Collect(src)
	require.NoError(t, err)
	assert.Equal(t, []Record{{Key: "a", Meaning: "1"}, {Key: "b", Meaning: "2"}}, out)
}

func TestCollectPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	src := &fakeSource{recs: []Record{{Key: "a", Meaning: "1"}}, err: wantErr}

	out, err := Collect(src)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, wantErr)
}

func TestCollectEmpty(t *testing.T) {
	src := &fakeSource{}
	out, err := Collect(src)
	require.NoError(t, err)
	assert.Empty(t, out)
}
