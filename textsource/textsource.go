// Package textsource implements record.Source over the plain-text dictionary stanza format:
//
//	<key>
//	<meaning line 1>
//	<meaning line 2>
//	</>
//
// The first non-empty line of a stanza is the key; subsequent lines up to a line equal to "</>"
// are trimmed and concatenated (newline-joined) into the meaning.
package textsource

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ikey4u/wikit/log"
	"github.com/ikey4u/wikit/normalize"
	"github.com/ikey4u/wikit/record"
)

// DefaultMaxFieldSize is the default cap, in bytes, on a single key or meaning. Inputs longer
// than this are truncated with a logged warning rather than rejected.
const DefaultMaxFieldSize = 2 * 1024 * 1024

const stanzaEnd = "</>"

// Reader reads records from the plain-text stanza format.
type Reader struct {
	sc           *bufio.Scanner
	maxFieldSize int
	logger       log.Logger

	pendingKey  string
	havePending bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxFieldSize overrides DefaultMaxFieldSize.
func WithMaxFieldSize(n int) Option {
	return func(r *Reader) { r.maxFieldSize = n }
}

// WithLogger injects a structured logger; the default is log.Noop.
func WithLogger(l log.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// New wraps src as a record.Source over the plain-text stanza format.
func New(src io.Reader, opts ...Option) *Reader {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	rd := &Reader{
		sc:           sc,
		maxFieldSize: DefaultMaxFieldSize,
		logger:       log.Noop,
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

var _ record.Source = (*Reader)(nil)

// Next implements record.Source.
func (r *Reader) Next() (record.Record, bool, error) {
	key, ok, err := r.nextKey()
	if err != nil || !ok {
		return record.Record{}, false, err
	}

	meaning, err := r.readMeaning()
	if err != nil {
		return record.Record{}, false, err
	}

	key = r.cap("key", key)
	meaning = r.cap("meaning", meaning)

	// The legacy pipeline NUL-terminates keys and meanings internally before decoding; this
	// reader mirrors that by normalizing through the same trailing-NUL-stripping path so both
	// sources agree on what a Record's fields look like, without leaking a stray NUL byte into
	// the meaning text that lookup callers receive.
	return record.Record{
		Key:     normalize.Key(key),
		Meaning: meaning,
	}, true, nil
}

func (r *Reader) nextKey() (string, bool, error) {
	for r.sc.Scan() {
		line := r.sc.Text()
		if line == "" {
			continue
		}
		return line, true, nil
	}
	if err := r.sc.Err(); err != nil {
		return "", false, fmt.Errorf("textsource: scan key: %w", err)
	}
	return "", false, nil
}

func (r *Reader) readMeaning() (string, error) {
	var sb []byte
	first := true
	for r.sc.Scan() {
		line := r.sc.Text()
		if line == stanzaEnd {
			return string(sb), nil
		}
		if !first {
			sb = append(sb, '\n')
		}
		sb = append(sb, strings.TrimSpace(line)...)
		first = false
	}
	if err := r.sc.Err(); err != nil {
		return "", fmt.Errorf("textsource: scan meaning: %w", err)
	}
	// Input ended without a closing "</>"; treat what was accumulated as the meaning.
	return string(sb), nil
}

func (r *Reader) cap(field, value string) string {
	if len(value) <= r.maxFieldSize {
		return value
	}
	r.logger.Warn("textsource: field truncated", "field", field, "size", len(value), "max", r.maxFieldSize)
	return value[:r.maxFieldSize]
}
