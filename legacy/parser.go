package legacy

import (
	"fmt"
	"os"
	"time"

	"github.com/ikey4u/wikit/codec"
	"github.com/ikey4u/wikit/errs"
	"github.com/ikey4u/wikit/log"
	"github.com/ikey4u/wikit/record"
)

// Option configures Parse and ParseHeader.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger injects a structured logger; the default is log.Noop.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{logger: log.Noop}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// ParseHeader reads only the legacy file's header, mirroring the original tool's header-only
// inspect mode: a caller that wants to list a directory of dictionaries by title/description does
// not pay the cost of a full key and meaning pass.
func ParseHeader(path string, opts ...Option) (Header, error) {
	o := newOptions(opts)
	start := time.Now()

	buf, err := os.ReadFile(path)
	if err != nil {
		return Header{}, fmt.Errorf("%w: read %s: %v", errs.ErrSourceIO, path, err)
	}

	h, err := parseHeader(newCursor(buf))
	if err != nil {
		return Header{}, err
	}

	o.logger.Info("legacy: parsed header", "path", path, "duration", time.Since(start))
	return h, nil
}

// Parse reads the full legacy file and returns its header and a record.Source over its
// (key, meaning) pairs in collection order. Keys are already normalized; duplicates are not
// removed here (that is the compiler's job).
func Parse(path string, opts ...Option) (record.Source, Header, error) {
	o := newOptions(opts)
	start := time.Now()

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("%w: read %s: %v", errs.ErrSourceIO, path, err)
	}

	c := newCursor(buf)

	h, err := parseHeader(c)
	if err != nil {
		return nil, Header{}, err
	}
	if h.Enc == 1 {
		return nil, Header{}, fmt.Errorf("%w: %s", errs.ErrSourceEncrypted, path)
	}

	keyLayoutVal, err := parseKeyLayout(c, h)
	if err != nil {
		return nil, Header{}, err
	}

	infos, err := parseKeyBlockInfo(c, h, keyLayoutVal)
	if err != nil {
		return nil, Header{}, err
	}

	entries, err := parseKeyBlocks(c, h, infos)
	if err != nil {
		return nil, Header{}, err
	}

	meaningLayoutVal, err := parseMeaningLayout(c, h)
	if err != nil {
		return nil, Header{}, err
	}

	meaningBytes, err := parseMeaningBlocks(c, h, meaningLayoutVal)
	if err != nil {
		return nil, Header{}, err
	}

	recs, err := join(h, entries, meaningBytes)
	if err != nil {
		return nil, Header{}, err
	}

	o.logger.Info("legacy: parsed dictionary", "path", path, "records", len(recs), "duration", time.Since(start))
	return record.FromSlice(recs), h, nil
}

// join resolves each key entry's meaning offset into the decoded meaning text. The meaning for
// entry i spans meaningBytes[offset_i:offset_{i+1}], with the last entry extending to the end of
// meaningBytes.
func join(h Header, entries []keyEntry, meaningBytes []byte) ([]record.Record, error) {
	recs := make([]record.Record, 0, len(entries))

	for i, e := range entries {
		start := int(e.offset)
		end := len(meaningBytes)
		if i+1 < len(entries) {
			end = int(entries[i+1].offset)
		}

		if start < 0 || end > len(meaningBytes) || start > end {
			return nil, fmt.Errorf("%w: meaning offset [%d:%d] out of range (len=%d)", errs.ErrSourceFormat, start, end, len(meaningBytes))
		}

		meaning, err := codec.DecodeText(h.Encoding, meaningBytes[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: meaning decode: %v", errs.ErrDecodeError, err)
		}

		recs = append(recs, record.Record{Key: e.key, Meaning: meaning})
	}

	return recs, nil
}
