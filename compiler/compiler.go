package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ikey4u/wikit/asset"
	"github.com/ikey4u/wikit/errs"
	"github.com/ikey4u/wikit/index"
	"github.com/ikey4u/wikit/log"
	"github.com/ikey4u/wikit/record"
)

// Options configures Compile. Name defaults to OutputPath's filename stem if empty; Assets
// defaults to asset.None if nil.
type Options struct {
	Name       string
	Desc       string
	Author     string
	OutputPath string
	Assets     asset.Provider
	Logger     log.Logger
}

func (o Options) withDefaults(outputPath string) Options {
	if o.Name == "" {
		base := filepath.Base(outputPath)
		o.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	if o.Assets == nil {
		o.Assets = asset.None{}
	}
	if o.Logger == nil {
		o.Logger = log.Noop
	}
	return o
}

// Compile drains src, sorts and de-duplicates its records, and writes a new compiled
// dictionary file to opts.OutputPath. On success it returns opts.OutputPath; on any error no
// file is left at that path.
func Compile(src record.Source, opts Options) (string, error) {
	if opts.OutputPath == "" {
		return "", fmt.Errorf("%w: OutputPath is required", errs.ErrOutputIO)
	}
	opts = opts.withDefaults(opts.OutputPath)

	desc := opts.Desc
	if opts.Author != "" {
		if desc != "" {
			desc += "\n"
		}
		desc += "Author: " + opts.Author
	}

	recs, err := record.Collect(src)
	if err != nil {
		// The Source (legacy parser or plain-text reader) already wraps its failure with the
		// appropriate sentinel (ErrSourceFormat, ErrSourceChecksum, ErrSourceEncrypted,
		// ErrSourceIO, ...); propagate it as-is so callers can still errors.Is against it.
		return "", err
	}

	recs = sortAndDedup(recs)

	css, js, err := opts.Assets.Assets()
	if err != nil {
		return "", fmt.Errorf("%w: reading assets: %v", errs.ErrSourceIO, err)
	}

	outputPath, err := write(recs, opts.Name, desc, js, css, opts.OutputPath)
	if err != nil {
		return "", err
	}

	opts.Logger.Info("compiler: compiled dictionary", "path", outputPath, "records", len(recs))
	return outputPath, nil
}

// sortAndDedup stably sorts records by ascending key (bytewise on UTF-8, i.e. plain Go string
// comparison) and collapses adjacent equal keys, keeping the last occurrence.
func sortAndDedup(recs []record.Record) []record.Record {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Key < recs[j].Key })

	out := recs[:0]
	for i, r := range recs {
		if i > 0 && r.Key == out[len(out)-1].Key {
			out[len(out)-1] = r
			continue
		}
		out = append(out, r)
	}
	return out
}

func write(recs []record.Record, name, desc string, script, style []byte, outputPath string) (string, error) {
	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, ".wikit-tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file in %s: %v", errs.ErrOutputIO, dir, err)
	}
	tmpPath := tmp.Name()
	succeeded := false
	defer func() {
		if !succeeded {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	cw := newCountingWriter(tmp)
	if err := cw.write([]byte(Magic)); err != nil {
		return "", err
	}
	if err := cw.writeUint32(FormatVersion); err != nil {
		return "", err
	}

	headerSizePos := cw.pos
	if err := cw.writeUint16(0); err != nil { // header_size placeholder
		return "", err
	}
	headerStart := cw.pos

	if err := cw.writeShortField(name); err != nil {
		return "", err
	}
	if err := cw.writeShortField(desc); err != nil {
		return "", err
	}
	if err := cw.writeUint8(IndexFormat); err != nil {
		return "", err
	}

	indexOffsetPos := cw.pos
	if err := cw.writeUint64(0); err != nil {
		return "", err
	}
	indexSizePos := cw.pos
	if err := cw.writeUint64(0); err != nil {
		return "", err
	}
	dataOffsetPos := cw.pos
	if err := cw.writeUint64(0); err != nil {
		return "", err
	}
	dataSizePos := cw.pos
	if err := cw.writeUint64(0); err != nil {
		return "", err
	}

	if err := cw.writeLongField(script); err != nil {
		return "", err
	}
	if err := cw.writeLongField(style); err != nil {
		return "", err
	}

	headerSize := cw.pos - headerStart
	if headerSize > 0xffff {
		return "", fmt.Errorf("%w: header region of %d bytes exceeds 2-byte size field", errs.ErrTooLarge, headerSize)
	}
	if err := cw.flush(); err != nil {
		return "", err
	}

	dataOffset := cw.pos
	items := make([]index.Item, 0, len(recs))
	for _, r := range recs {
		entryOffset := uint64(cw.pos)
		if err := cw.writeUint8(uint8(DataEntryText)); err != nil {
			return "", err
		}
		if err := cw.writeUint32(uint32(len(r.Meaning))); err != nil {
			return "", err
		}
		if err := cw.write([]byte(r.Meaning)); err != nil {
			return "", err
		}
		items = append(items, index.Item{Key: r.Key, Value: entryOffset})
	}
	dataSize := cw.pos - dataOffset
	if err := cw.flush(); err != nil {
		return "", err
	}

	indexOffset := cw.pos
	indexSize, err := index.Build(cw.bw, items)
	if err != nil {
		return "", err
	}
	cw.pos += indexSize
	if err := cw.flush(); err != nil {
		return "", err
	}

	if err := backpatchUint16(tmp, headerSizePos, uint16(headerSize)); err != nil {
		return "", err
	}
	if err := backpatchUint64(tmp, indexOffsetPos, uint64(indexOffset)); err != nil {
		return "", err
	}
	if err := backpatchUint64(tmp, indexSizePos, uint64(indexSize)); err != nil {
		return "", err
	}
	if err := backpatchUint64(tmp, dataOffsetPos, uint64(dataOffset)); err != nil {
		return "", err
	}
	if err := backpatchUint64(tmp, dataSizePos, uint64(dataSize)); err != nil {
		return "", err
	}

	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("%w: sync %s: %v", errs.ErrOutputIO, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", errs.ErrOutputIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return "", fmt.Errorf("%w: rename %s to %s: %v", errs.ErrOutputIO, tmpPath, outputPath, err)
	}

	succeeded = true
	return outputPath, nil
}

func backpatchUint16(f *os.File, offset int64, v uint16) error {
	var buf [2]byte
	be.PutUint16(buf[:], v)
	if _, err := f.WriteAt(buf[:], offset); err != nil {
		return fmt.Errorf("%w: backpatch at %d: %v", errs.ErrOutputIO, offset, err)
	}
	return nil
}

func backpatchUint64(f *os.File, offset int64, v uint64) error {
	var buf [8]byte
	be.PutUint64(buf[:], v)
	if _, err := f.WriteAt(buf[:], offset); err != nil {
		return fmt.Errorf("%w: backpatch at %d: %v", errs.ErrOutputIO, offset, err)
	}
	return nil
}
