// Package wikit implements a universal dictionary engine: it compiles legacy binary
// dictionaries and plain-text dictionary sources into a self-contained, random-access
// ".wikit" file, and answers exact and fuzzy lookups against a compiled file.
package wikit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ikey4u/wikit/asset"
	"github.com/ikey4u/wikit/compiler"
	"github.com/ikey4u/wikit/errs"
	"github.com/ikey4u/wikit/legacy"
	"github.com/ikey4u/wikit/log"
	"github.com/ikey4u/wikit/record"
	"github.com/ikey4u/wikit/textsource"
)

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrSourceIO, path, err)
	}
	return f, nil
}

// SourceKind identifies which reader Compile uses to interpret the input file at sourcePath.
type SourceKind int

const (
	// SourceLegacyBinary reads a legacy MDX-like binary dictionary archive.
	SourceLegacyBinary SourceKind = iota
	// SourcePlainText reads the "<key>\n<meaning>\n</>\n" stanza text format.
	SourcePlainText
)

// CompileOptions configures Compile. Zero-value fields take the defaults documented on each.
type CompileOptions struct {
	// Name defaults to sourcePath's filename stem.
	Name string
	// Desc defaults to empty.
	Desc string
	// Author, if non-empty, is recorded alongside Desc (the compiled format has no dedicated
	// author field).
	Author string
	// CSSPath and JSPath name optional local asset files embedded verbatim in the compiled
	// dictionary.
	CSSPath string
	JSPath  string
	// OutputPath defaults to "<dir of sourcePath>/<name>.wikit".
	OutputPath string
	// Logger receives structured progress/warning messages; defaults to log.Noop.
	Logger log.Logger
}

// Compile reads sourcePath under sourceKind's format and writes a new compiled dictionary file,
// returning its path. On any error, no file is left at the requested output path.
func Compile(sourceKind SourceKind, sourcePath string, opts CompileOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Noop
	}

	name := opts.Name
	if name == "" {
		base := filepath.Base(sourcePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(sourcePath), name+".wikit")
	}

	src, err := openSource(sourceKind, sourcePath, logger)
	if err != nil {
		return "", err
	}

	return compiler.Compile(src, compiler.Options{
		Name:       name,
		Desc:       opts.Desc,
		Author:     opts.Author,
		OutputPath: outputPath,
		Assets:     asset.FileProvider{CSSPath: opts.CSSPath, JSPath: opts.JSPath},
		Logger:     logger,
	})
}

func openSource(kind SourceKind, path string, logger log.Logger) (record.Source, error) {
	switch kind {
	case SourceLegacyBinary:
		src, _, err := legacy.Parse(path, legacy.WithLogger(logger))
		return src, err
	case SourcePlainText:
		f, err := openFile(path)
		if err != nil {
			return nil, err
		}
		return textSourceOverFile(f, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown source kind %d", errs.ErrSourceFormat, kind)
	}
}

// closingSource wraps a textsource.Reader so the underlying file is closed once the stream is
// fully drained (textsource has no explicit Close; the plain-text format has no trailer to
// signal otherwise, so exhaustion is the only natural close point).
type closingSource struct {
	inner io.Closer
	rd    *textsource.Reader
	done  bool
}

func textSourceOverFile(f io.ReadCloser, logger log.Logger) record.Source {
	return &closingSource{inner: f, rd: textsource.New(f, textsource.WithLogger(logger))}
}

func (s *closingSource) Next() (record.Record, bool, error) {
	if s.done {
		return record.Record{}, false, nil
	}
	rec, ok, err := s.rd.Next()
	if !ok || err != nil {
		s.done = true
		s.inner.Close()
	}
	return rec, ok, err
}
