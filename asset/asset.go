// Package asset defines the interface the compiler uses to obtain optional CSS/JS payloads
// embedded in a compiled dictionary, plus a default local-file implementation. Platform-directory
// discovery and the desktop/webview asset server are host concerns layered above this package.
package asset

import (
	"fmt"
	"os"
)

// Provider returns the optional style (CSS) and script (JS) payloads to embed in a compiled
// dictionary. Either return value may be nil to mean "no asset of that kind".
type Provider interface {
	Assets() (css []byte, js []byte, err error)
}

// None is a Provider that never supplies assets.
type None struct{}

func (None) Assets() ([]byte, []byte, error) { return nil, nil, nil }

// FileProvider reads a CSS file and a JS file from local paths. Either path may be empty, in
// which case that asset is omitted.
type FileProvider struct {
	CSSPath string
	JSPath  string
}

func (p FileProvider) Assets() ([]byte, []byte, error) {
	css, err := readOptional(p.CSSPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read css asset %q: %w", p.CSSPath, err)
	}

	js, err := readOptional(p.JSPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read js asset %q: %w", p.JSPath, err)
	}

	return css, js, nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}
