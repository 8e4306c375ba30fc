package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoneProvider(t *testing.T) {
	css, js, err := None{}.Assets()
	require.NoError(t, err)
	assert.Nil(t, css)
	assert.Nil(t, js)
}

func TestFileProviderBothPaths(t *testing.T) {
	dir := t.TempDir()
	cssPath := filepath.Join(dir, "style.css")
	jsPath := filepath.Join(dir, "script.js")
	require.NoError(t, os.WriteFile(cssPath, []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(jsPath, []byte("console.log(1)"), 0o644))

	p := FileProvider{CSSPath: cssPath, JSPath: jsPath}
	css, js, err := p.Assets()
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(css))
	assert.Equal(t, "console.log(1)", string(js))
}

func TestFileProviderEmptyPaths(t *testing.T) {
	p := FileProvider{}
	css, js, err := p.Assets()
	require.NoError(t, err)
	assert.Nil(t, css)
	assert.Nil(t, js)
}

func TestFileProviderMissingFile(t *testing.T) {
	p := FileProvider{CSSPath: filepath.Join(t.TempDir(), "missing.css")}
	_, _, err := p.Assets()
	assert.Error(t, err)
}
