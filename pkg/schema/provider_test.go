package schema

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
)

func TestEmbeddedProviderReadFile(t *testing.T) {
	p := NewEmbeddedDataProvider(dataFS, "data")

	data, err := p.ReadFile("asdf-0.0.2.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "StructuralSchema")
	assert.Equal(t, sourceEmbedded, p.Source("asdf-0.0.2.yaml"))

	_, err = p.ReadFile("asdf-0.0.0.yaml")
	assert.Error(t, err)
}

func TestEmbeddedProviderWalkDir(t *testing.T) {
	p := NewEmbeddedDataProvider(dataFS, "data")

	var files []string
	err := p.WalkDir("", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d != nil && !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)

	// Paths must be relative to the data directory.
	assert.Contains(t, files, "asdf-0.0.2.yaml")
	for _, f := range files {
		assert.False(t, strings.HasPrefix(f, "data/"), "path %s not relative", f)
	}
}

func writeSchemaDoc(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestLayeredProviderOverride(t *testing.T) {
	dir := t.TempDir()
	override := strings.ReplaceAll(minimalDoc, "9.9.9", "0.0.2")
	writeSchemaDoc(t, dir, "asdf-0.0.2.yaml", override)

	p, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: dir})
	require.NoError(t, err)

	data, err := p.ReadFile("asdf-0.0.2.yaml")
	require.NoError(t, err)
	assert.Equal(t, override, string(data))
	assert.Equal(t, sourceExternal, p.Source("asdf-0.0.2.yaml"))
	assert.Equal(t, sourceEmbedded, p.Source("asdf-0.0.1.yaml"))
}

func TestLayeredProviderAddsVersion(t *testing.T) {
	dir := t.TempDir()
	writeSchemaDoc(t, dir, "asdf-9.9.9.yaml", minimalDoc)

	p, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: dir})
	require.NoError(t, err)

	var files []string
	err = p.WalkDir("", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d != nil && !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, files, "asdf-0.0.2.yaml")
	assert.Contains(t, files, "asdf-9.9.9.yaml")

	// Route the registry through the layered provider for the rest of
	// the test.
	previous := GetDataProvider()
	SetDataProvider(p)
	t.Cleanup(func() { SetDataProvider(previous) })

	versions := Versions()
	assert.Contains(t, versions, "0.0.2")
	assert.Contains(t, versions, "9.9.9")

	s, err := Get("9.9.9")
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", s.Version)

	// Embedded documents stay reachable underneath the overlay.
	_, err = Get("0.0.2")
	assert.NoError(t, err)
}

func TestLayeredProviderMissingDir(t *testing.T) {
	_, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestLayeredProviderNotADirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaDoc(t, dir, "asdf-9.9.9.yaml", minimalDoc)

	_, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestLayeredProviderNoSchemaDocs(t *testing.T) {
	dir := t.TempDir()
	writeSchemaDoc(t, dir, "README.md", "nothing to see")

	_, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema documents")
}

func TestLayeredProviderRejectsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := writeSchemaDoc(t, dir, "asdf-9.9.9.yaml", minimalDoc)
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "asdf-8.8.8.yaml")))

	_, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlinks not allowed")
}

func TestLayeredProviderAllowsSymlinksWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	target := writeSchemaDoc(t, dir, "asdf-9.9.9.yaml", minimalDoc)
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "asdf-8.8.8.yaml")))

	p, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: dir, AllowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, sourceExternal, p.Source("asdf-8.8.8.yaml"))
}

func TestLayeredProviderSizeLimit(t *testing.T) {
	dir := t.TempDir()
	writeSchemaDoc(t, dir, "asdf-9.9.9.yaml", minimalDoc)

	_, err := NewLayeredDataProvider(
		NewEmbeddedDataProvider(dataFS, "data"),
		LayeredProviderConfig{ExternalDir: dir, MaxFileSize: 8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
}
