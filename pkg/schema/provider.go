package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
)

// DataProvider abstracts access to schema document files.
// This allows layering external directories over embedded data.
type DataProvider interface {
	// ReadFile reads a file by path (relative to the data directory).
	ReadFile(path string) ([]byte, error)

	// WalkDir walks the directory tree rooted at root.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// Source returns a description of where data came from (for debugging).
	Source(path string) string
}

// EmbeddedDataProvider wraps an embed.FS to implement DataProvider.
type EmbeddedDataProvider struct {
	fs     embed.FS
	prefix string
}

// NewEmbeddedDataProvider creates a provider from an embedded filesystem.
func NewEmbeddedDataProvider(efs embed.FS, prefix string) *EmbeddedDataProvider {
	return &EmbeddedDataProvider{
		fs:     efs,
		prefix: prefix,
	}
}

// ReadFile reads a file from the embedded filesystem.
func (p *EmbeddedDataProvider) ReadFile(path string) ([]byte, error) {
	fullPath := p.prefix + "/" + path
	slog.Debug("reading file from embedded provider", "path", path, "fullPath", fullPath)
	return p.fs.ReadFile(fullPath)
}

// WalkDir walks the embedded filesystem.
func (p *EmbeddedDataProvider) WalkDir(root string, fn fs.WalkDirFunc) error {
	fullRoot := p.prefix
	if root != "" {
		fullRoot = p.prefix + "/" + root
	}
	return fs.WalkDir(p.fs, fullRoot, func(path string, d fs.DirEntry, err error) error {
		// Strip the prefix before passing to the callback.
		relPath := strings.TrimPrefix(path, p.prefix+"/")
		if relPath == p.prefix {
			relPath = ""
		}
		return fn(relPath, d, err)
	})
}

// Source returns "embedded" for all paths.
func (p *EmbeddedDataProvider) Source(path string) string {
	return sourceEmbedded
}

// LayeredDataProvider overlays an external schema directory on top of the
// embedded documents. An external file with the same name completely
// replaces the embedded one; new files add format versions.
type LayeredDataProvider struct {
	embedded    *EmbeddedDataProvider
	externalDir string

	// Track which files came from external (for debugging).
	externalFiles map[string]bool
}

// LayeredProviderConfig configures the layered data provider.
type LayeredProviderConfig struct {
	// ExternalDir is the path to the external schema directory.
	ExternalDir string

	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB).
	MaxFileSize int64

	// AllowSymlinks allows symlinks in the external directory (default: false).
	AllowSymlinks bool
}

const (
	// DefaultMaxFileSize is the default maximum file size (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	sourceEmbedded = "embedded"
	sourceExternal = "external"
)

// NewLayeredDataProvider creates a provider that layers external schema
// documents over the embedded ones.
// Returns an error if:
// - The external directory doesn't exist
// - The external directory contains no schema documents
// - Path traversal is detected
// - A file size exceeds the limit
func NewLayeredDataProvider(embedded *EmbeddedDataProvider, config LayeredProviderConfig) (*LayeredDataProvider, error) {
	slog.Debug("creating layered data provider",
		"external_dir", config.ExternalDir,
		"max_file_size", config.MaxFileSize,
		"allow_symlinks", config.AllowSymlinks)

	if config.MaxFileSize == 0 {
		config.MaxFileSize = DefaultMaxFileSize
	}

	info, err := os.Stat(config.ExternalDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("external schema directory not found: %s", config.ExternalDir), err)
	}
	if !info.IsDir() {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("external schema path is not a directory: %s", config.ExternalDir))
	}

	// Scan the external directory for security issues.
	externalFiles := make(map[string]bool)
	schemaDocs := 0
	err = filepath.WalkDir(config.ExternalDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(config.ExternalDir, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}

		if strings.Contains(relPath, "..") {
			return apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("path traversal detected: %s", relPath))
		}

		if !config.AllowSymlinks {
			info, lstatErr := os.Lstat(path)
			if lstatErr != nil {
				return fmt.Errorf("failed to stat file: %w", lstatErr)
			}
			if info.Mode()&os.ModeSymlink != 0 {
				return apperrors.New(apperrors.ErrCodeInvalidRequest,
					fmt.Sprintf("symlinks not allowed: %s", relPath))
			}
		}

		info, statErr := d.Info()
		if statErr != nil {
			return fmt.Errorf("failed to get file info: %w", statErr)
		}
		if info.Size() > config.MaxFileSize {
			return apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("file too large (%d bytes, max %d): %s", info.Size(), config.MaxFileSize, relPath))
		}

		if schemaFileRE.MatchString(relPath) {
			schemaDocs++
		}
		externalFiles[relPath] = true
		slog.Debug("discovered external file", "path", relPath, "size", info.Size())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if schemaDocs == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("no schema documents (%s) in external directory: %s", schemaFilePattern, config.ExternalDir))
	}

	slog.Info("layered schema provider initialized",
		"external_dir", config.ExternalDir,
		"external_files", len(externalFiles),
		"schema_documents", schemaDocs)

	return &LayeredDataProvider{
		embedded:      embedded,
		externalDir:   config.ExternalDir,
		externalFiles: externalFiles,
	}, nil
}

// ReadFile reads a file, checking the external directory first.
func (p *LayeredDataProvider) ReadFile(path string) ([]byte, error) {
	if p.externalFiles[path] {
		externalPath := filepath.Join(p.externalDir, path)
		data, err := os.ReadFile(externalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read external file %s: %w", path, err)
		}
		slog.Debug("read from external schema directory", "path", path)
		return data, nil
	}

	slog.Debug("falling back to embedded data", "path", path)
	return p.embedded.ReadFile(path)
}

// WalkDir walks both external and embedded files.
// External files take precedence over embedded ones.
func (p *LayeredDataProvider) WalkDir(root string, fn fs.WalkDirFunc) error {
	visited := make(map[string]bool)

	externalRoot := filepath.Join(p.externalDir, root)
	if _, err := os.Stat(externalRoot); err == nil {
		err := filepath.WalkDir(externalRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			relPath, relErr := filepath.Rel(p.externalDir, path)
			if relErr != nil {
				return relErr
			}
			if root != "" {
				relPath = strings.TrimPrefix(relPath, root+"/")
				if relPath == root {
					relPath = ""
				}
			}

			visited[relPath] = true
			return fn(relPath, d, nil)
		})
		if err != nil {
			return err
		}
	}

	return p.embedded.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if visited[path] {
			// External takes precedence.
			return nil
		}
		return fn(path, d, err)
	})
}

// Source returns "external" or "embedded" depending on where the file
// comes from.
func (p *LayeredDataProvider) Source(path string) string {
	if p.externalFiles[path] {
		return sourceExternal
	}
	return sourceEmbedded
}

// Global data provider (defaults to embedded, can be set for layered).
var (
	globalDataProvider     DataProvider
	dataProviderGeneration int
)

// SetDataProvider sets the global data provider.
// This should be called before any schema operations if using external
// data. Compiled-schema caches are invalidated by the generation bump.
func SetDataProvider(provider DataProvider) {
	globalDataProvider = provider
	dataProviderGeneration++
	slog.Info("schema data provider set", "generation", dataProviderGeneration)
}

// GetDataProvider returns the global data provider.
// Returns the embedded provider if none was set.
func GetDataProvider() DataProvider {
	if globalDataProvider == nil {
		globalDataProvider = NewEmbeddedDataProvider(dataFS, "data")
	}
	return globalDataProvider
}

// GetDataProviderGeneration returns the current data provider generation.
// This is used by caches to detect when they need to reload.
func GetDataProviderGeneration() int {
	return dataProviderGeneration
}
