package hdf5

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
)

const (
	defaultTool = "h5dump"

	// defaultMaxHeaderBytes caps the XML header output accepted from the
	// tool. Headers describe structure only, so anything near this size is
	// not a real container.
	defaultMaxHeaderBytes = 64 << 20
)

// H5Dump is an Introspector backed by the h5dump tool from the HDF5
// distribution.
type H5Dump struct {
	tool           string
	maxHeaderBytes int
}

// H5DumpOption configures the h5dump introspector.
type H5DumpOption func(*H5Dump)

// WithTool overrides the tool name or path resolved from PATH.
func WithTool(tool string) H5DumpOption {
	return func(h *H5Dump) {
		h.tool = tool
	}
}

// WithMaxHeaderBytes overrides the accepted XML header size.
func WithMaxHeaderBytes(n int) H5DumpOption {
	return func(h *H5Dump) {
		h.maxHeaderBytes = n
	}
}

// NewH5Dump creates an h5dump-backed Introspector.
func NewH5Dump(opts ...H5DumpOption) *H5Dump {
	h := &H5Dump{
		tool:           defaultTool,
		maxHeaderBytes: defaultMaxHeaderBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Open dumps the container header and parses it into the raw object graph.
func (h *H5Dump) Open(ctx context.Context, path string) (Container, error) {
	toolPath, err := exec.LookPath(h.tool)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIntrospection,
			fmt.Sprintf("%s not found in PATH", h.tool), err)
	}

	out, err := runTool(ctx, toolPath, "-H", "-u", path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeIntrospection,
			"header dump failed", err, map[string]any{
				"command": h.tool,
				"file":    path,
			})
	}
	if len(out) > h.maxHeaderBytes {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeIntrospection,
			"container header exceeds size limit", map[string]any{
				"file":  path,
				"bytes": len(out),
				"limit": h.maxHeaderBytes,
			})
	}

	root, err := parseHeaderXML(out)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIntrospection,
			"failed to parse container header", err)
	}

	slog.Debug("parsed container header",
		"file", path,
		"bytes", len(out),
		"objects", countObjects(root))

	return &h5dumpContainer{tool: toolPath, file: path, root: root}, nil
}

// h5dumpContainer is an open handle driving h5dump for on-demand reads.
// ReadAttribute and ReadBytes are safe for concurrent use.
type h5dumpContainer struct {
	tool string
	file string
	root *Object

	mu      sync.Mutex
	tempDir string
	closed  bool
}

func (c *h5dumpContainer) Root() *Object {
	return c.root
}

func (c *h5dumpContainer) ReadAttribute(ctx context.Context, objectPath, name string) (string, error) {
	attrPath := joinObjectPath(objectPath, name)
	out, err := runTool(ctx, c.tool, "-e", "-a", attrPath, c.file)
	if err != nil {
		return "", apperrors.WrapWithContext(apperrors.ErrCodeIntrospection,
			"attribute dump failed", err, map[string]any{
				"attribute": attrPath,
				"file":      c.file,
			})
	}

	value, ok := scalarFromDump(string(out))
	if !ok {
		return "", apperrors.NewWithContext(apperrors.ErrCodeIntrospection,
			"attribute value not present in dump output", map[string]any{
				"attribute": attrPath,
				"file":      c.file,
			})
	}
	return value, nil
}

// scalarFromDump extracts a scalar attribute value from DDL dump output,
// where values are printed on a "(0): value" line.
func scalarFromDump(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "(0):"); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func (c *h5dumpContainer) ReadBytes(ctx context.Context, datasetPath string) ([]byte, error) {
	dir, err := c.ensureTempDir()
	if err != nil {
		return nil, err
	}

	outFile := filepath.Join(dir, uuid.NewString()+".bin")
	defer os.Remove(outFile)

	if _, err := runTool(ctx, c.tool, "-d", datasetPath, "-b", "-o", outFile, c.file); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeIntrospection,
			"dataset dump failed", err, map[string]any{
				"dataset": datasetPath,
				"file":    c.file,
			})
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIntrospection,
			"failed to read dataset dump", err)
	}
	return data, nil
}

// ensureTempDir lazily creates the handle's temp directory; payload dump
// files only exist for containers whose payloads were actually read.
func (c *h5dumpContainer) ensureTempDir() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", apperrors.New(apperrors.ErrCodeIntrospection, "container is closed")
	}
	if c.tempDir != "" {
		return c.tempDir, nil
	}

	dir, err := os.MkdirTemp("", "asdf-validate-")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeIntrospection,
			"failed to create temp directory", err)
	}
	c.tempDir = dir
	return dir, nil
}

func (c *h5dumpContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.tempDir == "" {
		return nil
	}
	dir := c.tempDir
	c.tempDir = ""
	return os.RemoveAll(dir)
}

// runTool executes the tool and returns stdout, folding captured stderr
// into the error on failure.
func runTool(ctx context.Context, tool string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}

// joinObjectPath appends an attribute name to an absolute object path.
func joinObjectPath(objectPath, name string) string {
	if objectPath == "/" || objectPath == "" {
		return "/" + name
	}
	return objectPath + "/" + name
}

func countObjects(root *Object) int {
	count := 0
	stack := []*Object{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, cur.Children...)
	}
	return count
}
