package hdf5

import (
	"context"
	"sync"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
)

// Mem is an in-memory Introspector and Container. It serves tests and
// tooling that need container semantics without a file: attribute values
// and payloads are seeded up front using the same raw textual form the
// h5dump backend produces (string values quoted, NUL escapes kept).
type Mem struct {
	root     *Object
	attrs    map[string]string
	payloads map[string][]byte

	mu     sync.Mutex
	closed bool
}

// NewMem creates an in-memory container around a raw object graph.
func NewMem(root *Object) *Mem {
	return &Mem{
		root:     root,
		attrs:    make(map[string]string),
		payloads: make(map[string][]byte),
	}
}

// SetAttribute seeds the raw textual value of one attribute.
func (m *Mem) SetAttribute(objectPath, name, raw string) *Mem {
	m.attrs[joinObjectPath(objectPath, name)] = raw
	return m
}

// SetPayload seeds the raw payload of one dataset.
func (m *Mem) SetPayload(datasetPath string, data []byte) *Mem {
	m.payloads[datasetPath] = data
	return m
}

// Open implements Introspector. The path is ignored.
func (m *Mem) Open(ctx context.Context, path string) (Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Root implements Container.
func (m *Mem) Root() *Object {
	return m.root
}

// ReadAttribute implements Container.
func (m *Mem) ReadAttribute(ctx context.Context, objectPath, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, ok := m.attrs[joinObjectPath(objectPath, name)]
	if !ok {
		return "", apperrors.NewWithContext(apperrors.ErrCodeIntrospection,
			"attribute value not seeded", map[string]any{
				"attribute": joinObjectPath(objectPath, name),
			})
	}
	return raw, nil
}

// ReadBytes implements Container.
func (m *Mem) ReadBytes(ctx context.Context, datasetPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m.payloads[datasetPath]
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeIntrospection,
			"payload not seeded", map[string]any{
				"dataset": datasetPath,
			})
	}
	return data, nil
}

// Close implements Container.
func (m *Mem) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called; tests use it to verify
// resource scoping.
func (m *Mem) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
