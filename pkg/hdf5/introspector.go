package hdf5

import (
	"context"
)

// ObjectKind distinguishes the two object types of the raw graph.
type ObjectKind string

const (
	ObjectGroup   ObjectKind = "group"
	ObjectDataset ObjectKind = "dataset"
)

// Datatype kinds as reported by the container header.
const (
	TypeInteger   = "integer"
	TypeFloat     = "float"
	TypeString    = "string"
	TypeReference = "reference"
	TypeUnknown   = "unknown"
)

// Introspector opens containers for read-only structural access.
type Introspector interface {
	// Open parses the container's structure and returns a handle on it.
	// The caller owns the handle and must Close it.
	Open(ctx context.Context, path string) (Container, error)
}

// Container is an open handle on one container file. Implementations must
// support concurrent ReadAttribute and ReadBytes calls; all resources held
// by the handle are released by Close.
type Container interface {
	// Root returns the raw object graph parsed from the container header.
	// The graph carries full type metadata but no attribute values and no
	// dataset payloads.
	Root() *Object

	// ReadAttribute returns the raw textual rendering of one attribute
	// value, as dumped by the container tooling. String values keep their
	// surrounding quotes and trailing NUL escapes.
	ReadAttribute(ctx context.Context, objectPath, name string) (string, error)

	// ReadBytes returns the raw payload of a dataset.
	ReadBytes(ctx context.Context, datasetPath string) ([]byte, error)

	// Close releases everything held by the handle.
	Close() error
}

// Object is one group or dataset in the raw object graph. Children appear
// in header order; canonical ordering is applied later.
type Object struct {
	Kind       ObjectKind
	Name       string
	Attributes []Attribute

	// Children is populated for groups only.
	Children []*Object

	// Datatype and Dataspace are populated for datasets only.
	Datatype  *Datatype
	Dataspace *Dataspace
}

// Attribute is the type metadata of one attribute. Values are read
// separately through Container.ReadAttribute.
type Attribute struct {
	Name      string
	Datatype  Datatype
	Dataspace Dataspace
}

// Datatype is the raw datatype metadata of a dataset or attribute.
// Kind selects which of the remaining fields are meaningful.
type Datatype struct {
	Kind string

	// integer and float fields; Size is in bytes
	Size      int
	Signed    bool
	ByteOrder string

	// float bit layout
	SignBitLocation  int
	ExponentBits     int
	ExponentLocation int
	MantissaBits     int
	MantissaLocation int

	// string fields; raw H5T_* vocabulary
	StrSize  int
	Variable bool
	Cset     string
	StrPad   string

	// raw element name for datatypes the graph does not interpret
	Raw string
}

// Dataspace is the raw dataspace metadata of a dataset or attribute.
type Dataspace struct {
	Scalar bool
	Dims   []Dimension
}

// Dimension is one extent of a simple dataspace.
type Dimension struct {
	Size      uint64
	Max       uint64
	Unlimited bool
}

// Attribute looks up an attribute of the object by name.
func (o *Object) Attribute(name string) (Attribute, bool) {
	for _, a := range o.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Child looks up a direct child by name.
func (o *Object) Child(name string) (*Object, bool) {
	for _, c := range o.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
