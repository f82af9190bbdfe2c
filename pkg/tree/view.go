package tree

// NodeView is the serializable form of a Node, used by inspection dumps.
// Field order is fixed so JSON and YAML output stays stable across runs.
type NodeView struct {
	Kind       Kind            `json:"kind" yaml:"kind"`
	Path       string          `json:"path" yaml:"path"`
	Attributes []AttributeView `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Datatype   *DatatypeView   `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Dataspace  *DataspaceView  `json:"dataspace,omitempty" yaml:"dataspace,omitempty"`
	Children   []NodeView      `json:"children,omitempty" yaml:"children,omitempty"`
}

// AttributeView is the serializable form of an Attribute.
type AttributeView struct {
	Name      string         `json:"name" yaml:"name"`
	Datatype  *DatatypeView  `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Dataspace *DataspaceView `json:"dataspace,omitempty" yaml:"dataspace,omitempty"`
	Value     any            `json:"value" yaml:"value"`
}

// DatatypeView flattens the Datatype sum for serialization.
type DatatypeView struct {
	Class    Class     `json:"class" yaml:"class"`
	Size     int       `json:"size,omitempty" yaml:"size,omitempty"`
	Signed   *bool     `json:"signed,omitempty" yaml:"signed,omitempty"`
	Order    ByteOrder `json:"byteOrder,omitempty" yaml:"byteOrder,omitempty"`
	Charset  Charset   `json:"charset,omitempty" yaml:"charset,omitempty"`
	Pad      StrPad    `json:"pad,omitempty" yaml:"pad,omitempty"`
	Variable bool      `json:"variable,omitempty" yaml:"variable,omitempty"`
	Tag      string    `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// DataspaceView flattens the Dataspace sum for serialization.
type DataspaceView struct {
	Kind string    `json:"kind" yaml:"kind"`
	Dims []DimView `json:"dims,omitempty" yaml:"dims,omitempty"`
}

// DimView is the serializable form of one dimension.
type DimView struct {
	Size      uint64 `json:"size" yaml:"size"`
	Max       uint64 `json:"max,omitempty" yaml:"max,omitempty"`
	Unlimited bool   `json:"unlimited,omitempty" yaml:"unlimited,omitempty"`
}

// View converts a canonical tree into its serializable form.
func View(n *Node) NodeView {
	v := NodeView{
		Kind: n.Kind(),
		Path: n.Path(),
	}
	for _, a := range n.Attributes() {
		v.Attributes = append(v.Attributes, AttributeView{
			Name:      a.Name,
			Datatype:  viewDatatype(a.Datatype),
			Dataspace: viewDataspace(a.Dataspace),
			Value:     a.Value.Any(),
		})
	}
	if n.IsDataset() {
		v.Datatype = viewDatatype(n.Datatype())
		v.Dataspace = viewDataspace(n.Dataspace())
	}
	for _, c := range n.Children() {
		v.Children = append(v.Children, View(c))
	}
	return v
}

func viewDatatype(dt Datatype) *DatatypeView {
	switch t := dt.(type) {
	case IntegerType:
		signed := t.Signed
		return &DatatypeView{Class: ClassInteger, Size: t.Size, Signed: &signed, Order: t.Order}
	case FloatType:
		return &DatatypeView{Class: ClassFloat, Size: t.Size, Order: t.Order}
	case StringType:
		return &DatatypeView{Class: ClassString, Size: t.Size, Variable: t.Variable, Charset: t.Cset, Pad: t.Pad}
	case ReferenceType:
		return &DatatypeView{Class: ClassReference}
	case OpaqueType:
		return &DatatypeView{Class: ClassOpaque, Tag: t.Tag}
	default:
		return nil
	}
}

func viewDataspace(ds Dataspace) *DataspaceView {
	switch s := ds.(type) {
	case ScalarSpace:
		return &DataspaceView{Kind: "scalar"}
	case SimpleSpace:
		v := &DataspaceView{Kind: "simple"}
		for _, d := range s.Dims {
			v.Dims = append(v.Dims, DimView{Size: d.Size, Max: d.Max, Unlimited: d.Unlimited})
		}
		return v
	default:
		return nil
	}
}
