package tree

import (
	"sort"
)

// Kind distinguishes the two node types of the canonical tree.
type Kind string

const (
	KindGroup   Kind = "group"
	KindDataset Kind = "dataset"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Attribute is one named attribute of a node, with its full type metadata.
type Attribute struct {
	Name      string
	Datatype  Datatype
	Dataspace Dataspace
	Value     Value
}

// Node is one group or dataset in the canonical tree. Nodes are immutable
// once returned by a constructor; consumers must not modify the slices they
// expose.
type Node struct {
	kind       Kind
	name       string
	path       string
	attributes []Attribute
	children   []*Node

	// dataset descriptor, nil for groups
	datatype  Datatype
	dataspace Dataspace
}

// NewGroup builds a group node. Children and attributes are copied and
// sorted into canonical (lexicographic) order.
func NewGroup(name string, attrs []Attribute, children []*Node) *Node {
	return &Node{
		kind:       KindGroup,
		name:       name,
		attributes: sortedAttrs(attrs),
		children:   sortedChildren(children),
	}
}

// NewDataset builds a dataset node with its descriptor. Attributes are
// copied and sorted into canonical order.
func NewDataset(name string, attrs []Attribute, dt Datatype, ds Dataspace) *Node {
	return &Node{
		kind:       KindDataset,
		name:       name,
		attributes: sortedAttrs(attrs),
		datatype:   dt,
		dataspace:  ds,
	}
}

// NewRoot builds the root group and assigns absolute paths throughout the
// tree. The root's name and path are both "/"; descendant paths are
// "/"-joined with no trailing slash.
func NewRoot(attrs []Attribute, children []*Node) *Node {
	root := NewGroup("/", attrs, children)
	root.path = "/"

	// Iterative path assignment; runs before the tree is shared.
	stack := []*Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range cur.children {
			c.path = Join(cur.path, c.name)
			stack = append(stack, c)
		}
	}
	return root
}

// Join appends a child name to an absolute parent path.
func Join(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// Kind returns whether the node is a group or a dataset.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the node's own name ("/" for the root).
func (n *Node) Name() string { return n.name }

// Path returns the node's absolute canonical path.
func (n *Node) Path() string { return n.path }

// Attributes returns the node's attributes in canonical order.
func (n *Node) Attributes() []Attribute { return n.attributes }

// Attribute looks up an attribute by name.
func (n *Node) Attribute(name string) (Attribute, bool) {
	i := sort.Search(len(n.attributes), func(i int) bool {
		return n.attributes[i].Name >= name
	})
	if i < len(n.attributes) && n.attributes[i].Name == name {
		return n.attributes[i], true
	}
	return Attribute{}, false
}

// Children returns the node's children in canonical order.
// Datasets have no children.
func (n *Node) Children() []*Node { return n.children }

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].name >= name
	})
	if i < len(n.children) && n.children[i].name == name {
		return n.children[i], true
	}
	return nil, false
}

// Datatype returns the dataset's element datatype, nil for groups.
func (n *Node) Datatype() Datatype { return n.datatype }

// Dataspace returns the dataset's dataspace, nil for groups.
func (n *Node) Dataspace() Dataspace { return n.dataspace }

// IsGroup reports whether the node is a group.
func (n *Node) IsGroup() bool { return n.kind == KindGroup }

// IsDataset reports whether the node is a dataset.
func (n *Node) IsDataset() bool { return n.kind == KindDataset }

func sortedAttrs(attrs []Attribute) []Attribute {
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedChildren(children []*Node) []*Node {
	out := make([]*Node, len(children))
	copy(out, children)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
