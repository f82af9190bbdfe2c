package schema

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seismicdata/asdf-validate/pkg/header"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

//go:embed data/*.yaml
var dataFS embed.FS

// GetEmbeddedFS returns the embedded schema filesystem.
// This is used by the CLI to create layered data providers.
func GetEmbeddedFS() embed.FS {
	return dataFS
}

// SchemaAPIVersion identifies the schema document resource schema.
const SchemaAPIVersion = "asdf.seismicdata.org/v1"

// Schema is a compiled structural schema for one format version.
// Compiled schemas are immutable and safe for concurrent use.
type Schema struct {
	// Version is the format version the schema applies to.
	Version string

	// Root is the rule for the container's root group.
	Root *NodeSpec
}

// NodeSpec is the rule for one node of the container tree.
type NodeSpec struct {
	// Kind is the expected node kind.
	Kind tree.Kind

	// AdditionalChildren permits children that match neither a literal
	// name nor a pattern. Unmatched children are not descended into.
	AdditionalChildren bool

	// Attributes are the attribute rules, sorted by name. Attributes not
	// listed here are always permitted.
	Attributes []AttrSpec

	// Children are the literal-named child rules, sorted by name.
	Children []ChildSpec

	// Patterns are the pattern-named child rules, in document order.
	// A child name is matched against literal rules first, then against
	// each pattern in turn.
	Patterns []PatternSpec

	// Datatype and Dataspace constrain dataset descriptors; nil means
	// unconstrained. Only set for dataset rules.
	Datatype  *DatatypeSpec
	Dataspace *DataspaceSpec
}

// ChildSpec binds a literal child name to its rule.
type ChildSpec struct {
	Name     string
	Required bool
	Node     *NodeSpec
}

// PatternSpec binds an anchored child-name pattern to its rule.
type PatternSpec struct {
	Pattern *regexp.Regexp
	Node    *NodeSpec
}

// AttrSpec is the rule for one attribute.
type AttrSpec struct {
	Name      string
	Required  bool
	Datatype  *DatatypeSpec
	Dataspace *DataspaceSpec
}

// DatatypeSpec constrains a datatype. Class is always set; the remaining
// fields are checked only when non-zero.
type DatatypeSpec struct {
	Class        tree.Class
	Size         int
	Signed       *bool
	Order        tree.ByteOrder
	Charset      tree.Charset
	Variable     *bool
	ExponentBits int
	MantissaBits int
}

// DataspaceSpec constrains a dataspace: either scalar, or simple with an
// optional exact rank (0 means any rank).
type DataspaceSpec struct {
	Scalar bool
	Rank   int
}

// Document form, parsed from YAML.
type document struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Version    string   `yaml:"version"`
	Root       *nodeDoc `yaml:"root"`
}

type nodeDoc struct {
	Kind               string              `yaml:"kind"`
	Required           bool                `yaml:"required"`
	AdditionalChildren bool                `yaml:"additionalChildren"`
	Attributes         map[string]*attrDoc `yaml:"attributes"`
	Children           map[string]*nodeDoc `yaml:"children"`
	PatternChildren    []*patternDoc       `yaml:"patternChildren"`
	Datatype           *datatypeDoc        `yaml:"datatype"`
	Dataspace          *dataspaceDoc       `yaml:"dataspace"`
}

type patternDoc struct {
	Pattern string `yaml:"pattern"`
	nodeDoc `yaml:",inline"`
}

type attrDoc struct {
	Required  bool          `yaml:"required"`
	Datatype  *datatypeDoc  `yaml:"datatype"`
	Dataspace *dataspaceDoc `yaml:"dataspace"`
}

type datatypeDoc struct {
	Class        string `yaml:"class"`
	Size         int    `yaml:"size"`
	Signed       *bool  `yaml:"signed"`
	Order        string `yaml:"order"`
	Charset      string `yaml:"charset"`
	Variable     *bool  `yaml:"variable"`
	ExponentBits int    `yaml:"exponentBits"`
	MantissaBits int    `yaml:"mantissaBits"`
}

type dataspaceDoc struct {
	Kind string `yaml:"kind"`
	Rank int    `yaml:"rank"`
}

// Compile parses and compiles a schema document. Unknown document fields
// are rejected so typos in external schema files surface as errors instead
// of silently relaxing the schema.
func Compile(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}
	if doc.Kind != "" && doc.Kind != header.KindSchema.String() {
		return nil, fmt.Errorf("unexpected document kind %q, want %q", doc.Kind, header.KindSchema)
	}
	if doc.APIVersion != "" && doc.APIVersion != SchemaAPIVersion {
		return nil, fmt.Errorf("unexpected document apiVersion %q, want %q", doc.APIVersion, SchemaAPIVersion)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("schema document carries no format version")
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("schema document carries no root rule")
	}

	root, err := compileTree(doc.Root)
	if err != nil {
		return nil, err
	}
	if root.Kind != tree.KindGroup {
		return nil, fmt.Errorf("root rule must describe a group")
	}
	return &Schema{Version: doc.Version, Root: root}, nil
}

type compileFrame struct {
	doc  *nodeDoc
	spec *NodeSpec
	path string
}

// compileTree converts the document tree into the compiled rule tree with
// an explicit stack, validating the vocabulary as it goes.
func compileTree(rootDoc *nodeDoc) (*NodeSpec, error) {
	rootSpec := &NodeSpec{}
	stack := []compileFrame{{doc: rootDoc, spec: rootSpec, path: "/"}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		kind, err := parseKind(f.doc.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.path, err)
		}
		f.spec.Kind = kind
		f.spec.AdditionalChildren = f.doc.AdditionalChildren

		if kind == tree.KindDataset && (len(f.doc.Children) > 0 || len(f.doc.PatternChildren) > 0) {
			return nil, fmt.Errorf("%s: dataset rules cannot have children", f.path)
		}
		if kind == tree.KindGroup && (f.doc.Datatype != nil || f.doc.Dataspace != nil) {
			return nil, fmt.Errorf("%s: group rules cannot carry a dataset descriptor", f.path)
		}

		if f.doc.Datatype != nil {
			dt, dtErr := compileDatatype(f.doc.Datatype)
			if dtErr != nil {
				return nil, fmt.Errorf("%s: %w", f.path, dtErr)
			}
			f.spec.Datatype = dt
		}
		if f.doc.Dataspace != nil {
			ds, dsErr := compileDataspace(f.doc.Dataspace)
			if dsErr != nil {
				return nil, fmt.Errorf("%s: %w", f.path, dsErr)
			}
			f.spec.Dataspace = ds
		}

		for _, name := range sortedKeys(f.doc.Attributes) {
			a := f.doc.Attributes[name]
			attr := AttrSpec{Name: name, Required: a.Required}
			if a.Datatype != nil {
				dt, dtErr := compileDatatype(a.Datatype)
				if dtErr != nil {
					return nil, fmt.Errorf("%s: attribute %q: %w", f.path, name, dtErr)
				}
				attr.Datatype = dt
			}
			if a.Dataspace != nil {
				ds, dsErr := compileDataspace(a.Dataspace)
				if dsErr != nil {
					return nil, fmt.Errorf("%s: attribute %q: %w", f.path, name, dsErr)
				}
				attr.Dataspace = ds
			}
			f.spec.Attributes = append(f.spec.Attributes, attr)
		}

		for _, name := range sortedKeys(f.doc.Children) {
			c := f.doc.Children[name]
			child := &NodeSpec{}
			f.spec.Children = append(f.spec.Children, ChildSpec{Name: name, Required: c.Required, Node: child})
			stack = append(stack, compileFrame{doc: c, spec: child, path: tree.Join(f.path, name)})
		}

		for i, p := range f.doc.PatternChildren {
			if p.Pattern == "" {
				return nil, fmt.Errorf("%s: pattern child %d carries no pattern", f.path, i)
			}
			if p.Required {
				return nil, fmt.Errorf("%s: pattern children cannot be required", f.path)
			}
			re, reErr := regexp.Compile(p.Pattern)
			if reErr != nil {
				return nil, fmt.Errorf("%s: invalid pattern %q: %w", f.path, p.Pattern, reErr)
			}
			child := &NodeSpec{}
			f.spec.Patterns = append(f.spec.Patterns, PatternSpec{Pattern: re, Node: child})
			stack = append(stack, compileFrame{doc: &p.nodeDoc, spec: child, path: tree.Join(f.path, "{"+p.Pattern+"}")})
		}
	}
	return rootSpec, nil
}

func parseKind(s string) (tree.Kind, error) {
	switch tree.Kind(s) {
	case tree.KindGroup, tree.KindDataset:
		return tree.Kind(s), nil
	case "":
		return "", fmt.Errorf("rule carries no kind")
	default:
		return "", fmt.Errorf("unknown node kind %q", s)
	}
}

func compileDatatype(doc *datatypeDoc) (*DatatypeSpec, error) {
	spec := &DatatypeSpec{Size: doc.Size, Signed: doc.Signed, Variable: doc.Variable,
		ExponentBits: doc.ExponentBits, MantissaBits: doc.MantissaBits}

	switch tree.Class(doc.Class) {
	case tree.ClassInteger, tree.ClassFloat, tree.ClassString, tree.ClassReference, tree.ClassOpaque:
		spec.Class = tree.Class(doc.Class)
	case "":
		return nil, fmt.Errorf("datatype rule carries no class")
	default:
		return nil, fmt.Errorf("unknown datatype class %q", doc.Class)
	}

	switch doc.Order {
	case "":
	case "LE":
		spec.Order = tree.OrderLittleEndian
	case "BE":
		spec.Order = tree.OrderBigEndian
	default:
		return nil, fmt.Errorf("unknown byte order %q", doc.Order)
	}

	switch doc.Charset {
	case "":
	case "ascii":
		spec.Charset = tree.CharsetASCII
	case "utf8":
		spec.Charset = tree.CharsetUTF8
	default:
		return nil, fmt.Errorf("unknown charset %q", doc.Charset)
	}

	if spec.Signed != nil && spec.Class != tree.ClassInteger {
		return nil, fmt.Errorf("signed only applies to integer datatypes")
	}
	if (spec.ExponentBits != 0 || spec.MantissaBits != 0) && spec.Class != tree.ClassFloat {
		return nil, fmt.Errorf("bit layout only applies to float datatypes")
	}
	if (spec.Charset != "" || spec.Variable != nil) && spec.Class != tree.ClassString {
		return nil, fmt.Errorf("charset and variable only apply to string datatypes")
	}
	if spec.Order != "" && spec.Class != tree.ClassInteger && spec.Class != tree.ClassFloat {
		return nil, fmt.Errorf("byte order only applies to numeric datatypes")
	}
	return spec, nil
}

func compileDataspace(doc *dataspaceDoc) (*DataspaceSpec, error) {
	switch doc.Kind {
	case "scalar":
		if doc.Rank != 0 {
			return nil, fmt.Errorf("scalar dataspaces cannot carry a rank")
		}
		return &DataspaceSpec{Scalar: true}, nil
	case "simple":
		if doc.Rank < 0 {
			return nil, fmt.Errorf("invalid dataspace rank %d", doc.Rank)
		}
		return &DataspaceSpec{Rank: doc.Rank}, nil
	case "":
		return nil, fmt.Errorf("dataspace rule carries no kind")
	default:
		return nil, fmt.Errorf("unknown dataspace kind %q", doc.Kind)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// matches reports whether a datatype satisfies the rule.
func (s *DatatypeSpec) matches(dt tree.Datatype) bool {
	if dt == nil || dt.Class() != s.Class {
		return false
	}
	switch t := dt.(type) {
	case tree.IntegerType:
		if s.Size != 0 && t.Size != s.Size {
			return false
		}
		if s.Signed != nil && t.Signed != *s.Signed {
			return false
		}
		if s.Order != "" && t.Order != s.Order {
			return false
		}
	case tree.FloatType:
		if s.Size != 0 && t.Size != s.Size {
			return false
		}
		if s.Order != "" && t.Order != s.Order {
			return false
		}
		if s.ExponentBits != 0 && t.ExponentBits != s.ExponentBits {
			return false
		}
		if s.MantissaBits != 0 && t.MantissaBits != s.MantissaBits {
			return false
		}
	case tree.StringType:
		if s.Size != 0 && t.Size != s.Size {
			return false
		}
		if s.Charset != "" && t.Cset != s.Charset {
			return false
		}
		if s.Variable != nil && t.Variable != *s.Variable {
			return false
		}
	case tree.ReferenceType, tree.OpaqueType:
		// Class equality is the whole check.
	}
	return true
}

// describe renders the rule for expected-vs-actual messages, in the same
// shape as the tree datatype renderings.
func (s *DatatypeSpec) describe() string {
	var parts []string
	if s.Variable != nil && *s.Variable {
		parts = append(parts, "variable-length")
	}
	if s.Size != 0 {
		parts = append(parts, fmt.Sprintf("%d-byte", s.Size))
	}
	if s.Signed != nil {
		if *s.Signed {
			parts = append(parts, "signed")
		} else {
			parts = append(parts, "unsigned")
		}
	}
	switch s.Order {
	case tree.OrderLittleEndian:
		parts = append(parts, "little-endian")
	case tree.OrderBigEndian:
		parts = append(parts, "big-endian")
	}
	if s.Charset != "" {
		parts = append(parts, string(s.Charset))
	}
	parts = append(parts, string(s.Class))
	out := strings.Join(parts, " ")
	if s.ExponentBits != 0 || s.MantissaBits != 0 {
		out += fmt.Sprintf(" (%d exponent / %d mantissa bits)", s.ExponentBits, s.MantissaBits)
	}
	return out
}

// matches reports whether a dataspace satisfies the rule.
func (s *DataspaceSpec) matches(ds tree.Dataspace) bool {
	switch d := ds.(type) {
	case tree.ScalarSpace:
		return s.Scalar
	case tree.SimpleSpace:
		return !s.Scalar && (s.Rank == 0 || d.Rank() == s.Rank)
	default:
		return false
	}
}

func (s *DataspaceSpec) describe() string {
	if s.Scalar {
		return "scalar"
	}
	if s.Rank > 0 {
		return fmt.Sprintf("simple rank %d", s.Rank)
	}
	return "simple"
}
