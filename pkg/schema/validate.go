package schema

import (
	"fmt"

	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// Rule identifiers carried by structural violations.
const (
	RuleNodeKind           = "node-kind"
	RuleRequiredAttribute  = "required-attribute"
	RuleAttributeDatatype  = "attribute-datatype"
	RuleAttributeDataspace = "attribute-dataspace"
	RuleRequiredChild      = "required-child"
	RuleUnexpectedChild    = "unexpected-child"
	RuleDatasetDatatype    = "dataset-datatype"
	RuleDatasetDataspace   = "dataset-dataspace"
)

// Validate checks the canonical tree against the schema. Every mismatch is
// accumulated; validation never stops at the first violation. The walk uses
// an explicit stack and visits nodes in canonical order.
func (s *Schema) Validate(root *tree.Node) []report.Violation {
	type pair struct {
		node *tree.Node
		spec *NodeSpec
	}

	violations := []report.Violation{}
	stack := []pair{{root, s.Root}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.node.Kind() != p.spec.Kind {
			violations = append(violations, report.Violation{
				Class:    report.ClassStructural,
				Path:     p.node.Path(),
				Rule:     RuleNodeKind,
				Message:  fmt.Sprintf("%s must be a %s", p.node.Path(), p.spec.Kind),
				Expected: p.spec.Kind.String(),
				Actual:   p.node.Kind().String(),
			})
			// The rule's remaining constraints assume the right kind.
			continue
		}

		violations = append(violations, checkAttributes(p.node, p.spec)...)

		if p.node.IsDataset() {
			violations = append(violations, checkDescriptor(p.node, p.spec)...)
			continue
		}

		matched := make(map[string]bool, len(p.spec.Children))
		next := make([]pair, 0, len(p.node.Children()))
		for _, child := range p.node.Children() {
			name := child.Name()
			if cs := p.spec.literalChild(name); cs != nil {
				matched[name] = true
				next = append(next, pair{child, cs.Node})
				continue
			}
			if ps := p.spec.patternChild(name); ps != nil {
				next = append(next, pair{child, ps.Node})
				continue
			}
			if !p.spec.AdditionalChildren {
				violations = append(violations, report.Violation{
					Class:   report.ClassStructural,
					Path:    child.Path(),
					Rule:    RuleUnexpectedChild,
					Message: fmt.Sprintf("%s %q is not permitted under %s", child.Kind(), name, p.node.Path()),
				})
			}
			// Unmatched children have no rule to descend into.
		}

		for _, cs := range p.spec.Children {
			if cs.Required && !matched[cs.Name] {
				violations = append(violations, report.Violation{
					Class:    report.ClassStructural,
					Path:     p.node.Path(),
					Rule:     RuleRequiredChild,
					Message:  fmt.Sprintf("%s is missing required %s %q", p.node.Path(), cs.Node.Kind, cs.Name),
					Expected: cs.Name,
				})
			}
		}

		// Push in reverse so the first child is visited first.
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return violations
}

func (s *NodeSpec) literalChild(name string) *ChildSpec {
	for i := range s.Children {
		if s.Children[i].Name == name {
			return &s.Children[i]
		}
	}
	return nil
}

func (s *NodeSpec) patternChild(name string) *PatternSpec {
	for i := range s.Patterns {
		if s.Patterns[i].Pattern.MatchString(name) {
			return &s.Patterns[i]
		}
	}
	return nil
}

func checkAttributes(n *tree.Node, spec *NodeSpec) []report.Violation {
	var out []report.Violation
	for _, as := range spec.Attributes {
		attr, ok := n.Attribute(as.Name)
		if !ok {
			if as.Required {
				out = append(out, report.Violation{
					Class:    report.ClassStructural,
					Path:     n.Path(),
					Rule:     RuleRequiredAttribute,
					Message:  fmt.Sprintf("%s is missing required attribute %q", n.Path(), as.Name),
					Expected: as.Name,
				})
			}
			continue
		}
		if as.Datatype != nil && !as.Datatype.matches(attr.Datatype) {
			out = append(out, report.Violation{
				Class:    report.ClassStructural,
				Path:     n.Path(),
				Rule:     RuleAttributeDatatype,
				Message:  fmt.Sprintf("attribute %q of %s has the wrong datatype", as.Name, n.Path()),
				Expected: as.Datatype.describe(),
				Actual:   describeDatatype(attr.Datatype),
			})
		}
		if as.Dataspace != nil && !as.Dataspace.matches(attr.Dataspace) {
			out = append(out, report.Violation{
				Class:    report.ClassStructural,
				Path:     n.Path(),
				Rule:     RuleAttributeDataspace,
				Message:  fmt.Sprintf("attribute %q of %s has the wrong dataspace", as.Name, n.Path()),
				Expected: as.Dataspace.describe(),
				Actual:   describeDataspace(attr.Dataspace),
			})
		}
	}
	return out
}

func checkDescriptor(n *tree.Node, spec *NodeSpec) []report.Violation {
	var out []report.Violation
	if spec.Datatype != nil && !spec.Datatype.matches(n.Datatype()) {
		out = append(out, report.Violation{
			Class:    report.ClassStructural,
			Path:     n.Path(),
			Rule:     RuleDatasetDatatype,
			Message:  fmt.Sprintf("dataset %s has the wrong element datatype", n.Path()),
			Expected: spec.Datatype.describe(),
			Actual:   describeDatatype(n.Datatype()),
		})
	}
	if spec.Dataspace != nil && !spec.Dataspace.matches(n.Dataspace()) {
		out = append(out, report.Violation{
			Class:    report.ClassStructural,
			Path:     n.Path(),
			Rule:     RuleDatasetDataspace,
			Message:  fmt.Sprintf("dataset %s has the wrong dataspace", n.Path()),
			Expected: spec.Dataspace.describe(),
			Actual:   describeDataspace(n.Dataspace()),
		})
	}
	return out
}

func describeDatatype(dt tree.Datatype) string {
	if dt == nil {
		return "none"
	}
	return dt.String()
}

func describeDataspace(ds tree.Dataspace) string {
	if ds == nil {
		return "none"
	}
	return ds.String()
}
