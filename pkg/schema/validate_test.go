package schema

import (
	"strings"
	"testing"

	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

func mustGet(t *testing.T, formatVersion string) *Schema {
	t.Helper()
	s, err := Get(formatVersion)
	if err != nil {
		t.Fatalf("failed to load schema %s: %v", formatVersion, err)
	}
	return s
}

func stringScalarAttr(name, value string) tree.Attribute {
	return tree.Attribute{
		Name:      name,
		Datatype:  tree.StringType{Size: len(value), Cset: tree.CharsetASCII, Pad: tree.PadNullTerm},
		Dataspace: tree.ScalarSpace{},
		Value:     tree.Str(value),
	}
}

func starttimeAttr() tree.Attribute {
	return tree.Attribute{
		Name:      "starttime",
		Datatype:  tree.IntegerType{Size: 8, Signed: true, Order: tree.OrderLittleEndian},
		Dataspace: tree.ScalarSpace{},
		Value:     tree.Int(1577836800000000000),
	}
}

func samplingRateAttr() tree.Attribute {
	return tree.Attribute{
		Name:      "sampling_rate",
		Datatype:  tree.FloatType{Size: 8, Order: tree.OrderLittleEndian},
		Dataspace: tree.ScalarSpace{},
		Value:     tree.Float(40),
	}
}

func byteDataset(name string, size uint64) *tree.Node {
	return tree.NewDataset(name,
		nil,
		tree.IntegerType{Size: 1, Signed: true, Order: tree.OrderLittleEndian},
		tree.SimpleSpace{Dims: []tree.Dim{{Size: size, Max: size}}})
}

func waveformDataset(name string, attrs ...tree.Attribute) *tree.Node {
	return tree.NewDataset(name,
		attrs,
		tree.IntegerType{Size: 4, Signed: true, Order: tree.OrderLittleEndian},
		tree.SimpleSpace{Dims: []tree.Dim{{Size: 144000, Max: 144000}}})
}

const waveformName = "IU.ANMO..BHZ__2020-01-01T00:00:00__2020-01-01T01:00:00__raw"

// validTree builds a container tree that satisfies the 0.0.2 schema.
func validTree() *tree.Node {
	station := tree.NewGroup("IU.ANMO", nil, []*tree.Node{
		byteDataset("StationXML", 4217),
		waveformDataset(waveformName, starttimeAttr(), samplingRateAttr(),
			stringScalarAttr("provenance_id", "{seis_prov://sp001}processed")),
	})

	return tree.NewRoot(
		[]tree.Attribute{
			stringScalarAttr("file_format", "ASDF"),
			stringScalarAttr("file_format_version", "0.0.2"),
		},
		[]*tree.Node{
			byteDataset("QuakeML", 8192),
			tree.NewGroup("Waveforms", nil, []*tree.Node{station}),
			tree.NewGroup("Provenance", nil, []*tree.Node{byteDataset("prov_doc_0", 2048)}),
			tree.NewGroup("AuxiliaryData", nil, []*tree.Node{
				tree.NewGroup("CrossCorrelations", nil, []*tree.Node{byteDataset("ANMO_COLA", 512)}),
			}),
		})
}

func TestValidateCleanTree(t *testing.T) {
	s := mustGet(t, "0.0.2")
	violations := s.Validate(validTree())
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %d:\n%v", len(violations), violations)
	}
}

func TestValidateMinimalTree(t *testing.T) {
	// Only the root attributes are required; every group is optional.
	root := tree.NewRoot([]tree.Attribute{
		stringScalarAttr("file_format", "ASDF"),
		stringScalarAttr("file_format_version", "0.0.2"),
	}, nil)

	s := mustGet(t, "0.0.2")
	if violations := s.Validate(root); len(violations) != 0 {
		t.Fatalf("expected no violations for minimal tree, got %v", violations)
	}
}

func TestValidateStarttimeStoredAsFloat(t *testing.T) {
	badStarttime := tree.Attribute{
		Name:      "starttime",
		Datatype:  tree.FloatType{Size: 4, Order: tree.OrderLittleEndian},
		Dataspace: tree.ScalarSpace{},
		Value:     tree.Float(1577836800),
	}
	station := tree.NewGroup("IU.ANMO", nil, []*tree.Node{
		waveformDataset(waveformName, badStarttime, samplingRateAttr()),
	})
	root := tree.NewRoot(
		[]tree.Attribute{
			stringScalarAttr("file_format", "ASDF"),
			stringScalarAttr("file_format_version", "0.0.2"),
		},
		[]*tree.Node{tree.NewGroup("Waveforms", nil, []*tree.Node{station})})

	violations := mustGet(t, "0.0.2").Validate(root)
	if len(violations) != 1 {
		t.Fatalf("expected exactly one violation, got %d:\n%v", len(violations), violations)
	}

	v := violations[0]
	if v.Rule != RuleAttributeDatatype {
		t.Errorf("unexpected rule: %s", v.Rule)
	}
	if v.Expected != "8-byte signed little-endian integer" {
		t.Errorf("unexpected expected text: %q", v.Expected)
	}
	if v.Actual != "4-byte little-endian float" {
		t.Errorf("unexpected actual text: %q", v.Actual)
	}
	if !strings.Contains(v.Message, "starttime") {
		t.Errorf("message does not name the attribute: %q", v.Message)
	}
}

func TestValidateSingleDefects(t *testing.T) {
	tests := []struct {
		name string
		tree func() *tree.Node
		rule string
		path string
	}{
		{
			name: "missing starttime",
			tree: func() *tree.Node {
				station := tree.NewGroup("IU.ANMO", nil, []*tree.Node{
					waveformDataset(waveformName, samplingRateAttr()),
				})
				return rootWith(tree.NewGroup("Waveforms", nil, []*tree.Node{station}))
			},
			rule: RuleRequiredAttribute,
			path: "/Waveforms/IU.ANMO/" + waveformName,
		},
		{
			name: "starttime not scalar",
			tree: func() *tree.Node {
				arrayStart := tree.Attribute{
					Name:      "starttime",
					Datatype:  tree.IntegerType{Size: 8, Signed: true, Order: tree.OrderLittleEndian},
					Dataspace: tree.SimpleSpace{Dims: []tree.Dim{{Size: 1, Max: 1}}},
					Value:     tree.Null(),
				}
				station := tree.NewGroup("IU.ANMO", nil, []*tree.Node{
					waveformDataset(waveformName, arrayStart, samplingRateAttr()),
				})
				return rootWith(tree.NewGroup("Waveforms", nil, []*tree.Node{station}))
			},
			rule: RuleAttributeDataspace,
			path: "/Waveforms/IU.ANMO/" + waveformName,
		},
		{
			name: "unexpected root child",
			tree: func() *tree.Node {
				return rootWith(byteDataset("Junk", 16))
			},
			rule: RuleUnexpectedChild,
			path: "/Junk",
		},
		{
			name: "quakeml as group",
			tree: func() *tree.Node {
				return rootWith(tree.NewGroup("QuakeML", nil, nil))
			},
			rule: RuleNodeKind,
			path: "/QuakeML",
		},
		{
			name: "quakeml wrong element type",
			tree: func() *tree.Node {
				return rootWith(tree.NewDataset("QuakeML", nil,
					tree.FloatType{Size: 4, Order: tree.OrderLittleEndian},
					tree.SimpleSpace{Dims: []tree.Dim{{Size: 100, Max: 100}}}))
			},
			rule: RuleDatasetDatatype,
			path: "/QuakeML",
		},
		{
			name: "quakeml scalar dataspace",
			tree: func() *tree.Node {
				return rootWith(tree.NewDataset("QuakeML", nil,
					tree.IntegerType{Size: 1, Signed: true, Order: tree.OrderLittleEndian},
					tree.ScalarSpace{}))
			},
			rule: RuleDatasetDataspace,
			path: "/QuakeML",
		},
		{
			name: "misnamed waveform dataset",
			tree: func() *tree.Node {
				station := tree.NewGroup("IU.ANMO", nil, []*tree.Node{
					waveformDataset("not_a_waveform_name", starttimeAttr(), samplingRateAttr()),
				})
				return rootWith(tree.NewGroup("Waveforms", nil, []*tree.Node{station}))
			},
			rule: RuleUnexpectedChild,
			path: "/Waveforms/IU.ANMO/not_a_waveform_name",
		},
		{
			name: "misnamed station group",
			tree: func() *tree.Node {
				station := tree.NewGroup("anmo", nil, []*tree.Node{
					waveformDataset(waveformName, starttimeAttr(), samplingRateAttr()),
				})
				return rootWith(tree.NewGroup("Waveforms", nil, []*tree.Node{station}))
			},
			rule: RuleUnexpectedChild,
			path: "/Waveforms/anmo",
		},
		{
			name: "misnamed provenance dataset",
			tree: func() *tree.Node {
				return rootWith(tree.NewGroup("Provenance", nil, []*tree.Node{
					byteDataset("no spaces allowed", 64),
				}))
			},
			rule: RuleUnexpectedChild,
			path: "/Provenance/no spaces allowed",
		},
	}

	s := mustGet(t, "0.0.2")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := s.Validate(tt.tree())
			if len(violations) != 1 {
				t.Fatalf("expected exactly one violation, got %d:\n%v", len(violations), violations)
			}
			v := violations[0]
			if v.Rule != tt.rule {
				t.Errorf("expected rule %s, got %s", tt.rule, v.Rule)
			}
			if v.Path != tt.path {
				t.Errorf("expected path %s, got %s", tt.path, v.Path)
			}
			if v.Class != report.ClassStructural {
				t.Errorf("expected structural class, got %s", v.Class)
			}
		})
	}
}

// rootWith builds a root with valid identifying attributes and the given
// extra children.
func rootWith(children ...*tree.Node) *tree.Node {
	return tree.NewRoot(
		[]tree.Attribute{
			stringScalarAttr("file_format", "ASDF"),
			stringScalarAttr("file_format_version", "0.0.2"),
		}, children)
}

func TestValidateMissingRootAttributes(t *testing.T) {
	root := tree.NewRoot(nil, nil)
	violations := mustGet(t, "0.0.2").Validate(root)

	if len(violations) != 2 {
		t.Fatalf("expected two violations, got %d:\n%v", len(violations), violations)
	}
	for _, v := range violations {
		if v.Rule != RuleRequiredAttribute {
			t.Errorf("unexpected rule: %s", v.Rule)
		}
		if v.Path != "/" {
			t.Errorf("unexpected path: %s", v.Path)
		}
	}
}

func TestValidateAccumulatesAllViolations(t *testing.T) {
	// Three independent defects must yield three violations in one pass.
	station := tree.NewGroup("IU.ANMO", nil, []*tree.Node{
		waveformDataset(waveformName, samplingRateAttr()), // missing starttime
	})
	root := tree.NewRoot(
		[]tree.Attribute{
			stringScalarAttr("file_format", "ASDF"),
			stringScalarAttr("file_format_version", "0.0.2"),
		},
		[]*tree.Node{
			byteDataset("Junk", 16), // not permitted
			tree.NewGroup("QuakeML", nil, nil), // wrong kind
			tree.NewGroup("Waveforms", nil, []*tree.Node{station}),
		})

	violations := mustGet(t, "0.0.2").Validate(root)
	if len(violations) != 3 {
		t.Fatalf("expected three violations, got %d:\n%v", len(violations), violations)
	}

	rules := make(map[string]int)
	for _, v := range violations {
		rules[v.Rule]++
	}
	if rules[RuleUnexpectedChild] != 1 || rules[RuleNodeKind] != 1 || rules[RuleRequiredAttribute] != 1 {
		t.Errorf("unexpected rule distribution: %v", rules)
	}
}

func TestValidateDeterministic(t *testing.T) {
	s := mustGet(t, "0.0.2")
	build := func() *tree.Node {
		station := tree.NewGroup("IU.ANMO", nil, []*tree.Node{
			waveformDataset(waveformName, samplingRateAttr()),
		})
		return rootWith(
			byteDataset("Junk", 16),
			tree.NewGroup("Waveforms", nil, []*tree.Node{station}),
		)
	}

	first := s.Validate(build())
	for n := 0; n < 5; n++ {
		again := s.Validate(build())
		if len(again) != len(first) {
			t.Fatalf("violation count changed between runs: %d vs %d", len(first), len(again))
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("violation %d changed between runs:\n%v\n%v", i, first[i], again[i])
			}
		}
	}
}
