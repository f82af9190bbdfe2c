package rules

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

const wfName = "IU.ANMO..BHZ__2020-01-01T00:00:00__2020-01-01T01:00:00__raw"

func makeRoot(children ...*tree.Node) *tree.Node {
	return tree.NewRoot(nil, children)
}

func makeStation(name string, children ...*tree.Node) *tree.Node {
	return tree.NewGroup(name, nil, children)
}

func makeWaveform(name string, npts uint64, attrs ...tree.Attribute) *tree.Node {
	return tree.NewDataset(name, attrs,
		tree.IntegerType{Size: 4, Signed: true, Order: tree.OrderLittleEndian},
		tree.SimpleSpace{Dims: []tree.Dim{{Size: npts, Max: npts}}})
}

func makeByteDataset(name string, size uint64) *tree.Node {
	return tree.NewDataset(name, nil,
		tree.IntegerType{Size: 1, Signed: true, Order: tree.OrderLittleEndian},
		tree.SimpleSpace{Dims: []tree.Dim{{Size: size, Max: size}}})
}

func starttimeNs(ns int64) tree.Attribute {
	return tree.Attribute{
		Name:      "starttime",
		Datatype:  tree.IntegerType{Size: 8, Signed: true, Order: tree.OrderLittleEndian},
		Dataspace: tree.ScalarSpace{},
		Value:     tree.Int(ns),
	}
}

func samplingRate(hz float64) tree.Attribute {
	return tree.Attribute{
		Name:      "sampling_rate",
		Datatype:  tree.FloatType{Size: 8, Order: tree.OrderLittleEndian},
		Dataspace: tree.ScalarSpace{},
		Value:     tree.Float(hz),
	}
}

func stringAttr(name, value string) tree.Attribute {
	return tree.Attribute{
		Name:      name,
		Datatype:  tree.StringType{Variable: true, Cset: tree.CharsetASCII},
		Dataspace: tree.ScalarSpace{},
		Value:     tree.Str(value),
	}
}

func emptyContainer() hdf5.Container {
	return hdf5.NewMem(&hdf5.Object{Kind: hdf5.ObjectGroup, Name: "/"})
}

func TestEngineAccumulatesInOrder(t *testing.T) {
	root := makeRoot(
		tree.NewGroup("Waveforms", nil, []*tree.Node{
			makeStation("IU.ANMO", makeWaveform("NE.ANMO..BHZ__2020-01-01T00:00:00__2020-01-01T01:00:00__raw", 100)),
		}),
		tree.NewGroup("AuxiliaryData", nil, []*tree.Node{
			tree.NewGroup("cross_correlations", nil, nil),
		}),
	)

	engine := NewEngine(Default()...)
	violations, err := engine.Apply(context.Background(), root, emptyContainer())
	if err != nil {
		t.Fatalf("engine failed: %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("expected two violations, got %d:\n%v", len(violations), violations)
	}
	if violations[0].Rule != RuleStationAffiliation {
		t.Errorf("expected the station rule first, got %s", violations[0].Rule)
	}
	if violations[1].Rule != RuleAuxiliaryTypeName {
		t.Errorf("expected the auxiliary rule second, got %s", violations[1].Rule)
	}
}

func TestEngineEmptyTree(t *testing.T) {
	engine := NewEngine(Default()...)
	violations, err := engine.Apply(context.Background(), makeRoot(), emptyContainer())
	if err != nil {
		t.Fatalf("engine failed: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestEngineContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(Default()...)
	_, err := engine.Apply(ctx, makeRoot(), emptyContainer())
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEngineRuleError(t *testing.T) {
	// A payload the container cannot serve aborts the run.
	root := makeRoot(makeByteDataset("QuakeML", 64))

	engine := NewEngine(&XMLDocumentsRule{})
	_, err := engine.Apply(context.Background(), root, emptyContainer())
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeIntrospection {
		t.Errorf("unexpected error code: %s", code)
	}
	if !strings.Contains(err.Error(), "xml-documents") {
		t.Errorf("error does not name the rule: %v", err)
	}
}

func TestStationAffiliation(t *testing.T) {
	misfiled := "NE.ANMO..BHZ__2020-01-01T00:00:00__2020-01-01T01:00:00__raw"
	root := makeRoot(tree.NewGroup("Waveforms", nil, []*tree.Node{
		makeStation("IU.ANMO",
			makeByteDataset("StationXML", 100),
			makeWaveform(wfName, 100),
			makeWaveform(misfiled, 100)),
	}))

	rule := &StationAffiliationRule{}
	violations, err := rule.Apply(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("rule failed: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected exactly one violation, got %d:\n%v", len(violations), violations)
	}

	v := violations[0]
	if v.Class != report.ClassSemantic {
		t.Errorf("unexpected class: %s", v.Class)
	}
	if v.Path != "/Waveforms/IU.ANMO/"+misfiled {
		t.Errorf("unexpected path: %s", v.Path)
	}
	if v.Expected != "IU.ANMO" || v.Actual != "NE.ANMO" {
		t.Errorf("violation does not name both codes: expected=%q actual=%q", v.Expected, v.Actual)
	}
	if !strings.Contains(v.Message, "IU.ANMO") || !strings.Contains(v.Message, "NE.ANMO") {
		t.Errorf("message does not name both codes: %q", v.Message)
	}
}

func TestStationCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{wfName, "IU.ANMO"},
		{"NE.STA01.00.HHZ__a__b__tag", "NE.STA01"},
		{"AB.CD", "AB.CD"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := stationCode(tt.name); got != tt.want {
			t.Errorf("stationCode(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAuxiliaryNaming(t *testing.T) {
	root := makeRoot(tree.NewGroup("AuxiliaryData", nil, []*tree.Node{
		tree.NewGroup("CrossCorrelations", nil, []*tree.Node{
			makeByteDataset("ANMO_COLA", 10),
			makeByteDataset("bad name!", 10),
		}),
		tree.NewGroup("cross_correlations", nil, []*tree.Node{
			makeByteDataset("ok_entry", 10),
		}),
	}))

	rule := &AuxiliaryNamingRule{}
	violations, err := rule.Apply(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("rule failed: %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("expected two violations, got %d:\n%v", len(violations), violations)
	}

	byRule := make(map[string]report.Violation)
	for _, v := range violations {
		byRule[v.Rule] = v
	}
	if v, ok := byRule[RuleAuxiliaryEntryName]; !ok || v.Path != "/AuxiliaryData/CrossCorrelations/bad name!" {
		t.Errorf("unexpected entry violation: %+v", v)
	}
	if v, ok := byRule[RuleAuxiliaryTypeName]; !ok || v.Actual != "cross_correlations" {
		t.Errorf("unexpected type violation: %+v", v)
	}
}

func TestAuxiliaryNamingAbsent(t *testing.T) {
	rule := &AuxiliaryNamingRule{}
	violations, err := rule.Apply(context.Background(), makeRoot(), nil)
	if err != nil {
		t.Fatalf("rule failed: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestProvenanceReferences(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []tree.Attribute
		violations int
	}{
		{
			name:  "valid reference",
			attrs: []tree.Attribute{stringAttr("provenance_id", "{http://seisprov.org/seis_prov/0.1/#}sp001_wf_f87a")},
		},
		{
			name:       "not a reference",
			attrs:      []tree.Attribute{stringAttr("provenance_id", "hello")},
			violations: 1,
		},
		{
			name:       "uppercase scheme",
			attrs:      []tree.Attribute{stringAttr("provenance_id", "{Http://seisprov.org/ns}sp001")},
			violations: 1,
		},
		{
			name:       "missing local id",
			attrs:      []tree.Attribute{stringAttr("provenance_id", "{http://seisprov.org/ns}")},
			violations: 1,
		},
		{
			name: "absent attribute",
		},
		{
			name: "undecoded value",
			attrs: []tree.Attribute{{
				Name:      "provenance_id",
				Datatype:  tree.StringType{Variable: true, Cset: tree.CharsetASCII},
				Dataspace: tree.ScalarSpace{},
				Value:     tree.Null(),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := makeRoot(tree.NewGroup("Waveforms", nil, []*tree.Node{
				makeStation("IU.ANMO", makeWaveform(wfName, 100, tt.attrs...)),
			}))

			rule := &ProvenanceReferencesRule{}
			violations, err := rule.Apply(context.Background(), root, nil)
			if err != nil {
				t.Fatalf("rule failed: %v", err)
			}
			if len(violations) != tt.violations {
				t.Fatalf("expected %d violations, got %d:\n%v", tt.violations, len(violations), violations)
			}
			if tt.violations == 1 {
				v := violations[0]
				if v.Rule != RuleProvenanceID {
					t.Errorf("unexpected rule: %s", v.Rule)
				}
				if !strings.Contains(v.Message, wfName) {
					t.Errorf("message does not name the waveform: %q", v.Message)
				}
			}
		})
	}
}
