package rules

import (
	"context"
	"fmt"
	"regexp"

	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// provenanceIDRE is the {namespace-uri}local-id form of a provenance
// reference, e.g. "{seis_prov://sp001_wf_f87a}processing".
var provenanceIDRE = regexp.MustCompile(`^\{[a-z]+://[a-z./_0-9A-Z?#&$-.+!*'(),]+\}\w+$`)

// ProvenanceReferencesRule checks the provenance_id attribute of waveform
// datasets. The attribute is optional; only waveforms that carry a decoded
// string value are checked.
type ProvenanceReferencesRule struct{}

func (r *ProvenanceReferencesRule) Name() string { return "provenance-references" }

func (r *ProvenanceReferencesRule) Apply(_ context.Context, root *tree.Node, _ hdf5.Container) ([]report.Violation, error) {
	var out []report.Violation
	eachWaveform(root, func(_, ds *tree.Node) {
		attr, ok := ds.Attribute("provenance_id")
		if !ok {
			return
		}
		value, ok := tree.StringOf(attr.Value)
		if !ok {
			return
		}
		if provenanceIDRE.MatchString(value) {
			return
		}
		out = append(out, report.Violation{
			Class:    report.ClassSemantic,
			Path:     ds.Path(),
			Rule:     RuleProvenanceID,
			Message:  fmt.Sprintf("waveform %q has provenance id %q which is not in {namespace-uri}local-id form", ds.Name(), value),
			Expected: provenanceIDRE.String(),
			Actual:   value,
		})
	})
	return out, nil
}
