package rules

import (
	"context"
	"fmt"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/metaschema"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// XMLDocumentsRule reads the conventional XML payloads of a container and
// checks them: /QuakeML as a QuakeML 1.2 catalog, station inventories as
// FDSN StationXML, and provenance records for well-formedness only. A
// payload that is not well-formed XML yields exactly one violation; the
// document checks run only on well-formed payloads.
type XMLDocumentsRule struct{}

func (r *XMLDocumentsRule) Name() string { return "xml-documents" }

func (r *XMLDocumentsRule) Apply(ctx context.Context, root *tree.Node, c hdf5.Container) ([]report.Violation, error) {
	var out []report.Violation

	if quakeml, ok := root.Child("QuakeML"); ok && quakeml.IsDataset() {
		vs, err := checkPayload(ctx, c, quakeml, metaschema.CheckQuakeML)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}

	if waveforms, ok := root.Child("Waveforms"); ok && waveforms.IsGroup() {
		for _, station := range waveforms.Children() {
			if !station.IsGroup() {
				continue
			}
			inventory, ok := station.Child("StationXML")
			if !ok || !inventory.IsDataset() {
				continue
			}
			vs, err := checkPayload(ctx, c, inventory, metaschema.CheckStationXML)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
	}

	if provenance, ok := root.Child("Provenance"); ok && provenance.IsGroup() {
		for _, doc := range provenance.Children() {
			if !doc.IsDataset() {
				continue
			}
			vs, err := checkPayload(ctx, c, doc, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
	}
	return out, nil
}

// checkPayload reads one dataset and checks well-formedness, then runs the
// document check when one applies.
func checkPayload(ctx context.Context, c hdf5.Container, ds *tree.Node, check func([]byte) []metaschema.Issue) ([]report.Violation, error) {
	data, err := c.ReadBytes(ctx, ds.Path())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIntrospection,
			fmt.Sprintf("reading payload of %s", ds.Path()), err)
	}

	if err := metaschema.CheckWellformed(data); err != nil {
		return []report.Violation{{
			Class:   report.ClassSemantic,
			Path:    ds.Path(),
			Rule:    RuleXMLWellformed,
			Message: fmt.Sprintf("%s is not well-formed XML: %v", ds.Path(), err),
		}}, nil
	}
	if check == nil {
		return nil, nil
	}

	var out []report.Violation
	for _, issue := range check(data) {
		out = append(out, report.Violation{
			Class:   report.ClassSemantic,
			Path:    ds.Path(),
			Rule:    RuleXMLDocument,
			Message: fmt.Sprintf("%s: %s", ds.Path(), issue.Message),
		})
	}
	return out, nil
}
