package rules

import (
	"context"
	"fmt"
	"regexp"

	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

var (
	auxTypeRE  = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	auxEntryRE = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_]*$`)
)

// AuxiliaryNamingRule checks the naming convention of the two levels under
// /AuxiliaryData: data types (CrossCorrelations, Headers, ...) and the
// entries inside them. The layout below the entries is free.
type AuxiliaryNamingRule struct{}

func (r *AuxiliaryNamingRule) Name() string { return "auxiliary-naming" }

func (r *AuxiliaryNamingRule) Apply(_ context.Context, root *tree.Node, _ hdf5.Container) ([]report.Violation, error) {
	aux, ok := root.Child("AuxiliaryData")
	if !ok || !aux.IsGroup() {
		return nil, nil
	}

	var out []report.Violation
	for _, dataType := range aux.Children() {
		if !auxTypeRE.MatchString(dataType.Name()) {
			out = append(out, report.Violation{
				Class:    report.ClassSemantic,
				Path:     dataType.Path(),
				Rule:     RuleAuxiliaryTypeName,
				Message:  fmt.Sprintf("auxiliary data type %q must start with a capital letter and contain only letters and digits", dataType.Name()),
				Expected: auxTypeRE.String(),
				Actual:   dataType.Name(),
			})
		}
		if !dataType.IsGroup() {
			continue
		}
		for _, entry := range dataType.Children() {
			if auxEntryRE.MatchString(entry.Name()) {
				continue
			}
			out = append(out, report.Violation{
				Class:    report.ClassSemantic,
				Path:     entry.Path(),
				Rule:     RuleAuxiliaryEntryName,
				Message:  fmt.Sprintf("auxiliary data entry %q must contain only letters, digits, and underscores", entry.Name()),
				Expected: auxEntryRE.String(),
				Actual:   entry.Name(),
			})
		}
	}
	return out, nil
}
