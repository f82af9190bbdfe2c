package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// StationAffiliationRule checks that every waveform dataset belongs to the
// station group holding it: the NET.STA prefix of the dataset name must
// equal the group name.
type StationAffiliationRule struct{}

func (r *StationAffiliationRule) Name() string { return RuleStationAffiliation }

func (r *StationAffiliationRule) Apply(_ context.Context, root *tree.Node, _ hdf5.Container) ([]report.Violation, error) {
	var out []report.Violation
	eachWaveform(root, func(station, ds *tree.Node) {
		code := stationCode(ds.Name())
		if code == station.Name() {
			return
		}
		out = append(out, report.Violation{
			Class:    report.ClassSemantic,
			Path:     ds.Path(),
			Rule:     RuleStationAffiliation,
			Message:  fmt.Sprintf("station group %s contains waveform %q from station %s", station.Name(), ds.Name(), code),
			Expected: station.Name(),
			Actual:   code,
		})
	})
	return out, nil
}

// stationCode extracts the NET.STA prefix of a waveform dataset name.
func stationCode(name string) string {
	parts := strings.SplitN(name, ".", 3)
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}
