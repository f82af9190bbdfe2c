package rules

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// waveformTimeLayout is the UTC timestamp form used inside waveform
// dataset names.
const waveformTimeLayout = "2006-01-02T15:04:05"

// timeTolerance is the allowed disagreement, in seconds, between a time
// named in a waveform dataset and the time its metadata stores.
const timeTolerance = 1.0

// TimeConsistencyRule recomputes a waveform's start and end times from its
// stored metadata and compares them against the times encoded in the
// dataset name. Start comes from the starttime attribute (nanoseconds
// since epoch); end is start plus (npts-1)/sampling_rate. The rule stays
// silent when the name does not parse or the metadata is unusable, since
// the structural layer already reports those defects.
type TimeConsistencyRule struct{}

func (r *TimeConsistencyRule) Name() string { return RuleTimeConsistency }

func (r *TimeConsistencyRule) Apply(_ context.Context, root *tree.Node, _ hdf5.Container) ([]report.Violation, error) {
	var out []report.Violation
	eachWaveform(root, func(_, ds *tree.Node) {
		out = append(out, checkTimes(ds)...)
	})
	return out, nil
}

func checkTimes(ds *tree.Node) []report.Violation {
	namedStart, namedEnd, ok := parseNameTimes(ds.Name())
	if !ok {
		return nil
	}
	start, ok := numericAttr(ds, "starttime")
	if !ok {
		return nil
	}
	start /= 1e9
	rate, ok := numericAttr(ds, "sampling_rate")
	if !ok {
		return nil
	}
	npts, ok := firstDim(ds)
	if !ok {
		return nil
	}

	var out []report.Violation
	if diff := math.Abs(namedStart - start); diff > timeTolerance {
		out = append(out, report.Violation{
			Class:    report.ClassSemantic,
			Path:     ds.Path(),
			Rule:     RuleTimeConsistency,
			Message:  fmt.Sprintf("start time in the name of waveform %q differs from the stored start time by %.1f s", ds.Name(), diff),
			Expected: formatEpoch(namedStart),
			Actual:   formatEpoch(start),
		})
	}
	// A non-positive sampling rate leaves the end time undefined.
	if rate > 0 {
		end := start + float64(npts-1)/rate
		if diff := math.Abs(namedEnd - end); diff > timeTolerance {
			out = append(out, report.Violation{
				Class:    report.ClassSemantic,
				Path:     ds.Path(),
				Rule:     RuleTimeConsistency,
				Message:  fmt.Sprintf("end time in the name of waveform %q differs from the stored end time by %.1f s", ds.Name(), diff),
				Expected: formatEpoch(namedEnd),
				Actual:   formatEpoch(end),
			})
		}
	}
	return out
}

// parseNameTimes extracts the START and END segments of a waveform
// dataset name as seconds since epoch.
func parseNameTimes(name string) (start, end float64, ok bool) {
	parts := strings.Split(name, "__")
	if len(parts) < 3 {
		return 0, 0, false
	}
	st, err := time.ParseInLocation(waveformTimeLayout, parts[1], time.UTC)
	if err != nil {
		return 0, 0, false
	}
	et, err := time.ParseInLocation(waveformTimeLayout, parts[2], time.UTC)
	if err != nil {
		return 0, 0, false
	}
	return float64(st.Unix()), float64(et.Unix()), true
}

// numericAttr returns an attribute's value as a float when the canonical
// tree holds a usable numeric scalar for it.
func numericAttr(ds *tree.Node, name string) (float64, bool) {
	attr, ok := ds.Attribute(name)
	if !ok {
		return 0, false
	}
	switch v := attr.Value.(type) {
	case tree.IntValue:
		return float64(v.V), true
	case tree.FloatValue:
		return v.V, true
	default:
		return 0, false
	}
}

// firstDim returns the sample count of a waveform dataset, the first
// dimension of its dataspace.
func firstDim(ds *tree.Node) (uint64, bool) {
	space, ok := ds.Dataspace().(tree.SimpleSpace)
	if !ok || len(space.Dims) == 0 {
		return 0, false
	}
	return space.Dims[0].Size, true
}

// formatEpoch renders seconds since epoch as a UTC timestamp.
func formatEpoch(sec float64) string {
	s, frac := math.Modf(sec)
	return time.Unix(int64(s), int64(frac*1e9)).UTC().Format(time.RFC3339Nano)
}
