// Package rules implements the semantic checks of a validation run: the
// rules that relate container nodes to each other and to the payload bytes
// behind them. The structural schema checks node shapes; the rules here
// check what the shapes mean.
package rules

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// Rule identifiers carried by semantic violations.
const (
	RuleStationAffiliation = "station-affiliation"
	RuleXMLWellformed      = "xml-wellformed"
	RuleXMLDocument        = "xml-document"
	RuleAuxiliaryTypeName  = "auxiliary-type-name"
	RuleAuxiliaryEntryName = "auxiliary-entry-name"
	RuleProvenanceID       = "provenance-id"
	RuleTimeConsistency    = "time-consistency"
)

// Rule is one semantic check. Apply walks the canonical tree and returns
// every violation it finds; it reads payload bytes through the container
// handle when the check needs them. An error means the check could not
// run, not that the container is invalid.
type Rule interface {
	// Name identifies the rule in logs and error messages.
	Name() string

	// Apply runs the check against the canonical tree.
	Apply(ctx context.Context, root *tree.Node, c hdf5.Container) ([]report.Violation, error)
}

// Default returns the conventional rule set in its canonical order.
func Default() []Rule {
	return []Rule{
		&StationAffiliationRule{},
		&XMLDocumentsRule{},
		&AuxiliaryNamingRule{},
		&ProvenanceReferencesRule{},
		&TimeConsistencyRule{},
	}
}

// Engine runs a fixed list of rules in registration order, accumulating
// every violation. It never stops at the first finding.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rules.
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Apply runs every rule against the tree and merges their violations in
// registration order.
func (e *Engine) Apply(ctx context.Context, root *tree.Node, c hdf5.Container) ([]report.Violation, error) {
	violations := []report.Violation{}
	for _, r := range e.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs, err := r.Apply(ctx, root, c)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeIntrospection,
				fmt.Sprintf("applying rule %s", r.Name()), err)
		}
		slog.Debug("applied semantic rule", "rule", r.Name(), "violations", len(vs))
		violations = append(violations, vs...)
	}
	return violations, nil
}

// eachWaveform visits every waveform dataset under /Waveforms. Station
// inventories (StationXML) are not waveforms and are skipped.
func eachWaveform(root *tree.Node, fn func(station, ds *tree.Node)) {
	waveforms, ok := root.Child("Waveforms")
	if !ok || !waveforms.IsGroup() {
		return
	}
	for _, station := range waveforms.Children() {
		if !station.IsGroup() {
			continue
		}
		for _, child := range station.Children() {
			if !child.IsDataset() || child.Name() == "StationXML" {
				continue
			}
			fn(station, child)
		}
	}
}
