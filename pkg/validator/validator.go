// Copyright (c) 2025, SeismicData.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seismicdata/asdf-validate/pkg/canonicalizer"
	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/hdf5"
	"github.com/seismicdata/asdf-validate/pkg/report"
	"github.com/seismicdata/asdf-validate/pkg/rules"
	"github.com/seismicdata/asdf-validate/pkg/schema"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// FileFormat is the marker every container must declare in its root
// file_format attribute.
const FileFormat = "ASDF"

// Validator runs the complete validation pipeline over one container file:
// candidate prechecks, canonicalization, the structural layer against the
// registered schema for the declared format version, and the semantic rule
// set. Violations accumulate into a report; they are never errors.
type Validator struct {
	// version is the tool version stamped into report envelopes.
	version string

	// introspector opens candidate containers.
	introspector hdf5.Introspector

	// engine holds the semantic rules applied after the structural layer.
	engine *rules.Engine

	// parallel runs the structural and semantic layers concurrently.
	parallel bool
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the tool version stamped into
// report envelopes.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.version = version
	}
}

// WithIntrospector returns an Option that replaces the default h5dump
// backed introspector.
func WithIntrospector(in hdf5.Introspector) Option {
	return func(v *Validator) {
		if in != nil {
			v.introspector = in
		}
	}
}

// WithRules returns an Option that replaces the default semantic rule set.
func WithRules(rs ...rules.Rule) Option {
	return func(v *Validator) {
		v.engine = rules.NewEngine(rs...)
	}
}

// WithParallel returns an Option that controls whether the structural and
// semantic layers run concurrently. They do by default.
func WithParallel(parallel bool) Option {
	return func(v *Validator) {
		v.parallel = parallel
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		version:      "dev",
		introspector: hdf5.NewH5Dump(),
		engine:       rules.NewEngine(rules.Default()...),
		parallel:     true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every layer against the file at path and returns the full
// report. A non-nil error means no verdict could be produced at all; a
// file that merely fails checks yields a nil error and an invalid report.
func (v *Validator) Validate(ctx context.Context, path string) (*report.Report, error) {
	start := time.Now()

	rep, err := v.run(ctx, path)
	if err != nil {
		validationFailures.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		return nil, err
	}

	rep.Summary.Duration = time.Since(start)
	observeOutcome(rep)

	slog.Debug("validation completed",
		"file", path,
		"formatVersion", rep.FormatVersion,
		"structural", rep.Summary.Structural,
		"semantic", rep.Summary.Semantic,
		"status", rep.Summary.Status,
		"duration", rep.Summary.Duration)
	return rep, nil
}

// Inspect opens the container at path and returns its canonical tree without
// running any validation layer. Candidate and format prechecks still apply,
// but the declared format version is not resolved against the schema
// registry, so trees of unreleased versions can be dumped while their
// schema documents are being written.
func (v *Validator) Inspect(ctx context.Context, path string) (*tree.Node, error) {
	if err := checkCandidate(path); err != nil {
		return nil, err
	}

	c, err := v.introspector.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			slog.Warn("closing container", "file", path, "error", cerr)
		}
	}()

	if _, err := checkFormat(ctx, c); err != nil {
		return nil, err
	}
	return canonicalizer.Canonicalize(ctx, c)
}

func (v *Validator) run(ctx context.Context, path string) (*report.Report, error) {
	if err := checkCandidate(path); err != nil {
		return nil, err
	}

	c, err := v.introspector.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			slog.Warn("closing container", "file", path, "error", cerr)
		}
	}()

	rep := report.New(path, v.version)

	formatVersion, err := checkFormat(ctx, c)
	if err != nil {
		return nil, err
	}
	rep.FormatVersion = formatVersion

	s, err := schema.Get(formatVersion)
	if err != nil {
		return nil, err
	}

	root, err := canonicalizer.Canonicalize(ctx, c)
	if err != nil {
		return nil, err
	}
	warnAbsentSections(path, root)

	structural, semantic, err := v.runLayers(ctx, s, root, c)
	if err != nil {
		return nil, err
	}
	rep.SetViolations(structural, semantic)
	return rep, nil
}

// checkCandidate rejects paths that cannot possibly hold a container: the
// path must name an existing regular file carrying the HDF5 signature.
func checkCandidate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound,
			fmt.Sprintf("file %s", path), err)
	}
	if !info.Mode().IsRegular() {
		return apperrors.NewWithContext(apperrors.ErrCodeFileNotFound,
			"not a regular file", map[string]any{"file": path})
	}

	ok, err := hdf5.Sniff(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIntrospection,
			fmt.Sprintf("reading signature of %s", path), err)
	}
	if !ok {
		return apperrors.NewWithContext(apperrors.ErrCodeNotContainer,
			"file carries no HDF5 signature", map[string]any{"file": path})
	}
	return nil
}

// checkFormat verifies the root format attributes and returns the declared
// format version. The version is returned even though it may be unknown to
// the registry; resolving it is the caller's next step.
func checkFormat(ctx context.Context, c hdf5.Container) (string, error) {
	root := c.Root()
	if root == nil {
		return "", apperrors.New(apperrors.ErrCodeIntrospection,
			"container has no root object")
	}

	format, err := rootStringAttribute(ctx, c, root, "file_format", apperrors.ErrCodeMissingFormat)
	if err != nil {
		return "", err
	}
	if format != FileFormat {
		return "", apperrors.NewWithContext(apperrors.ErrCodeMissingFormat,
			fmt.Sprintf("file_format attribute is %q, want %q", format, FileFormat),
			map[string]any{"fileFormat": format})
	}

	return rootStringAttribute(ctx, c, root, "file_format_version", apperrors.ErrCodeMissingVersion)
}

// rootStringAttribute resolves one root attribute to its decoded string
// value, reporting every failure mode under the caller's error code.
func rootStringAttribute(ctx context.Context, c hdf5.Container, root *hdf5.Object, name string, code apperrors.ErrorCode) (string, error) {
	if _, ok := root.Attribute(name); !ok {
		return "", apperrors.New(code,
			fmt.Sprintf("container root carries no %s attribute", name))
	}
	raw, err := c.ReadAttribute(ctx, "/", name)
	if err != nil {
		return "", apperrors.Wrap(code,
			fmt.Sprintf("reading the %s attribute", name), err)
	}
	s, err := canonicalizer.DecodeString(raw)
	if err != nil {
		return "", apperrors.Wrap(code,
			fmt.Sprintf("%s attribute is not a readable string", name), err)
	}
	return s, nil
}

// warnAbsentSections logs the advisory conditions that are not violations:
// a container without event metadata or without any data sections is
// suspicious but valid.
func warnAbsentSections(path string, root *tree.Node) {
	if _, ok := root.Child("QuakeML"); !ok {
		slog.Warn("container carries no QuakeML dataset", "file", path)
	}
	for _, name := range []string{"Waveforms", "Provenance", "AuxiliaryData"} {
		if _, ok := root.Child(name); ok {
			return
		}
	}
	slog.Warn("container carries no waveform, provenance, or auxiliary data", "file", path)
}

// runLayers executes the structural and semantic layers and returns their
// violations separately so the report can keep the classes apart.
func (v *Validator) runLayers(ctx context.Context, s *schema.Schema, root *tree.Node, c hdf5.Container) (structural, semantic []report.Violation, err error) {
	if !v.parallel {
		structural = s.Validate(root)
		semantic, err = v.engine.Apply(ctx, root, c)
		return structural, semantic, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		structural = s.Validate(root)
		return nil
	})
	g.Go(func() error {
		var aerr error
		semantic, aerr = v.engine.Apply(gctx, root, c)
		return aerr
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return structural, semantic, nil
}
