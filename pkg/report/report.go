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

package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/seismicdata/asdf-validate/pkg/header"
	"github.com/seismicdata/asdf-validate/pkg/tree"
)

// ReportAPIVersion identifies the report resource schema.
const ReportAPIVersion = "asdf.seismicdata.org/v1"

// Status represents the overall validation outcome.
type Status string

const (
	// StatusValid indicates the file satisfied every check.
	StatusValid Status = "valid"

	// StatusInvalid indicates at least one violation was found.
	StatusInvalid Status = "invalid"
)

// Report is the complete outcome of validating one file.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// File is the path of the validated file as given by the caller.
	File string `json:"file" yaml:"file"`

	// FormatVersion is the format version declared by the file, when the
	// prechecks got far enough to read it.
	FormatVersion string `json:"formatVersion,omitempty" yaml:"formatVersion,omitempty"`

	// Summary contains aggregate validation statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Violations lists every violation found, structural before semantic,
	// each class in canonical traversal order.
	Violations []Violation `json:"violations" yaml:"violations"`
}

// Summary contains aggregate statistics about the validation.
type Summary struct {
	// Structural is the count of structural violations.
	Structural int `json:"structural" yaml:"structural"`

	// Semantic is the count of semantic violations.
	Semantic int `json:"semantic" yaml:"semantic"`

	// Total is the total number of violations.
	Total int `json:"total" yaml:"total"`

	// Status is the overall validation status.
	Status Status `json:"status" yaml:"status"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// New creates a Report for the given file with an initialized envelope.
// Each report carries a unique run identifier in its metadata.
func New(file, toolVersion string) *Report {
	r := &Report{
		File:       file,
		Violations: make([]Violation, 0),
	}
	r.Header.Init(header.KindValidationReport, ReportAPIVersion, toolVersion)
	r.Metadata["runID"] = uuid.NewString()
	return r
}

// SetViolations records the outcome of both validation layers. Structural
// violations come first; within each class the violations are ordered by
// canonical traversal position, ties keeping production order.
func (r *Report) SetViolations(structural, semantic []Violation) {
	r.Violations = r.Violations[:0]
	r.Violations = append(r.Violations, sortedByPath(structural)...)
	r.Violations = append(r.Violations, sortedByPath(semantic)...)

	r.Summary.Structural = len(structural)
	r.Summary.Semantic = len(semantic)
	r.Summary.Total = len(r.Violations)
	if r.Summary.Total == 0 {
		r.Summary.Status = StatusValid
	} else {
		r.Summary.Status = StatusInvalid
	}
}

// Valid reports whether the file passed every check.
func (r *Report) Valid() bool {
	return len(r.Violations) == 0
}

func sortedByPath(violations []Violation) []Violation {
	out := make([]Violation, len(violations))
	copy(out, violations)
	sort.SliceStable(out, func(i, j int) bool {
		return tree.PathLess(out[i].Path, out[j].Path)
	})
	return out
}
