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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/seismicdata/asdf-validate/pkg/report"
)

var (
	// Validation pipeline metrics
	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "asdf_validation_duration_seconds",
			Help:    "Duration of a complete file validation in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asdf_validations_total",
			Help: "Total number of validation runs that produced a verdict",
		},
		[]string{"status"}, // valid or invalid
	)

	validationViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asdf_validation_violations_total",
			Help: "Total number of violations found across all runs",
		},
		[]string{"class"}, // structural or semantic
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asdf_validation_failures_total",
			Help: "Total number of validation runs that ended in an error",
		},
		[]string{"code"},
	)
)

// observeOutcome records the metrics of one completed run.
func observeOutcome(rep *report.Report) {
	validationDuration.Observe(rep.Summary.Duration.Seconds())
	validationTotal.WithLabelValues(string(rep.Summary.Status)).Inc()
	validationViolations.WithLabelValues(string(report.ClassStructural)).Add(float64(rep.Summary.Structural))
	validationViolations.WithLabelValues(string(report.ClassSemantic)).Add(float64(rep.Summary.Semantic))
}
