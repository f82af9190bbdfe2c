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

// Package validator orchestrates the full validation pipeline for ASDF
// container files.
//
// # Overview
//
// A Validator takes a candidate path through four stages:
//
//  1. Prechecks: the path must name a regular file carrying the HDF5
//     signature, the container root must declare file_format "ASDF", and
//     its file_format_version must have a registered structural schema.
//     A precheck failure aborts the run with a structured error; no
//     report is produced.
//  2. Canonicalization: the raw object graph is converted into the
//     canonical tree shared by both validation layers.
//  3. Structural layer: the tree is checked against the schema registered
//     for the declared format version.
//  4. Semantic layer: the cross-node rule set runs over the same tree,
//     reading XML payloads through the open container handle.
//
// The two layers accumulate violations rather than failing fast, so one
// run reports everything wrong with a file. A file is valid exactly when
// the report carries zero violations.
//
// # Usage
//
//	v := validator.New(validator.WithVersion(buildVersion))
//	rep, err := v.Validate(ctx, "event.h5")
//	if err != nil {
//		// the file could not be judged at all
//	}
//	if !rep.Valid() {
//		// rep.Violations lists every breach
//	}
package validator
