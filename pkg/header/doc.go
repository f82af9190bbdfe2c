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

// Package header provides the common envelope for serialized resources.
//
// This package defines the Header type embedded in validation reports,
// inspection dumps, and schema documents to provide consistent metadata and
// versioning information.
//
// # Header Structure
//
// The Header contains standard fields for API versioning and metadata:
//
//	type Header struct {
//	    Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
//	    APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
//	    Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
//	}
//
// # Usage
//
// Initialize a header for a validation report:
//
//	var h header.Header
//	h.Init(header.KindValidationReport, "v1", toolVersion)
//
// Init populates Metadata with an RFC3339 UTC timestamp and the tool version.
// Additional metadata (run ID, source file) is attached by the producer:
//
//	h.Metadata["run"] = runID
//	h.Metadata["file"] = path
//
// # Serialization
//
// Headers serialize consistently to JSON and YAML:
//
//	{
//	  "kind": "ValidationReport",
//	  "apiVersion": "v1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// # Kind Field
//
// The Kind field identifies the resource type:
//   - ValidationReport: outcome of a validation run
//   - Inspection: canonical tree dump of a container
//   - StructuralSchema: versioned format definition document
//
// Consumers should check APIVersion and Kind before parsing the body.
package header
