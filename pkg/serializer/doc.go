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

// Package serializer provides encoding and decoding of validation resources in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between validation data structures
// (reports, schema listings, container inventories) and various output formats
// including JSON, YAML, and human-readable tables. It supports both encoding
// (writing data) and decoding (reading data) operations with automatic format
// detection, plus fetching remote resources over HTTP.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for API responses and programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for configuration files and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Columnar text representation
//   - Suitable for terminal/console viewing
//   - Resources implementing TableRenderer control their own layout
//   - Read-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to stdout (YAML):
//
//	w, err := serializer.NewStdoutWriter(serializer.FormatYAML)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := w.Serialize(ctx, rep); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a file, falling back to stdout when no path is given:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatJSON, outputPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Serialize(ctx, rep); err != nil {
//	    log.Fatal(err)
//	}
//
// # Usage - Decoding
//
// Read from a file or URL with automatic format detection:
//
//	cfg, err := serializer.FromFile[server.Config]("server.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read with a custom io.Reader:
//
//	r, err := serializer.NewReader(serializer.FormatJSON, strings.NewReader(jsonData))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var rep report.Report
//	if err := r.Deserialize(&rep); err != nil {
//	    log.Fatal(err)
//	}
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// # Remote Sources
//
// NewFileReader and FromFile accept http:// and https:// URLs. Remote files
// are downloaded to the temporary directory and removed on Close. HttpReader
// is also usable directly for fetching candidate containers:
//
//	r := serializer.NewHttpReader()
//	if err := r.Download(ctx, url, localPath); err != nil {
//	    log.Fatal(err)
//	}
//
// # Integration
//
// Used throughout the validator for data I/O:
//   - pkg/cli - Command output formatting and remote container fetch
//   - pkg/server - HTTP response encoding and config loading
//   - pkg/report - Table rendering of validation verdicts
package serializer
