// Package cli implements the command-line interface for the asdf-validate tool.
//
// # Overview
//
// The asdf-validate CLI validates Adaptable Seismic Data Format (ASDF)
// containers against the structural schema and semantic rules registered for
// their declared format version. It is designed for data producers checking
// files before publication and for archive operators gating ingestion.
//
// # Commands
//
// validate - Validate a container:
//
//	asdf-validate validate <file> [--schema-dir DIR] [--serial] [--output FILE] [--format json|yaml|table]
//
// Runs the full pipeline: candidate prechecks, canonicalization, the
// structural layer, and the semantic rule set. All violations are
// accumulated and reported. The file argument may be a local path or an
// HTTP(S) URL; remote files are downloaded to a temporary location first.
//
// inspect - Dump the canonical tree:
//
//	asdf-validate inspect <file> [--output FILE] [--format json|yaml]
//
// Prints every group and dataset with attributes, datatypes, and dataspaces
// exactly as the validation layers see them. Useful when writing or
// debugging schema documents.
//
// versions - List registered format versions:
//
//	asdf-validate versions [--schema-dir DIR]
//
// Lists the format versions a schema document is registered for, oldest
// first.
//
// # Global Flags
//
//	--log-level    Logging verbosity: debug, info, warn, error (default: warn)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Table (default for validate):
//   - "Valid ASDF File!" for a valid container
//   - One row per violation otherwise, plus a summary line
//
// JSON / YAML:
//   - The full report envelope: file, format version, tool version,
//     violations with class/path/rule/message, and summary counts
//
// # Exit Codes
//
//	0  container is valid
//	1  violations were found, or the command itself failed
//	2  file not found or not a regular file
//	3  file is not an HDF5 container
//	4  missing or unusable format declaration, or unsupported version
//	5  container introspection failed
//
// # Environment Variables
//
//	LOG_LEVEL        Logging verbosity (debug, info, warn, error)
//	ASDF_SCHEMA_DIR  Directory with schema documents layered over the embedded set
//	ASDF_OUTPUT      Output file path
//	ASDF_FORMAT      Output format
//	ASDF_SERIAL      Run the validation layers sequentially
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/validator - validation pipeline orchestration
//   - pkg/schema - schema registry and structural layer
//   - pkg/rules - semantic rule set
//   - pkg/serializer - output formatting
//   - pkg/logging - structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/seismicdata/asdf-validate/pkg/cli.version=1.0.0'"
package cli
