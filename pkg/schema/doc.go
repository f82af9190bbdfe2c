// Package schema provides versioned structural validation of canonical
// container trees.
//
// # Overview
//
// Each supported format version has one declarative schema document,
// embedded under data/asdf-<version>.yaml. A document compiles once into
// an immutable rule tree (Schema) that is cached per format version and
// applied to canonical trees with Validate. Validation accumulates every
// mismatch as a structural violation; it never stops at the first one.
//
// # Document Format
//
// Schema documents are YAML with a resource envelope and a recursive rule
// tree:
//
//	apiVersion: asdf.seismicdata.org/v1
//	kind: StructuralSchema
//	version: "0.0.2"
//	root:
//	  kind: group
//	  additionalChildren: false
//	  attributes:
//	    file_format:
//	      required: true
//	      datatype:
//	        class: string
//	      dataspace:
//	        kind: scalar
//	  children:
//	    QuakeML:
//	      kind: dataset
//	      datatype:
//	        class: integer
//	        size: 1
//	      dataspace:
//	        kind: simple
//	        rank: 1
//
// Rules name children either literally (children) or by anchored regular
// expression (patternChildren). A child that matches neither is a
// violation unless additionalChildren is true; unmatched children are
// never descended into. Datatype rules constrain class, byte size,
// signedness, byte order, charset, variable-length, and float bit layout;
// every listed field must match exactly. Unknown document fields are
// rejected at compile time.
//
// # Providers
//
// Documents come from a DataProvider. The default provider serves the
// embedded documents; an external directory can be layered on top to
// override or add format versions:
//
//	embedded := schema.NewEmbeddedDataProvider(schema.GetEmbeddedFS(), "data")
//	layered, err := schema.NewLayeredDataProvider(embedded, schema.LayeredProviderConfig{
//	    ExternalDir: "/etc/asdf-validate/schemas",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	schema.SetDataProvider(layered)
//
// External directories are scanned for path traversal, symlinks, and
// oversized files before use.
//
// # Usage
//
//	s, err := schema.Get("0.0.2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	violations := s.Validate(root)
package schema
