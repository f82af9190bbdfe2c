// Package metaschema checks the XML documents embedded in a container:
// QuakeML catalogs, FDSN StationXML inventories, and provenance records.
//
// The checks are structural: root element identity, required children, and
// required fields such as publicID and schemaVersion. They are not a full
// grammar validation of either format.
package metaschema

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	xrv "github.com/mattermost/xml-roundtrip-validator"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Check identifiers carried by issues.
const (
	CheckDocument      = "document"
	CheckRootElement   = "root-element"
	CheckRootNamespace = "root-namespace"
	CheckRequiredChild = "required-child"
	CheckRequiredField = "required-field"
)

// Issue is one disagreement between a document and its expected shape.
type Issue struct {
	// Check identifies the kind of expectation that failed.
	Check string

	// Message describes the disagreement.
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Check, i.Message)
}

// decode converts a raw payload to UTF-8. Byte-order marks select the
// source encoding; without one the payload is taken as UTF-8. Trailing
// null padding is stripped.
func decode(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decoding document bytes: %w", err)
	}
	return bytes.TrimRight(out, "\x00"), nil
}

// CheckWellformed reports whether a payload parses as a well-formed XML
// document with a single root element. The nil return means well-formed.
func CheckWellformed(data []byte) error {
	decoded, err := decode(data)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(decoded)) == 0 {
		return errors.New("document is empty")
	}

	// Reject constructs that survive parsing but change meaning when
	// re-encoded, then scan every token once.
	if err := xrv.Validate(bytes.NewReader(decoded)); err != nil {
		return err
	}

	// The decoder tokenizes fragments that are not documents, so track
	// the element depth: exactly one root element, no text outside it.
	dec := xml.NewDecoder(bytes.NewReader(decoded))
	dec.Strict = true
	depth := 0
	roots := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return errors.New("text outside the root element")
			}
		}
	}
	switch {
	case roots == 0:
		return errors.New("document has no root element")
	case roots > 1:
		return fmt.Errorf("document has %d root elements", roots)
	}
	return nil
}

// parse decodes a payload into an element tree.
func parse(data []byte) (*etree.Document, error) {
	decoded, err := decode(data)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(decoded); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, errors.New("document has no root element")
	}
	return doc, nil
}

func parseIssue(err error) []Issue {
	return []Issue{{
		Check:   CheckDocument,
		Message: fmt.Sprintf("cannot parse document: %v", err),
	}}
}
