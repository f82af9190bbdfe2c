package metaschema

import (
	"fmt"
	"regexp"

	"github.com/beevik/etree"
)

// QuakeML 1.2 namespaces.
const (
	QuakeMLNamespace    = "http://quakeml.org/xmlns/quakeml/1.2"
	QuakeMLBEDNamespace = "http://quakeml.org/xmlns/bed/1.2"
)

// resourceIDRE is the QuakeML ResourceReference form, e.g.
// "smi:local/catalog" or "quakeml:example.org/event/42".
var resourceIDRE = regexp.MustCompile(
	`^(smi|quakeml):[\w\d][\w\d\-\.\*\(\)_~']{2,}/[\w\d\-\.\*\(\)_~'][\w\d\-\.\*\(\)\+\?_~'=,;#/&]*$`)

// CheckQuakeML checks a QuakeML 1.2 catalog document: the quakeml root
// element, its eventParameters child, and the publicID identifiers on the
// catalog and its events.
func CheckQuakeML(data []byte) []Issue {
	doc, err := parse(data)
	if err != nil {
		return parseIssue(err)
	}
	root := doc.Root()

	var issues []Issue
	if root.Tag != "quakeml" {
		issues = append(issues, Issue{
			Check:   CheckRootElement,
			Message: fmt.Sprintf("root element is <%s>, want <quakeml>", root.Tag),
		})
		// Nothing below the root is recognizable on the wrong document type.
		return issues
	}
	if ns := root.NamespaceURI(); ns != QuakeMLNamespace {
		issues = append(issues, Issue{
			Check:   CheckRootNamespace,
			Message: fmt.Sprintf("root namespace is %q, want %q", ns, QuakeMLNamespace),
		})
	}

	params := root.SelectElements("eventParameters")
	switch len(params) {
	case 1:
		issues = append(issues, checkEventParameters(params[0])...)
	case 0:
		issues = append(issues, Issue{
			Check:   CheckRequiredChild,
			Message: "quakeml carries no eventParameters element",
		})
	default:
		issues = append(issues, Issue{
			Check:   CheckRequiredChild,
			Message: fmt.Sprintf("quakeml carries %d eventParameters elements, want one", len(params)),
		})
	}
	return issues
}

func checkEventParameters(params *etree.Element) []Issue {
	var issues []Issue
	if ns := params.NamespaceURI(); ns != QuakeMLBEDNamespace {
		issues = append(issues, Issue{
			Check:   CheckRootNamespace,
			Message: fmt.Sprintf("eventParameters namespace is %q, want %q", ns, QuakeMLBEDNamespace),
		})
	}
	issues = append(issues, checkResourceID(params, "eventParameters")...)

	for i, event := range params.SelectElements("event") {
		issues = append(issues, checkResourceID(event, fmt.Sprintf("event %d", i+1))...)
	}
	return issues
}

func checkResourceID(e *etree.Element, what string) []Issue {
	id := e.SelectAttr("publicID")
	if id == nil {
		return []Issue{{
			Check:   CheckRequiredField,
			Message: fmt.Sprintf("%s carries no publicID", what),
		}}
	}
	if !resourceIDRE.MatchString(id.Value) {
		return []Issue{{
			Check:   CheckRequiredField,
			Message: fmt.Sprintf("%s publicID %q is not a smi: or quakeml: resource identifier", what, id.Value),
		}}
	}
	return nil
}
