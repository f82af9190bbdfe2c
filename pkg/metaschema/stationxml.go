package metaschema

import (
	"fmt"
	"strconv"
	"strings"
)

// StationXMLNamespace is the FDSN StationXML namespace. It is shared by
// schema versions 1.0 and 1.1.
const StationXMLNamespace = "http://www.fdsn.org/xml/station/1"

// CheckStationXML checks an FDSN StationXML inventory document: the
// FDSNStationXML root element, its schemaVersion, the Source and Created
// fields, and the code attributes on network elements.
func CheckStationXML(data []byte) []Issue {
	doc, err := parse(data)
	if err != nil {
		return parseIssue(err)
	}
	root := doc.Root()

	var issues []Issue
	if root.Tag != "FDSNStationXML" {
		issues = append(issues, Issue{
			Check:   CheckRootElement,
			Message: fmt.Sprintf("root element is <%s>, want <FDSNStationXML>", root.Tag),
		})
		return issues
	}
	if ns := root.NamespaceURI(); ns != StationXMLNamespace {
		issues = append(issues, Issue{
			Check:   CheckRootNamespace,
			Message: fmt.Sprintf("root namespace is %q, want %q", ns, StationXMLNamespace),
		})
	}

	switch version := root.SelectAttrValue("schemaVersion", ""); {
	case version == "":
		issues = append(issues, Issue{
			Check:   CheckRequiredField,
			Message: "FDSNStationXML carries no schemaVersion",
		})
	default:
		if _, err := strconv.ParseFloat(version, 64); err != nil {
			issues = append(issues, Issue{
				Check:   CheckRequiredField,
				Message: fmt.Sprintf("schemaVersion %q is not a number", version),
			})
		}
	}

	if source := root.SelectElement("Source"); source == nil {
		issues = append(issues, Issue{
			Check:   CheckRequiredChild,
			Message: "FDSNStationXML carries no Source element",
		})
	} else if strings.TrimSpace(source.Text()) == "" {
		issues = append(issues, Issue{
			Check:   CheckRequiredField,
			Message: "Source element is empty",
		})
	}

	if root.SelectElement("Created") == nil {
		issues = append(issues, Issue{
			Check:   CheckRequiredChild,
			Message: "FDSNStationXML carries no Created element",
		})
	}

	for i, network := range root.SelectElements("Network") {
		if network.SelectAttrValue("code", "") == "" {
			issues = append(issues, Issue{
				Check:   CheckRequiredField,
				Message: fmt.Sprintf("network %d carries no code", i+1),
			})
		}
	}
	return issues
}
