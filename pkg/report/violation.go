package report

import "fmt"

// Class separates the two validation layers a violation can come from.
type Class string

const (
	// ClassStructural marks violations of the versioned structural schema.
	ClassStructural Class = "structural"

	// ClassSemantic marks violations of cross-node semantic rules.
	ClassSemantic Class = "semantic"
)

// Violation is one rule breach found during validation.
type Violation struct {
	// Class is the validation layer that produced the violation.
	Class Class `json:"class" yaml:"class"`

	// Path is the canonical path of the offending node.
	Path string `json:"path" yaml:"path"`

	// Rule is the stable identifier of the breached rule.
	Rule string `json:"rule" yaml:"rule"`

	// Message is a complete sentence describing the breach.
	Message string `json:"message" yaml:"message"`

	// Expected describes what the rule required, when that reads better
	// split out of the message.
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`

	// Actual describes what the file contains instead.
	Actual string `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// String renders the violation on one line for logs and error text.
func (v Violation) String() string {
	if v.Expected != "" || v.Actual != "" {
		return fmt.Sprintf("[%s] %s: %s (expected %s, found %s)",
			v.Class, v.Path, v.Message, v.Expected, v.Actual)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Class, v.Path, v.Message)
}
