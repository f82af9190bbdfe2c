package canonicalizer

import (
	"fmt"
	"regexp"
	"strings"
)

// Fixed-size string values come back from the dump with their NUL padding
// rendered as literal backslash escapes.
var trailingPadding = regexp.MustCompile(`(\\0+)+$`)

// DecodeString interprets the raw dump rendering of a scalar string
// attribute: the value must be double-quoted, and trailing NUL-escape
// padding is stripped.
func DecodeString(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || !strings.HasPrefix(raw, `"`) || !strings.HasSuffix(raw, `"`) {
		return "", fmt.Errorf("not a quoted string value: %q", raw)
	}
	return trailingPadding.ReplaceAllString(raw[1:len(raw)-1], ""), nil
}
