package audit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatChange produces a human-readable description of a field change, or
// nil when the values are equal (no-op diffs produce no log entries).
// Nil values are treated as "empty"; surrounding quote characters are
// stripped from string values; the field name is capitalized for display.
// The inputs are never mutated.
func FormatChange(field string, oldVal, newVal any) *string {
	oldStr := renderValue(oldVal)
	newStr := renderValue(newVal)

	if oldStr == newStr {
		return nil
	}

	label := capitalize(field)
	var description string
	switch {
	case oldStr == "":
		description = fmt.Sprintf("%s changed to %s", label, newStr)
	case newStr == "":
		description = fmt.Sprintf("%s changed from %s to empty", label, oldStr)
	default:
		description = fmt.Sprintf("%s changed from %s to %s", label, oldStr, newStr)
	}
	return &description
}

// renderValue converts a value to its display form. Nil is empty, strings
// lose surrounding quotes, everything else uses its default formatting.
func renderValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return stripQuotes(s)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// stripQuotes removes a matching pair of surrounding quote characters
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// capitalize upper-cases the first rune of the field name
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ChangeSet accumulates formatted field changes for a single mutation
type ChangeSet struct {
	changes []string
}

// Add records a field change; equal values are skipped
func (cs *ChangeSet) Add(field string, oldVal, newVal any) {
	if desc := FormatChange(field, oldVal, newVal); desc != nil {
		cs.changes = append(cs.changes, *desc)
	}
}

// Empty returns true when no field actually changed
func (cs *ChangeSet) Empty() bool {
	return len(cs.changes) == 0
}

// Describe joins all recorded changes into one action description
func (cs *ChangeSet) Describe() string {
	return strings.Join(cs.changes, "; ")
}
