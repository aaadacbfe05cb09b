package label

import (
	"fmt"
	"strings"
)

// Directive is the comment directive that marks a type declaration.
const Directive = "kafka:type"

// Wire delimiters of the flattened type-mapping string.
const (
	EntrySeparator = ","
	PairSeparator  = ":"
)

// Validate reports whether l can be used as a label.
// Labels end up unescaped inside "label:type,label:type", so the delimiters
// and whitespace are rejected along with the empty string.
func Validate(l string) error {
	if l == "" {
		return ErrMissingLabel
	}

	if strings.ContainsAny(l, EntrySeparator+PairSeparator+" \t\r\n") {
		return fmt.Errorf("%w: %q contains a delimiter or whitespace", ErrInvalidLabel, l)
	}

	return nil
}

// ParseDirective parses a raw comment such as "//kafka:type order".
// ok is false when the comment is not a kafka:type directive. extra holds
// any fields after the label.
func ParseDirective(comment string) (value string, extra []string, ok bool) {
	text, found := strings.CutPrefix(comment, "//")
	if !found {
		return "", nil, false
	}

	rest, found := strings.CutPrefix(text, Directive)
	if !found {
		return "", nil, false
	}

	// "//kafka:typeset" is a different directive.
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", nil, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", nil, true
	}

	return fields[0], fields[1:], true
}
