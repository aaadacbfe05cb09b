package mapping

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"kafkatype/label"
	"kafkatype/utils"
)

// Entry maps one label to one type.
type Entry struct {
	Label    string
	TypeName string
}

// String returns "label:type".
func (e Entry) String() string {
	return e.Label + label.PairSeparator + e.TypeName
}

// Table is an immutable label -> type name mapping, ordered by label.
// A nil *Table is empty.
type Table struct {
	entries []Entry
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.entries)
}

// Entries returns a copy of the entries, ordered by label.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}

	return slices.Clone(t.entries)
}

// Lookup returns the type name registered under l.
func (t *Table) Lookup(l string) (string, bool) {
	if t == nil {
		return "", false
	}

	i, found := slices.BinarySearchFunc(t.entries, l, func(e Entry, target string) int {
		return strings.Compare(e.Label, target)
	})
	if !found {
		return "", false
	}

	return t.entries[i].TypeName, true
}

// LabelOf returns the label typeName is registered under.
func (t *Table) LabelOf(typeName string) (string, bool) {
	if t == nil {
		return "", false
	}

	for _, e := range t.entries {
		if e.TypeName == typeName {
			return e.Label, true
		}
	}

	return "", false
}

// String flattens the table to "label:type,label:type".
func (t *Table) String() string {
	if t == nil {
		return ""
	}

	parts := make([]string, len(t.entries))
	for i, e := range t.entries {
		parts[i] = e.String()
	}

	return strings.Join(parts, label.EntrySeparator)
}

// Parse reads a flattened mapping back into a Table.
// Whitespace around entries is ignored and empty entries are skipped.
// The same label mapped to two different types is a collision.
func Parse(s string) (*Table, error) {
	var candidates []Candidate

	for i, raw := range strings.Split(s, label.EntrySeparator) {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		l, typeName := utils.Unpack2(strings.SplitN(entry, label.PairSeparator, 2))
		l, typeName = strings.TrimSpace(l), strings.TrimSpace(typeName)
		if typeName == "" {
			return nil, fmt.Errorf("malformed type mapping entry %q: expected label%stype", entry, label.PairSeparator)
		}

		candidates = append(candidates, Candidate{
			TypeName: typeName,
			Label:    l,
			Pos:      "entry " + strconv.Itoa(i+1),
		})
	}

	return Build(candidates, nil)
}
