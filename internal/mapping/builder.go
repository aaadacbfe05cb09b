package mapping

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"kafkatype/internal/diagnostic"
	"kafkatype/label"
)

// Build builds the type-mapping table from candidates.
// filter may be nil. The returned error unwraps to label.ErrMissingLabel,
// label.ErrInvalidLabel or label.ErrLabelCollision; no table is returned
// alongside an error.
func Build(candidates []Candidate, filter Filter) (*Table, error) {
	t, diags := BuildDiagnostics(candidates, filter)
	if err := diags.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// BuildDiagnostics is Build returning every diagnostic, including notes on
// excluded candidates. The table is nil when there are errors.
func BuildDiagnostics(candidates []Candidate, filter Filter) (*Table, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if filter != nil && filter.Match(c.TypeName) {
			diags.AddInfo(diagnostic.CodeExcluded, "excluded by package filter", subjectOf(c))
			continue
		}

		if err := label.Validate(c.Label); err != nil {
			if errors.Is(err, label.ErrMissingLabel) {
				diags.AddError(diagnostic.CodeMissingLabel, err, "kafka type must have a specified label", subjectOf(c))
			} else {
				diags.AddError(diagnostic.CodeInvalidLabel, err, err.Error(), subjectOf(c))
			}

			continue
		}

		kept = append(kept, c)
	}

	// Labels are checked for every candidate before grouping.
	if diags.HasErrors() {
		return nil, diags
	}

	groups := make(map[string]map[string]struct{})
	for _, c := range kept {
		if groups[c.Label] == nil {
			groups[c.Label] = make(map[string]struct{})
		}

		groups[c.Label][c.TypeName] = struct{}{}
	}

	entries := make([]Entry, 0, len(groups))
	for _, l := range slices.Sorted(maps.Keys(groups)) {
		names := slices.Sorted(maps.Keys(groups[l]))
		if len(names) != 1 {
			diags.AddError(diagnostic.CodeLabelCollision, label.ErrLabelCollision,
				fmt.Sprintf("label %q must be unique; multiple types found: %s", l, strings.Join(names, ", ")),
				diagnostic.Subject{Label: l})

			continue
		}

		entries = append(entries, Entry{Label: l, TypeName: names[0]})
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return &Table{entries: entries}, diags
}

func subjectOf(c Candidate) diagnostic.Subject {
	return diagnostic.Subject{TypeName: c.TypeName, Label: c.Label, Pos: c.Pos}
}
