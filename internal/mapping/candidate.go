package mapping

import (
	"errors"
	"fmt"

	"kafkatype/label"
	"kafkatype/utils"
)

// Candidate is a marked type discovered by a Source.
type Candidate struct {
	// TypeName is the fully-qualified Go name, e.g. "kafkatype/examples/model.Order".
	TypeName string
	// Label is the label the type was marked with. May be empty.
	Label string
	// Pos is where the mark was found, for messages only.
	Pos string
	// Package is the Go package name of the type, when known.
	Package string
	// Dir is the directory of the package, when known.
	Dir string
}

// Filter decides whether a candidate is excluded.
type Filter interface {
	Match(typeName string) bool
}

// PrefixFilter excludes type names starting with any of its prefixes.
// Prefixes are compared with plain string prefix matching.
type PrefixFilter struct {
	prefixes []string
}

// NewPrefixFilter creates a PrefixFilter. An empty list matches nothing.
func NewPrefixFilter(prefixes []string) *PrefixFilter {
	return &PrefixFilter{prefixes: append([]string(nil), prefixes...)}
}

// Match reports whether typeName starts with one of the prefixes.
func (f *PrefixFilter) Match(typeName string) bool {
	return utils.HasAnyPrefix(typeName, f.prefixes)
}

// Source enumerates candidates under a set of include prefixes.
type Source interface {
	Candidates(include []string) ([]Candidate, error)
}

// RegistrySource reads candidates from a label registry.
// A registration is a candidate when its type name starts with an include prefix.
type RegistrySource struct {
	// Registry defaults to label.Default.
	Registry *label.Registry
}

// Candidates implements Source.
func (s RegistrySource) Candidates(include []string) ([]Candidate, error) {
	reg := s.Registry
	if reg == nil {
		reg = label.Default
	}

	var out []Candidate

	for _, e := range reg.Entries() {
		name := e.TypeName()
		if !utils.HasAnyPrefix(name, include) {
			continue
		}

		out = append(out, Candidate{
			TypeName: name,
			Label:    e.Label,
			Pos:      "registered",
		})
	}

	return out, nil
}

// Discover enumerates candidates from src under include, drops those under
// exclude and builds the table.
func Discover(src Source, include, exclude []string) (*Table, error) {
	if len(include) == 0 {
		return nil, errors.New("at least one include package is required")
	}

	candidates, err := src.Candidates(include)
	if err != nil {
		return nil, fmt.Errorf("discovering kafka types: %w", err)
	}

	var filter Filter
	if len(exclude) > 0 {
		filter = NewPrefixFilter(exclude)
	}

	return Build(candidates, filter)
}
