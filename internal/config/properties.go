package config

import (
	"maps"
	"strings"
)

// Property keys read by the JSON serializer and deserializer.
const (
	TrustedPackagesKey = "json.trusted.packages"
	TypeMappingsKey    = "json.type.mappings"
)

// Delimiter joins list values and appended property values.
const Delimiter = ","

// Properties is a client property map.
type Properties map[string]string

// Merge appends additional to existing. Empty sides are dropped so the
// result never gains a dangling delimiter.
func Merge(existing, additional string) string {
	switch {
	case existing == "":
		return additional
	case additional == "":
		return existing
	default:
		return existing + Delimiter + additional
	}
}

// Append merges value after the current value of key.
// Existing entries are never dropped or reordered.
func (p Properties) Append(key, value string) {
	merged := Merge(p[key], value)
	if merged == "" {
		return
	}

	p[key] = merged
}

// AppendList appends values joined with Delimiter.
func (p Properties) AppendList(key string, values []string) {
	p.Append(key, strings.Join(values, Delimiter))
}

// List splits the value of key on Delimiter, dropping blanks.
func (p Properties) List(key string) []string {
	value, ok := p[key]
	if !ok {
		return nil
	}

	return trimNonEmpty(strings.Split(value, Delimiter))
}

// Clone returns a copy of p. A nil map clones to an empty one.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	maps.Copy(out, p)

	return out
}
