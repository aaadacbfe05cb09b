package label

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Entry is a single registration.
type Entry struct {
	Label string
	Type  reflect.Type
}

// TypeName returns the fully-qualified name of the entry's type.
func (e Entry) TypeName() string {
	return TypeName(e.Type)
}

// Registry records label registrations.
// Validation is deferred to the table build so that every problem is
// reported at once; the registry itself only rejects types it cannot name.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	byName  map[string]reflect.Type
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]reflect.Type)}
}

// Default is the registry used by the package-level functions and by
// generated registration code.
var Default = NewRegistry()

// Register records that v's type travels under label l.
// v may be a value or a (nil) pointer of a named type: (*Order)(nil) and
// Order{} register the same type.
func (r *Registry) Register(l string, v any) error {
	t, err := namedType(v)
	if err != nil {
		return fmt.Errorf("registering label %q: %w", l, err)
	}

	name := TypeName(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byName == nil {
		r.byName = make(map[string]reflect.Type)
	}

	for _, e := range r.entries {
		if e.Label == l && e.Type == t {
			return nil
		}
	}

	r.entries = append(r.entries, Entry{Label: l, Type: t})
	r.byName[name] = t

	return nil
}

// MustRegister is like Register but panics on error.
// It is meant for init functions.
func (r *Registry) MustRegister(l string, v any) {
	if err := r.Register(l, v); err != nil {
		panic(err)
	}
}

// Entries returns a snapshot of the registrations in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Resolve returns the registered type with the given fully-qualified name.
func (r *Registry) Resolve(typeName string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[typeName]

	return t, ok
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Register registers v under l in the Default registry.
func Register(l string, v any) error {
	return Default.Register(l, v)
}

// MustRegister registers v under l in the Default registry and panics on error.
func MustRegister(l string, v any) {
	Default.MustRegister(l, v)
}

// Resolve looks typeName up in the Default registry.
func Resolve(typeName string) (reflect.Type, bool) {
	return Default.Resolve(typeName)
}

// TypeName returns "import/path.Name" for a named type.
// Unnamed types yield their reflect string.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}

func namedType(v any) (reflect.Type, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, errors.New("nil value has no type")
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return nil, fmt.Errorf("type %s is not a named type declared in a package", t)
	}

	if t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("type %s is an interface", TypeName(t))
	}

	return t, nil
}
