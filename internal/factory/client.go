package factory

import (
	"errors"
	"fmt"

	"kafkatype/internal/config"
	"kafkatype/internal/mapping"
	"kafkatype/label"
)

// ErrUntrustedType is returned when a label resolves to a type outside the
// trusted packages.
var ErrUntrustedType = errors.New("kafka type is not in a trusted package")

// clientFactory is the state shared by consumer and producer factories.
// The zero value has no brokers, no properties and resolves through
// label.Default.
type clientFactory struct {
	brokers  []string
	props    config.Properties
	mappings *mapping.Table
	registry *label.Registry
}

func newClientFactory(brokers []string, props config.Properties, registry *label.Registry) (clientFactory, error) {
	f := clientFactory{
		brokers:  append([]string(nil), brokers...),
		props:    props.Clone(),
		registry: registry,
	}

	if err := f.parseMappings(); err != nil {
		return clientFactory{}, err
	}

	return f, nil
}

func (f *clientFactory) parseMappings() error {
	table, err := mapping.Parse(f.props[config.TypeMappingsKey])
	if err != nil {
		return fmt.Errorf("invalid %s property: %w", config.TypeMappingsKey, err)
	}

	f.mappings = table

	return nil
}

// Brokers returns the bootstrap brokers.
func (f *clientFactory) Brokers() []string {
	return append([]string(nil), f.brokers...)
}

// Properties returns a copy of the client properties.
func (f *clientFactory) Properties() config.Properties {
	return f.props.Clone()
}

// Property returns a single client property.
func (f *clientFactory) Property(key string) (string, bool) {
	v, ok := f.props[key]
	return v, ok
}

// SetProperty replaces a client property. Setting the type mappings
// re-validates them.
func (f *clientFactory) SetProperty(key, value string) error {
	if f.props == nil {
		f.props = config.Properties{}
	}

	prev, had := f.props[key]
	f.props[key] = value

	if key != config.TypeMappingsKey {
		return nil
	}

	if err := f.parseMappings(); err != nil {
		if had {
			f.props[key] = prev
		} else {
			delete(f.props, key)
		}

		return err
	}

	return nil
}

func (f *clientFactory) resolver() *label.Registry {
	if f.registry == nil {
		return label.Default
	}

	return f.registry
}

// TypeMappings returns the parsed type mappings.
func (f *clientFactory) TypeMappings() *mapping.Table {
	return f.mappings
}
