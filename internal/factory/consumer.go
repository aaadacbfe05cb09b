package factory

import (
	"fmt"
	"reflect"
	"time"

	"github.com/segmentio/kafka-go"

	"kafkatype/internal/config"
	"kafkatype/internal/match"
	"kafkatype/label"
	"kafkatype/utils"
)

// trustAll in the trusted packages trusts every type.
const trustAll = "*"

// ConsumerFactory creates Kafka readers.
type ConsumerFactory struct {
	clientFactory

	groupID string
	topics  []string

	// MinBytes, MaxBytes and MaxWait are passed to every reader.
	MinBytes int
	MaxBytes int
	MaxWait  time.Duration
}

// ConsumerCustomizer adjusts a consumer factory after assembly.
type ConsumerCustomizer func(*ConsumerFactory)

// NewConsumerFactory creates a consumer factory over cfg's brokers, group
// and topics. props is copied; its type mappings must parse. A nil
// registry resolves through label.Default.
func NewConsumerFactory(cfg config.KafkaConfig, props config.Properties, registry *label.Registry) (*ConsumerFactory, error) {
	base, err := newClientFactory(cfg.Brokers, props, registry)
	if err != nil {
		return nil, fmt.Errorf("consumer factory: %w", err)
	}

	return &ConsumerFactory{
		clientFactory: base,
		groupID:       cfg.Consumer.GroupID,
		topics:        append([]string(nil), cfg.Consumer.Topics...),
		MinBytes:      1,
		MaxBytes:      10e6,
		MaxWait:       500 * time.Millisecond,
	}, nil
}

// TrustedPackages returns the packages the consumer may instantiate types from.
func (f *ConsumerFactory) TrustedPackages() []string {
	return f.props.List(config.TrustedPackagesKey)
}

// ReaderConfig returns the kafka-go reader configuration.
func (f *ConsumerFactory) ReaderConfig() kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:     f.Brokers(),
		GroupID:     f.groupID,
		GroupTopics: append([]string(nil), f.topics...),
		MinBytes:    f.MinBytes,
		MaxBytes:    f.MaxBytes,
		MaxWait:     f.MaxWait,
	}
}

// NewReader creates a reader. The caller owns it and must close it.
func (f *ConsumerFactory) NewReader() (*kafka.Reader, error) {
	if len(f.brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer requires at least one broker")
	}

	if f.groupID == "" {
		return nil, fmt.Errorf("kafka consumer requires group id")
	}

	if len(f.topics) == 0 {
		return nil, fmt.Errorf("kafka consumer requires at least one topic")
	}

	cfg := f.ReaderConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}

	return kafka.NewReader(cfg), nil
}

// ResolveType returns the registered type mapped to l.
// The type must be in a trusted package.
func (f *ConsumerFactory) ResolveType(l string) (reflect.Type, error) {
	name, ok := f.mappings.Lookup(l)
	if !ok {
		if hint, found := f.suggest(l); found {
			return nil, fmt.Errorf("%w: no type mapped to label %q (did you mean %q?)", label.ErrUnresolvedType, l, hint)
		}

		return nil, fmt.Errorf("%w: no type mapped to label %q", label.ErrUnresolvedType, l)
	}

	if !f.trusts(name) {
		return nil, fmt.Errorf("%w: %s", ErrUntrustedType, name)
	}

	t, ok := f.resolver().Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", label.ErrUnresolvedType, name)
	}

	return t, nil
}

func (f *ConsumerFactory) suggest(l string) (string, bool) {
	entries := f.mappings.Entries()

	known := make([]string, 0, len(entries))
	for _, e := range entries {
		known = append(known, e.Label)
	}

	return match.Closest(l, known, match.DefaultMinScore)
}

func (f *ConsumerFactory) trusts(typeName string) bool {
	trusted := f.TrustedPackages()
	for _, p := range trusted {
		if p == trustAll {
			return true
		}
	}

	return utils.HasAnyPrefix(typeName, trusted)
}
