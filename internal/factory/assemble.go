package factory

import (
	"fmt"
	"log/slog"

	"kafkatype/internal/config"
	"kafkatype/internal/mapping"
	"kafkatype/label"
)

// Options controls Assemble.
type Options struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Registry resolves mapped type names. Defaults to label.Default.
	Registry *label.Registry
	// Source enumerates candidates. Defaults to a RegistrySource over Registry.
	Source mapping.Source

	// Consumer and Producer, when set, are used as they are. Build them
	// with NewConsumerFactory and NewProducerFactory.
	Consumer *ConsumerFactory
	Producer *ProducerFactory

	// Customizers run in order on the factories built by Assemble.
	ConsumerCustomizers []ConsumerCustomizer
	ProducerCustomizers []ProducerCustomizer
}

// Factories is the result of Assemble.
type Factories struct {
	Consumer *ConsumerFactory
	Producer *ProducerFactory
	// Mappings is the table built by this assembly, nil when type mapping
	// is disabled or both factories were supplied.
	Mappings *mapping.Table
}

// Assemble builds the consumer and producer factories.
//
// With include packages configured, the type-mapping table is built once
// and appended to copies of the consumer and producer properties; the
// include packages are appended to the consumer's trusted packages. The
// configured property maps are not modified. Without include packages the
// properties are used unchanged and nothing is scanned.
func Assemble(cfg config.Config, opts Options) (*Factories, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := opts.Registry
	if registry == nil {
		registry = label.Default
	}

	kafkaCfg := cfg.Kafka
	consumerProps := kafkaCfg.Consumer.Properties.Clone()
	producerProps := kafkaCfg.Producer.Properties.Clone()

	out := &Factories{}

	switch {
	case !kafkaCfg.TypeMapping.Enabled():
		logger.Info("kafka type mapping disabled: no include packages configured")

	case opts.Consumer != nil && opts.Producer != nil:
		logger.Debug("kafka type mapping skipped: consumer and producer factories supplied")

	default:
		src := opts.Source
		if src == nil {
			src = mapping.RegistrySource{Registry: registry}
		}

		pkgs := kafkaCfg.TypeMapping.Packages
		pkgs.Include = config.PackagePrefixes(pkgs.Include)
		pkgs.Exclude = config.PackagePrefixes(pkgs.Exclude)

		table, err := mapping.Discover(src, pkgs.Include, pkgs.Exclude)
		if err != nil {
			return nil, fmt.Errorf("building kafka type mappings: %w", err)
		}

		consumerProps.AppendList(config.TrustedPackagesKey, pkgs.Include)
		consumerProps.Append(config.TypeMappingsKey, table.String())
		producerProps.Append(config.TypeMappingsKey, table.String())
		out.Mappings = table

		logger.Debug("kafka type mappings built",
			"count", table.Len(),
			"include", pkgs.Include,
			"exclude", pkgs.Exclude)
	}

	if opts.Consumer != nil {
		out.Consumer = opts.Consumer
	} else {
		consumer, err := NewConsumerFactory(kafkaCfg, consumerProps, registry)
		if err != nil {
			return nil, err
		}

		for _, customize := range opts.ConsumerCustomizers {
			customize(consumer)
		}

		out.Consumer = consumer
	}

	if opts.Producer != nil {
		out.Producer = opts.Producer
	} else {
		producer, err := NewProducerFactory(kafkaCfg, producerProps, registry)
		if err != nil {
			return nil, err
		}

		for _, customize := range opts.ProducerCustomizers {
			customize(producer)
		}

		out.Producer = producer
	}

	return out, nil
}
