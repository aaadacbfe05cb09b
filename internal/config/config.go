package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kafkatype/internal/common"
)

// Config is the root configuration.
type Config struct {
	Kafka KafkaConfig `yaml:"kafka"`
}

// KafkaConfig configures the Kafka clients and the type mapping.
type KafkaConfig struct {
	Brokers     []string          `yaml:"brokers"`
	TypeMapping TypeMappingConfig `yaml:"type-mapping"`
	Consumer    ConsumerConfig    `yaml:"consumer"`
	Producer    ProducerConfig    `yaml:"producer"`
}

// TypeMappingConfig selects the packages scanned for kafka types.
type TypeMappingConfig struct {
	Packages PackagesConfig `yaml:"packages"`
}

// PackagesConfig lists package prefixes.
type PackagesConfig struct {
	// Include lists base packages scanned for candidates. They are also
	// added to the consumer's trusted packages.
	Include []string `yaml:"include"`
	// Exclude lists packages skipped by the scan. Ignored when Include is
	// empty, and never removed from the trusted packages.
	Exclude []string `yaml:"exclude"`
}

// ConsumerConfig configures the consumer factory.
type ConsumerConfig struct {
	GroupID    string     `yaml:"group-id"`
	Topics     []string   `yaml:"topics"`
	Properties Properties `yaml:"properties"`
}

// ProducerConfig configures the producer factory.
type ProducerConfig struct {
	ClientID   string     `yaml:"client-id"`
	Properties Properties `yaml:"properties"`
}

// Enabled reports whether type mapping is configured.
func (c TypeMappingConfig) Enabled() bool {
	return !common.IsEmpty(c.Packages.Include)
}

// Default returns the configuration used before the file and environment are applied.
func Default() Config {
	return Config{
		Kafka: KafkaConfig{
			Consumer: ConsumerConfig{Properties: Properties{}},
			Producer: ProducerConfig{Properties: Properties{}},
		},
	}
}

// Load reads the configuration from path and applies environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)

		switch {
		case err == nil:
			if err := Parse(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	normalize(&cfg)

	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values the document does not set.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	normalize(cfg)

	return nil
}

func applyEnv(cfg *Config) {
	k := &cfg.Kafka
	k.Brokers = envCSV("KAFKA_BROKERS", k.Brokers)
	k.TypeMapping.Packages.Include = envCSV("KAFKA_TYPE_MAPPING_INCLUDE", k.TypeMapping.Packages.Include)
	k.TypeMapping.Packages.Exclude = envCSV("KAFKA_TYPE_MAPPING_EXCLUDE", k.TypeMapping.Packages.Exclude)
	k.Consumer.GroupID = envOrDefault("KAFKA_CONSUMER_GROUP", k.Consumer.GroupID)
	k.Consumer.Topics = envCSV("KAFKA_CONSUMER_TOPICS", k.Consumer.Topics)
	k.Producer.ClientID = envOrDefault("KAFKA_PRODUCER_CLIENT_ID", k.Producer.ClientID)
}

func normalize(cfg *Config) {
	k := &cfg.Kafka
	k.Brokers = trimNonEmpty(k.Brokers)
	k.TypeMapping.Packages.Include = PackagePrefixes(k.TypeMapping.Packages.Include)
	k.TypeMapping.Packages.Exclude = PackagePrefixes(k.TypeMapping.Packages.Exclude)
	k.Consumer.Topics = trimNonEmpty(k.Consumer.Topics)

	if k.Consumer.Properties == nil {
		k.Consumer.Properties = Properties{}
	}

	if k.Producer.Properties == nil {
		k.Producer.Properties = Properties{}
	}
}

// PackagePrefixes trims the entries of list and strips a trailing "/..." or
// "/", so "a/b/..." and "a/b/" both become "a/b". Entries left empty are
// dropped.
func PackagePrefixes(list []string) []string {
	if list == nil {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, p := range list {
		p = strings.TrimSpace(p)
		p = strings.TrimSuffix(p, "/...")
		p = strings.TrimRight(p, "/")

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
