package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
kafka:
  brokers: [" localhost:9092 ", ""]
  type-mapping:
    packages:
      include:
        - kafkatype/examples/model
      exclude:
        - kafkatype/examples/model/legacy
  consumer:
    group-id: orders
    topics: [orders, users]
    properties:
      json.trusted.packages: kafkatype/examples/shared
  producer:
    client-id: orders-producer
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	k := cfg.Kafka
	assert.Equal(t, []string{"localhost:9092"}, k.Brokers)
	assert.Equal(t, []string{"kafkatype/examples/model"}, k.TypeMapping.Packages.Include)
	assert.Equal(t, []string{"kafkatype/examples/model/legacy"}, k.TypeMapping.Packages.Exclude)
	assert.True(t, k.TypeMapping.Enabled())
	assert.Equal(t, "orders", k.Consumer.GroupID)
	assert.Equal(t, []string{"orders", "users"}, k.Consumer.Topics)
	assert.Equal(t, "kafkatype/examples/shared", k.Consumer.Properties[TrustedPackagesKey])
	assert.Equal(t, "orders-producer", k.Producer.ClientID)
	assert.NotNil(t, k.Producer.Properties)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092")
	t.Setenv("KAFKA_TYPE_MAPPING_INCLUDE", "pkg/a,pkg/b")
	t.Setenv("KAFKA_TYPE_MAPPING_EXCLUDE", "pkg/a/internal")
	t.Setenv("KAFKA_CONSUMER_GROUP", "env-group")
	t.Setenv("KAFKA_CONSUMER_TOPICS", "t1")
	t.Setenv("KAFKA_PRODUCER_CLIENT_ID", "env-client")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	k := cfg.Kafka
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, k.Brokers)
	assert.Equal(t, []string{"pkg/a", "pkg/b"}, k.TypeMapping.Packages.Include)
	assert.Equal(t, []string{"pkg/a/internal"}, k.TypeMapping.Packages.Exclude)
	assert.Equal(t, "env-group", k.Consumer.GroupID)
	assert.Equal(t, []string{"t1"}, k.Consumer.Topics)
	assert.Equal(t, "env-client", k.Producer.ClientID)
}

func TestLoad_PackagePatternsNormalized(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
kafka:
  type-mapping:
    packages:
      include: [kafkatype/examples/model/..., "kafkatype/examples/shared/", " /... "]
      exclude: [kafkatype/examples/model/legacy/...]
`))
	require.NoError(t, err)

	pkgs := cfg.Kafka.TypeMapping.Packages
	assert.Equal(t, []string{"kafkatype/examples/model", "kafkatype/examples/shared"}, pkgs.Include)
	assert.Equal(t, []string{"kafkatype/examples/model/legacy"}, pkgs.Exclude)
}

func TestPackagePrefixes(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{in: nil, want: nil},
		{in: []string{"a/b"}, want: []string{"a/b"}},
		{in: []string{"a/b/..."}, want: []string{"a/b"}},
		{in: []string{"a/b//", " c/d/ "}, want: []string{"a/b", "c/d"}},
		{in: []string{"/...", " "}, want: []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PackagePrefixes(tt.in), "%q", tt.in)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.False(t, cfg.Kafka.TypeMapping.Enabled())
	assert.NotNil(t, cfg.Kafka.Consumer.Properties)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Kafka.TypeMapping.Enabled())
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "kafka: [unterminated"))
	assert.ErrorContains(t, err, "parse config file")
}

func TestEnabled(t *testing.T) {
	assert.False(t, TypeMappingConfig{}.Enabled())
	assert.False(t, TypeMappingConfig{Packages: PackagesConfig{Exclude: []string{"x"}}}.Enabled())
	assert.True(t, TypeMappingConfig{Packages: PackagesConfig{Include: []string{"x"}}}.Enabled())
}
