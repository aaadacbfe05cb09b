package factory

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kafkatype/internal/config"
	"kafkatype/label"
)

func assembled(t *testing.T, cfg config.Config) *Factories {
	t.Helper()

	f, err := Assemble(cfg, Options{Registry: testRegistry(t), Logger: quietLogger()})
	require.NoError(t, err)

	return f
}

func TestConsumerFactory_ReaderConfig(t *testing.T) {
	f := assembled(t, testConfig(pkg))

	rc := f.Consumer.ReaderConfig()
	assert.Equal(t, []string{"localhost:9092"}, rc.Brokers)
	assert.Equal(t, "orders", rc.GroupID)
	assert.Equal(t, []string{"orders"}, rc.GroupTopics)
	assert.Equal(t, 1, rc.MinBytes)
	assert.Equal(t, 10_000_000, rc.MaxBytes)
	assert.Equal(t, 500*time.Millisecond, rc.MaxWait)
}

func TestConsumerFactory_NewReaderValidates(t *testing.T) {
	cfg := testConfig(pkg)
	cfg.Kafka.Brokers = nil
	_, err := assembled(t, cfg).Consumer.NewReader()
	assert.ErrorContains(t, err, "broker")

	cfg = testConfig(pkg)
	cfg.Kafka.Consumer.GroupID = ""
	_, err = assembled(t, cfg).Consumer.NewReader()
	assert.ErrorContains(t, err, "group id")

	cfg = testConfig(pkg)
	cfg.Kafka.Consumer.Topics = nil
	_, err = assembled(t, cfg).Consumer.NewReader()
	assert.ErrorContains(t, err, "topic")
}

func TestConsumerFactory_ResolveType(t *testing.T) {
	f := assembled(t, testConfig(pkg))

	typ, err := f.Consumer.ResolveType("order")
	require.NoError(t, err)
	assert.Equal(t, "Order", typ.Name())

	_, err = f.Consumer.ResolveType("missing")
	assert.ErrorIs(t, err, label.ErrUnresolvedType)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = f.Consumer.ResolveType("ordr")
	assert.ErrorIs(t, err, label.ErrUnresolvedType)
	assert.ErrorContains(t, err, `did you mean "order"?`)
}

func TestConsumerFactory_ResolveTypeUntrusted(t *testing.T) {
	f := assembled(t, testConfig(pkg))
	require.NoError(t, f.Consumer.SetProperty(config.TrustedPackagesKey, "other/pkg"))

	_, err := f.Consumer.ResolveType("order")
	assert.ErrorIs(t, err, ErrUntrustedType)

	require.NoError(t, f.Consumer.SetProperty(config.TrustedPackagesKey, "*"))
	_, err = f.Consumer.ResolveType("order")
	assert.NoError(t, err)
}

func TestConsumerFactory_ResolveTypeUnregistered(t *testing.T) {
	f := assembled(t, testConfig(pkg))
	require.NoError(t, f.Consumer.SetProperty(config.TypeMappingsKey, "ghost:"+pkg+".Ghost"))

	_, err := f.Consumer.ResolveType("ghost")
	assert.ErrorIs(t, err, label.ErrUnresolvedType)
}

func TestClientFactory_SetPropertyRejectsBadMappings(t *testing.T) {
	f := assembled(t, testConfig(pkg))
	before := f.Consumer.Properties()[config.TypeMappingsKey]

	err := f.Consumer.SetProperty(config.TypeMappingsKey, "a:x.A,a:x.B")
	assert.ErrorIs(t, err, label.ErrLabelCollision)

	v, ok := f.Consumer.Property(config.TypeMappingsKey)
	assert.True(t, ok)
	assert.Equal(t, before, v)
	assert.Equal(t, 2, f.Consumer.TypeMappings().Len())
}

func TestProducerFactory_NewWriter(t *testing.T) {
	cfg := testConfig(pkg)
	cfg.Kafka.Producer.ClientID = "orders-producer"
	f := assembled(t, cfg)

	w, err := f.Producer.NewWriter()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "localhost:9092", w.Addr.String())
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)

	transport, ok := w.Transport.(*kafka.Transport)
	require.True(t, ok)
	assert.Equal(t, "orders-producer", transport.ClientID)
	assert.Equal(t, "orders-producer", f.Producer.ClientID())
}

func TestProducerFactory_NewWriterRequiresBrokers(t *testing.T) {
	cfg := testConfig(pkg)
	cfg.Kafka.Brokers = nil

	_, err := assembled(t, cfg).Producer.NewWriter()
	assert.Error(t, err)
}

func TestProducerFactory_LabelFor(t *testing.T) {
	f := assembled(t, testConfig(pkg))

	l, err := f.Producer.LabelFor(&Order{})
	require.NoError(t, err)
	assert.Equal(t, "order", l)

	l, err = f.Producer.LabelFor(User{})
	require.NoError(t, err)
	assert.Equal(t, "user", l)

	_, err = f.Producer.LabelFor(OrderV2{})
	assert.ErrorIs(t, err, label.ErrUnresolvedType)

	_, err = f.Producer.LabelFor(nil)
	assert.ErrorIs(t, err, label.ErrUnresolvedType)
}

func TestFactories_ZeroValue(t *testing.T) {
	var consumer ConsumerFactory

	require.NotPanics(t, func() {
		require.NoError(t, consumer.SetProperty(config.TrustedPackagesKey, "*"))
	})
	assert.Equal(t, []string{"*"}, consumer.TrustedPackages())

	_, err := consumer.ResolveType("order")
	assert.ErrorIs(t, err, label.ErrUnresolvedType)

	_, err = consumer.NewReader()
	assert.ErrorContains(t, err, "broker")

	var producer ProducerFactory

	require.NoError(t, producer.SetProperty(config.TypeMappingsKey, "order:"+pkg+".Order"))
	assert.Equal(t, 1, producer.TypeMappings().Len())

	l, err := producer.LabelFor(Order{})
	require.NoError(t, err)
	assert.Equal(t, "order", l)

	_, err = producer.NewWriter()
	assert.Error(t, err)
}

func TestNewConsumerFactory_RejectsBadMappings(t *testing.T) {
	_, err := NewConsumerFactory(testConfig(pkg).Kafka, config.Properties{config.TypeMappingsKey: "order:a.A,order:b.B"}, nil)
	assert.ErrorIs(t, err, label.ErrLabelCollision)

	_, err = NewProducerFactory(testConfig(pkg).Kafka, config.Properties{config.TypeMappingsKey: "order"}, nil)
	assert.ErrorContains(t, err, "malformed type mapping entry")
}
