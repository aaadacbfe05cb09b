package factory

import (
	"fmt"
	"reflect"
	"time"

	"github.com/segmentio/kafka-go"

	"kafkatype/internal/config"
	"kafkatype/label"
)

// ProducerFactory creates Kafka writers.
type ProducerFactory struct {
	clientFactory

	clientID string

	// RequiredAcks, Balancer and BatchTimeout are passed to every writer.
	RequiredAcks kafka.RequiredAcks
	Balancer     kafka.Balancer
	BatchTimeout time.Duration
}

// ProducerCustomizer adjusts a producer factory after assembly.
type ProducerCustomizer func(*ProducerFactory)

// NewProducerFactory creates a producer factory over cfg's brokers and
// client id. props is copied; its type mappings must parse.
func NewProducerFactory(cfg config.KafkaConfig, props config.Properties, registry *label.Registry) (*ProducerFactory, error) {
	base, err := newClientFactory(cfg.Brokers, props, registry)
	if err != nil {
		return nil, fmt.Errorf("producer factory: %w", err)
	}

	return &ProducerFactory{
		clientFactory: base,
		clientID:      cfg.Producer.ClientID,
		RequiredAcks:  kafka.RequireAll,
		Balancer:      &kafka.Hash{},
	}, nil
}

// ClientID returns the client id sent to the brokers.
func (f *ProducerFactory) ClientID() string {
	return f.clientID
}

// NewWriter creates a writer. The caller owns it and must close it.
func (f *ProducerFactory) NewWriter() (*kafka.Writer, error) {
	if len(f.brokers) == 0 {
		return nil, fmt.Errorf("kafka producer requires at least one broker")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(f.Brokers()...),
		RequiredAcks: f.RequiredAcks,
		Balancer:     f.Balancer,
		BatchTimeout: f.BatchTimeout,
	}

	if f.clientID != "" {
		w.Transport = &kafka.Transport{ClientID: f.clientID}
	}

	return w, nil
}

// LabelFor returns the label v's type is mapped to.
func (f *ProducerFactory) LabelFor(v any) (string, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := label.TypeName(t)

	l, ok := f.mappings.LabelOf(name)
	if !ok {
		return "", fmt.Errorf("%w: no label mapped to type %s", label.ErrUnresolvedType, name)
	}

	return l, nil
}
