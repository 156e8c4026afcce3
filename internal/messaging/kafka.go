package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"

	"github.com/IBM/sarama"
)

type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewProducerConfig returns the sarama settings used for publishing.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "pi-sosmed"
	config.Producer.RequiredAcks = sarama.WaitForAll
	// Publishing happens inside the request; a failed send is not retried.
	config.Producer.Retry.Max = 0
	config.Producer.Return.Successes = true
	return config
}

func NewKafkaProducer(brokers []string, topic string, logger *slog.Logger, m *metrics.Metrics) (*KafkaProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, err
	}

	logger.Info("kafka producer initialized", "brokers", brokers, "topic", topic)

	return NewKafkaProducerWith(producer, topic, logger, m), nil
}

// NewKafkaProducerWith wraps an existing sarama producer.
func NewKafkaProducerWith(producer sarama.SyncProducer, topic string, logger *slog.Logger, m *metrics.Metrics) *KafkaProducer {
	return &KafkaProducer{
		producer: producer,
		topic:    topic,
		logger:   logger,
		metrics:  m,
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, value any) error {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal message", "error", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(valueBytes),
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	p.metrics.Messaging.RecordPublish(ctx, p.topic, time.Since(start), err)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to send message to kafka", "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "message sent to kafka", "topic", p.topic, "partition", partition, "offset", offset)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}
