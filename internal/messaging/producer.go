// Package messaging publishes events to an external broker.
package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haifazahra-ui/pi-sosmed/internal/config"
	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"
)

const (
	DriverNATS  = "nats"
	DriverKafka = "kafka"
)

// Producer publishes JSON encoded values to a fixed destination.
type Producer interface {
	Publish(ctx context.Context, value any) error
	Close() error
}

// New builds the producer selected by cfg.Driver. It returns a nil Producer
// when no driver is configured.
func New(cfg config.MessagingConfig, logger *slog.Logger, m *metrics.Metrics) (Producer, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case DriverNATS:
		p, err := NewNATSProducer(cfg.NATSURL, cfg.Subject, logger, m)
		if err != nil {
			return nil, fmt.Errorf("connect to NATS: %w", err)
		}
		return p, nil
	case DriverKafka:
		p, err := NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger, m)
		if err != nil {
			return nil, fmt.Errorf("connect to kafka: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown messaging driver %q", cfg.Driver)
	}
}
