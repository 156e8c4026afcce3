package message

import (
	"context"
	"log/slog"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/messaging"
)

type Service struct {
	producer messaging.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService returns a message service. producer may be nil, in which case
// messages are only echoed.
func NewService(producer messaging.Producer, logger *slog.Logger) *Service {
	return &Service{
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// SendMessage publishes data when a producer is configured. Publish errors
// are logged and never returned.
func (s *Service) SendMessage(ctx context.Context, data any) MessageEvent {
	event := MessageEvent{
		Data:   data,
		SentAt: s.now().UTC(),
	}

	if s.producer == nil {
		return event
	}

	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish message", "error", err)
	}
	return event
}
