package metrics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	Database  *DatabaseMetrics
	Messaging *MessagingMetrics
	Health    *HealthMetrics

	studentsCreated     metric.Int64Counter
	studentsViewed      metric.Int64Counter
	studentsListViewed  metric.Int64Counter
	usersRegistered     metric.Int64Counter
	loginsSucceeded     metric.Int64Counter
	loginsFailed        metric.Int64Counter
	messagesSent        metric.Int64Counter
	realtimeConnections metric.Int64UpDownCounter
	realtimeFrames      metric.Int64Counter
}

func New(serviceName string, logger *slog.Logger) (*Metrics, error) {
	meter := otel.Meter(serviceName)

	database, err := NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	messaging, err := NewMessagingMetrics(meter)
	if err != nil {
		return nil, err
	}

	health, err := NewHealthMetrics(meter)
	if err != nil {
		return nil, err
	}

	if err := registerRuntime(meter, time.Now()); err != nil {
		return nil, err
	}

	m := &Metrics{
		Database:  database,
		Messaging: messaging,
		Health:    health,
	}

	if m.studentsCreated, err = meter.Int64Counter(
		"pi_sosmed.students.created",
		metric.WithDescription("Total number of students created"),
		metric.WithUnit("{student}"),
	); err != nil {
		return nil, err
	}

	if m.studentsViewed, err = meter.Int64Counter(
		"pi_sosmed.students.viewed",
		metric.WithDescription("Total number of students viewed"),
		metric.WithUnit("{view}"),
	); err != nil {
		return nil, err
	}

	if m.studentsListViewed, err = meter.Int64Counter(
		"pi_sosmed.students.list_viewed",
		metric.WithDescription("Total number of times students list was viewed"),
		metric.WithUnit("{view}"),
	); err != nil {
		return nil, err
	}

	if m.usersRegistered, err = meter.Int64Counter(
		"pi_sosmed.users.registered",
		metric.WithDescription("Total number of users registered"),
		metric.WithUnit("{user}"),
	); err != nil {
		return nil, err
	}

	if m.loginsSucceeded, err = meter.Int64Counter(
		"pi_sosmed.logins.succeeded",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	); err != nil {
		return nil, err
	}

	if m.loginsFailed, err = meter.Int64Counter(
		"pi_sosmed.logins.failed",
		metric.WithDescription("Total number of rejected logins"),
		metric.WithUnit("{login}"),
	); err != nil {
		return nil, err
	}

	if m.messagesSent, err = meter.Int64Counter(
		"pi_sosmed.messages.sent",
		metric.WithDescription("Total number of messages accepted by /send-message"),
		metric.WithUnit("{message}"),
	); err != nil {
		return nil, err
	}

	if m.realtimeConnections, err = meter.Int64UpDownCounter(
		"pi_sosmed.realtime.connections",
		metric.WithDescription("Currently open websocket connections"),
		metric.WithUnit("{connection}"),
	); err != nil {
		return nil, err
	}

	if m.realtimeFrames, err = meter.Int64Counter(
		"pi_sosmed.realtime.frames_received",
		metric.WithDescription("Total number of websocket frames received"),
		metric.WithUnit("{frame}"),
	); err != nil {
		return nil, err
	}

	logger.Info("metrics collectors initialized successfully")

	return m, nil
}

func (m *Metrics) RecordStudentCreated(ctx context.Context) {
	if m != nil && m.studentsCreated != nil {
		m.studentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentViewed(ctx context.Context) {
	if m != nil && m.studentsViewed != nil {
		m.studentsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentsListViewed(ctx context.Context) {
	if m != nil && m.studentsListViewed != nil {
		m.studentsListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordUserRegistered(ctx context.Context) {
	if m != nil && m.usersRegistered != nil {
		m.usersRegistered.Add(ctx, 1)
	}
}

func (m *Metrics) RecordLogin(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	if ok && m.loginsSucceeded != nil {
		m.loginsSucceeded.Add(ctx, 1)
	}
	if !ok && m.loginsFailed != nil {
		m.loginsFailed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordMessageSent(ctx context.Context) {
	if m != nil && m.messagesSent != nil {
		m.messagesSent.Add(ctx, 1)
	}
}

func (m *Metrics) RecordRealtimeConnection(ctx context.Context, delta int64) {
	if m != nil && m.realtimeConnections != nil {
		m.realtimeConnections.Add(ctx, delta)
	}
}

func (m *Metrics) RecordRealtimeFrame(ctx context.Context) {
	if m != nil && m.realtimeFrames != nil {
		m.realtimeFrames.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{
		Database:  &DatabaseMetrics{},
		Messaging: &MessagingMetrics{},
		Health:    &HealthMetrics{},
	}
}
