package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/auth"
	"github.com/haifazahra-ui/pi-sosmed/internal/config"
	"github.com/haifazahra-ui/pi-sosmed/internal/db"
	"github.com/haifazahra-ui/pi-sosmed/internal/health"
	"github.com/haifazahra-ui/pi-sosmed/internal/logger"
	"github.com/haifazahra-ui/pi-sosmed/internal/message"
	"github.com/haifazahra-ui/pi-sosmed/internal/messaging"
	"github.com/haifazahra-ui/pi-sosmed/internal/password"
	"github.com/haifazahra-ui/pi-sosmed/internal/realtime"
	"github.com/haifazahra-ui/pi-sosmed/internal/student"
	"github.com/haifazahra-ui/pi-sosmed/internal/telemetry"
	"github.com/haifazahra-ui/pi-sosmed/internal/user"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config    *config.Config
	handler   http.Handler
	server    *http.Server
	logger    *slog.Logger
	db        *bun.DB
	producer  messaging.Producer
	telemetry *telemetry.Telemetry
}

func New(ctx context.Context) (*App, error) {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application", "commit", GitCommit, "built", BuildTime)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slogLogger.Info("config loaded", "config", cfg.String())

	tel, err := telemetry.Init(ctx, cfg.Telemetry, ServiceName, Version, slogLogger)
	if err != nil {
		return nil, err
	}

	database, err := db.New(ctx, cfg.Database)
	if err != nil {
		tel.Shutdown(ctx, slogLogger)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    slogLogger,
		db:        database,
		telemetry: tel,
	}

	if err := db.RunMigrations(ctx, database, (*student.Student)(nil), (*user.User)(nil)); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := tel.Metrics.Database.RegisterDB(database.DB, otel.Meter(ServiceName)); err != nil {
		slogLogger.Warn("failed to register database pool metrics", "error", err)
	}

	producer, err := messaging.New(cfg.Messaging, slogLogger, tel.Metrics)
	if err != nil {
		// Fan-out is optional; the echo endpoint works without it.
		slogLogger.Warn("message producer unavailable", "driver", cfg.Messaging.Driver, "error", err)
		producer = nil
	}
	app.producer = producer

	hasher := password.NewBcrypt(cfg.Auth.BcryptCost)
	signer := auth.NewTokenSigner(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	studentService := student.NewService(student.NewRepository(database, tel.Metrics))
	authService := auth.NewService(user.NewRepository(database, hasher, tel.Metrics), hasher, signer)
	messageService := message.NewService(producer, slogLogger)

	app.handler = NewRouter(Handlers{
		Health:   health.NewHandler(database, slogLogger, tel.Metrics),
		Auth:     auth.NewHandler(authService, slogLogger, tel.Metrics),
		Student:  student.NewHandler(studentService, slogLogger, tel.Metrics),
		Message:  message.NewHandler(messageService, slogLogger, tel.Metrics),
		Realtime: realtime.NewHandler(cfg.Realtime, slogLogger, tel.Metrics),
	}, signer, cfg.Server.CORSOrigins, slogLogger)

	slogLogger.Info("application initialized successfully")

	return app, nil
}

// Run blocks until the server stops. It returns nil after Shutdown.
func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         a.config.Server.Addr(),
		Handler:      a.handler,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	var err error
	if a.server != nil {
		err = a.server.Shutdown(ctx)
	}
	return errors.Join(err, a.close(ctx))
}

func (a *App) close(ctx context.Context) error {
	var errs []error
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close producer: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
