package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustbill/dustbill_backend/internal/adapters/database/pgsql"
	"github.com/dustbill/dustbill_backend/internal/adapters/email"
	"github.com/dustbill/dustbill_backend/internal/adapters/events"
	"github.com/dustbill/dustbill_backend/internal/core/ports/gateways"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/core/services"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/dustbill/dustbill_backend/pkg/config"
	"github.com/dustbill/dustbill_backend/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// app holds everything a command needs. close releases it in reverse order of acquisition.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	pool      *pgxpool.Pool
	services  *portssvc.ServiceContainer
	analytics *utils.PosthogClientWrapper
	redis     *redis.Client
	closers   []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp loads configuration, connects to PostgreSQL and the optional brokers, and builds the services.
func newApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}

	a.pool, err = database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	a.closers = append(a.closers, a.pool.Close)
	logger.Info("Database connection pool established.")

	a.analytics = utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	a.closers = append(a.closers, a.analytics.Close)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		a.redis = redis.NewClient(opts)
		if err := a.redis.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, rate limits fall back to memory", slog.String("error", err.Error()))
			_ = a.redis.Close()
			a.redis = nil
		} else {
			a.closers = append(a.closers, func() { _ = a.redis.Close() })
			logger.Info("Redis connected for rate limiting.")
		}
	}

	publisher, err := newEventPublisher(cfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	if closer, ok := publisher.(interface{ Close() error }); ok {
		a.closers = append(a.closers, func() {
			if err := closer.Close(); err != nil {
				logger.Warn("Error closing event publisher", slog.String("error", err.Error()))
			}
		})
	}

	a.services = services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(a.pool), services.Gateways{
		Email:     email.NewResendSender(cfg.ResendAPIKey),
		Events:    publisher,
		Analytics: a.analytics,
	})
	return a, nil
}

func newEventPublisher(cfg *config.Config, logger *slog.Logger) (gateways.EventPublisher, error) {
	if cfg.RabbitMQURL == "" {
		return events.NewLogPublisher(logger), nil
	}
	publisher, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	logger.Info("Publishing document events to RabbitMQ", slog.String("queue", events.DocumentEventsQueue))
	return publisher, nil
}
