package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pulse/pkg/observability"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Relay the outbox and consume events until interrupted",
	Long: `Run the outbox processor continuously, purge published messages
past retention, and, when RabbitMQ is configured, consume the event
exchange to keep the report cache fresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}
		return runWorker(cmd.Context(), a)
	},
}

func runWorker(ctx context.Context, a *App) error {
	cfg := a.Config
	logger := a.Logger.With("component", "worker")

	var consumer *eventbus.RabbitMQConsumer
	if cfg.RabbitMQURL != "" && a.Container.InProcessEventBus == nil {
		registry := eventbus.NewConsumerRegistry(logger)
		c, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:       cfg.RabbitMQURL,
			QueueName: cfg.RabbitMQQueue,
			Exchange:  cfg.RabbitMQExchange,
			Logger:    logger,
		}, registry)
		if err != nil {
			return fmt.Errorf("failed to start consumer: %w", err)
		}
		defer func() {
			if err := c.Close(); err != nil {
				logger.Warn("error closing consumer", "error", err)
			}
		}()

		for _, sub := range a.Container.Consumers() {
			if err := c.RegisterConsumer(countingConsumer{EventConsumer: sub, metrics: a.Metrics}); err != nil {
				return err
			}
		}
		consumer = c
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	consumeErr := make(chan error, 1)
	if consumer != nil {
		go func() { consumeErr <- consumer.Start(ctx) }()
	}

	processor := a.Container.OutboxProcessor
	processor.Start(ctx)
	defer processor.Stop()

	cleanupInterval := cfg.OutboxCleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = 24 * time.Hour
	}
	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	logger.Info("worker started",
		"poll_interval", cfg.OutboxPollInterval,
		"consumer", consumer != nil,
	)

	for {
		select {
		case <-ctx.Done():
			logWorkerStats(a, logger)
			return nil
		case err := <-consumeErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				logWorkerStats(a, logger)
				return fmt.Errorf("consumer stopped: %w", err)
			}
			consumeErr = nil
		case <-cleanup.C:
			deleted, err := processor.Purge(ctx)
			if err != nil {
				logger.Error("outbox cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("outbox cleanup completed", "deleted", deleted, "retention_days", cfg.OutboxRetentionDays)
			}
			recordOutboxGauges(ctx, a, logger)
		}
	}
}

func recordOutboxGauges(ctx context.Context, a *App, logger *slog.Logger) {
	counts, err := a.Container.OutboxRepo.Counts(ctx)
	if err != nil {
		logger.Warn("failed to count outbox messages", "error", err)
		return
	}
	a.Metrics.Gauge(observability.MetricOutboxPending, float64(counts.Pending+counts.Retrying))
	a.Metrics.Gauge(observability.MetricOutboxDead, float64(counts.DeadLettered))
}

func logWorkerStats(a *App, logger *slog.Logger) {
	stats := a.Container.OutboxProcessor.GetStats()
	logger.Info("worker stopped",
		"published", stats.PublishedCount,
		"failed", stats.FailedCount,
		"dead", stats.DeadCount,
		"consumed", a.Metrics.GetCounter(observability.MetricEventsConsumed),
		"last_error", stats.LastError,
	)
}

// countingConsumer counts the events a consumer handled successfully.
type countingConsumer struct {
	eventbus.EventConsumer
	metrics observability.Metrics
}

func (c countingConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if err := c.EventConsumer.Handle(ctx, event); err != nil {
		return err
	}
	c.metrics.Counter(observability.MetricEventsConsumed, 1)
	return nil
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
