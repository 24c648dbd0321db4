package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	goalCommands "github.com/felixgeelhaar/pulse/internal/goals/application/commands"
	goalQueries "github.com/felixgeelhaar/pulse/internal/goals/application/queries"
	habitCommands "github.com/felixgeelhaar/pulse/internal/habits/application/commands"
	habitQueries "github.com/felixgeelhaar/pulse/internal/habits/application/queries"
	insightsApp "github.com/felixgeelhaar/pulse/internal/insights/application"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/commands"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/queries"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/cache"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/crypto"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/resilience"
	wellnessCommands "github.com/felixgeelhaar/pulse/internal/wellness/application/commands"
	wellnessQueries "github.com/felixgeelhaar/pulse/internal/wellness/application/queries"
	"github.com/felixgeelhaar/pulse/pkg/config"
	"github.com/felixgeelhaar/pulse/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	// Current user (configured per environment)
	UserID uuid.UUID

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis, nil when the report cache lives in process
	RedisClient *redis.Client

	Repos      Repositories
	OutboxRepo outbox.Repository
	UnitOfWork sharedApplication.UnitOfWork

	// Report cache, invalidated by the insights subscriber
	ReportCache cache.Cache

	// Publishers. InProcessEventBus is nil when events go to RabbitMQ.
	EventPublisher    eventbus.Publisher
	InProcessEventBus *eventbus.InProcessEventBus

	// Outbox Processor
	OutboxProcessor *outbox.Processor

	// Habit Handlers
	CreateHabitHandler           *habitCommands.CreateHabitHandler
	ToggleHabitCompletionHandler *habitCommands.ToggleHabitCompletionHandler
	ListHabitsHandler            *habitQueries.ListHabitsHandler
	GetHabitStatsHandler         *habitQueries.GetHabitStatsHandler

	// Task Handlers
	CreateTaskHandler   *commands.CreateTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	ListTasksHandler    *queries.ListTasksHandler
	GetTaskStatsHandler *queries.GetTaskStatsHandler

	// Goal Handlers
	CreateGoalHandler         *goalCommands.CreateGoalHandler
	AddMilestoneHandler       *goalCommands.AddMilestoneHandler
	ToggleMilestoneHandler    *goalCommands.ToggleMilestoneHandler
	RemoveMilestoneHandler    *goalCommands.RemoveMilestoneHandler
	SetGoalStatusHandler      *goalCommands.SetGoalStatusHandler
	ListGoalsHandler          *goalQueries.ListGoalsHandler
	GetGoalSuggestionsHandler *goalQueries.GetGoalSuggestionsHandler

	// Mood Handlers
	LogMoodHandler        *wellnessCommands.LogMoodHandler
	GetMoodSummaryHandler *wellnessQueries.GetMoodSummaryHandler

	// Insights
	InsightsService *insightsApp.Service
}

// NewContainer connects to the configured backends and wires all
// handlers. Without DATABASE_URL it opens and migrates the local SQLite
// database. Without REDIS_URL or RABBITMQ_URL the report cache and the
// event bus run in process; in development an unreachable Redis or
// RabbitMQ also falls back to them.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", cfg.UserID, err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
		UserID:  userID,
	}

	conn, err := database.NewConnection(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		Schema:     cfg.DatabaseSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	logger.Debug("connected to database", "driver", c.DBDriver)

	if c.DBDriver == database.DriverSQLite {
		result, err := migrations.Run(ctx, conn, "")
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		if len(result.Applied) > 0 {
			logger.Info("applied SQLite migrations", "versions", result.Applied)
		}
	}

	var sealer crypto.TextSealer
	if cfg.EncryptionKey != "" {
		aes, err := crypto.NewAESSealerFromBase64Key(cfg.EncryptionKey)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		sealer = aes
	}

	factory := NewRepositoryFactory(conn, sealer)
	if c.Repos, err = factory.Build(); err != nil {
		c.Close()
		return nil, err
	}
	c.OutboxRepo = c.Repos.Outbox
	c.UnitOfWork = factory.UnitOfWork()

	if err := c.initReportCache(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.InsightsService = insightsApp.NewService(c.Repos.ReportSources(), c.OutboxRepo, c.UnitOfWork, c.ReportCache, logger).
		WithReportTTL(cfg.ReportCacheTTL)

	if err := c.initEventPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	processorConfig := outbox.DefaultProcessorConfig()
	processorConfig.PollInterval = cfg.OutboxPollInterval
	processorConfig.BatchSize = cfg.OutboxBatchSize
	processorConfig.MaxRetries = cfg.OutboxMaxRetries
	processorConfig.RetentionDays = cfg.OutboxRetentionDays
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, logger)

	c.wireHandlers()
	c.registerHealthChecks()

	return c, nil
}

func (c *Container) initReportCache(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		c.ReportCache = cache.NewMemoryCache()
		return nil
	}

	client, err := cache.DialRedis(ctx, c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return err
		}
		c.Logger.Warn("Redis not available, report cache will use in-memory fallback", "error", err)
		c.ReportCache = cache.NewMemoryCache()
		return nil
	}

	c.RedisClient = client
	c.ReportCache = cache.NewBreakerCache(
		cache.NewRedisCache(client, cache.DefaultNamespace),
		resilience.DefaultBreakerConfig(),
		c.Logger,
	)
	c.Logger.Debug("connected to Redis")
	return nil
}

func (c *Container) initEventPublisher() error {
	if c.Config.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Config.RabbitMQExchange, c.Logger)
		if err == nil {
			c.EventPublisher = eventbus.NewBreakerPublisher(publisher, resilience.DefaultBreakerConfig(), c.Logger)
			return nil
		}
		if !c.Config.IsDevelopment() {
			return err
		}
		c.Logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
	}

	bus := eventbus.NewInProcessEventBus(c.Logger)
	for _, consumer := range c.Consumers() {
		bus.RegisterConsumer(consumer)
	}
	c.InProcessEventBus = bus
	c.EventPublisher = bus
	return nil
}

// Consumers returns the event consumers Pulse runs, in process or in the
// worker.
func (c *Container) Consumers() []eventbus.EventConsumer {
	return []eventbus.EventConsumer{
		c.InsightsService.ReportCacheSubscriber(),
	}
}

func (c *Container) wireHandlers() {
	repos := c.Repos

	// Habits
	c.CreateHabitHandler = habitCommands.NewCreateHabitHandler(repos.Habits, c.OutboxRepo, c.UnitOfWork)
	c.ToggleHabitCompletionHandler = habitCommands.NewToggleHabitCompletionHandler(repos.Habits, c.OutboxRepo, c.UnitOfWork)
	c.ListHabitsHandler = habitQueries.NewListHabitsHandler(repos.Habits)
	c.GetHabitStatsHandler = habitQueries.NewGetHabitStatsHandler(repos.Habits)

	// Tasks
	c.CreateTaskHandler = commands.NewCreateTaskHandler(repos.Tasks, c.OutboxRepo, c.UnitOfWork)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(repos.Tasks, c.OutboxRepo, c.UnitOfWork)
	c.ListTasksHandler = queries.NewListTasksHandler(repos.Tasks)
	c.GetTaskStatsHandler = queries.NewGetTaskStatsHandler(repos.Tasks)

	// Goals
	c.CreateGoalHandler = goalCommands.NewCreateGoalHandler(repos.Goals, c.OutboxRepo, c.UnitOfWork)
	c.AddMilestoneHandler = goalCommands.NewAddMilestoneHandler(repos.Goals, c.OutboxRepo, c.UnitOfWork)
	c.ToggleMilestoneHandler = goalCommands.NewToggleMilestoneHandler(repos.Goals, c.OutboxRepo, c.UnitOfWork)
	c.RemoveMilestoneHandler = goalCommands.NewRemoveMilestoneHandler(repos.Goals, c.OutboxRepo, c.UnitOfWork)
	c.SetGoalStatusHandler = goalCommands.NewSetGoalStatusHandler(repos.Goals, c.OutboxRepo, c.UnitOfWork)
	c.ListGoalsHandler = goalQueries.NewListGoalsHandler(repos.Goals)
	c.GetGoalSuggestionsHandler = goalQueries.NewGetGoalSuggestionsHandler(repos.Goals, repos.Tasks)

	// Mood
	c.LogMoodHandler = wellnessCommands.NewLogMoodHandler(repos.Moods, c.OutboxRepo, c.UnitOfWork)
	c.GetMoodSummaryHandler = wellnessQueries.NewGetMoodSummaryHandler(repos.Moods)
}

func (c *Container) registerHealthChecks() {
	c.Health.Register("database", observability.PingChecker(string(c.DBDriver), observability.HealthStatusUnhealthy, c.DBConn.Ping))

	if c.RedisClient != nil {
		client := c.RedisClient
		c.Health.Register("cache", observability.PingChecker("redis", observability.HealthStatusDegraded, func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))
	} else {
		c.Health.Register("cache", observability.StaticChecker(observability.HealthStatusHealthy, "in-memory report cache"))
	}

	if breaker, ok := c.EventPublisher.(*eventbus.BreakerPublisher); ok {
		c.Health.Register("eventbus", func(context.Context) observability.HealthCheckResult {
			state := breaker.State()
			if state == "open" {
				return observability.HealthCheckResult{Status: observability.HealthStatusDegraded, Message: "rabbitmq circuit open"}
			}
			return observability.HealthCheckResult{Status: observability.HealthStatusHealthy, Message: "rabbitmq circuit " + state}
		})
	} else {
		c.Health.Register("eventbus", observability.StaticChecker(observability.HealthStatusHealthy, "in-process event bus"))
	}
}

// FlushOutbox publishes every pending event. The CLI calls it after each
// write so that in-process subscribers see the change before the process
// exits. Failures stay in the outbox for the next flush or the worker.
func (c *Container) FlushOutbox(ctx context.Context) {
	n, err := c.OutboxProcessor.Drain(ctx)
	if err != nil {
		c.Logger.WarnContext(ctx, "outbox flush failed", "error", err)
		return
	}
	if n > 0 {
		c.Metrics.Counter(observability.MetricEventsPublished, int64(n))
	}
}

// Close releases every connection the container opened.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.ReportCache != nil {
		// Closes the Redis client when there is one.
		if err := c.ReportCache.Close(); err != nil {
			c.Logger.Warn("error closing report cache", "error", err)
		}
	} else if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Debug("database connection closed", "driver", c.DBDriver)
		}
	}
}
