// Package application contains the application layer for the insights bounded context.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/pulse/internal/insights/application/commands"
	"github.com/felixgeelhaar/pulse/internal/insights/application/queries"
	"github.com/felixgeelhaar/pulse/internal/insights/application/subscribers"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/cache"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// Service provides a facade over all insights handlers.
type Service struct {
	// Command handlers
	logDistractionHandler  *commands.LogDistractionHandler
	logFocusSessionHandler *commands.LogFocusSessionHandler

	// Query handlers
	distractionReportHandler *queries.GetDistractionReportHandler
	dailyReportHandler       *queries.GetDailyReportHandler

	reportCache *subscribers.ReportCacheSubscriber
}

// NewService creates a new insights service.
func NewService(
	sources queries.DailyReportSources,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	reportCache cache.Cache,
	logger *slog.Logger,
) *Service {
	return &Service{
		logDistractionHandler:  commands.NewLogDistractionHandler(sources.Distractions, outboxRepo, uow),
		logFocusSessionHandler: commands.NewLogFocusSessionHandler(sources.FocusSessions, outboxRepo, uow),

		distractionReportHandler: queries.NewGetDistractionReportHandler(sources.Distractions, sources.FocusSessions),
		dailyReportHandler:       queries.NewGetDailyReportHandler(sources, reportCache, logger),

		reportCache: subscribers.NewReportCacheSubscriber(reportCache, logger),
	}
}

// WithReportTTL overrides how long daily reports stay cached.
func (s *Service) WithReportTTL(ttl time.Duration) *Service {
	s.dailyReportHandler.WithTTL(ttl)
	return s
}

// LogDistraction records an interruption.
func (s *Service) LogDistraction(ctx context.Context, cmd commands.LogDistractionCommand) (*commands.LogDistractionResult, error) {
	return s.logDistractionHandler.Handle(ctx, cmd)
}

// LogFocusSession records a focus session.
func (s *Service) LogFocusSession(ctx context.Context, cmd commands.LogFocusSessionCommand) (*commands.LogFocusSessionResult, error) {
	return s.logFocusSessionHandler.Handle(ctx, cmd)
}

// DistractionReport aggregates distractions and focus over a trailing window.
func (s *Service) DistractionReport(ctx context.Context, query queries.GetDistractionReportQuery) (*queries.DistractionReport, error) {
	return s.distractionReportHandler.Handle(ctx, query)
}

// DailyReport returns the possibly cached report of one day.
func (s *Service) DailyReport(ctx context.Context, query queries.GetDailyReportQuery) (*queries.DailyReport, error) {
	return s.dailyReportHandler.Handle(ctx, query)
}

// ReportCacheSubscriber returns the consumer that keeps cached reports fresh.
func (s *Service) ReportCacheSubscriber() *subscribers.ReportCacheSubscriber {
	return s.reportCache
}
