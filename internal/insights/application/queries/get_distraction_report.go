// Package queries contains query handlers for the insights bounded context.
package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// DefaultReportDays is the trailing window of a distraction report.
const DefaultReportDays = 7

// GetDistractionReportQuery asks for distraction and focus aggregates over
// the trailing Days, today included.
type GetDistractionReportQuery struct {
	UserID uuid.UUID
	Days   int
}

// FocusStats aggregates focus sessions.
type FocusStats struct {
	Sessions       int     `json:"sessions" yaml:"sessions"`
	Minutes        int     `json:"minutes" yaml:"minutes"`
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate"`
}

// DistractionReport is the result of GetDistractionReportQuery.
type DistractionReport struct {
	Days         int                        `json:"days" yaml:"days"`
	Since        sharedDomain.DateKey       `json:"since" yaml:"since"`
	Distractions domain.DistractionInsights `json:"distractions" yaml:"distractions"`
	Focus        FocusStats                 `json:"focus" yaml:"focus"`
}

// GetDistractionReportHandler handles the GetDistractionReportQuery.
type GetDistractionReportHandler struct {
	distractionRepo domain.DistractionRepository
	sessionRepo     domain.FocusSessionRepository
	now             func() time.Time
}

// NewGetDistractionReportHandler creates a new GetDistractionReportHandler.
func NewGetDistractionReportHandler(distractionRepo domain.DistractionRepository, sessionRepo domain.FocusSessionRepository) *GetDistractionReportHandler {
	return &GetDistractionReportHandler{
		distractionRepo: distractionRepo,
		sessionRepo:     sessionRepo,
		now:             time.Now,
	}
}

// Handle executes the GetDistractionReportQuery.
func (h *GetDistractionReportHandler) Handle(ctx context.Context, query GetDistractionReportQuery) (*DistractionReport, error) {
	days := query.Days
	if days <= 0 {
		days = DefaultReportDays
	}

	now := h.now()
	since := sharedDomain.StartOfDay(now).AddDate(0, 0, -(days - 1))

	distractions, err := h.distractionRepo.FindSince(ctx, query.UserID, since)
	if err != nil {
		return nil, err
	}
	sessions, err := h.sessionRepo.FindSince(ctx, query.UserID, since)
	if err != nil {
		return nil, err
	}

	return &DistractionReport{
		Days:         days,
		Since:        sharedDomain.DateKeyOf(since),
		Distractions: domain.AnalyzeDistractions(distractions, now),
		Focus:        focusStats(sessions),
	}, nil
}

func focusStats(sessions []domain.FocusSession) FocusStats {
	return FocusStats{
		Sessions:       len(sessions),
		Minutes:        domain.TotalFocusMinutes(sessions),
		CompletionRate: domain.FocusCompletionRate(sessions),
	}
}
