package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/wellness/domain"
)

// DefaultMoodWindowDays is the summary window when none is given.
const DefaultMoodWindowDays = 14

// MoodDTO is a data transfer object for mood entries.
type MoodDTO struct {
	Date  sharedDomain.DateKey `json:"date" yaml:"date"`
	Score int                  `json:"score" yaml:"score"`
	Note  string               `json:"note,omitempty" yaml:"note,omitempty"`
}

// GetMoodSummaryQuery asks for a mood summary over a trailing window.
type GetMoodSummaryQuery struct {
	UserID     uuid.UUID
	WindowDays int
	// Date is the last day of the window; empty means today.
	Date string
}

// MoodSummaryResult holds the summary and the entries behind it.
type MoodSummaryResult struct {
	Summary domain.MoodSummary `json:"summary" yaml:"summary"`
	Entries []MoodDTO          `json:"entries" yaml:"entries"`
}

// GetMoodSummaryHandler handles the GetMoodSummaryQuery.
type GetMoodSummaryHandler struct {
	moodRepo domain.MoodRepository
	now      func() time.Time
}

// NewGetMoodSummaryHandler creates a new GetMoodSummaryHandler.
func NewGetMoodSummaryHandler(moodRepo domain.MoodRepository) *GetMoodSummaryHandler {
	return &GetMoodSummaryHandler{moodRepo: moodRepo, now: time.Now}
}

// Handle executes the GetMoodSummaryQuery.
func (h *GetMoodSummaryHandler) Handle(ctx context.Context, query GetMoodSummaryQuery) (*MoodSummaryResult, error) {
	window := query.WindowDays
	if window <= 0 {
		window = DefaultMoodWindowDays
	}

	reference := sharedApplication.DayOrToday(query.Date, h.now())
	entries, err := h.moodRepo.FindRange(ctx, query.UserID, sharedDomain.AddDays(reference, -(window-1)), reference)
	if err != nil {
		return nil, err
	}

	dtos := make([]MoodDTO, len(entries))
	for i, e := range entries {
		dtos[i] = MoodDTO{Date: e.Date, Score: e.Score, Note: e.Note}
	}

	return &MoodSummaryResult{
		Summary: domain.SummarizeMood(entries, window, reference),
		Entries: dtos,
	}, nil
}
