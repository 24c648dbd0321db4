package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// Goal is a snapshot of a long-running objective tracked through ordered
// milestones.
//
// Progress is a cached value derived from Milestones. It is only written by
// the milestone helpers and RecomputeProgress.
type Goal struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	Category   string
	TargetDate sharedDomain.DateKey
	Milestones []Milestone
	Progress   int
	Status     Status
	CreatedAt  time.Time
}

// NewGoal creates a new active goal without milestones.
func NewGoal(userID uuid.UUID, title, category string, targetDate sharedDomain.DateKey, createdAt time.Time) (Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Goal{}, ErrEmptyTitle
	}
	if targetDate != "" && !targetDate.Valid() {
		return Goal{}, ErrInvalidTargetDate
	}

	return Goal{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Category:   strings.TrimSpace(category),
		TargetDate: targetDate,
		Milestones: []Milestone{},
		Status:     StatusActive,
		CreatedAt:  createdAt,
	}, nil
}

// RecomputeProgress returns a copy of the goal with progress derived from
// its milestones and the auto-complete rule applied.
func RecomputeProgress(goal Goal) Goal {
	return applyProgress(goal)
}

// Pause puts an active goal on hold.
func (g Goal) Pause() (Goal, error) {
	return g.transition(StatusPaused)
}

// Resume reactivates a paused goal. A resumed goal whose milestones are all
// complete completes immediately.
func (g Goal) Resume() (Goal, error) {
	resumed, err := g.transition(StatusActive)
	if err != nil {
		return g, err
	}
	return applyProgress(resumed), nil
}

func (g Goal) transition(target Status) (Goal, error) {
	if !g.Status.CanTransitionTo(target) {
		return g, ErrInvalidStatusTransition
	}
	g.Status = target
	return g, nil
}

// CompletedMilestones returns the number of completed milestones.
func (g Goal) CompletedMilestones() int {
	n := 0
	for _, m := range g.Milestones {
		if m.Completed {
			n++
		}
	}
	return n
}

// RemainingMilestones returns the number of incomplete milestones.
func (g Goal) RemainingMilestones() int {
	return len(g.Milestones) - g.CompletedMilestones()
}

// DaysRemaining returns the calendar days from today to the target date.
// It reports false when the goal has no valid target date.
func (g Goal) DaysRemaining(today sharedDomain.DateKey) (int, bool) {
	if !g.TargetDate.Valid() || !today.Valid() {
		return 0, false
	}
	return sharedDomain.DaysBetween(today, g.TargetDate), true
}

// Milestone looks up a milestone by id.
func (g Goal) Milestone(id uuid.UUID) (Milestone, bool) {
	idx := g.milestoneIndex(id)
	if idx < 0 {
		return Milestone{}, false
	}
	return g.Milestones[idx], true
}

func (g Goal) milestoneIndex(id uuid.UUID) int {
	for i, m := range g.Milestones {
		if m.ID == id {
			return i
		}
	}
	return -1
}
