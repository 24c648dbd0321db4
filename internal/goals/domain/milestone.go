package domain

import (
	"strings"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// Milestone is a checkpoint contributing equally to a goal's progress.
type Milestone struct {
	ID            uuid.UUID
	Title         string
	Completed     bool
	DueDate       sharedDomain.DateKey
	CompletedDate sharedDomain.DateKey
	Order         int
}

// NewMilestone creates a new, incomplete milestone. Its order is assigned
// when it is added to a goal.
func NewMilestone(title string, dueDate sharedDomain.DateKey) (Milestone, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Milestone{}, ErrEmptyTitle
	}
	if dueDate != "" && !dueDate.Valid() {
		return Milestone{}, ErrInvalidTargetDate
	}
	return Milestone{
		ID:      uuid.New(),
		Title:   title,
		DueDate: dueDate,
	}, nil
}

// AddMilestoneToGoal appends m with order max(order)+1 and recomputes
// progress. It reports false, leaving the goal unchanged, when m has no
// title or its id is already present.
func AddMilestoneToGoal(goal Goal, m Milestone) (Goal, bool) {
	if strings.TrimSpace(m.Title) == "" || goal.milestoneIndex(m.ID) >= 0 {
		return goal, false
	}

	maxOrder := -1
	for _, existing := range goal.Milestones {
		maxOrder = max(maxOrder, existing.Order)
	}
	m.Order = maxOrder + 1

	milestones := make([]Milestone, 0, len(goal.Milestones)+1)
	milestones = append(milestones, goal.Milestones...)
	goal.Milestones = append(milestones, m)
	return applyProgress(goal), true
}

// ToggleMilestoneCompletion flips the completion of one milestone. Completing
// stamps today as the completed date; un-completing clears it. It reports
// false when the id is unknown.
func ToggleMilestoneCompletion(goal Goal, milestoneID uuid.UUID, today sharedDomain.DateKey) (Goal, bool) {
	idx := goal.milestoneIndex(milestoneID)
	if idx < 0 {
		return goal, false
	}

	milestones := cloneMilestones(goal.Milestones)
	m := &milestones[idx]
	m.Completed = !m.Completed
	if m.Completed {
		m.CompletedDate = today
	} else {
		m.CompletedDate = ""
	}

	goal.Milestones = milestones
	return applyProgress(goal), true
}

// RemoveMilestone drops one milestone and recomputes progress. It reports
// false when the id is unknown.
func RemoveMilestone(goal Goal, milestoneID uuid.UUID) (Goal, bool) {
	idx := goal.milestoneIndex(milestoneID)
	if idx < 0 {
		return goal, false
	}

	milestones := make([]Milestone, 0, len(goal.Milestones)-1)
	milestones = append(milestones, goal.Milestones[:idx]...)
	milestones = append(milestones, goal.Milestones[idx+1:]...)

	goal.Milestones = milestones
	return applyProgress(goal), true
}

func cloneMilestones(ms []Milestone) []Milestone {
	out := make([]Milestone, len(ms))
	copy(out, ms)
	return out
}
