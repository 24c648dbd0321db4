package domain

import "math"

// CalculateGoalProgress returns round(100*completed/total), or 0 when there
// are no milestones.
func CalculateGoalProgress(milestones []Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) * 100 / float64(len(milestones))))
}

// ShouldAutoCompleteGoal reports whether an active goal has every one of
// its milestones completed.
func ShouldAutoCompleteGoal(goal Goal) bool {
	if goal.Status != StatusActive || len(goal.Milestones) == 0 {
		return false
	}
	for _, m := range goal.Milestones {
		if !m.Completed {
			return false
		}
	}
	return true
}

// applyProgress refreshes the cached progress and applies the
// active→completed transition. Paused and completed goals keep their status.
func applyProgress(goal Goal) Goal {
	goal.Progress = CalculateGoalProgress(goal.Milestones)
	if ShouldAutoCompleteGoal(goal) {
		goal.Status = StatusCompleted
	}
	return goal
}
