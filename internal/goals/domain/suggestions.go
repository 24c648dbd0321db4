package domain

import (
	"fmt"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// MaxGoalSuggestions caps the number of suggestions per goal.
const MaxGoalSuggestions = 3

// pacingThreshold is the milestones-per-day rate above which a pacing
// suggestion is emitted.
const pacingThreshold = 0.5

type progressBand struct {
	upTo        int // exclusive upper bound; progress 0 uses its own band
	suggestions [2]string
}

var (
	notStartedBand = [2]string{
		"Break this goal into small milestones you can finish in a day",
		"Pick the easiest milestone and start it today",
	}
	progressBands = []progressBand{
		{30, [2]string{
			"Schedule a fixed time block for this goal each week",
			"Finish the next milestone before adding new ones",
		}},
		{50, [2]string{
			"Review your milestones and drop any that no longer matter",
			"Keep the momentum going with one milestone this week",
		}},
		{80, [2]string{
			"You are past halfway, protect time for the remaining milestones",
			"Tackle the hardest remaining milestone while motivation is high",
		}},
		{100, [2]string{
			"Almost there, plan the final milestones this week",
			"Prepare to wrap up and review what worked",
		}},
	}
)

// GenerateGoalSuggestions returns up to three suggestions in fixed order:
// two for the goal's progress band, then one about related pending tasks,
// then one about pacing toward the target date. The band follows the
// milestones, not the cached Progress field. A finished goal gets no
// progress-band suggestions.
func GenerateGoalSuggestions(goal Goal, tasks []task.Task, today sharedDomain.DateKey) []string {
	suggestions := make([]string, 0, MaxGoalSuggestions+1)

	suggestions = append(suggestions, bandSuggestions(CalculateGoalProgress(goal.Milestones))...)

	pending := task.FilterPending(FindRelatedTasks(goal, tasks))
	if len(pending) > 0 {
		if len(pending) == 1 {
			suggestions = append(suggestions, fmt.Sprintf("Work on the related task %q to move this goal forward", pending[0].Title))
		} else {
			suggestions = append(suggestions, fmt.Sprintf("You have %d related tasks, start with %q", len(pending), pending[0].Title))
		}
	}

	if days, ok := goal.DaysRemaining(today); ok {
		remaining := goal.RemainingMilestones()
		days = max(days, 1)
		rate := float64(remaining) / float64(days)
		if rate > pacingThreshold {
			suggestions = append(suggestions, fmt.Sprintf(
				"%d milestones left with %d days to go, aim for %.1f milestones a day",
				remaining, days, rate,
			))
		}
	}

	if len(suggestions) > MaxGoalSuggestions {
		suggestions = suggestions[:MaxGoalSuggestions]
	}
	return suggestions
}

func bandSuggestions(progress int) []string {
	if progress <= 0 {
		return notStartedBand[:]
	}
	for _, band := range progressBands {
		if progress < band.upTo {
			return band.suggestions[:]
		}
	}
	return nil
}
