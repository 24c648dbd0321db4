package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
)

// minGoalWordLength drops short goal-title words from relatedness matching.
const minGoalWordLength = 3

// FindRelatedTasks returns the tasks whose title shares a word with the
// goal title. A goal word of at least three characters matches a task word
// when either contains the other, ignoring case. Task words have no length
// floor, so a short task word inside a long goal word still matches.
func FindRelatedTasks(goal Goal, tasks []task.Task) []task.Task {
	goalWords := make([]string, 0)
	for _, w := range strings.Fields(strings.ToLower(goal.Title)) {
		if utf8.RuneCountInString(w) >= minGoalWordLength {
			goalWords = append(goalWords, w)
		}
	}

	related := make([]task.Task, 0)
	if len(goalWords) == 0 {
		return related
	}
	for _, t := range tasks {
		if sharesWord(goalWords, strings.Fields(strings.ToLower(t.Title))) {
			related = append(related, t)
		}
	}
	return related
}

func sharesWord(goalWords, taskWords []string) bool {
	for _, gw := range goalWords {
		for _, tw := range taskWords {
			if strings.Contains(gw, tw) || strings.Contains(tw, gw) {
				return true
			}
		}
	}
	return false
}
