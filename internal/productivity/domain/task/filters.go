package task

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// UncategorizedLabel is the bucket for tasks without a category.
const UncategorizedLabel = "Uncategorized"

// CategoryGroup holds the tasks of one category in insertion order.
type CategoryGroup struct {
	Category string
	Tasks    []Task
}

// Every function in this file returns a fresh slice and leaves its input
// untouched.

// SortByPriority orders tasks high, medium, low. Ties keep input order.
func SortByPriority(tasks []Task) []Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b Task) int {
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	})
	return sorted
}

// SortByDueDate orders tasks by ascending due date. Tasks without a usable
// due date follow all dated tasks and keep their input order.
func SortByDueDate(tasks []Task) []Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b Task) int {
		ak, aok := a.DueKey()
		bk, bok := b.DueKey()
		switch {
		case aok && bok:
			return cmp.Compare(ak, bk)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// FilterToday returns tasks due today, plus undated tasks created today.
func FilterToday(tasks []Task, now time.Time) []Task {
	today := domain.TodayKey(now)
	return filter(tasks, func(t Task) bool {
		if due, ok := t.DueKey(); ok {
			return due == today
		}
		return t.CreatedKey() == today
	})
}

// FilterThisWeek returns tasks whose due date (or creation date when
// undated) falls in the week starting at the most recent Sunday.
func FilterThisWeek(tasks []Task, now time.Time) []Task {
	start := domain.DateKeyOf(domain.StartOfWeek(now))
	end := domain.AddDays(start, 7)
	return filter(tasks, func(t Task) bool {
		key, ok := t.DueKey()
		if !ok {
			key = t.CreatedKey()
		}
		return key != "" && !key.Before(start) && key.Before(end)
	})
}

// FilterOverdue returns incomplete tasks whose due date is before today.
func FilterOverdue(tasks []Task, now time.Time) []Task {
	today := domain.TodayKey(now)
	return filter(tasks, func(t Task) bool {
		due, ok := t.DueKey()
		return ok && due.Before(today) && !t.Completed
	})
}

// FilterByCategory returns tasks in the given category, compared
// case-insensitively. UncategorizedLabel selects tasks without a category.
func FilterByCategory(tasks []Task, category string) []Task {
	return filter(tasks, func(t Task) bool {
		return strings.EqualFold(categoryLabel(t), strings.TrimSpace(category))
	})
}

// FilterCompleted returns completed tasks.
func FilterCompleted(tasks []Task) []Task {
	return filter(tasks, func(t Task) bool { return t.Completed })
}

// FilterPending returns tasks not yet completed.
func FilterPending(tasks []Task) []Task {
	return filter(tasks, func(t Task) bool { return !t.Completed })
}

// FilterFocusMode returns tasks flagged for focus mode.
func FilterFocusMode(tasks []Task) []Task {
	return filter(tasks, func(t Task) bool { return t.FocusMode })
}

// CompletionRate returns completed/total, or 0 for no tasks.
func CompletionRate(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks))
}

// GroupByCategory buckets tasks by category in first-appearance order.
func GroupByCategory(tasks []Task) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	index := make(map[string]int)
	for _, t := range tasks {
		label := categoryLabel(t)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, CategoryGroup{Category: label})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

// TotalEstimatedMinutes sums the time estimates of all tasks.
func TotalEstimatedMinutes(tasks []Task) int {
	total := 0
	for _, t := range tasks {
		total += t.TimeEstimate
	}
	return total
}

// RemainingEstimatedMinutes sums the time estimates of pending tasks.
func RemainingEstimatedMinutes(tasks []Task) int {
	return TotalEstimatedMinutes(FilterPending(tasks))
}

func categoryLabel(t Task) string {
	if !t.HasCategory() {
		return UncategorizedLabel
	}
	return strings.TrimSpace(t.Category)
}

func filter(tasks []Task, keep func(Task) bool) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}
