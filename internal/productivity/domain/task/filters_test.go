package task

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
)

func titles(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestSortByPriority(t *testing.T) {
	tasks := []Task{
		{Title: "a", Priority: value_objects.PriorityLow},
		{Title: "b", Priority: value_objects.PriorityHigh},
		{Title: "c", Priority: value_objects.PriorityMedium},
	}

	sorted := SortByPriority(tasks)

	assert.Equal(t, []string{"b", "c", "a"}, titles(sorted))
	assert.Equal(t, []string{"a", "b", "c"}, titles(tasks), "input must not change")
}

func TestSortByPriority_StableAndUnknownLast(t *testing.T) {
	tasks := []Task{
		{Title: "low-1", Priority: value_objects.PriorityLow},
		{Title: "odd", Priority: value_objects.Priority("someday")},
		{Title: "high-1", Priority: value_objects.PriorityHigh},
		{Title: "low-2", Priority: value_objects.PriorityLow},
		{Title: "high-2", Priority: value_objects.PriorityHigh},
	}

	assert.Equal(t,
		[]string{"high-1", "high-2", "low-1", "low-2", "odd"},
		titles(SortByPriority(tasks)),
	)
}

func TestSortByDueDate(t *testing.T) {
	tasks := []Task{
		{Title: "undated-1"},
		{Title: "late", DueDate: "2024-02-01"},
		{Title: "bad", DueDate: "soon"},
		{Title: "early", DueDate: "2024-01-05"},
		{Title: "undated-2"},
	}

	sorted := SortByDueDate(tasks)

	assert.Equal(t, []string{"early", "late", "undated-1", "bad", "undated-2"}, titles(sorted))
	assert.Equal(t, "undated-1", tasks[0].Title)
}

func TestDateFilters(t *testing.T) {
	// Wednesday 2024-01-10; the week runs Sunday 2024-01-07 to Saturday 2024-01-13.
	now := time.Date(2024, time.January, 10, 14, 0, 0, 0, time.Local)
	createdToday := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.Local)
	createdEarlier := time.Date(2024, time.January, 2, 8, 0, 0, 0, time.Local)

	tasks := []Task{
		{Title: "due-today", DueDate: "2024-01-10", CreatedAt: createdEarlier},
		{Title: "new-undated", CreatedAt: createdToday},
		{Title: "old-undated", CreatedAt: createdEarlier},
		{Title: "overdue", DueDate: "2024-01-08", CreatedAt: createdEarlier},
		{Title: "overdue-done", DueDate: "2024-01-08", CreatedAt: createdEarlier, Completed: true},
		{Title: "saturday", DueDate: "2024-01-13", CreatedAt: createdEarlier},
		{Title: "next-sunday", DueDate: "2024-01-14", CreatedAt: createdEarlier},
		{Title: "last-year", DueDate: "2023-12-30", CreatedAt: createdEarlier},
	}

	assert.Equal(t, []string{"due-today", "new-undated"}, titles(FilterToday(tasks, now)))
	assert.Equal(t,
		[]string{"due-today", "new-undated", "overdue", "overdue-done", "saturday"},
		titles(FilterThisWeek(tasks, now)),
	)
	assert.Equal(t, []string{"overdue", "last-year"}, titles(FilterOverdue(tasks, now)))
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(nil))
	assert.Equal(t, 0.0, CompletionRate([]Task{}))

	tasks := []Task{{Completed: true}, {}, {}, {Completed: true}}
	assert.Equal(t, 0.5, CompletionRate(tasks))
}

func TestGroupByCategory(t *testing.T) {
	tasks := []Task{
		{Title: "1", Category: "work"},
		{Title: "2"},
		{Title: "3", Category: "home"},
		{Title: "4", Category: "work"},
		{Title: "5", Category: "  "},
	}

	groups := GroupByCategory(tasks)

	if assert.Len(t, groups, 3) {
		assert.Equal(t, "work", groups[0].Category)
		assert.Equal(t, []string{"1", "4"}, titles(groups[0].Tasks))
		assert.Equal(t, UncategorizedLabel, groups[1].Category)
		assert.Equal(t, []string{"2", "5"}, titles(groups[1].Tasks))
		assert.Equal(t, "home", groups[2].Category)
	}
	assert.Empty(t, GroupByCategory(nil))
}

func TestSimpleFilters(t *testing.T) {
	tasks := []Task{
		{Title: "a", Category: "Work", TimeEstimate: 30, FocusMode: true},
		{Title: "b", Category: "home", TimeEstimate: 15, Completed: true},
		{Title: "c", TimeEstimate: 20},
	}

	assert.Equal(t, []string{"a"}, titles(FilterByCategory(tasks, "work")))
	assert.Equal(t, []string{"c"}, titles(FilterByCategory(tasks, "uncategorized")))
	assert.Equal(t, []string{"b"}, titles(FilterCompleted(tasks)))
	assert.Equal(t, []string{"a", "c"}, titles(FilterPending(tasks)))
	assert.Equal(t, []string{"a"}, titles(FilterFocusMode(tasks)))
	assert.Equal(t, 65, TotalEstimatedMinutes(tasks))
	assert.Equal(t, 50, RemainingEstimatedMinutes(tasks))
}
