package domain

import (
	"slices"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// Streaks holds the current and longest consecutive-day runs.
type Streaks struct {
	Current int `json:"current_streak" yaml:"current_streak"`
	Longest int `json:"longest_streak" yaml:"longest_streak"`
}

// ToggleResult is the outcome of toggling one day in a completion set.
type ToggleResult struct {
	Dates     []sharedDomain.DateKey
	Completed bool
	Streaks
}

// ComputeStreaks derives streaks from an unordered, possibly duplicated set
// of completion dates. An empty reference means today.
//
// The current streak counts back from reference and is 0 when reference
// itself is not completed. The longest streak is independent of reference.
func ComputeStreaks(dates []sharedDomain.DateKey, reference sharedDomain.DateKey) Streaks {
	if len(dates) == 0 {
		return Streaks{}
	}
	if reference == "" {
		reference = sharedDomain.TodayKey(time.Now())
	}

	distinct := distinctSorted(dates)
	if len(distinct) == 0 {
		return Streaks{}
	}

	set := make(map[sharedDomain.DateKey]struct{}, len(distinct))
	for _, d := range distinct {
		set[d] = struct{}{}
	}

	current := 0
	for day := reference; day != ""; day = sharedDomain.PreviousDateKey(day) {
		if _, ok := set[day]; !ok {
			break
		}
		current++
	}

	longest, run := 1, 1
	for i := 1; i < len(distinct); i++ {
		if distinct[i] == sharedDomain.NextDateKey(distinct[i-1]) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	return Streaks{Current: current, Longest: longest}
}

// ToggleCompletionForDate adds day to the completion set when absent and
// removes it when present. The returned set is deduplicated and sorted.
// An invalid day leaves the set unchanged apart from normalization.
func ToggleCompletionForDate(dates []sharedDomain.DateKey, day, reference sharedDomain.DateKey) ToggleResult {
	next := distinctSorted(dates)
	completed := false

	if day.Valid() {
		if idx, found := slices.BinarySearch(next, day); found {
			next = slices.Delete(next, idx, idx+1)
		} else {
			next = slices.Insert(next, idx, day)
			completed = true
		}
	}

	return ToggleResult{
		Dates:     next,
		Completed: completed,
		Streaks:   ComputeStreaks(next, reference),
	}
}

// CompletionRate returns the fraction in [0,1] of days in the trailing
// window ending at reference that were completed. Only days on or after
// the habit's creation date count toward the denominator.
func CompletionRate(h Habit, windowDays int, reference sharedDomain.DateKey) float64 {
	if windowDays <= 0 {
		return 0
	}
	if reference == "" {
		reference = sharedDomain.TodayKey(time.Now())
	}
	if !reference.Valid() {
		return 0
	}

	eligible, done := 0, 0
	day := reference
	for i := 0; i < windowDays && day != ""; i++ {
		if h.CreatedAt.Valid() && day.Before(h.CreatedAt) {
			break
		}
		eligible++
		if h.IsCompletedOn(day) {
			done++
		}
		day = sharedDomain.PreviousDateKey(day)
	}

	if eligible == 0 {
		return 0
	}
	return float64(done) / float64(eligible)
}

// CompletedOn returns the habits completed on day, in input order.
func CompletedOn(habits []Habit, day sharedDomain.DateKey) []Habit {
	result := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsCompletedOn(day) {
			result = append(result, h)
		}
	}
	return result
}

// HabitsCompletionRateOn returns the fraction of habits due on day that
// were completed, or 0 when nothing is due.
func HabitsCompletionRateOn(habits []Habit, day sharedDomain.DateKey) float64 {
	due, done := 0, 0
	for _, h := range habits {
		if !h.IsDueOn(day) {
			continue
		}
		due++
		if h.IsCompletedOn(day) {
			done++
		}
	}
	if due == 0 {
		return 0
	}
	return float64(done) / float64(due)
}

// BestStreaks returns the highest current and longest streaks across habits.
func BestStreaks(habits []Habit) Streaks {
	var best Streaks
	for _, h := range habits {
		best.Current = max(best.Current, h.CurrentStreak)
		best.Longest = max(best.Longest, h.LongestStreak)
	}
	return best
}

// distinctSorted returns the valid keys of dates, sorted and deduplicated,
// in a fresh slice.
func distinctSorted(dates []sharedDomain.DateKey) []sharedDomain.DateKey {
	out := make([]sharedDomain.DateKey, 0, len(dates))
	for _, d := range dates {
		if d.Valid() {
			out = append(out, d)
		}
	}
	sharedDomain.SortDateKeys(out)
	return slices.Compact(out)
}
