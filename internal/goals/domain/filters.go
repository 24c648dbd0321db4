package domain

import (
	"cmp"
	"slices"
)

// FilterByStatus returns the goals with the given status.
func FilterByStatus(goals []Goal, status Status) []Goal {
	result := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if g.Status == status {
			result = append(result, g)
		}
	}
	return result
}

// SortByTargetDate orders goals by ascending target date. Goals without a
// target date follow and keep their input order.
func SortByTargetDate(goals []Goal) []Goal {
	sorted := slices.Clone(goals)
	slices.SortStableFunc(sorted, func(a, b Goal) int {
		aok, bok := a.TargetDate.Valid(), b.TargetDate.Valid()
		switch {
		case aok && bok:
			return cmp.Compare(a.TargetDate, b.TargetDate)
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

// AverageProgress returns the mean progress of the goals, or 0 for none.
func AverageProgress(goals []Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	total := 0
	for _, g := range goals {
		total += g.Progress
	}
	return float64(total) / float64(len(goals))
}
