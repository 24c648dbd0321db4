package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// Trend describes the direction of mood over a window.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// trendThreshold is the minimum change in mean score between the two
// halves of a window that counts as a trend.
const trendThreshold = 0.5

// MoodSummary aggregates mood entries over a trailing window.
type MoodSummary struct {
	WindowDays int                  `json:"window_days" yaml:"window_days"`
	EntryCount int                  `json:"entry_count" yaml:"entry_count"`
	Average    float64              `json:"average" yaml:"average"`
	Trend      Trend                `json:"trend" yaml:"trend"`
	BestDay    sharedDomain.DateKey `json:"best_day,omitempty" yaml:"best_day,omitempty"`
	BestScore  int                  `json:"best_score,omitempty" yaml:"best_score,omitempty"`
}

// SummarizeMood aggregates the entries dated within the windowDays ending
// at reference. The trend compares the mean of the older half of the window
// against the newer half; either half being empty yields insufficient data.
// Ties for the best day go to the earliest date.
func SummarizeMood(entries []MoodEntry, windowDays int, reference sharedDomain.DateKey) MoodSummary {
	summary := MoodSummary{WindowDays: windowDays, Trend: TrendInsufficientData}
	if windowDays <= 0 {
		return summary
	}
	if reference == "" {
		reference = sharedDomain.TodayKey(time.Now())
	}
	if !reference.Valid() {
		return summary
	}

	start := sharedDomain.AddDays(reference, -(windowDays - 1))
	newerStart := sharedDomain.AddDays(reference, -(windowDays/2 - 1))

	var total, olderTotal, newerTotal, olderCount, newerCount int
	for _, e := range entries {
		if e.Date.Before(start) || e.Date.After(reference) {
			continue
		}
		summary.EntryCount++
		total += e.Score

		if e.Score > summary.BestScore || (e.Score == summary.BestScore && e.Date.Before(summary.BestDay)) {
			summary.BestScore = e.Score
			summary.BestDay = e.Date
		}

		if windowDays >= 2 && !e.Date.Before(newerStart) {
			newerTotal += e.Score
			newerCount++
		} else {
			olderTotal += e.Score
			olderCount++
		}
	}

	if summary.EntryCount == 0 {
		return summary
	}
	summary.Average = float64(total) / float64(summary.EntryCount)

	if olderCount == 0 || newerCount == 0 {
		return summary
	}
	delta := float64(newerTotal)/float64(newerCount) - float64(olderTotal)/float64(olderCount)
	switch {
	case delta > trendThreshold:
		summary.Trend = TrendImproving
	case delta < -trendThreshold:
		summary.Trend = TrendDeclining
	default:
		summary.Trend = TrendStable
	}
	return summary
}
