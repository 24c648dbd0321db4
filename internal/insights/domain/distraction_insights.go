package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

const (
	// DefaultTopSources is the number of sources reported by AnalyzeDistractions.
	DefaultTopSources = 5

	// longDistractionMinutes is the mean duration above which distractions
	// are reported as long.
	longDistractionMinutes = 10.0

	// busyDayDistractions is the same-day count above which a day is
	// reported as distracted.
	busyDayDistractions = 5
)

// SourceCount is the number of distractions attributed to one source.
type SourceCount struct {
	Source string `json:"source" yaml:"source"`
	Count  int    `json:"count" yaml:"count"`
}

// DistractionInsights bundles the aggregate view of a distraction log.
type DistractionInsights struct {
	Count            int             `json:"count" yaml:"count"`
	TotalMinutes     int             `json:"total_minutes" yaml:"total_minutes"`
	AverageMinutes   float64         `json:"average_minutes" yaml:"average_minutes"`
	MostFrequentType DistractionType `json:"most_frequent_type,omitempty" yaml:"most_frequent_type,omitempty"`
	TopSources       []SourceCount   `json:"top_sources" yaml:"top_sources"`
	TodayCount       int             `json:"today_count" yaml:"today_count"`
	Patterns         []string        `json:"patterns" yaml:"patterns"`
}

// TotalDistractionMinutes sums the durations of all distractions.
func TotalDistractionMinutes(ds []Distraction) int {
	total := 0
	for _, d := range ds {
		total += d.DurationMinutes
	}
	return total
}

// AverageDuration returns the mean duration in minutes, or 0 for none.
func AverageDuration(ds []Distraction) float64 {
	if len(ds) == 0 {
		return 0
	}
	return float64(TotalDistractionMinutes(ds)) / float64(len(ds))
}

// TopSources counts distractions per source and returns at most limit
// sources by descending count. Ties keep first-encountered order. Sources
// are compared exactly as stored; NewDistraction trims them on the way in.
// Distractions without a source are not counted.
func TopSources(ds []Distraction, limit int) []SourceCount {
	counts := make([]SourceCount, 0)
	index := make(map[string]int)
	for _, d := range ds {
		source := d.Source
		if source == "" {
			continue
		}
		i, ok := index[source]
		if !ok {
			i = len(counts)
			index[source] = i
			counts = append(counts, SourceCount{Source: source})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b SourceCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// MostFrequentType returns the most common distraction type. Ties go to the
// type encountered first. It reports false for an empty log.
func MostFrequentType(ds []Distraction) (DistractionType, bool) {
	counts := make(map[DistractionType]int)
	var best DistractionType
	bestCount := 0
	for _, d := range ds {
		counts[d.Type]++
	}
	for _, d := range ds {
		if c := counts[d.Type]; c > bestCount {
			best, bestCount = d.Type, c
		}
	}
	return best, bestCount > 0
}

// DistractionsOn returns the distractions logged on the given local day.
func DistractionsOn(ds []Distraction, day sharedDomain.DateKey) []Distraction {
	result := make([]Distraction, 0)
	for _, d := range ds {
		if sharedDomain.DateKeyOf(d.Timestamp) == day {
			result = append(result, d)
		}
	}
	return result
}

// DetectDistractionPatterns runs independent threshold checks over the log
// and returns one message per check that fires, in a fixed order: most
// frequent type, long average duration, top source, busy day.
func DetectDistractionPatterns(ds []Distraction, now time.Time) []string {
	patterns := make([]string, 0, 4)

	if t, ok := MostFrequentType(ds); ok {
		patterns = append(patterns, fmt.Sprintf("Your most frequent distraction is %s", t.Label()))
	}

	if avg := AverageDuration(ds); avg > longDistractionMinutes {
		patterns = append(patterns, fmt.Sprintf(
			"Distractions last %.1f minutes on average, try to get back on track sooner", avg,
		))
	}

	if top := TopSources(ds, 1); len(top) > 0 {
		patterns = append(patterns, fmt.Sprintf(
			"%s is your top distraction source (%d times)", top[0].Source, top[0].Count,
		))
	}

	if n := len(DistractionsOn(ds, sharedDomain.TodayKey(now))); n > busyDayDistractions {
		patterns = append(patterns, fmt.Sprintf(
			"You have had %d distractions today, consider a focus session with notifications off", n,
		))
	}

	return patterns
}

// AnalyzeDistractions computes every distraction aggregate for the log.
func AnalyzeDistractions(ds []Distraction, now time.Time) DistractionInsights {
	mostFrequent, _ := MostFrequentType(ds)
	return DistractionInsights{
		Count:            len(ds),
		TotalMinutes:     TotalDistractionMinutes(ds),
		AverageMinutes:   AverageDuration(ds),
		MostFrequentType: mostFrequent,
		TopSources:       TopSources(ds, DefaultTopSources),
		TodayCount:       len(DistractionsOn(ds, sharedDomain.TodayKey(now))),
		Patterns:         DetectDistractionPatterns(ds, now),
	}
}
