package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distraction(t DistractionType, source string, minutes int, at time.Time) Distraction {
	return Distraction{ID: uuid.New(), Type: t, Source: source, DurationMinutes: minutes, Timestamp: at}
}

func TestNewDistraction(t *testing.T) {
	at := time.Now()
	d, err := NewDistraction(uuid.New(), DistractionEmail, "  Gmail ", 5, at)

	require.NoError(t, err)
	assert.Equal(t, "Gmail", d.Source)
	assert.Nil(t, d.FocusSessionID)

	sessionID := uuid.New()
	linked := d.WithFocusSession(sessionID)
	require.NotNil(t, linked.FocusSessionID)
	assert.Equal(t, sessionID, *linked.FocusSessionID)
	assert.Nil(t, d.FocusSessionID)

	_, err = NewDistraction(uuid.New(), DistractionType("boredom"), "", 5, at)
	assert.ErrorIs(t, err, ErrInvalidDistractionType)

	_, err = NewDistraction(uuid.New(), DistractionEmail, "", -1, at)
	assert.ErrorIs(t, err, ErrNegativeDuration)
}

func TestTopSources(t *testing.T) {
	at := time.Now()
	ds := []Distraction{
		distraction(DistractionSocialMedia, "twitter", 1, at),
		distraction(DistractionEmail, "gmail", 1, at),
		distraction(DistractionSocialMedia, "reddit", 1, at),
		distraction(DistractionNotification, "slack", 1, at),
		distraction(DistractionPhoneCall, "phone", 1, at),
		distraction(DistractionColleague, "office", 1, at),
		distraction(DistractionSocialMedia, "reddit", 1, at),
	}

	top := TopSources(ds, 5)

	require.LessOrEqual(t, len(top), 5)
	assert.Equal(t, []SourceCount{
		{"reddit", 2},
		{"twitter", 1},
		{"gmail", 1},
		{"slack", 1},
		{"phone", 1},
	}, top)
}

func TestTopSources_SkipsMissingSources(t *testing.T) {
	at := time.Now()
	ds := []Distraction{
		distraction(DistractionInternalThought, "", 1, at),
		distraction(DistractionNoise, "", 1, at),
	}

	assert.Empty(t, TopSources(ds, 5))
	assert.Empty(t, TopSources(nil, 5))
}

func TestTopSources_GroupsOnStoredValue(t *testing.T) {
	at := time.Now()
	ds := []Distraction{
		distraction(DistractionNotification, "Slack ", 1, at),
		distraction(DistractionNotification, "Slack", 1, at),
		distraction(DistractionNotification, "Slack", 1, at),
	}

	assert.Equal(t, []SourceCount{{"Slack", 2}, {"Slack ", 1}}, TopSources(ds, 5))
}

func TestMostFrequentType(t *testing.T) {
	at := time.Now()

	_, ok := MostFrequentType(nil)
	assert.False(t, ok)

	ds := []Distraction{
		distraction(DistractionEmail, "a", 1, at),
		distraction(DistractionNoise, "b", 1, at),
		distraction(DistractionNoise, "c", 1, at),
		distraction(DistractionEmail, "d", 1, at),
	}
	got, ok := MostFrequentType(ds)
	assert.True(t, ok)
	assert.Equal(t, DistractionEmail, got, "ties go to the first encountered")
}

func TestAggregates(t *testing.T) {
	at := time.Now()
	ds := []Distraction{
		distraction(DistractionEmail, "a", 4, at),
		distraction(DistractionEmail, "a", 8, at),
	}

	assert.Equal(t, 12, TotalDistractionMinutes(ds))
	assert.Equal(t, 6.0, AverageDuration(ds))
	assert.Equal(t, 0.0, AverageDuration(nil))
	assert.Equal(t, 0, TotalDistractionMinutes(nil))
}

func TestDetectDistractionPatterns(t *testing.T) {
	now := time.Date(2024, time.January, 10, 16, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	t.Run("empty log", func(t *testing.T) {
		assert.Empty(t, DetectDistractionPatterns(nil, now))
	})

	t.Run("type and source only", func(t *testing.T) {
		ds := []Distraction{distraction(DistractionSocialMedia, "reddit", 5, now)}

		patterns := DetectDistractionPatterns(ds, now)

		if assert.Len(t, patterns, 2) {
			assert.Contains(t, patterns[0], "social media")
			assert.Contains(t, patterns[1], "reddit")
		}
	})

	t.Run("type without source", func(t *testing.T) {
		ds := []Distraction{distraction(DistractionInternalThought, "", 5, now)}

		assert.Len(t, DetectDistractionPatterns(ds, now), 1)
	})

	t.Run("long average", func(t *testing.T) {
		ds := []Distraction{distraction(DistractionColleague, "", 25, now)}

		patterns := DetectDistractionPatterns(ds, now)

		if assert.Len(t, patterns, 2) {
			assert.Contains(t, patterns[1], "25.0 minutes")
		}
	})

	t.Run("busy day fires above five", func(t *testing.T) {
		ds := make([]Distraction, 0)
		for i := 0; i < 6; i++ {
			ds = append(ds, distraction(DistractionNotification, "slack", 1, now))
		}
		ds = append(ds, distraction(DistractionNotification, "slack", 1, yesterday))

		patterns := DetectDistractionPatterns(ds, now)

		if assert.Len(t, patterns, 3) {
			assert.Contains(t, patterns[2], "6 distractions today")
		}

		exactlyFive := append(ds[:5:5], ds[6])
		assert.Len(t, DetectDistractionPatterns(exactlyFive, now), 2)
	})
}

func TestAnalyzeDistractions(t *testing.T) {
	now := time.Date(2024, time.January, 10, 16, 0, 0, 0, time.Local)
	ds := []Distraction{
		distraction(DistractionEmail, "gmail", 3, now),
		distraction(DistractionEmail, "gmail", 5, now.AddDate(0, 0, -2)),
		distraction(DistractionPhoneCall, "mom", 10, now),
	}

	insights := AnalyzeDistractions(ds, now)

	assert.Equal(t, 3, insights.Count)
	assert.Equal(t, 18, insights.TotalMinutes)
	assert.InDelta(t, 6.0, insights.AverageMinutes, 1e-9)
	assert.Equal(t, DistractionEmail, insights.MostFrequentType)
	assert.Equal(t, []SourceCount{{"gmail", 2}, {"mom", 1}}, insights.TopSources)
	assert.Equal(t, 2, insights.TodayCount)
	assert.Len(t, insights.Patterns, 2)
}
