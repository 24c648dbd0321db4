package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	local := time.Date(2024, time.March, 9, 15, 30, 0, 0, time.Local)
	localPtr := &local

	tests := []struct {
		name   string
		input  any
		want   domain.DateKey
		wantOK bool
	}{
		{"date key string unchanged", "2024-01-05", "2024-01-05", true},
		{"date key type unchanged", domain.DateKey("2024-12-31"), "2024-12-31", true},
		{"surrounding whitespace", "  2024-01-05 ", "2024-01-05", true},
		{"time value", local, "2024-03-09", true},
		{"time pointer", localPtr, "2024-03-09", true},
		{"local timestamp string", local.Format(time.RFC3339), "2024-03-09", true},
		{"timestamp without zone", "2024-03-09T15:30:00", "2024-03-09", true},
		{"empty string", "", "", false},
		{"blank string", "   ", "", false},
		{"garbage", "not a date", "", false},
		{"nil", nil, "", false},
		{"nil time pointer", (*time.Time)(nil), "", false},
		{"zero time", time.Time{}, "", false},
		{"unsupported type", 42, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := domain.NormalizeDate(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeDate_ConvertsToLocalCalendarDay(t *testing.T) {
	instant := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	got, ok := domain.NormalizeDate(instant.Format(time.RFC3339))

	assert.True(t, ok)
	assert.Equal(t, domain.DateKeyOf(instant), got)
}

func TestPreviousAndNextDateKey(t *testing.T) {
	tests := []struct {
		key  domain.DateKey
		prev domain.DateKey
		next domain.DateKey
	}{
		{"2024-01-10", "2024-01-09", "2024-01-11"},
		{"2024-01-01", "2023-12-31", "2024-01-02"},
		{"2023-12-31", "2023-12-30", "2024-01-01"},
		{"2024-02-28", "2024-02-27", "2024-02-29"},
		{"2024-03-01", "2024-02-29", "2024-03-02"},
		{"2023-03-01", "2023-02-28", "2023-03-02"},
		{"2024-03-10", "2024-03-09", "2024-03-11"},
		{"2024-11-03", "2024-11-02", "2024-11-04"},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.prev, domain.PreviousDateKey(tc.key))
			assert.Equal(t, tc.next, domain.NextDateKey(tc.key))
			assert.Equal(t, tc.key, domain.NextDateKey(domain.PreviousDateKey(tc.key)))
		})
	}
}

func TestShiftInvalidKey(t *testing.T) {
	assert.Equal(t, domain.DateKey(""), domain.NextDateKey("bogus"))
	assert.Equal(t, domain.DateKey(""), domain.PreviousDateKey("2024-02-30"))
	assert.Equal(t, domain.DateKey(""), domain.AddDays("", 3))
}

func TestDateKey_Valid(t *testing.T) {
	assert.True(t, domain.DateKey("2024-02-29").Valid())
	assert.False(t, domain.DateKey("2023-02-29").Valid())
	assert.False(t, domain.DateKey("2024-13-01").Valid())
	assert.False(t, domain.DateKey("2024-1-01").Valid())
	assert.False(t, domain.DateKey("").Valid())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 9, domain.DaysBetween("2024-01-01", "2024-01-10"))
	assert.Equal(t, -1, domain.DaysBetween("2024-01-01", "2023-12-31"))
	assert.Equal(t, 366, domain.DaysBetween("2024-01-01", "2025-01-01"))
	assert.Equal(t, 0, domain.DaysBetween("bad", "2024-01-01"))
}

func TestStartOfWeek(t *testing.T) {
	// 2024-01-10 is a Wednesday.
	wed := time.Date(2024, time.January, 10, 18, 45, 0, 0, time.Local)
	start := domain.StartOfWeek(wed)

	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, domain.DateKey("2024-01-07"), domain.DateKeyOf(start))
	assert.Equal(t, 0, start.Hour())

	sunday := time.Date(2024, time.January, 7, 9, 0, 0, 0, time.Local)
	assert.Equal(t, domain.DateKey("2024-01-07"), domain.DateKeyOf(domain.StartOfWeek(sunday)))
}

func TestSortDateKeys(t *testing.T) {
	keys := []domain.DateKey{"2024-01-03", "2023-12-31", "2024-01-01"}
	domain.SortDateKeys(keys)
	assert.Equal(t, []domain.DateKey{"2023-12-31", "2024-01-01", "2024-01-03"}, keys)
}
