package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateKeyLayout is the layout of a canonical calendar-date key.
const DateKeyLayout = "2006-01-02"

// DateKey is a timezone-free calendar date in YYYY-MM-DD form.
type DateKey string

// timestampLayouts are tried in order when a string is not already a date key.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
}

// String returns the key as a plain string.
func (k DateKey) String() string { return string(k) }

// IsZero reports whether the key is empty.
func (k DateKey) IsZero() bool { return k == "" }

// Valid reports whether the key is a well-formed, existing calendar date.
func (k DateKey) Valid() bool {
	_, _, _, ok := k.components()
	return ok
}

// Before reports whether k is strictly earlier than other.
// Keys compare lexically because the layout is fixed-width.
func (k DateKey) Before(other DateKey) bool { return k < other }

// After reports whether k is strictly later than other.
func (k DateKey) After(other DateKey) bool { return k > other }

// Time returns local midnight of the key's date.
func (k DateKey) Time() (time.Time, bool) {
	y, m, d, ok := k.components()
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), true
}

// Weekday returns the day of week of the key, or Sunday for invalid keys.
func (k DateKey) Weekday() time.Weekday {
	t, ok := k.Time()
	if !ok {
		return time.Sunday
	}
	return t.Weekday()
}

// components splits the key into year, month and day.
func (k DateKey) components() (int, int, int, bool) {
	s := string(k)
	if !isDateKeyShape(s) {
		return 0, 0, 0, false
	}
	y, _ := strconv.Atoi(s[0:4])
	m, _ := strconv.Atoi(s[5:7])
	d, _ := strconv.Atoi(s[8:10])
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}
	// Reject dates the calendar would roll over, e.g. 2024-02-30.
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return 0, 0, 0, false
	}
	return y, m, d, true
}

// isDateKeyShape reports whether s looks like NNNN-NN-NN.
func isDateKeyShape(s string) bool {
	if len(s) != len(DateKeyLayout) || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DateKeyOf returns the local calendar date of t.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.In(time.Local).Format(DateKeyLayout))
}

// TodayKey returns the date key of now in the local zone.
func TodayKey(now time.Time) DateKey {
	return DateKeyOf(now)
}

// NormalizeDate converts a calendar value or string into a date key.
// Strings already shaped like YYYY-MM-DD are returned unchanged; other strings
// are parsed as timestamps and reduced to their local calendar date.
// Empty or unparsable input yields ("", false).
func NormalizeDate(input any) (DateKey, bool) {
	switch v := input.(type) {
	case nil:
		return "", false
	case DateKey:
		return normalizeString(string(v))
	case string:
		return normalizeString(v)
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return DateKeyOf(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return "", false
		}
		return DateKeyOf(*v), true
	default:
		return "", false
	}
}

func normalizeString(s string) (DateKey, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if isDateKeyShape(s) {
		return DateKey(s), true
	}
	// Zone-less layouts are read as local wall-clock time.
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DateKeyOf(t), true
		}
	}
	return "", false
}

// PreviousDateKey returns the calendar day before k, or "" for invalid keys.
func PreviousDateKey(k DateKey) DateKey {
	return shiftDateKey(k, -1)
}

// NextDateKey returns the calendar day after k, or "" for invalid keys.
func NextDateKey(k DateKey) DateKey {
	return shiftDateKey(k, 1)
}

// AddDays shifts k by n calendar days.
func AddDays(k DateKey, n int) DateKey {
	return shiftDateKey(k, n)
}

func shiftDateKey(k DateKey, days int) DateKey {
	y, m, d, ok := k.components()
	if !ok {
		return ""
	}
	// time.Date normalizes day overflow into the next month or year.
	t := time.Date(y, time.Month(m), d+days, 0, 0, 0, 0, time.UTC)
	return DateKey(t.Format(DateKeyLayout))
}

// DaysBetween returns the number of calendar days from a to b.
// The result is negative when b is before a and 0 when either key is invalid.
func DaysBetween(a, b DateKey) int {
	ay, am, ad, ok := a.components()
	if !ok {
		return 0
	}
	by, bm, bd, ok := b.components()
	if !ok {
		return 0
	}
	ta := time.Date(ay, time.Month(am), ad, 0, 0, 0, 0, time.UTC)
	tb := time.Date(by, time.Month(bm), bd, 0, 0, 0, 0, time.UTC)
	return int(tb.Sub(ta).Hours() / 24)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// StartOfWeek returns local midnight of the most recent Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// SortDateKeys sorts keys ascending in place.
func SortDateKeys(keys []DateKey) {
	slices.Sort(keys)
}
