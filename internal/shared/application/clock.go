package application

import (
	"time"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// DayOrToday returns day as a date key, or the local date of now when day
// is empty. Callers validate day with the date_key tag first.
func DayOrToday(day string, now time.Time) domain.DateKey {
	if day == "" {
		return domain.TodayKey(now)
	}
	if key, ok := domain.NormalizeDate(day); ok {
		return key
	}
	return domain.TodayKey(now)
}
