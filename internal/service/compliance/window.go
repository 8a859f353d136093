package compliance

import (
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
)

// maxBatchDays is the widest span, in whole days, a single upload may cover.
const maxBatchDays = 7

// ResolveWeek derives the Sunday-to-Saturday window a sign-in batch belongs to.
// A batch spanning more than seven whole days is rejected with a *compliance.MultiWeekUploadError.
func ResolveWeek(timestamps []time.Time) (compliance.WeekWindow, error) {
	if len(timestamps) == 0 {
		return compliance.WeekWindow{}, compliance.ErrEmptyBatch
	}

	minTime, maxTime := timestamps[0], timestamps[0]
	for _, t := range timestamps[1:] {
		if t.Before(minTime) {
			minTime = t
		}
		if t.After(maxTime) {
			maxTime = t
		}
	}

	if days := int(wallClock(maxTime).Sub(wallClock(minTime)).Hours() / 24); days > maxBatchDays {
		return compliance.WeekWindow{}, &compliance.MultiWeekUploadError{Min: minTime, Max: maxTime, Days: days}
	}

	anchor := minTime
	// Sunday is the last day of a Monday-indexed week; shift it so it opens its own week.
	if anchor.Weekday() == time.Sunday {
		anchor = anchor.AddDate(0, 0, 1)
	}

	start := anchor.AddDate(0, 0, -(mondayIndex(anchor.Weekday()) + 1))
	start = time.Date(start.Year(), start.Month(), start.Day(), 1, 0, 0, 0, start.Location())

	return compliance.WeekWindow{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}, nil
}

// wallClock drops the zone offset so spans are measured in local calendar time,
// independent of DST transitions.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// mondayIndex numbers weekdays Monday=0 .. Sunday=6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
