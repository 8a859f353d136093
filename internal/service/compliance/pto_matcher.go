package compliance

import (
	"sort"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/pto"
)

// MatchPTO returns the leave dates of ptoName that fall on a core weekday inside the window,
// ordered Tuesday, Wednesday, Thursday. Every record carrying the name is scanned.
func MatchPTO(calendar []pto.Record, ptoName string, w compliance.WeekWindow) []time.Time {
	key := nameKey(ptoName)
	if key == "" {
		return nil
	}

	var records []pto.Record
	for _, rec := range calendar {
		if nameKey(rec.Name) == key {
			records = append(records, rec)
		}
	}
	return matchLeaveDates(records, w)
}

func matchLeaveDates(records []pto.Record, w compliance.WeekWindow) []time.Time {
	seen := make(map[string]struct{})
	var dates []time.Time

	for _, rec := range records {
		for _, d := range rec.LeaveDates {
			if !compliance.IsCoreWeekday(d.Weekday()) || !w.Contains(d) {
				continue
			}
			// Overlapping requests may list the same day twice; it is credited once.
			k := d.Format("2006-01-02")
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			dates = append(dates, d)
		}
	}

	sort.SliceStable(dates, func(i, j int) bool {
		if dates[i].Weekday() != dates[j].Weekday() {
			return dates[i].Weekday() < dates[j].Weekday()
		}
		return dates[i].Before(dates[j])
	})
	return dates
}
