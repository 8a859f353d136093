package compliance

import (
	"sort"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
	"github.com/madwell/signin-backend-go/internal/domain/signin"
)

// Aggregate computes one employee's weekly compliance record from the full sign-in log.
// Sign-ins are trusted to belong to the batch week; only PTO dates are checked against w.
func Aggregate(entry roster.Entry, log []signin.Record, w compliance.WeekWindow, calendar []pto.Record) compliance.Record {
	idx := newNameIndex([]roster.Entry{entry}, log, calendar)
	return idx.aggregate(entry, w)
}

func (idx *nameIndex) aggregate(entry roster.Entry, w compliance.WeekWindow) compliance.Record {
	var (
		present   []time.Time
		seenDates = make(map[string]struct{})
		seenDays  = make(map[time.Weekday]bool)
	)

	for _, t := range idx.signIns[nameKey(entry.FullName)] {
		if !compliance.IsCoreWeekday(t.Weekday()) {
			continue
		}
		// Several badge taps on one day count once.
		k := t.Format("2006-01-02")
		if _, dup := seenDates[k]; dup {
			continue
		}
		seenDates[k] = struct{}{}
		seenDays[t.Weekday()] = true
		present = append(present, time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))
	}
	sort.Slice(present, func(i, j int) bool { return present[i].Before(present[j]) })

	ptoDates := matchLeaveDates(idx.leave[nameKey(entry.PTOName)], w)
	ptoCount := len(ptoDates)

	adjusted := max(0, entry.RequiredDays-ptoCount)
	presentCount := min(adjusted, len(present))

	status := compliance.StatusFail
	if presentCount >= adjusted {
		status = compliance.StatusPass
	}

	signed := []time.Weekday{}
	absent := []time.Weekday{}
	for _, d := range compliance.CoreWeekdays {
		if seenDays[d] {
			signed = append(signed, d)
		} else if status == compliance.StatusFail {
			absent = append(absent, d)
		}
	}

	ptoDays := make([]time.Weekday, 0, ptoCount)
	for _, d := range ptoDates {
		ptoDays = append(ptoDays, d.Weekday())
	}

	return compliance.Record{
		Name:                entry.FullName,
		Department:          entry.Department,
		Office:              entry.Office,
		Status:              status,
		RequiredDays:        entry.RequiredDays,
		AdjustedRequirement: adjusted,
		PresentCount:        presentCount,
		PTOCount:            ptoCount,
		SignedInDays:        signed,
		AbsentDays:          absent,
		PTODays:             ptoDays,
		PTODates:            ptoDates,
		PresentDates:        present,
		SignInMatch:         idx.signInOutcome(entry.FullName),
		PTOMatch:            idx.ptoOutcome(entry.PTOName),
	}
}
