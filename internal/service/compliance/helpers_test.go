package compliance

import (
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
	"github.com/madwell/signin-backend-go/internal/domain/signin"
)

// Week of Sunday 2024-06-09: Tue 11th, Wed 12th, Thu 13th.
var (
	sun = day(2024, 6, 9)
	mon = day(2024, 6, 10)
	tue = day(2024, 6, 11)
	wed = day(2024, 6, 12)
	thu = day(2024, 6, 13)
	fri = day(2024, 6, 14)
	sat = day(2024, 6, 15)

	testWeek = compliance.WeekWindow{
		Start: time.Date(2024, 6, 9, 1, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC),
	}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, hour, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func smith(required int) roster.Entry {
	return roster.Entry{
		FullName:     "A. Smith",
		PTOName:      "Smith, A",
		Department:   "Engineering",
		Office:       "Denver",
		RequiredDays: required,
	}
}

func signIns(name string, times ...time.Time) []signin.Record {
	out := make([]signin.Record, 0, len(times))
	for _, t := range times {
		out = append(out, signin.Record{Name: name, Site: "HQ", InTime: t})
	}
	return out
}

func leave(name string, dates ...time.Time) pto.Record {
	rec := pto.Record{
		EmployeeID: "E-1",
		Name:       name,
		LeaveType:  "PTO",
		Status:     "Approved",
		LeaveDates: dates,
	}
	if len(dates) > 0 {
		rec.StartDate = dates[0]
		rec.EndDate = dates[len(dates)-1]
	}
	return rec
}
