package compliance

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// JoinOutcome describes how a roster row matched another data source by name.
type JoinOutcome string

const (
	JoinMatched   JoinOutcome = "matched"
	JoinAbsent    JoinOutcome = "absent"
	JoinAmbiguous JoinOutcome = "ambiguous"
)

// UnmatchedPolicy decides what happens to sign-in or PTO names that have no roster row.
// Neither policy produces a compliance record for them.
type UnmatchedPolicy string

const (
	UnmatchedIgnore UnmatchedPolicy = "ignore"
	UnmatchedReport UnmatchedPolicy = "report"
)

func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	switch UnmatchedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", UnmatchedIgnore:
		return UnmatchedIgnore, nil
	case UnmatchedReport:
		return UnmatchedReport, nil
	default:
		return "", fmt.Errorf("unknown unmatched policy %q", s)
	}
}

const (
	SourceSignIn = "sign_in"
	SourcePTO    = "pto"
)

// Unmatched is a name seen in the sign-in log or the PTO calendar that no roster row claims.
type Unmatched struct {
	Name   string
	Source string
}

// CoreWeekdays are the only days counted toward presence or offset by PTO.
var CoreWeekdays = []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday}

func IsCoreWeekday(d time.Weekday) bool {
	return d == time.Tuesday || d == time.Wednesday || d == time.Thursday
}

// DayLabel returns the short label used in reports, e.g. "Tue".
func DayLabel(d time.Weekday) string {
	return d.String()[:3]
}

func DayLabels(days []time.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, DayLabel(d))
	}
	return out
}

// WeekWindow is the Sunday-to-Saturday week an upload batch belongs to.
// Start is anchored at 01:00 local time; End is Start plus six days.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the calendar date of t lies in [Start, End].
func (w WeekWindow) Contains(t time.Time) bool {
	d := civilDate(t)
	return !d.Before(civilDate(w.Start)) && !d.After(civilDate(w.End))
}

// Days returns the seven days of the window.
func (w WeekWindow) Days() []time.Time {
	days := make([]time.Time, 0, 7)
	for d := w.Start; !civilDate(d).After(civilDate(w.End)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CoreDays returns the Tuesday, Wednesday and Thursday of the window.
func (w WeekWindow) CoreDays() []time.Time {
	var days []time.Time
	for _, d := range w.Days() {
		if IsCoreWeekday(d.Weekday()) {
			days = append(days, d)
		}
	}
	return days
}

func (w WeekWindow) String() string {
	return "[" + w.Start.Format("2006-01-02") + ", " + w.End.Format("2006-01-02") + "]"
}

// Record is the weekly compliance result for one roster entry.
type Record struct {
	Name       string
	Department string
	Office     string
	Status     Status

	RequiredDays        int
	AdjustedRequirement int
	PresentCount        int
	PTOCount            int

	SignedInDays []time.Weekday
	AbsentDays   []time.Weekday
	PTODays      []time.Weekday
	PTODates     []time.Time
	PresentDates []time.Time

	SignInMatch JoinOutcome
	PTOMatch    JoinOutcome
}

func (r Record) Passed() bool {
	return r.Status == StatusPass
}

// Details renders the explanation shown next to each employee, e.g. "2 / 3 [ PTOs=0 ]".
func (r Record) Details() string {
	return fmt.Sprintf("%d / %d [ PTOs=%d ]", r.PresentCount, r.AdjustedRequirement, r.PTOCount)
}
