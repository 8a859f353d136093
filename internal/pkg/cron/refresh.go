package cron

import (
	"context"
	"time"
)

const (
	JobRefreshRoster      = "refresh_roster"
	JobRefreshPTOCalendar = "refresh_pto_calendar"
)

// Refresher re-fetches a cached source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type SourceJobs struct {
	roster           Refresher
	rosterInterval   time.Duration
	calendar         Refresher
	calendarInterval time.Duration
}

func NewSourceJobs(roster Refresher, rosterInterval time.Duration, calendar Refresher, calendarInterval time.Duration) *SourceJobs {
	return &SourceJobs{
		roster:           roster,
		rosterInterval:   rosterInterval,
		calendar:         calendar,
		calendarInterval: calendarInterval,
	}
}

func (j *SourceJobs) RegisterJobs(scheduler *Scheduler) {
	if j.roster != nil {
		scheduler.AddJob(JobRefreshRoster, j.rosterInterval, j.roster.Refresh)
	}
	if j.calendar != nil {
		scheduler.AddJob(JobRefreshPTOCalendar, j.calendarInterval, j.calendar.Refresh)
	}
}
