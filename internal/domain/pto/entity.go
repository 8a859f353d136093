package pto

import "time"

// Record is one leave request from the HR leave-management API.
// An employee may have several records; LeaveDates are calendar dates.
type Record struct {
	EmployeeID           string
	Name                 string
	LeaveType            string
	LeaveTypeDescription string
	Status               string
	StartDate            time.Time
	EndDate              time.Time
	LeaveDates           []time.Time
}
