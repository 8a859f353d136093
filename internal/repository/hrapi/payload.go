package hrapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/pto"
)

const leaveDateLayout = "2006-01-02"

type calendarPayload struct {
	RequestList *[]leaveRequestDTO `json:"requestList"`
}

type leaveRequestDTO struct {
	EmployeeID           flexString `json:"employeeId"`
	Name                 string     `json:"name"`
	LeaveType            string     `json:"leaveType"`
	LeaveTypeDescription string     `json:"leaveTypeDescription"`
	Status               string     `json:"status"`
	StartDate            string     `json:"startDate"`
	EndDate              string     `json:"endDate"`
	LeaveDates           []string   `json:"leaveDates"`
}

// flexString accepts both JSON strings and numbers; employee IDs show up as either.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

func decodeCalendar(body []byte, loc *time.Location) ([]pto.Record, error) {
	var payload calendarPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", pto.ErrMalformedPayload, err)
	}
	if payload.RequestList == nil {
		return nil, fmt.Errorf("%w: requestList is missing", pto.ErrMalformedPayload)
	}

	records := make([]pto.Record, 0, len(*payload.RequestList))
	for i, dto := range *payload.RequestList {
		rec := pto.Record{
			EmployeeID:           string(dto.EmployeeID),
			Name:                 dto.Name,
			LeaveType:            dto.LeaveType,
			LeaveTypeDescription: dto.LeaveTypeDescription,
			Status:               dto.Status,
			StartDate:            parseOptionalDate(dto.StartDate, loc),
			EndDate:              parseOptionalDate(dto.EndDate, loc),
		}
		for _, raw := range dto.LeaveDates {
			d, err := time.ParseInLocation(leaveDateLayout, strings.TrimSpace(raw), loc)
			if err != nil {
				return nil, fmt.Errorf("%w: request %d (%s): %q", pto.ErrInvalidLeaveDate, i, dto.Name, raw)
			}
			rec.LeaveDates = append(rec.LeaveDates, d)
		}
		records = append(records, rec)
	}

	return records, nil
}

// parseOptionalDate is lenient: start and end dates are informational only.
func parseOptionalDate(raw string, loc *time.Location) time.Time {
	raw = strings.TrimSpace(raw)
	if len(raw) >= len(leaveDateLayout) {
		raw = raw[:len(leaveDateLayout)]
	}
	d, err := time.ParseInLocation(leaveDateLayout, raw, loc)
	if err != nil {
		return time.Time{}
	}
	return d
}
