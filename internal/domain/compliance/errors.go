package compliance

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMultiWeekUpload   = errors.New("sign-in data covers more than one week")
	ErrEmptyBatch        = errors.New("sign-in batch has no timestamps")
	ErrRosterUnavailable = errors.New("employee roster is unavailable")
	ErrPTOUnavailable    = errors.New("PTO calendar is unavailable")
)

// MultiWeekUploadError carries the span that made the batch invalid.
type MultiWeekUploadError struct {
	Min  time.Time
	Max  time.Time
	Days int
}

func (e *MultiWeekUploadError) Error() string {
	return fmt.Sprintf("your data covers more than 7 days (%s - %s), please upload only 7 days of data [Sun-Sat]",
		e.Min.Format("01/02/2006"), e.Max.Format("01/02/2006"))
}

func (e *MultiWeekUploadError) Unwrap() error {
	return ErrMultiWeekUpload
}
