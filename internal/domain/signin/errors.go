package signin

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyUpload      = errors.New("no sign-in rows were uploaded")
	ErrMissingColumn    = errors.New("sign-in file is missing a required column")
	ErrInvalidTimestamp = errors.New("invalid sign-in timestamp")
)

// RowError points at the offending row of an uploaded sign-in file.
type RowError struct {
	File string
	Row  int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.File, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
