package roster

import "errors"

var (
	ErrMissingColumn       = errors.New("roster is missing a required column")
	ErrInvalidRequiredDays = errors.New("REQUIRED_DAYS must be a non-negative integer")
	ErrEmptyRoster         = errors.New("roster has no rows")
)
