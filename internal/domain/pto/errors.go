package pto

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected response status from PTO API")
	ErrInvalidLeaveDate = errors.New("invalid leave date in PTO calendar")
	ErrMalformedPayload = errors.New("malformed PTO calendar payload")
)
