package pto

import "context"

// Calendar fetches the leave requests known to the HR system.
type Calendar interface {
	Fetch(ctx context.Context) ([]Record, error)
}
