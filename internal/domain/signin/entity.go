package signin

import "time"

// Record is a single badge event from the sign-in export.
type Record struct {
	Name   string
	Site   string
	Group  string
	InTime time.Time
}

// Timestamps returns the InTime of every record, in input order.
func Timestamps(records []Record) []time.Time {
	out := make([]time.Time, 0, len(records))
	for _, r := range records {
		out = append(out, r.InTime)
	}
	return out
}
