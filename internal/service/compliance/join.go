package compliance

import (
	"sort"
	"strings"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
	"github.com/madwell/signin-backend-go/internal/domain/signin"
)

// nameKey is the join key shared by the roster, the sign-in log and the PTO calendar.
// Matching stays exact and case-sensitive; only surrounding whitespace is dropped.
func nameKey(name string) string {
	return strings.TrimSpace(name)
}

// nameIndex groups the sign-in log and the PTO calendar by join key.
// It is built once per batch and only read afterwards.
type nameIndex struct {
	signIns map[string][]time.Time
	leave   map[string][]pto.Record

	rosterFull map[string]int
	rosterPTO  map[string]int
}

func newNameIndex(entries []roster.Entry, log []signin.Record, calendar []pto.Record) *nameIndex {
	idx := &nameIndex{
		signIns:    make(map[string][]time.Time),
		leave:      make(map[string][]pto.Record),
		rosterFull: make(map[string]int),
		rosterPTO:  make(map[string]int),
	}

	for _, r := range log {
		key := nameKey(r.Name)
		if key == "" {
			continue
		}
		idx.signIns[key] = append(idx.signIns[key], r.InTime)
	}

	for _, rec := range calendar {
		key := nameKey(rec.Name)
		if key == "" {
			continue
		}
		idx.leave[key] = append(idx.leave[key], rec)
	}

	for _, e := range entries {
		if key := nameKey(e.FullName); key != "" {
			idx.rosterFull[key]++
		}
		if key := nameKey(e.PTOName); key != "" {
			idx.rosterPTO[key]++
		}
	}

	return idx
}

func (idx *nameIndex) signInOutcome(fullName string) compliance.JoinOutcome {
	key := nameKey(fullName)
	return outcome(len(idx.signIns[key]) > 0, idx.rosterFull[key])
}

func (idx *nameIndex) ptoOutcome(ptoName string) compliance.JoinOutcome {
	key := nameKey(ptoName)
	return outcome(len(idx.leave[key]) > 0, idx.rosterPTO[key])
}

func outcome(hasRows bool, rosterRows int) compliance.JoinOutcome {
	switch {
	case !hasRows:
		return compliance.JoinAbsent
	case rosterRows > 1:
		return compliance.JoinAmbiguous
	default:
		return compliance.JoinMatched
	}
}

// unmatched lists sign-in and PTO names that no roster row claims, sorted by name within each source.
func (idx *nameIndex) unmatched() []compliance.Unmatched {
	var out []compliance.Unmatched

	var names []string
	for name := range idx.signIns {
		if idx.rosterFull[name] == 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, compliance.Unmatched{Name: name, Source: compliance.SourceSignIn})
	}

	names = names[:0]
	for name := range idx.leave {
		if idx.rosterPTO[name] == 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, compliance.Unmatched{Name: name, Source: compliance.SourcePTO})
	}

	return out
}
