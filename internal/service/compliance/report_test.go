package compliance

import (
	"testing"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []compliance.Record {
	return []compliance.Record{
		{Name: "Zed", Department: "Sales", Office: "Denver", Status: compliance.StatusPass, RequiredDays: 2,
			AdjustedRequirement: 2, PresentCount: 2, SignedInDays: []time.Weekday{time.Tuesday, time.Wednesday}},
		{Name: "Amy", Department: "Sales", Office: "Austin", Status: compliance.StatusFail, RequiredDays: 3,
			AdjustedRequirement: 2, PresentCount: 0, PTOCount: 1, PTODays: []time.Weekday{time.Thursday},
			SignedInDays: []time.Weekday{}, AbsentDays: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday}},
		{Name: "Bob", Department: "Engineering", Office: "Denver", Status: compliance.StatusPass, RequiredDays: 1,
			AdjustedRequirement: 1, PresentCount: 1, SignedInDays: []time.Weekday{time.Thursday}},
		{Name: "Cat", Department: "Engineering", Office: "Denver", Status: compliance.StatusFail, RequiredDays: 3,
			AdjustedRequirement: 3, PresentCount: 1, SignedInDays: []time.Weekday{time.Tuesday},
			AbsentDays: []time.Weekday{time.Wednesday, time.Thursday}},
	}
}

func names(records []compliance.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestSortForDisplay(t *testing.T) {
	records := sampleRecords()
	SortForDisplay(records)

	assert.Equal(t, []string{"Amy", "Bob", "Cat", "Zed"}, names(records))
}

func TestFilterRecords(t *testing.T) {
	cases := []struct {
		name   string
		filter compliance.ReportFilter
		want   []string
	}{
		{"all", compliance.ReportFilter{}, []string{"Zed", "Amy", "Bob", "Cat"}},
		{"failing", compliance.ReportFilter{Status: "FAIL"}, []string{"Amy", "Cat"}},
		{"office", compliance.ReportFilter{Office: "Denver"}, []string{"Zed", "Bob", "Cat"}},
		{"department and status", compliance.ReportFilter{Department: "Engineering", Status: "PASS"}, []string{"Bob"}},
		{"no sign-in", compliance.ReportFilter{NoSignIn: true}, []string{"Amy"}},
		{"pto used", compliance.ReportFilter{PTO: compliance.PTOFilterUsed}, []string{"Amy"}},
		{"no pto", compliance.ReportFilter{PTO: compliance.PTOFilterNone}, []string{"Zed", "Bob", "Cat"}},
		{"nothing matches", compliance.ReportFilter{Office: "Boston"}, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, names(FilterRecords(sampleRecords(), c.filter)))
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleRecords())

	assert.Equal(t, 4, summary.Employees)
	assert.Equal(t, 2, summary.Passing)
	assert.Equal(t, 2, summary.Failing)
	assert.True(t, summary.ComplianceRate.Equal(decimal.NewFromInt(50)), summary.ComplianceRate.String())

	require.Len(t, summary.Departments, 2)
	eng := summary.Departments[0]
	assert.Equal(t, "Engineering", eng.Department)
	assert.Equal(t, 2, eng.Employees)
	assert.Equal(t, 1, eng.Passing)
	assert.Equal(t, 1, eng.Failing)
	assert.Equal(t, "Sales", summary.Departments[1].Department)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.Employees)
	assert.True(t, summary.ComplianceRate.IsZero())
	assert.Empty(t, summary.Departments)
}

func TestComplianceRate(t *testing.T) {
	assert.Equal(t, "66.7", complianceRate(2, 3).String())
	assert.Equal(t, "33.3", complianceRate(1, 3).String())
	assert.Equal(t, "100", complianceRate(4, 4).String())
	assert.True(t, complianceRate(0, 0).IsZero())
}
