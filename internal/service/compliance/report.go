package compliance

import (
	"sort"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/shopspring/decimal"
)

// SortForDisplay orders records by office, department, then name.
func SortForDisplay(records []compliance.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Office != b.Office {
			return a.Office < b.Office
		}
		if a.Department != b.Department {
			return a.Department < b.Department
		}
		return a.Name < b.Name
	})
}

func FilterRecords(records []compliance.Record, f compliance.ReportFilter) []compliance.Record {
	out := make([]compliance.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize counts passing and failing employees overall and per department.
func Summarize(records []compliance.Record) compliance.SummaryResponse {
	byDept := make(map[string]*compliance.DepartmentSummary)
	var summary compliance.SummaryResponse

	for _, r := range records {
		d, ok := byDept[r.Department]
		if !ok {
			d = &compliance.DepartmentSummary{Department: r.Department}
			byDept[r.Department] = d
		}
		d.Employees++
		summary.Employees++
		if r.Passed() {
			d.Passing++
			summary.Passing++
		} else {
			d.Failing++
			summary.Failing++
		}
	}

	summary.ComplianceRate = complianceRate(summary.Passing, summary.Employees)
	summary.Departments = make([]compliance.DepartmentSummary, 0, len(byDept))
	for _, d := range byDept {
		d.ComplianceRate = complianceRate(d.Passing, d.Employees)
		summary.Departments = append(summary.Departments, *d)
	}
	sort.Slice(summary.Departments, func(i, j int) bool {
		return summary.Departments[i].Department < summary.Departments[j].Department
	})

	return summary
}

// complianceRate is passing/total as a percentage rounded to one decimal place.
func complianceRate(passing, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(passing)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
}
