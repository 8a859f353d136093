package compliance

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheet  = "Weekly Signin"
	summarySheet = "Departments"

	// failing rows get the same pale red the dashboard used
	failFillColor = "#FBE7EF"
)

var reportHeaders = []string{
	"NAME", "DEPT", "OFFICE", "STATUS", "SIGNIN DAYS", "ABSENT DAYS",
	"SIGNIN DETAILS", "PTO DAYS", "USED PTOs", "PRESENT",
}

// RenderWorkbook writes the weekly report and the department summary to an xlsx workbook.
func RenderWorkbook(week compliance.WeekWindow, records []compliance.Record, summary compliance.SummaryResponse) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}
	failStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{failFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create highlight style: %w", err)
	}

	f.SetCellValue(reportSheet, "A1", fmt.Sprintf("Weekly Signin Data [ Week of %s - %s ]",
		week.Start.Format("01/02/2006"), week.End.Format("01/02/2006")))
	lastCol, _ := excelize.ColumnNumberToName(len(reportHeaders))
	f.MergeCell(reportSheet, "A1", lastCol+"1")

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(reportSheet, cell, h)
	}
	f.SetCellStyle(reportSheet, "A1", lastCol+"2", headerStyle)
	f.SetColWidth(reportSheet, "A", "C", 24)
	f.SetColWidth(reportSheet, "D", "I", 16)
	f.SetColWidth(reportSheet, "J", "J", 36)

	for i, r := range records {
		row := i + 3
		values := []interface{}{
			r.Name,
			r.Department,
			r.Office,
			string(r.Status),
			joinOr(compliance.DayLabels(r.SignedInDays), "/", "NO SIGNIN"),
			joinOr(compliance.DayLabels(r.AbsentDays), "/", "N/A"),
			r.Details(),
			joinOr(compliance.DayLabels(r.PTODays), ", ", "N/A"),
			r.PTOCount,
			presentDates(r),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(reportSheet, cell, v)
		}
		if !r.Passed() {
			f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), failStyle)
		}
	}

	if err := writeSummarySheet(f, summary, headerStyle); err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("signin_compliance_%s.xlsx", week.Start.Format("2006-01-02"))
	return buf, filename, nil
}

func writeSummarySheet(f *excelize.File, summary compliance.SummaryResponse, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headers := []string{"DEPARTMENT", "EMPLOYEES", "PASSING", "FAILING", "COMPLIANCE %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summarySheet, cell, h)
	}
	f.SetCellStyle(summarySheet, "A1", "E1", headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 24)

	row := 2
	for _, d := range summary.Departments {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), d.Department)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), d.Employees)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), d.Passing)
		f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), d.Failing)
		f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), d.ComplianceRate.InexactFloat64())
		row++
	}

	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "TOTAL")
	f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), summary.Employees)
	f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), summary.Passing)
	f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), summary.Failing)
	f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), summary.ComplianceRate.InexactFloat64())
	return nil
}

func joinOr(items []string, sep, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, sep)
}

func presentDates(r compliance.Record) string {
	dates := make([]string, 0, len(r.PresentDates))
	for _, d := range r.PresentDates {
		dates = append(dates, d.Format("01/02/2006"))
	}
	return strings.Join(dates, ", ")
}
