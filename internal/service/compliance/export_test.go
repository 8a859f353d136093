package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderWorkbook(t *testing.T) {
	records := sampleRecords()
	SortForDisplay(records)

	buf, filename, err := RenderWorkbook(testWeek, records, Summarize(records))
	require.NoError(t, err)
	assert.Equal(t, "signin_compliance_2024-06-09.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reportSheet, summarySheet}, f.GetSheetList())

	title, err := f.GetCellValue(reportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Signin Data [ Week of 06/09/2024 - 06/15/2024 ]", title)

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2+len(records))
	assert.Equal(t, reportHeaders, rows[1])

	// Amy: no sign-ins, one PTO, failing.
	amy := rows[2]
	assert.Equal(t, "Amy", amy[0])
	assert.Equal(t, "FAIL", amy[3])
	assert.Equal(t, "NO SIGNIN", amy[4])
	assert.Equal(t, "Tue/Wed/Thu", amy[5])
	assert.Equal(t, "0 / 2 [ PTOs=1 ]", amy[6])
	assert.Equal(t, "Thu", amy[7])
	assert.Equal(t, "1", amy[8])

	// Bob: passing, nothing absent, no PTO.
	bob := rows[3]
	assert.Equal(t, "Bob", bob[0])
	assert.Equal(t, "PASS", bob[3])
	assert.Equal(t, "Thu", bob[4])
	assert.Equal(t, "N/A", bob[5])
	assert.Equal(t, "N/A", bob[7])

	failStyle, err := f.GetCellStyle(reportSheet, "A3")
	require.NoError(t, err)
	passStyle, err := f.GetCellStyle(reportSheet, "A4")
	require.NoError(t, err)
	assert.NotEqual(t, failStyle, passStyle)

	summaryRows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, summaryRows, 4)
	assert.Equal(t, []string{"DEPARTMENT", "EMPLOYEES", "PASSING", "FAILING", "COMPLIANCE %"}, summaryRows[0])
	assert.Equal(t, "Engineering", summaryRows[1][0])
	assert.Equal(t, "TOTAL", summaryRows[3][0])
	assert.Equal(t, "4", summaryRows[3][1])
	assert.Equal(t, "50", summaryRows[3][4])
}

func TestRenderWorkbook_NoRecords(t *testing.T) {
	buf, _, err := RenderWorkbook(testWeek, nil, Summarize(nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
