package compliance

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
	"github.com/madwell/signin-backend-go/internal/domain/signin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBatch() Batch {
	entries := []roster.Entry{
		smith(3),
		{FullName: "B. Jones", PTOName: "Jones, B", Department: "Sales", Office: "Austin", RequiredDays: 2},
		{FullName: "C. Exempt", PTOName: "Exempt, C", Department: "Sales", Office: "Austin", RequiredDays: 0},
		{FullName: "D. Lee", PTOName: "Lee, D", Department: "Engineering", Office: "Austin", RequiredDays: 1},
	}

	var log []signin.Record
	log = append(log, signIns("A. Smith", at(tue, 9, 0), at(wed, 9, 0))...)
	log = append(log, signIns("B. Jones", at(tue, 9, 0), at(thu, 10, 0))...)
	log = append(log, signIns("C. Exempt", at(wed, 9, 0))...)
	log = append(log, signIns("Z. Visitor", at(wed, 11, 0))...)

	calendar := []pto.Record{
		leave("Smith, A", thu),
		leave("Contractor, X", tue),
	}

	return Batch{Roster: entries, SignIns: log, Week: testWeek, Calendar: calendar}
}

func TestEngine_ProcessInRosterOrder(t *testing.T) {
	res, err := NewEngine(2, compliance.UnmatchedIgnore).Process(context.Background(), testBatch())
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Equal(t, "A. Smith", res.Records[0].Name)
	assert.Equal(t, "B. Jones", res.Records[1].Name)
	assert.Equal(t, "D. Lee", res.Records[2].Name)

	assert.Equal(t, compliance.StatusPass, res.Records[0].Status)
	assert.Equal(t, compliance.StatusPass, res.Records[1].Status)
	assert.Equal(t, compliance.StatusFail, res.Records[2].Status)
	assert.Nil(t, res.Unmatched)
}

func TestEngine_ZeroRequiredDaysEmitsNothing(t *testing.T) {
	b := testBatch()
	b.Roster = append(b.Roster, roster.Entry{FullName: "E. Negative", RequiredDays: -1})

	res, err := NewEngine(0, "").Process(context.Background(), b)
	require.NoError(t, err)

	for _, rec := range res.Records {
		assert.Positive(t, rec.RequiredDays, rec.Name)
		assert.NotEqual(t, "C. Exempt", rec.Name)
	}
}

func TestEngine_UnknownEmployeesIgnoredByDefault(t *testing.T) {
	res, err := NewEngine(4, compliance.UnmatchedIgnore).Process(context.Background(), testBatch())
	require.NoError(t, err)

	for _, rec := range res.Records {
		assert.NotEqual(t, "Z. Visitor", rec.Name)
	}
	assert.Empty(t, res.Unmatched)
}

func TestEngine_UnknownEmployeesReported(t *testing.T) {
	res, err := NewEngine(4, compliance.UnmatchedReport).Process(context.Background(), testBatch())
	require.NoError(t, err)

	assert.Len(t, res.Records, 3)
	assert.Equal(t, []compliance.Unmatched{
		{Name: "Z. Visitor", Source: compliance.SourceSignIn},
		{Name: "Contractor, X", Source: compliance.SourcePTO},
	}, res.Unmatched)
}

func TestEngine_AmbiguousRosterNames(t *testing.T) {
	b := testBatch()
	dup := smith(2)
	dup.Department = "Finance"
	b.Roster = append(b.Roster, dup)

	res, err := NewEngine(1, compliance.UnmatchedIgnore).Process(context.Background(), b)
	require.NoError(t, err)

	require.Len(t, res.Records, 4)
	assert.Equal(t, compliance.JoinAmbiguous, res.Records[0].SignInMatch)
	assert.Equal(t, compliance.JoinAmbiguous, res.Records[0].PTOMatch)
	assert.Equal(t, compliance.JoinAmbiguous, res.Records[3].SignInMatch)
	assert.Equal(t, compliance.JoinMatched, res.Records[1].SignInMatch)
	assert.Equal(t, compliance.JoinAbsent, res.Records[1].PTOMatch)
}

func TestEngine_Idempotent(t *testing.T) {
	b := testBatch()

	first, err := NewEngine(1, compliance.UnmatchedReport).Process(context.Background(), b)
	require.NoError(t, err)
	second, err := NewEngine(8, compliance.UnmatchedReport).Process(context.Background(), b)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	c, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(c))
	assert.Equal(t, first, second)
}

func TestEngine_EmptyRoster(t *testing.T) {
	b := testBatch()
	b.Roster = nil

	res, err := NewEngine(2, compliance.UnmatchedIgnore).Process(context.Background(), b)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(2, compliance.UnmatchedIgnore).Process(ctx, testBatch())
	assert.ErrorIs(t, err, context.Canceled)
}
