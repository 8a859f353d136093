package compliance

import (
	"bytes"
	"context"
)

// ComplianceService defines the weekly sign-in compliance operations
type ComplianceService interface {
	// ResolveWeek parses the uploaded sign-in files and returns the week they belong to
	ResolveWeek(ctx context.Context, req UploadRequest) (WeekResponse, error)

	// GenerateReport reconciles roster, sign-ins and PTO into per-employee compliance records
	GenerateReport(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// ExportReport renders the same report as an xlsx workbook, returning the file name
	ExportReport(ctx context.Context, req ReportRequest) (*bytes.Buffer, string, error)

	// Roster returns the currently loaded employee roster
	Roster(ctx context.Context) ([]RosterEntryResponse, error)

	// RefreshSources forces the roster and PTO caches to re-fetch
	RefreshSources(ctx context.Context) error
}
