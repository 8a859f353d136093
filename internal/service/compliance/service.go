package compliance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
	"github.com/madwell/signin-backend-go/internal/domain/signin"
	"golang.org/x/sync/errgroup"
)

// Refresher is implemented by sources that cache what they fetch.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type ComplianceServiceImpl struct {
	roster.Source
	pto.Calendar
	parser      signin.Parser
	engine      *Engine
	ptoRequired bool
	now         func() time.Time
}

func NewComplianceService(
	rosterSource roster.Source,
	calendar pto.Calendar,
	parser signin.Parser,
	engine *Engine,
	ptoRequired bool,
) compliance.ComplianceService {
	return &ComplianceServiceImpl{
		Source:      rosterSource,
		Calendar:    calendar,
		parser:      parser,
		engine:      engine,
		ptoRequired: ptoRequired,
		now:         time.Now,
	}
}

// batchRun is one full reconciliation before filtering.
type batchRun struct {
	week      compliance.WeekWindow
	rows      int
	records   []compliance.Record
	unmatched []compliance.Unmatched
	warnings  []string
}

// ResolveWeek implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) ResolveWeek(ctx context.Context, req compliance.UploadRequest) (compliance.WeekResponse, error) {
	if err := req.Validate(); err != nil {
		return compliance.WeekResponse{}, err
	}

	records, err := s.parseUploads(req)
	if err != nil {
		return compliance.WeekResponse{}, err
	}

	week, err := ResolveWeek(signin.Timestamps(records))
	if err != nil {
		return compliance.WeekResponse{}, err
	}

	return compliance.NewWeekResponse(week, len(records)), nil
}

// GenerateReport implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) GenerateReport(ctx context.Context, req compliance.ReportRequest) (compliance.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return compliance.ReportResponse{}, err
	}

	run, err := s.run(ctx, req.UploadRequest)
	if err != nil {
		return compliance.ReportResponse{}, err
	}

	reportID, err := uuid.NewV7()
	if err != nil {
		reportID = uuid.New()
	}

	filtered := FilterRecords(run.records, req.Filter)
	resp := compliance.ReportResponse{
		ReportID:     reportID.String(),
		GeneratedAt:  s.now().UTC(),
		Week:         compliance.NewWeekResponse(run.week, run.rows),
		Filter:       req.Filter,
		TotalRecords: len(run.records),
		Records:      make([]compliance.RecordResponse, 0, len(filtered)),
		Summary:      Summarize(run.records),
		Warnings:     run.warnings,
	}
	for _, r := range filtered {
		resp.Records = append(resp.Records, compliance.NewRecordResponse(r))
	}
	for _, u := range run.unmatched {
		resp.Unmatched = append(resp.Unmatched, compliance.UnmatchedResponse{Name: u.Name, Source: u.Source})
	}

	slog.Info("Compliance report generated",
		"report_id", resp.ReportID,
		"week", run.week.String(),
		"records", resp.TotalRecords,
		"returned", len(resp.Records),
		"failing", resp.Summary.Failing,
		"unmatched", len(resp.Unmatched),
	)

	return resp, nil
}

// ExportReport implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) ExportReport(ctx context.Context, req compliance.ReportRequest) (*bytes.Buffer, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	run, err := s.run(ctx, req.UploadRequest)
	if err != nil {
		return nil, "", err
	}

	buf, filename, err := RenderWorkbook(run.week, FilterRecords(run.records, req.Filter), Summarize(run.records))
	if err != nil {
		return nil, "", fmt.Errorf("failed to render compliance workbook: %w", err)
	}
	return buf, filename, nil
}

// Roster implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) Roster(ctx context.Context) ([]compliance.RosterEntryResponse, error) {
	entries, err := s.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", compliance.ErrRosterUnavailable, err)
	}

	resp := make([]compliance.RosterEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, compliance.RosterEntryResponse{
			FullName:     e.FullName,
			PTOName:      e.PTOName,
			Department:   e.Department,
			Office:       e.Office,
			RequiredDays: e.RequiredDays,
		})
	}
	return resp, nil
}

// RefreshSources implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) RefreshSources(ctx context.Context) error {
	var errs []error
	if r, ok := s.Source.(Refresher); ok {
		if err := r.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", compliance.ErrRosterUnavailable, err))
		}
	}
	if r, ok := s.Calendar.(Refresher); ok {
		if err := r.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", compliance.ErrPTOUnavailable, err))
		}
	}
	return errors.Join(errs...)
}

// run parses the upload, resolves its week and reconciles it against the roster and PTO calendar.
// Nothing is aggregated unless the whole batch is valid.
func (s *ComplianceServiceImpl) run(ctx context.Context, req compliance.UploadRequest) (batchRun, error) {
	signIns, err := s.parseUploads(req)
	if err != nil {
		return batchRun{}, err
	}

	week, err := ResolveWeek(signin.Timestamps(signIns))
	if err != nil {
		return batchRun{}, err
	}

	entries, calendar, warnings, err := s.loadSources(ctx)
	if err != nil {
		return batchRun{}, err
	}

	result, err := s.engine.Process(ctx, Batch{
		Roster:   entries,
		SignIns:  signIns,
		Week:     week,
		Calendar: calendar,
	})
	if err != nil {
		return batchRun{}, fmt.Errorf("failed to process sign-in batch: %w", err)
	}

	SortForDisplay(result.Records)

	return batchRun{
		week:      week,
		rows:      len(signIns),
		records:   result.Records,
		unmatched: result.Unmatched,
		warnings:  warnings,
	}, nil
}

func (s *ComplianceServiceImpl) parseUploads(req compliance.UploadRequest) ([]signin.Record, error) {
	files := make([]signin.File, 0, len(req.Files))
	for _, fh := range req.Files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		defer f.Close()
		files = append(files, signin.File{Name: fh.Filename, Reader: f})
	}
	return s.parser.Parse(files...)
}

// loadSources fetches the roster and the PTO calendar in parallel.
func (s *ComplianceServiceImpl) loadSources(ctx context.Context) ([]roster.Entry, []pto.Record, []string, error) {
	var (
		entries  []roster.Entry
		calendar []pto.Record
		warnings []string
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		e, err := s.Source.Load(gCtx)
		if err != nil {
			return fmt.Errorf("%w: %w", compliance.ErrRosterUnavailable, err)
		}
		entries = e
		return nil
	})

	g.Go(func() error {
		c, err := s.Calendar.Fetch(gCtx)
		if err != nil {
			if s.ptoRequired {
				return fmt.Errorf("%w: %w", compliance.ErrPTOUnavailable, err)
			}
			slog.Warn("PTO calendar unavailable, continuing without PTO credit", "error", err)
			warnings = append(warnings, "PTO calendar could not be loaded; no PTO was credited")
			return nil
		}
		calendar = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return entries, calendar, warnings, nil
}
