package compliance

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/madwell/signin-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// UPLOAD DTOs
// ========================================

type UploadRequest struct {
	Files    []*multipart.FileHeader `json:"-"`
	MaxBytes int64                   `json:"-"`
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Files) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "files",
			Message: "at least one sign-in CSV file is required",
		})
	}

	for _, fh := range r.Files {
		if fh == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "files",
				Message: "invalid file upload",
			})
			continue
		}
		if !validator.HasExtension(fh.Filename, ".csv") {
			errs = append(errs, validator.ValidationError{
				Field:   "files",
				Message: "invalid file type: only csv allowed (" + fh.Filename + ")",
			})
		} else if r.MaxBytes > 0 && fh.Size > r.MaxBytes {
			errs = append(errs, validator.ValidationError{
				Field:   "files",
				Message: "file " + fh.Filename + " exceeds the upload size limit",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// REPORT DTOs
// ========================================

const (
	PTOFilterNone = "none"
	PTOFilterUsed = "used"
)

// ReportFilter mirrors the dashboard sidebar filters. Zero values mean "All".
type ReportFilter struct {
	Status     string `json:"status,omitempty"`
	Office     string `json:"office,omitempty"`
	Department string `json:"department,omitempty"`
	NoSignIn   bool   `json:"no_signin,omitempty"`
	PTO        string `json:"pto,omitempty"`
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	if f.Status != "" && !validator.IsInSlice(f.Status, []string{string(StatusPass), string(StatusFail)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be PASS or FAIL",
		})
	}

	f.PTO = strings.ToLower(strings.TrimSpace(f.PTO))
	if f.PTO != "" && !validator.IsInSlice(f.PTO, []string{PTOFilterNone, PTOFilterUsed}) {
		errs = append(errs, validator.ValidationError{
			Field:   "pto",
			Message: "pto must be none or used",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Match reports whether a record passes every active filter.
func (f ReportFilter) Match(r Record) bool {
	if f.Status != "" && string(r.Status) != f.Status {
		return false
	}
	if f.Office != "" && r.Office != f.Office {
		return false
	}
	if f.Department != "" && r.Department != f.Department {
		return false
	}
	if f.NoSignIn && len(r.SignedInDays) > 0 {
		return false
	}
	switch f.PTO {
	case PTOFilterNone:
		if r.PTOCount != 0 {
			return false
		}
	case PTOFilterUsed:
		if r.PTOCount == 0 {
			return false
		}
	}
	return true
}

type ReportRequest struct {
	UploadRequest
	Filter ReportFilter
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.UploadRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if err := r.Filter.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeekResponse struct {
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Days     []string `json:"days"`
	CoreDays []string `json:"core_days"`
	Rows     int      `json:"rows"`
	Label    string   `json:"label"`
}

func NewWeekResponse(w WeekWindow, rows int) WeekResponse {
	resp := WeekResponse{
		Start: w.Start.Format("2006-01-02"),
		End:   w.End.Format("2006-01-02"),
		Rows:  rows,
		Label: "Week of " + w.Start.Format("01/02/2006") + " - " + w.End.Format("01/02/2006"),
	}
	for _, d := range w.Days() {
		resp.Days = append(resp.Days, d.Format("2006-01-02"))
	}
	for _, d := range w.CoreDays() {
		resp.CoreDays = append(resp.CoreDays, d.Format("2006-01-02"))
	}
	return resp
}

type RecordResponse struct {
	Name                string   `json:"name"`
	Department          string   `json:"department"`
	Office              string   `json:"office"`
	Status              Status   `json:"status"`
	RequiredDays        int      `json:"required_days"`
	AdjustedRequirement int      `json:"adjusted_requirement"`
	PresentCount        int      `json:"present_count"`
	PTOCount            int      `json:"pto_count"`
	SignInDays          []string `json:"signin_days"`
	AbsentDays          []string `json:"absent_days"`
	PTODays             []string `json:"pto_days"`
	PresentDates        []string `json:"present_dates"`
	Details             string   `json:"details"`
	SignInMatch         string   `json:"signin_match"`
	PTOMatch            string   `json:"pto_match"`
}

func NewRecordResponse(r Record) RecordResponse {
	present := make([]string, 0, len(r.PresentDates))
	for _, d := range r.PresentDates {
		present = append(present, d.Format("2006-01-02"))
	}
	return RecordResponse{
		Name:                r.Name,
		Department:          r.Department,
		Office:              r.Office,
		Status:              r.Status,
		RequiredDays:        r.RequiredDays,
		AdjustedRequirement: r.AdjustedRequirement,
		PresentCount:        r.PresentCount,
		PTOCount:            r.PTOCount,
		SignInDays:          DayLabels(r.SignedInDays),
		AbsentDays:          DayLabels(r.AbsentDays),
		PTODays:             DayLabels(r.PTODays),
		PresentDates:        present,
		Details:             r.Details(),
		SignInMatch:         string(r.SignInMatch),
		PTOMatch:            string(r.PTOMatch),
	}
}

type DepartmentSummary struct {
	Department     string          `json:"department"`
	Employees      int             `json:"employees"`
	Passing        int             `json:"passing"`
	Failing        int             `json:"failing"`
	ComplianceRate decimal.Decimal `json:"compliance_rate"`
}

type SummaryResponse struct {
	Employees      int                 `json:"employees"`
	Passing        int                 `json:"passing"`
	Failing        int                 `json:"failing"`
	ComplianceRate decimal.Decimal     `json:"compliance_rate"`
	Departments    []DepartmentSummary `json:"departments"`
}

type UnmatchedResponse struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type ReportResponse struct {
	ReportID     string              `json:"report_id"`
	GeneratedAt  time.Time           `json:"generated_at"`
	Week         WeekResponse        `json:"week"`
	Filter       ReportFilter        `json:"filter"`
	TotalRecords int                 `json:"total_records"`
	Records      []RecordResponse    `json:"records"`
	Summary      SummaryResponse     `json:"summary"`
	Unmatched    []UnmatchedResponse `json:"unmatched,omitempty"`
	Warnings     []string            `json:"warnings,omitempty"`
}

type RosterEntryResponse struct {
	FullName     string `json:"full_name"`
	PTOName      string `json:"pto_name"`
	Department   string `json:"department"`
	Office       string `json:"office"`
	RequiredDays int    `json:"required_days"`
}
