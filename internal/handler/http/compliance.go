package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/handler/http/response"
	"github.com/madwell/signin-backend-go/internal/pkg/validator"
)

const (
	uploadField = "files"
	// multipartOverhead leaves room for part headers and boundaries on top of the file bytes.
	multipartOverhead = 64 << 10
	xlsxType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var errMultipartRequired = errors.New("request must be multipart/form-data")

type ComplianceHandler interface {
	ResolveWeek(w http.ResponseWriter, r *http.Request)
	GenerateReport(w http.ResponseWriter, r *http.Request)
	ExportReport(w http.ResponseWriter, r *http.Request)
	ListRoster(w http.ResponseWriter, r *http.Request)
	RefreshSources(w http.ResponseWriter, r *http.Request)
}

type complianceHandlerImpl struct {
	complianceService compliance.ComplianceService
	maxUploadBytes    int64
}

func NewComplianceHandler(complianceService compliance.ComplianceService, maxUploadBytes int64) ComplianceHandler {
	return &complianceHandlerImpl{
		complianceService: complianceService,
		maxUploadBytes:    maxUploadBytes,
	}
}

// ResolveWeek implements ComplianceHandler.
func (h *complianceHandlerImpl) ResolveWeek(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseUpload(w, r)
	if err != nil {
		uploadError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	week, err := h.complianceService.ResolveWeek(r.Context(), req)
	if err != nil {
		slog.Error("ResolveWeek service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, week)
}

// GenerateReport implements ComplianceHandler.
func (h *complianceHandlerImpl) GenerateReport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseReportRequest(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	report, err := h.complianceService.GenerateReport(r.Context(), req)
	if err != nil {
		slog.Error("GenerateReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ExportReport implements ComplianceHandler.
func (h *complianceHandlerImpl) ExportReport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseReportRequest(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	buf, filename, err := h.complianceService.ExportReport(r.Context(), req)
	if err != nil {
		slog.Error("ExportReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, xlsxType, "attachment; filename*=UTF-8''"+url.PathEscape(filename), buf.Bytes())
}

// ListRoster implements ComplianceHandler.
func (h *complianceHandlerImpl) ListRoster(w http.ResponseWriter, r *http.Request) {
	entries, err := h.complianceService.Roster(r.Context())
	if err != nil {
		slog.Error("ListRoster service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// RefreshSources implements ComplianceHandler.
func (h *complianceHandlerImpl) RefreshSources(w http.ResponseWriter, r *http.Request) {
	if err := h.complianceService.RefreshSources(r.Context()); err != nil {
		slog.Error("RefreshSources service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Roster and PTO calendar refreshed", nil)
}

func (h *complianceHandlerImpl) parseReportRequest(w http.ResponseWriter, r *http.Request) (compliance.ReportRequest, bool) {
	filter, err := parseReportFilter(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return compliance.ReportRequest{}, false
	}

	upload, err := h.parseUpload(w, r)
	if err != nil {
		uploadError(w, err)
		return compliance.ReportRequest{}, false
	}

	return compliance.ReportRequest{UploadRequest: upload, Filter: filter}, true
}

// parseUpload caps the whole request body at the upload limit before anything is buffered or spilled to disk.
func (h *complianceHandlerImpl) parseUpload(w http.ResponseWriter, r *http.Request) (compliance.UploadRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return compliance.UploadRequest{}, err
	}
	if r.MultipartForm == nil {
		return compliance.UploadRequest{}, errMultipartRequired
	}

	return compliance.UploadRequest{
		Files:    r.MultipartForm.File[uploadField],
		MaxBytes: h.maxUploadBytes,
	}, nil
}

func uploadError(w http.ResponseWriter, err error) {
	slog.Error("Failed to parse multipart form", "error", err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.RequestEntityTooLarge(w, "Upload exceeds the "+strconv.FormatInt(tooLarge.Limit-multipartOverhead, 10)+" byte limit")
		return
	}
	response.BadRequest(w, "Failed to parse form data", nil)
}

func parseReportFilter(q url.Values) (compliance.ReportFilter, error) {
	filter := compliance.ReportFilter{
		Status:     q.Get("status"),
		Office:     q.Get("office"),
		Department: q.Get("department"),
		PTO:        q.Get("pto"),
	}

	if v := q.Get("no_signin"); v != "" {
		noSignIn, err := strconv.ParseBool(v)
		if err != nil {
			return compliance.ReportFilter{}, validator.ValidationErrors{{
				Field:   "no_signin",
				Message: "no_signin must be true or false",
			}}
		}
		filter.NoSignIn = noSignIn
	}

	if err := filter.Validate(); err != nil {
		return compliance.ReportFilter{}, err
	}
	return filter, nil
}
