package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/madwell/signin-backend-go/internal/domain/auth"
	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	"github.com/madwell/signin-backend-go/internal/domain/signin"
	"github.com/madwell/signin-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upload errors carry their own context
	var multiWeek *compliance.MultiWeekUploadError
	if errors.As(err, &multiWeek) {
		BadRequest(w, multiWeek.Error(), map[string]string{
			"min_date": multiWeek.Min.Format("2006-01-02"),
			"max_date": multiWeek.Max.Format("2006-01-02"),
			"days":     strconv.Itoa(multiWeek.Days),
		})
		return
	}

	var rowErr *signin.RowError
	if errors.As(err, &rowErr) {
		UnprocessableEntity(w, "INVALID_SIGNIN_FILE", rowErr.Err.Error(), map[string]string{
			"file": rowErr.File,
			"row":  strconv.Itoa(rowErr.Row),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// Compliance domain errors
	case errors.Is(err, compliance.ErrMultiWeekUpload):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, compliance.ErrEmptyBatch):
		BadRequest(w, "Uploaded files contain no sign-in timestamps", nil)
	case errors.Is(err, signin.ErrEmptyUpload):
		BadRequest(w, "Uploaded files contain no sign-in rows", nil)
	case errors.Is(err, compliance.ErrRosterUnavailable):
		ServiceUnavailable(w, "Employee roster is unavailable, please try again later")
	case errors.Is(err, compliance.ErrPTOUnavailable):
		ServiceUnavailable(w, "PTO calendar is unavailable, please try again later")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
