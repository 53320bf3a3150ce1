package utils

import (
	"log/slog"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the body into dest and validates it when
// validate is non-nil. On failure the error response is already written.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		logger.FromContext(r.Context()).Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	if validate == nil {
		return true
	}

	if err := ValidateStruct(validate, dest); err != nil {
		logger.FromContext(r.Context()).Warn("Validation failed", slog.String("error", err.Error()))
		response.ValidationError(w, FieldMessages(err))
		return false
	}

	return true
}
