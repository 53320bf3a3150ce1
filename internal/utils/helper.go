package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/go-playground/validator/v10"
)

func DecodeJSONBody(r *http.Request, dest any) error {

	log := logger.FromContext(r.Context())

	body, err := io.ReadAll(r.Body)

	if err != nil {
		log.Error("Failed to read request body",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("failed to read request body: %w", err)
	}

	defer r.Body.Close()

	if len(body) == 0 {
		log.Warn("Empty request body", slog.String("endpoint", r.URL.Path))
		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		log.Warn("Failed to parse request JSON",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("validation error: %w", validationErrs)
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		return fmt.Errorf("unexpected validation error: %w", err)
	}

	return nil
}

// FieldMessages turns validator failures into one readable line per field.
func FieldMessages(err error) []string {

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	msgs := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("Field %s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("Field %s must be a valid email address", e.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("Field %s must be at least %s", e.Field(), e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("Field %s must be one of: %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("Field %s is invalid: %s=%s", e.Field(), e.Tag(), e.Param()))
		}
	}

	return msgs
}

// JoinMessages is FieldMessages as a single detail string.
func JoinMessages(err error) string {
	return strings.Join(FieldMessages(err), "; ")
}
