package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// fail logs err at a level matching its class and writes the error envelope.
func fail(w http.ResponseWriter, r *http.Request, msg string, err error) {

	log := middleware.LoggerFromContext(r.Context())

	if appErr, ok := appErrors.IsAppError(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		log.Warn(msg, slog.String("code", appErr.Code), slog.String("error", err.Error()))
	} else {
		log.Error(msg, slog.String("error", err.Error()))
	}

	response.Error(w, err)
}
