package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/pkg/backend"
)

const (
	MsgLoginRequired  = "You need to be logged in to place an order."
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgNoUserInToken  = "User not found in token."
)

// backendMessage is the message the backend gave, or fallback.
func backendMessage(err error, fallback string) string {
	var be *backend.Error
	if stdErrors.As(err, &be) && be.Message != "" {
		return be.Message
	}

	return fallback
}

func backendStatus(err error) int {
	var be *backend.Error
	if stdErrors.As(err, &be) {
		return be.StatusCode
	}

	return 0
}

// backendFailure wraps err as a BACKEND_ERROR carrying the backend's own message.
func backendFailure(err error, fallback string) *errors.AppError {
	return errors.BackendError(backendMessage(err, fallback)).WithError(err)
}

// recordAPIError keeps the last backend failure for diagnostics. A failed
// write is only logged.
func recordAPIError(ctx context.Context, st *state.Store, err error) {

	msg := backendMessage(err, "Unknown error")

	if perr := st.Mutate(ctx, func(tx *state.Tx) error {
		tx.SetAPIError(msg)
		return nil
	}); perr != nil {
		logger.FromContext(ctx).Warn("Failed to record backend error", slog.String("error", perr.Error()))
	}
}

// activeToken returns the stored session token and its claims. Expired or
// undecodable tokens are removed from the store. When requireUser is set
// a token without a user id is rejected too.
func activeToken(ctx context.Context, st *state.Store, now time.Time, missingMsg string, requireUser bool) (string, string, error) {

	token := st.Token()
	if token == "" {
		return "", "", errors.SessionRequiredError(missingMsg)
	}

	claims, err := session.Decode(token)
	if err == nil && session.Expired(claims, now) {
		err = session.ErrExpired
	}

	if err != nil {
		logger.FromContext(ctx).Info("Discarding session token", slog.String("reason", err.Error()))
		clearToken(ctx, st)
		return "", "", errors.SessionRequiredError(MsgSessionExpired).WithError(err)
	}

	if requireUser && claims.UserID == "" {
		return "", "", errors.SessionRequiredError(MsgNoUserInToken).WithError(session.ErrNoUser)
	}

	return token, claims.UserID, nil
}

func clearToken(ctx context.Context, st *state.Store) {
	if err := st.Mutate(ctx, func(tx *state.Tx) error {
		tx.SetToken("")
		return nil
	}); err != nil {
		logger.FromContext(ctx).Warn("Failed to remove session token", slog.String("error", err.Error()))
	}
}

func isNotFound(err error) bool {
	return backendStatus(err) == http.StatusNotFound
}
