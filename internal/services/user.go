package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/ratelimit"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/pkg/backend"
	"github.com/go-playground/validator/v10"
)

const (
	MsgLoginSuccess   = "Login Successful! Redirecting..."
	MsgSignUpSuccess  = "Sign Up Successful! Redirecting..."
	MsgOTPSent        = "OTP sent to your email. Please check your inbox."
	MsgOTPFailed      = "Failed to send OTP. Please try again."
	MsgFillAllFields  = "Please fill in all fields before submitting."
	MsgProfileUpdated = "Profile updated successfully!"
	MsgProfileFailed  = "Failed to update profile."
	MsgNotLoggedIn    = "You need to be logged in."
	MsgTooManyLogins  = "Too many login attempts. Please try again later."
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error)
	Logout(ctx context.Context) error
	SendOTP(ctx context.Context, req *models.SendOTPRequest) (*models.SessionResponse, error)
	VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.SessionResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.SessionResponse, error)
}

type authService struct {
	client    backend.Client
	state     *state.Store
	validator *validator.Validate
	limiter   ratelimit.Limiter
	now       func() time.Time
}

type AuthOption func(*authService)

// WithLoginLimiter throttles login attempts per email before they reach the backend.
func WithLoginLimiter(limiter ratelimit.Limiter) AuthOption {
	return func(s *authService) {
		s.limiter = limiter
	}
}

func NewAuthService(client backend.Client, st *state.Store, now func() time.Time, opts ...AuthOption) AuthService {
	if now == nil {
		now = time.Now
	}

	s := &authService{
		client:    client,
		state:     st,
		validator: validator.New(),
		now:       now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *authService) storeToken(ctx context.Context, token string) error {
	return s.state.Mutate(ctx, func(tx *state.Tx) error {
		tx.SetToken(token)
		return nil
	})
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error) {

	req.Email = utils.Sanitize(req.Email)

	if err := s.validator.Struct(req); err != nil {
		return nil, errors.ValidationError("Email and password are required").WithDetail(utils.JoinMessages(err))
	}

	if s.limiter != nil {
		decision, err := s.limiter.Allow(ctx, req.Email)
		if err != nil {
			return nil, errors.InternalError("Rate limit check failed").WithError(err)
		}

		if !decision.Allowed {
			return nil, errors.TooManyRequestsError(MsgTooManyLogins).
				WithDetail(fmt.Sprintf("Retry after %d seconds", int(decision.RetryAfter.Seconds())))
		}
	}

	auth, err := s.client.Login(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Warn("Login rejected", slog.String("error", err.Error()))
		return nil, backendFailure(err, "Login failed.")
	}

	if !session.WellFormed(auth.Token) {
		return nil, errors.BackendError("Invalid token format")
	}

	if err := s.storeToken(ctx, auth.Token); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("User logged in")

	return &models.SessionResponse{LoggedIn: true, Notice: MsgLoginSuccess, Redirect: errors.HomePath}, nil
}

// Logout forgets the session token only; cart and wishlist stay.
func (s *authService) Logout(ctx context.Context) error {
	return s.storeToken(ctx, "")
}

func (s *authService) SendOTP(ctx context.Context, req *models.SendOTPRequest) (*models.SessionResponse, error) {

	req.Email = utils.Sanitize(req.Email)

	if err := s.validator.Struct(req); err != nil {
		return nil, errors.ValidationError("A valid email is required").WithDetail(utils.JoinMessages(err))
	}

	if err := s.client.SendOTP(ctx, req); err != nil {
		return nil, backendFailure(err, MsgOTPFailed)
	}

	return &models.SessionResponse{Notice: MsgOTPSent}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.SessionResponse, error) {

	req.Email = utils.Sanitize(req.Email)
	req.OTP = utils.Sanitize(req.OTP)
	req.Username = utils.Sanitize(req.Username)

	if err := s.validator.Struct(req); err != nil {
		return nil, errors.ValidationError(MsgFillAllFields).WithDetail(utils.JoinMessages(err))
	}

	auth, err := s.client.VerifyOTP(ctx, req)
	if err != nil {
		return nil, backendFailure(err, "OTP verification failed. Please try again.")
	}

	if auth.Token == "" {
		return nil, errors.BackendError("Invalid token format")
	}

	if err := s.storeToken(ctx, auth.Token); err != nil {
		return nil, err
	}

	return &models.SessionResponse{LoggedIn: true, Notice: MsgSignUpSuccess, Redirect: errors.HomePath}, nil
}

// CurrentUser asks the backend who the token belongs to. A token the
// backend rejects is removed.
func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {

	token, _, err := activeToken(ctx, s.state, s.now(), MsgNotLoggedIn, false)
	if err != nil {
		return nil, err
	}

	user, err := s.client.Me(ctx, token)
	if err != nil {
		if backend.IsUnauthorized(err) {
			clearToken(ctx, s.state)
			return nil, errors.SessionRequiredError(MsgSessionExpired).WithError(err)
		}
		return nil, backendFailure(err, "Failed to load profile.")
	}

	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.SessionResponse, error) {

	token, _, err := activeToken(ctx, s.state, s.now(), MsgNotLoggedIn, false)
	if err != nil {
		return nil, err
	}

	req.Username = utils.Sanitize(req.Username)
	req.Email = utils.Sanitize(req.Email)
	req.Address = utils.Sanitize(req.Address)
	req.Mobile = utils.Sanitize(req.Mobile)

	if err := s.client.UpdateProfile(ctx, token, req); err != nil {
		if backend.IsUnauthorized(err) {
			clearToken(ctx, s.state)
			return nil, errors.SessionRequiredError(MsgSessionExpired).WithError(err)
		}
		return nil, errors.BackendError(MsgProfileFailed).WithDetail(backendMessage(err, "")).WithError(err)
	}

	return &models.SessionResponse{LoggedIn: true, Notice: MsgProfileUpdated}, nil
}
