package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type UserHandler struct {
	authService service.AuthService
}

func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, nil) {
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			fail(w, r, "Login failed", err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.authService.Logout(r.Context()); err != nil {
			fail(w, r, "Logout failed", err)
			return
		}

		response.Success(w, http.StatusOK, models.SessionResponse{LoggedIn: false})
	}
}

func (h *UserHandler) SendOTP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.SendOTPRequest

		if !utils.ParseAndValidate(r, w, &req, nil) {
			return
		}

		resp, err := h.authService.SendOTP(r.Context(), &req)
		if err != nil {
			fail(w, r, "Sending OTP failed", err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) VerifyOTP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.VerifyOTPRequest

		if !utils.ParseAndValidate(r, w, &req, nil) {
			return
		}

		resp, err := h.authService.VerifyOTP(r.Context(), &req)
		if err != nil {
			fail(w, r, "OTP verification failed", err)
			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		user, err := h.authService.CurrentUser(r.Context())
		if err != nil {
			fail(w, r, "Failed to load profile", err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateProfileRequest

		if !utils.ParseAndValidate(r, w, &req, nil) {
			return
		}

		resp, err := h.authService.UpdateProfile(r.Context(), &req)
		if err != nil {
			fail(w, r, "Failed to update profile", err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
