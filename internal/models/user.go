package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID       string `json:"_id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// backend reply for login and OTP verification
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// for registration
type VerifyOTPRequest struct {
	Email    string `json:"email" validate:"required"`
	OTP      string `json:"otp" validate:"required"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Mobile   string `json:"mobile"`
}

type SessionResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Notice   string `json:"notice,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// Claims the storefront reads from the session token. The signature is
// never checked here; the backend does that.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
