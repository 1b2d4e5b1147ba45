package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BusinessName    string `json:"business_name"`
	Phone           string `json:"phone"`
}

// LoginRequest authenticates with email + password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// UpdateProfileRequest updates the business profile. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateProfileRequest struct {
	FirstName       *string          `json:"first_name"`
	LastName        *string          `json:"last_name"`
	BusinessName    *string          `json:"business_name"`
	BusinessAddress *string          `json:"business_address"`
	Phone           *string          `json:"phone"`
	Currency        *string          `json:"currency"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
}

// TokenPair is the issued access/refresh pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// UserResponse is the public view of a User.
type UserResponse struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	BusinessName    string          `json:"business_name"`
	BusinessAddress string          `json:"business_address"`
	Phone           string          `json:"phone"`
	Currency        string          `json:"currency"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// AccessTokenResponse is returned by refresh.
type AccessTokenResponse struct {
	Access string `json:"access"`
}
