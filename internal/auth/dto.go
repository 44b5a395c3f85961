package auth

import (
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
)

// RegisterRequest captures the business signup payload.
type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required,min=10,max=15"`
	GSTNumber     string  `json:"gst_number" validate:"required"`
	Password      string  `json:"password" validate:"required,min=8"`
	CompanyName   string  `json:"company_name" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Pincode       *string `json:"pincode,omitempty"`
	UserType      string  `json:"user_type,omitempty" validate:"omitempty,oneof=seller buyer both"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token being exchanged.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair bundles the two JWTs issued by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterResponse contains the created account and its first token pair.
type RegisterResponse struct {
	Tokens TokenPair      `json:"tokens"`
	User   *users.UserDTO `json:"user"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	Tokens TokenPair      `json:"tokens"`
	User   *users.UserDTO `json:"user"`
}

// GSTVerificationResponse reports the outcome of a GSTIN check.
type GSTVerificationResponse struct {
	GSTNumber string `json:"gst_number"`
	Valid     bool   `json:"valid"`
	StateCode string `json:"state_code,omitempty"`
}
