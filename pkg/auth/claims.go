package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

// TokenPayload captures the data available when minting a JWT.
type TokenPayload struct {
	UserID    uuid.UUID
	UserType  enums.UserType
	AdminRole *enums.AdminRole
	TokenType enums.TokenType
	JTI       string
	// AccessID links a refresh token back to the access token jti whose
	// Redis session it rotates. Only set on refresh tokens.
	AccessID string
}

// TokenClaims represents the typed JWT issued to clients.
type TokenClaims struct {
	UserID    uuid.UUID        `json:"user_id"`
	UserType  enums.UserType   `json:"user_type,omitempty"`
	AdminRole *enums.AdminRole `json:"admin_role,omitempty"`
	TokenType enums.TokenType  `json:"token_type"`
	AccessID  string           `json:"access_id,omitempty"`
	jwt.RegisteredClaims
}
