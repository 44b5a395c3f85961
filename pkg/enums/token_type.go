package enums

import "fmt"

// TokenType discriminates access tokens from refresh tokens in JWT claims.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var validTokenTypes = []TokenType{
	TokenTypeAccess,
	TokenTypeRefresh,
}

// IsValid reports whether the value matches the canonical token type enum.
func (t TokenType) IsValid() bool {
	for _, candidate := range validTokenTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTokenType converts the raw string to TokenType.
func ParseTokenType(value string) (TokenType, error) {
	for _, candidate := range validTokenTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid token type %q", value)
}
