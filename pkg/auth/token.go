package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintToken issues a signed JWT for the provided payload. The TTL follows the
// payload token type: access tokens use the configured expiration minutes,
// refresh tokens the refresh TTL.
func MintToken(cfg config.JWTConfig, now time.Time, payload TokenPayload) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if !payload.TokenType.IsValid() {
		return "", fmt.Errorf("invalid token type %q", payload.TokenType)
	}
	if payload.UserType != "" && !payload.UserType.IsValid() {
		return "", fmt.Errorf("invalid user type %q", payload.UserType)
	}
	if payload.AdminRole != nil && !payload.AdminRole.IsValid() {
		return "", fmt.Errorf("invalid admin role %q", *payload.AdminRole)
	}

	var ttl time.Duration
	switch payload.TokenType {
	case enums.TokenTypeAccess:
		ttl = cfg.AccessTokenTTL()
	case enums.TokenTypeRefresh:
		ttl = cfg.RefreshTokenTTL()
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive")
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := TokenClaims{
		UserID:    payload.UserID,
		UserType:  payload.UserType,
		AdminRole: payload.AdminRole,
		TokenType: payload.TokenType,
		AccessID:  payload.AccessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseToken validates the JWT string and returns typed claims. The token must
// carry the wanted token type; an access token can never stand in for a
// refresh token or vice versa.
func ParseToken(cfg config.JWTConfig, tokenString string, want enums.TokenType) (*TokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != want {
		return nil, fmt.Errorf("token type %q where %q expected", claims.TokenType, want)
	}

	return claims, nil
}
