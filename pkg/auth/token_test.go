package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "inventory-exchange",
		ExpirationMinutes: 15,
	}
	now := time.Now().UTC()
	userID := uuid.New()

	payload := TokenPayload{
		UserID:    userID,
		UserType:  enums.UserTypeSeller,
		TokenType: enums.TokenTypeAccess,
	}

	token, err := MintToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	claims, err := ParseToken(cfg, token, enums.TokenTypeAccess)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.UserType != enums.UserTypeSeller {
		t.Fatalf("unexpected user type %s", claims.UserType)
	}
	if claims.TokenType != enums.TokenTypeAccess {
		t.Fatalf("unexpected token type %s", claims.TokenType)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseTokenRejectsWrongType(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "inventory-exchange",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 10080,
	}
	now := time.Now()

	refresh, err := MintToken(cfg, now, TokenPayload{
		UserID:    uuid.New(),
		UserType:  enums.UserTypeBuyer,
		TokenType: enums.TokenTypeRefresh,
		AccessID:  uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint refresh token: %v", err)
	}

	if _, err := ParseToken(cfg, refresh, enums.TokenTypeAccess); err == nil {
		t.Fatal("expected refresh token to be rejected as access token")
	}

	claims, err := ParseToken(cfg, refresh, enums.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if claims.AccessID == "" {
		t.Fatal("expected access_id claim on refresh token")
	}
}

func TestParseTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "inventory-exchange",
		ExpirationMinutes: 10,
	}
	token, err := MintToken(cfg, time.Now(), TokenPayload{
		UserID:    uuid.New(),
		UserType:  enums.UserTypeBoth,
		TokenType: enums.TokenTypeAccess,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := ParseToken(cfg, token+"x", enums.TokenTypeAccess); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "inventory-exchange",
		ExpirationMinutes: 15,
	}
	token, err := MintToken(cfg, time.Now().Add(-time.Hour), TokenPayload{
		UserID:    uuid.New(),
		UserType:  enums.UserTypeSeller,
		TokenType: enums.TokenTypeAccess,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = ParseToken(cfg, token, enums.TokenTypeAccess)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintTokenInvalidType(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "inventory-exchange",
		ExpirationMinutes: 5,
	}
	if _, err := MintToken(cfg, time.Now(), TokenPayload{UserID: uuid.New()}); err == nil {
		t.Fatal("expected invalid token type error")
	}
}
