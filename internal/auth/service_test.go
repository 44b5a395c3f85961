package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth/session"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/gst"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "invx-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 10080,
	}
}

func TestServiceLoginIssuesLinkedPair(t *testing.T) {
	password := "forge-press-9"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ops@acme.example",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
		UserType:     enums.UserTypeSeller,
	}
	cfg := testJWTConfig()
	svc, sessions := buildTestService(t, user, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Ops@Acme.Example ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	access, err := pkgAuth.ParseToken(cfg, resp.Tokens.AccessToken, enums.TokenTypeAccess)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if access.UserID != user.ID {
		t.Fatalf("expected user id claim, got %s", access.UserID)
	}
	if access.UserType != enums.UserTypeSeller {
		t.Fatalf("expected seller claim, got %s", access.UserType)
	}

	refresh, err := pkgAuth.ParseToken(cfg, resp.Tokens.RefreshToken, enums.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if refresh.AccessID != access.ID {
		t.Fatalf("expected refresh to reference access jti %s, got %s", access.ID, refresh.AccessID)
	}
	if sessions.generatedFor != access.ID {
		t.Fatalf("expected session opened for access jti, got %s", sessions.generatedFor)
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ops@acme.example",
		PasswordHash: mustHashPassword(t, "right-password"),
		IsActive:     true,
		UserType:     enums.UserTypeBoth,
	}
	svc, _ := buildTestService(t, user, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginRejectsDeactivatedAccount(t *testing.T) {
	password := "still-valid"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ops@acme.example",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     false,
		UserType:     enums.UserTypeBoth,
	}
	svc, _ := buildTestService(t, user, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	assertUnauthorized(t, err)
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	cfg := testJWTConfig()
	user := &models.User{
		ID:       uuid.New(),
		Email:    "ops@acme.example",
		IsActive: true,
		UserType: enums.UserTypeBuyer,
	}
	svc, sessions := buildTestService(t, user, cfg)

	pair, err := svc.IssueTokens(context.Background(), user.ID, user.UserType)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	access, err := pkgAuth.ParseToken(cfg, rotated.AccessToken, enums.TokenTypeAccess)
	if err != nil {
		t.Fatalf("parse rotated access token: %v", err)
	}
	if access.ID != sessions.lastAccessID {
		t.Fatalf("expected rotated access jti %s, got %s", sessions.lastAccessID, access.ID)
	}

	refresh, err := pkgAuth.ParseToken(cfg, rotated.RefreshToken, enums.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("parse rotated refresh token: %v", err)
	}
	if refresh.AccessID != access.ID {
		t.Fatalf("expected rotated refresh to reference new access jti")
	}
}

func TestServiceRefreshRejectsAccessToken(t *testing.T) {
	user := &models.User{ID: uuid.New(), IsActive: true, UserType: enums.UserTypeBoth}
	svc, _ := buildTestService(t, user, testJWTConfig())

	pair, err := svc.IssueTokens(context.Background(), user.ID, user.UserType)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assertUnauthorized(t, err)
}

func TestServiceRefreshRejectsRevokedSession(t *testing.T) {
	user := &models.User{ID: uuid.New(), IsActive: true, UserType: enums.UserTypeBoth}
	svc, sessions := buildTestService(t, user, testJWTConfig())

	pair, err := svc.IssueTokens(context.Background(), user.ID, user.UserType)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	sessions.rotateErr = session.ErrInvalidRefreshToken
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assertUnauthorized(t, err)
}

func TestServiceVerifyGST(t *testing.T) {
	user := &models.User{ID: uuid.New(), IsActive: true}
	svc, _ := buildTestService(t, user, testJWTConfig())

	t.Run("validFormat", func(t *testing.T) {
		resp, err := svc.VerifyGST(context.Background(), " 27aapfu0939f1zv ")
		if err != nil {
			t.Fatalf("verify gst: %v", err)
		}
		if !resp.Valid {
			t.Fatal("expected valid GSTIN")
		}
		if resp.StateCode != "27" {
			t.Fatalf("expected state code 27, got %q", resp.StateCode)
		}
	})

	t.Run("badFormat", func(t *testing.T) {
		resp, err := svc.VerifyGST(context.Background(), "not-a-gstin")
		if err != nil {
			t.Fatalf("verify gst: %v", err)
		}
		if resp.Valid {
			t.Fatal("expected invalid GSTIN")
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.VerifyGST(context.Background(), "  ")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func buildTestService(t *testing.T, user *models.User, cfg config.JWTConfig) (Service, *stubSessionManager) {
	t.Helper()

	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{user: user},
		SessionManager: sessions,
		GSTVerifier:    gst.NewFormatVerifier(),
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

type stubUserRepo struct {
	user *models.User
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionManager struct {
	generatedFor string
	lastAccessID string
	rotateErr    error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generatedFor = accessID
	s.lastAccessID = accessID
	return session.NewSessionID(), nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.lastAccessID = session.NewSessionID()
	return s.lastAccessID, session.NewSessionID(), nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}
