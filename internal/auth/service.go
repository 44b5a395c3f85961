package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
	pkgAuth "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth/session"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/gst"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
	VerifyGST(ctx context.Context, gstin string) (*GSTVerificationResponse, error)
	IssueTokens(ctx context.Context, userID uuid.UUID, userType enums.UserType) (TokenPair, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users       userRepository
	session     sessionManager
	gstVerifier gst.Verifier
	jwtCfg      config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	GSTVerifier    gst.Verifier
	JWTConfig      config.JWTConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.GSTVerifier == nil {
		return nil, fmt.Errorf("gst verifier is required")
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		gstVerifier: params.GSTVerifier,
		jwtCfg:      params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokens, err := s.IssueTokens(ctx, user.ID, user.UserType)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Tokens: tokens,
		User:   users.FromModel(user),
	}, nil
}

// Refresh rotates the Redis session behind the refresh token and mints a new
// pair. The presented token is single-use; replaying it revokes nothing but
// fails the constant-time comparison against the rotated session.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := pkgAuth.ParseToken(s.jwtCfg, refreshToken, enums.TokenTypeRefresh)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	newAccessID, newRefreshID, err := s.session.Rotate(ctx, claims.AccessID, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	tokens, err := s.mintPair(user.ID, user.UserType, newAccessID, newRefreshID)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout revokes the Redis session tied to the caller's access token.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// VerifyGST checks a GSTIN without touching any account state.
func (s *service) VerifyGST(ctx context.Context, gstin string) (*GSTVerificationResponse, error) {
	normalized := gst.Normalize(gstin)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gst_number is required")
	}

	valid, err := s.gstVerifier.Verify(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify gst number")
	}

	response := &GSTVerificationResponse{GSTNumber: normalized, Valid: valid}
	if valid {
		response.StateCode = gst.StateCode(normalized)
	}
	return response, nil
}

// IssueTokens mints an access/refresh pair and opens the backing Redis
// session.
func (s *service) IssueTokens(ctx context.Context, userID uuid.UUID, userType enums.UserType) (TokenPair, error) {
	accessID := session.NewSessionID()
	refreshID, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh session")
	}
	return s.mintPair(userID, userType, accessID, refreshID)
}

func (s *service) mintPair(userID uuid.UUID, userType enums.UserType, accessID, refreshID string) (TokenPair, error) {
	now := time.Now().UTC()

	accessToken, err := pkgAuth.MintToken(s.jwtCfg, now, pkgAuth.TokenPayload{
		UserID:    userID,
		UserType:  userType,
		TokenType: enums.TokenTypeAccess,
		JTI:       accessID,
	})
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := pkgAuth.MintToken(s.jwtCfg, now, pkgAuth.TokenPayload{
		UserID:    userID,
		UserType:  userType,
		TokenType: enums.TokenTypeRefresh,
		JTI:       refreshID,
		AccessID:  accessID,
	})
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint refresh token")
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
