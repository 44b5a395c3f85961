package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth/session"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/pagination"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/security"
)

// Service exposes back-office moderation operations.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Dashboard(ctx context.Context) (*DashboardDTO, error)
	ListUsers(ctx context.Context, skip, limit int) ([]users.UserDTO, error)
	VerifyUser(ctx context.Context, userID uuid.UUID) error
	DeactivateUser(ctx context.Context, userID uuid.UUID) error
}

// LoginResult carries the minted operator token.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// DashboardDTO bundles the moderation overview counts.
type DashboardDTO struct {
	TotalUsers          int64 `json:"total_users"`
	VerifiedUsers       int64 `json:"verified_users"`
	VerificationPending int64 `json:"verification_pending"`
	TotalProducts       int64 `json:"total_products"`
	ActiveProducts      int64 `json:"active_products"`
}

type userDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, skip, limit int) ([]models.User, error)
}

// service implements the back-office service.
type service struct {
	repo      *Repository
	directory userDirectory
	jwtCfg    config.JWTConfig
}

// NewService constructs a back-office service instance.
func NewService(repo *Repository, directory userDirectory, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if directory == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{repo: repo, directory: directory, jwtCfg: jwtCfg}, nil
}

// Login authenticates an operator and mints an access token carrying the
// admin role claim. Admin sessions have no refresh leg.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load admin user")
	}
	if !admin.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	role := admin.Role
	token, err := auth.MintToken(s.jwtCfg, time.Now(), auth.TokenPayload{
		UserID:    admin.ID,
		UserType:  enums.UserTypeBoth,
		AdminRole: &role,
		TokenType: enums.TokenTypeAccess,
		JTI:       session.NewSessionID(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token")
	}

	return &LoginResult{AccessToken: token, Role: string(admin.Role)}, nil
}

// Dashboard returns the moderation overview counts.
func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	totalUsers, err := s.repo.CountUsers(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count users")
	}
	verifiedUsers, err := s.repo.CountUsers(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count verified users")
	}
	pending, err := s.repo.CountVerificationPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count pending verifications")
	}
	totalProducts, err := s.repo.CountProducts(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	activeProducts, err := s.repo.CountProducts(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count active products")
	}

	return &DashboardDTO{
		TotalUsers:          totalUsers,
		VerifiedUsers:       verifiedUsers,
		VerificationPending: pending,
		TotalProducts:       totalProducts,
		ActiveProducts:      activeProducts,
	}, nil
}

// ListUsers returns one page of accounts, newest first.
func (s *service) ListUsers(ctx context.Context, skip, limit int) ([]users.UserDTO, error) {
	params := pagination.Normalize(pagination.Params{Skip: skip, Limit: limit})

	rows, err := s.directory.List(ctx, params.Skip, params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	out := make([]users.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *users.FromModel(&rows[i]))
	}
	return out, nil
}

// VerifyUser marks the account as verified.
func (s *service) VerifyUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return pkgerrors.New(pkgerrors.CodeConflict, "user is already verified")
	}
	if err := s.directory.SetVerified(ctx, userID, true); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: verify user")
	}
	return nil
}

// DeactivateUser disables the account. Existing sessions expire on their
// own; the auth middleware rejects deactivated accounts at the service layer.
func (s *service) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return pkgerrors.New(pkgerrors.CodeConflict, "user is already deactivated")
	}
	if err := s.directory.SetActive(ctx, userID, false); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate user")
	}
	return nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.directory.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return user, nil
}
