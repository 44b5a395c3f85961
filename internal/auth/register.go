package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/gst"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/security"
)

// RegisterService handles the business onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	ExistsByEmailPhoneOrGST(ctx context.Context, email, phone, gstNumber string) (bool, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type tokenIssuer interface {
	IssueTokens(ctx context.Context, userID uuid.UUID, userType enums.UserType) (TokenPair, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	TxRunner        txRunner
	UserRepoFactory func(tx *gorm.DB) registerUserRepository
	GSTVerifier     gst.Verifier
	Tokens          tokenIssuer
	PasswordConfig  config.PasswordConfig
}

type registerService struct {
	tx          txRunner
	userRepo    func(tx *gorm.DB) registerUserRepository
	gstVerifier gst.Verifier
	tokens      tokenIssuer
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.UserRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository factory required")
	}
	if params.GSTVerifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gst verifier required")
	}
	if params.Tokens == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "token issuer required")
	}
	return &registerService{
		tx:          params.TxRunner,
		userRepo:    params.UserRepoFactory,
		gstVerifier: params.GSTVerifier,
		tokens:      params.Tokens,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// DefaultUserRepoFactory builds the production repository from a transaction.
func DefaultUserRepoFactory(tx *gorm.DB) registerUserRepository {
	return users.NewRepository(tx)
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	gstin := gst.Normalize(req.GSTNumber)
	valid, err := s.gstVerifier.Verify(ctx, gstin)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify gst number")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid GST number")
	}

	userType := enums.UserTypeBoth
	if req.UserType != "" {
		parsed, err := enums.ParseUserType(req.UserType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user type")
		}
		userType = parsed
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepo(tx)

		taken, err := repo.ExistsByEmailPhoneOrGST(ctx, email, phone, gstin)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check registration identifiers")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "email, phone, or GST number already registered")
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			Email:         email,
			Phone:         phone,
			GSTNumber:     gstin,
			PasswordHash:  passwordHash,
			CompanyName:   req.CompanyName,
			ContactPerson: req.ContactPerson,
			Address:       req.Address,
			City:          req.City,
			State:         req.State,
			Pincode:       req.Pincode,
			UserType:      userType,
		})
		if err != nil {
			// Concurrent registration can slip past the pre-check.
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email, phone, or GST number already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		created = users.FromModel(user)
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register user")
	}

	tokens, err := s.tokens.IssueTokens(ctx, created.ID, userType)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{Tokens: tokens, User: created}, nil
}
