package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

// Service exposes profile operations for authenticated accounts.
type Service interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfileDTO, error)
}

// UpdateProfileInput holds optional mutation values for the caller's profile.
// Identity fields (email, phone, GST number) are immutable here.
type UpdateProfileInput struct {
	CompanyName     *string
	ContactPerson   *string
	BusinessLicense *string
	Address         *string
	City            *string
	State           *string
	Pincode         *string
}

// service implements the profile service.
type service struct {
	repo *Repository
}

// NewService constructs a profile service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

// GetMe returns the caller's own profile.
func (s *service) GetMe(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// UpdateMe applies the provided fields to the caller's profile.
func (s *service) UpdateMe(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		if *input.CompanyName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name cannot be empty")
		}
		user.CompanyName = *input.CompanyName
	}
	if input.ContactPerson != nil {
		if *input.ContactPerson == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact_person cannot be empty")
		}
		user.ContactPerson = *input.ContactPerson
	}
	if input.BusinessLicense != nil {
		user.BusinessLicense = input.BusinessLicense
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.City != nil {
		user.City = input.City
	}
	if input.State != nil {
		user.State = input.State
	}
	if input.Pincode != nil {
		user.Pincode = input.Pincode
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return FromModel(saved), nil
}

// GetPublicProfile returns the reduced profile other accounts may see.
// Deactivated accounts read as not found.
func (s *service) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfileDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return PublicProfileFromModel(user), nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return user, nil
}
