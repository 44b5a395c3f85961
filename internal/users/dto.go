package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	GSTNumber       string    `json:"gst_number"`
	CompanyName     string    `json:"company_name"`
	ContactPerson   string    `json:"contact_person"`
	BusinessLicense *string   `json:"business_license,omitempty"`
	Address         *string   `json:"address,omitempty"`
	City            *string   `json:"city,omitempty"`
	State           *string   `json:"state,omitempty"`
	Pincode         *string   `json:"pincode,omitempty"`
	IsVerified      bool      `json:"is_verified"`
	IsActive        bool      `json:"is_active"`
	UserType        string    `json:"user_type"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PublicProfileDTO is the reduced view other marketplace users see.
type PublicProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	UserType    string    `json:"user_type"`
	MemberSince time.Time `json:"member_since"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email         string
	Phone         string
	GSTNumber     string
	PasswordHash  string
	CompanyName   string
	ContactPerson string
	Address       *string
	City          *string
	State         *string
	Pincode       *string
	UserType      enums.UserType
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Phone:           u.Phone,
		GSTNumber:       u.GSTNumber,
		CompanyName:     u.CompanyName,
		ContactPerson:   u.ContactPerson,
		BusinessLicense: u.BusinessLicense,
		Address:         u.Address,
		City:            u.City,
		State:           u.State,
		Pincode:         u.Pincode,
		IsVerified:      u.IsVerified,
		IsActive:        u.IsActive,
		UserType:        string(u.UserType),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// PublicProfileFromModel projects a user into what other accounts may see.
func PublicProfileFromModel(u *models.User) *PublicProfileDTO {
	if u == nil {
		return nil
	}

	return &PublicProfileDTO{
		ID:          u.ID,
		CompanyName: u.CompanyName,
		City:        u.City,
		State:       u.State,
		IsVerified:  u.IsVerified,
		UserType:    string(u.UserType),
		MemberSince: u.CreatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	userType := c.UserType
	if userType == "" {
		userType = enums.UserTypeBoth
	}

	return &models.User{
		Email:         c.Email,
		Phone:         c.Phone,
		GSTNumber:     c.GSTNumber,
		PasswordHash:  c.PasswordHash,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Pincode:       c.Pincode,
		IsActive:      true,
		UserType:      userType,
	}
}
