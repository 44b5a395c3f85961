package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

// User represents a registered business account.
type User struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email           string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone           string         `gorm:"column:phone;type:text;not null;uniqueIndex"`
	GSTNumber       string         `gorm:"column:gst_number;type:text;not null;uniqueIndex"`
	PasswordHash    string         `gorm:"column:password_hash;not null"`
	CompanyName     string         `gorm:"column:company_name;not null"`
	ContactPerson   string         `gorm:"column:contact_person;not null"`
	BusinessLicense *string        `gorm:"column:business_license"`
	Address         *string        `gorm:"column:address"`
	City            *string        `gorm:"column:city"`
	State           *string        `gorm:"column:state"`
	Pincode         *string        `gorm:"column:pincode"`
	IsVerified      bool           `gorm:"column:is_verified;not null;default:false"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true"`
	UserType        enums.UserType `gorm:"column:user_type;type:user_type;not null;default:'both'"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
