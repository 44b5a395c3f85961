package enums

import "fmt"

// UserType describes the allowed values for the `user_type` column in users.
type UserType string

const (
	UserTypeSeller UserType = "seller"
	UserTypeBuyer  UserType = "buyer"
	UserTypeBoth   UserType = "both"
)

var validUserTypes = []UserType{
	UserTypeSeller,
	UserTypeBuyer,
	UserTypeBoth,
}

// CanSell reports whether the user type is allowed to list products.
func (u UserType) CanSell() bool {
	return u == UserTypeSeller || u == UserTypeBoth
}

// IsValid reports whether the value matches the canonical user type enum.
func (u UserType) IsValid() bool {
	for _, candidate := range validUserTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserType converts the raw string to UserType.
func ParseUserType(value string) (UserType, error) {
	for _, candidate := range validUserTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user type %q", value)
}
