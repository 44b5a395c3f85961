package enums

import "fmt"

// AdminRole describes the allowed values for the `role` column in admin_users.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleModerator  AdminRole = "moderator"
)

var validAdminRoles = []AdminRole{
	AdminRoleSuperAdmin,
	AdminRoleModerator,
}

// IsValid reports whether the value matches the canonical admin role enum.
func (a AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdminRole converts the raw string to AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
