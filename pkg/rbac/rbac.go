package rbac

import (
	"fmt"
	"slices"
)

// Role is a dashboard role. Roles are totally ordered by Rank.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleStaff       Role = "staff"
	RoleClientAdmin Role = "client_admin"
	RoleClientUser  Role = "client_user"
)

var roleRank = map[Role]int{
	RoleAdmin:       4,
	RoleStaff:       3,
	RoleClientAdmin: 2,
	RoleClientUser:  1,
}

// legacy role names written by the first dashboard release
var legacyRoles = map[string]Role{
	"gestorial_admin": RoleAdmin,
	"gestorial_staff": RoleStaff,
}

// ParseRole accepts current and legacy role names.
func ParseRole(s string) (Role, error) {
	if r, ok := legacyRoles[s]; ok {
		return r, nil
	}
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Rank returns the role's position in the hierarchy, 0 for unknown roles.
func (r Role) Rank() int {
	return roleRank[r]
}

func (r Role) Valid() bool {
	return r.Rank() > 0
}

// Internal reports whether the role belongs to Gestorial staff rather than a client company.
func (r Role) Internal() bool {
	return r == RoleAdmin || r == RoleStaff
}

// UnmarshalText lets JSON and YAML decoding go through ParseRole.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AtLeast reports whether role meets the required minimum. Unknown roles never do.
func AtLeast(role, required Role) bool {
	if !role.Valid() || !required.Valid() {
		return false
	}
	return role.Rank() >= required.Rank()
}

// CanEditProject applies the ownership rule: internal roles edit everything,
// client roles only projects of their own company. A client without a
// company edits nothing.
func CanEditProject(role Role, companyID *string, projectCompanyID string) bool {
	if role.Internal() {
		return true
	}
	if !role.Valid() || companyID == nil || *companyID == "" {
		return false
	}
	return *companyID == projectCompanyID
}

// Permission names an action a role may perform.
type Permission string

const (
	PermissionReadProject    Permission = "project:read"
	PermissionEditProject    Permission = "project:edit"
	PermissionEditMatrix     Permission = "matrix:edit"
	PermissionReadFinancials Permission = "financial:read"
	PermissionComment        Permission = "activity:comment"
	PermissionManageCompany  Permission = "company:manage"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionReadProject,
		PermissionEditProject,
		PermissionEditMatrix,
		PermissionReadFinancials,
		PermissionComment,
		PermissionManageCompany,
	},
	RoleStaff: {
		PermissionReadProject,
		PermissionEditProject,
		PermissionEditMatrix,
		PermissionReadFinancials,
		PermissionComment,
	},
	RoleClientAdmin: {
		PermissionReadProject,
		PermissionEditProject,
		PermissionEditMatrix,
		PermissionReadFinancials,
		PermissionComment,
	},
	RoleClientUser: {
		PermissionReadProject,
		PermissionReadFinancials,
		PermissionComment,
	},
}

// HasPermission reports whether role grants permission.
func HasPermission(role Role, permission Permission) bool {
	return slices.Contains(rolePermissions[role], permission)
}

// CheckPermission is HasPermission returning a *PermissionDeniedError.
func CheckPermission(userID string, role Role, permission Permission) error {
	if !HasPermission(role, permission) {
		return &PermissionDeniedError{UserID: userID, Permission: permission}
	}
	return nil
}

// PermissionDeniedError is returned when a role lacks a permission.
type PermissionDeniedError struct {
	UserID     string
	Permission Permission
	Resource   string
}

func (e *PermissionDeniedError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("insufficient permissions: %s on %s", e.Permission, e.Resource)
	}
	return fmt.Sprintf("insufficient permissions: %s", e.Permission)
}
