package model

import (
	"time"

	"gestorial/pkg/rbac"
)

// User is an authenticated identity. CompanyID is set for client roles only.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	CompanyID *string   `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyIDOrEmpty is a convenience for logging and claims.
func (u User) CompanyIDOrEmpty() string {
	if u.CompanyID == nil {
		return ""
	}
	return *u.CompanyID
}

func (u User) Clone() User {
	cp := u
	if u.CompanyID != nil {
		id := *u.CompanyID
		cp.CompanyID = &id
	}
	return cp
}

// Equal compares every field, including the optional company.
func (u User) Equal(o User) bool {
	return u.ID == o.ID &&
		u.Name == o.Name &&
		u.Email == o.Email &&
		u.Role == o.Role &&
		u.CompanyIDOrEmpty() == o.CompanyIDOrEmpty() &&
		(u.CompanyID == nil) == (o.CompanyID == nil) &&
		u.CreatedAt.Equal(o.CreatedAt) &&
		u.UpdatedAt.Equal(o.UpdatedAt)
}

// Credential pairs a user with a stored password hash.
type Credential struct {
	User         User
	PasswordHash string
}
