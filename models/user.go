package models

import "time"

// Role enumerates the account roles recognised by the platform.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleFamilyAdmin   Role = "family_admin"
	RoleFamilyCoAdmin Role = "family_co_admin"
	RoleFamilyUser    Role = "family_user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleFamilyAdmin, RoleFamilyCoAdmin, RoleFamilyUser:
		return true
	}
	return false
}

// FamilyScoped reports whether the role is confined to a single family.
// The super-administrator is the only role that operates across families.
func (r Role) FamilyScoped() bool {
	return r == RoleFamilyAdmin || r == RoleFamilyCoAdmin || r == RoleFamilyUser
}

// ApprovalStatus is the lifecycle state of a family-admin account or of an
// onboarding request. It starts at pending and transitions exactly once.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// SuperAdminUserID is the fixed identity of the hardcoded super-administrator.
// It has no row in the users table, so it must never be written into
// foreign-key columns such as reviewed_by.
const SuperAdminUserID = "superadmin"

// User is an account row in the hosted store's "users" table.
//
// The id is assigned by the hosted auth provider, not by the store: a user row
// always mirrors an external auth identity. PasswordHash is never exposed via
// JSON responses; it exists only on the wire between this service and the
// hosted store.
type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	FullName       string         `json:"full_name,omitempty"`
	Role           Role           `json:"role"`
	ApprovalStatus ApprovalStatus `json:"approval_status,omitempty"`
	PasswordHash   string         `json:"password_hash,omitempty"`

	// FamilyID is nil until the admin's onboarding request is approved,
	// and always nil for the super-administrator.
	FamilyID *string `json:"family_id"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Public returns a copy of the user with credential material stripped,
// safe to embed in API responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// TableName returns the hosted-store table that backs the User model.
func (u User) TableName() string {
	return "users"
}
