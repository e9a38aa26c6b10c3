package models

import (
	"strings"
	"time"
)

// Family is one tenant of the platform. A family row is created only as a
// side effect of approving an onboarding request, never directly.
//
// FamilyPasswordEncrypted holds the shared member password encrypted under
// the admin's login password; only someone who supplies that password can
// recover the plaintext. FamilyPasswordHash is the one-way counterpart used
// to verify member logins without recovering the plaintext. Neither field
// may leave the service through an API response.
type Family struct {
	ID                      string    `json:"id"`
	FamilyName              string    `json:"family_name"`
	AdminUserID             string    `json:"admin_user_id,omitempty"`
	FamilyPasswordEncrypted string    `json:"family_password_encrypted,omitempty"`
	FamilyPasswordHash      string    `json:"family_password_hash,omitempty"`
	CreatedAt               time.Time `json:"created_at,omitempty"`
	UpdatedAt               time.Time `json:"updated_at,omitempty"`
}

// Public returns a copy of the family with both password fields stripped.
func (f Family) Public() Family {
	f.FamilyPasswordEncrypted = ""
	f.FamilyPasswordHash = ""
	return f
}

// TableName returns the hosted-store table that backs the Family model.
func (f Family) TableName() string {
	return "families"
}

// FamilyMember is a person recorded inside a family's tree. A member is not a
// login-capable account by itself: member login is possible only when the
// relationships map carries an "email" key, which then acts as the member's
// login identity together with the shared family password.
type FamilyMember struct {
	ID       string `json:"id"`
	FamilyID string `json:"family_id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`

	// Relationships is an open key-value map describing how this member
	// relates to others ("father": "<member id>", "email": "...", etc.).
	Relationships map[string]any `json:"relationships"`

	// CustomFields carries arbitrary per-family attributes (birthday,
	// birthplace, occupation, ...). The service never interprets them.
	CustomFields map[string]any `json:"custom_fields"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Email returns the login email embedded in the relationships map,
// or "" when the member has none.
func (m FamilyMember) Email() string {
	if m.Relationships == nil {
		return ""
	}
	email, _ := m.Relationships["email"].(string)
	return email
}

// Validate checks the single business rule a member row must satisfy:
// a non-empty name after trimming.
func (m FamilyMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyMemberName
	}
	return nil
}

// TableName returns the hosted-store table that backs the FamilyMember model.
func (m FamilyMember) TableName() string {
	return "family_members"
}
