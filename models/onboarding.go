package models

import "time"

// OnboardingRequest is one family-admin signup awaiting a super-administrator
// decision. Status starts at pending and transitions exactly once, to
// approved or rejected, never back.
//
// The request stores both forms of the shared family password at creation
// time so that approval needs no access to any plaintext: the encrypted form
// is copied onto the Family row for later recovery by the admin, the hash for
// member-login verification.
type OnboardingRequest struct {
	ID                      string         `json:"id"`
	Email                   string         `json:"email"`
	FullName                string         `json:"full_name"`
	FamilyName              string         `json:"family_name"`
	FamilyPasswordEncrypted string         `json:"family_password_encrypted,omitempty"`
	FamilyPasswordHash      string         `json:"family_password_hash,omitempty"`
	UserID                  string         `json:"user_id"`
	Status                  ApprovalStatus `json:"status"`
	RequestedAt             time.Time      `json:"requested_at"`

	// ReviewedBy is nil while pending, and stays nil when the reviewer is
	// the hardcoded super-administrator identity, which has no users row.
	ReviewedBy *string    `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	RejectionReason string `json:"rejection_reason,omitempty"`
}

// Public returns a copy of the request with the stored family-password
// ciphertext and verification hash stripped. Listing and status endpoints
// must never expose either field.
func (r OnboardingRequest) Public() OnboardingRequest {
	r.FamilyPasswordEncrypted = ""
	r.FamilyPasswordHash = ""
	return r
}

// TableName returns the hosted-store table that backs the model.
func (r OnboardingRequest) TableName() string {
	return "admin_onboarding_requests"
}
