package models

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// SuperAdminLoginRequest carries the fixed credential pair of the hardcoded
// super-administrator.
type SuperAdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r SuperAdminLoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("%w: username and password are required", ErrMissingField)
	}
	return nil
}

// AdminRegisterRequest is the body of the family-admin signup route. The
// caller-layer precondition checks from the onboarding contract live here:
// password confirmation, admin-password strength, and family-password
// presence. Family-password strength and uniqueness checks belong to the
// onboarding service itself.
type AdminRegisterRequest struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	FamilyName      string `json:"family_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FamilyPassword  string `json:"family_password"`
}

func (r AdminRegisterRequest) Validate() error {
	if !validEmail(r.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("%w: full_name", ErrMissingField)
	}
	if strings.TrimSpace(r.FamilyName) == "" {
		return fmt.Errorf("%w: family_name", ErrMissingField)
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(r.Password) < 8 {
		return ErrWeakAdminPassword
	}
	if strings.TrimSpace(r.FamilyPassword) == "" {
		return fmt.Errorf("%w: family_password", ErrMissingField)
	}
	return nil
}

// LoginRequest is the body of the family-admin login route.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if !validEmail(r.Email) {
		return ErrInvalidEmail
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password", ErrMissingField)
	}
	return nil
}

// MemberLoginRequest is the body of the family-member login route: the shared
// family credentials plus the member's own email as recorded in the tree.
type MemberLoginRequest struct {
	Email          string `json:"email"`
	FamilyName     string `json:"family_name"`
	FamilyPassword string `json:"family_password"`
}

func (r MemberLoginRequest) Validate() error {
	if !validEmail(r.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.FamilyName) == "" {
		return fmt.Errorf("%w: family_name", ErrMissingField)
	}
	if r.FamilyPassword == "" {
		return fmt.Errorf("%w: family_password", ErrMissingField)
	}
	return nil
}

// AdminDecisionRequest is the super-administrator's approve/reject action on
// an onboarding request. AdminPassword is required for approval, and
// RejectionReason for rejection.
type AdminDecisionRequest struct {
	RequestID       string `json:"request_id"`
	Action          string `json:"action"`
	AdminPassword   string `json:"admin_password,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

func (r AdminDecisionRequest) Validate() error {
	if strings.TrimSpace(r.RequestID) == "" {
		return fmt.Errorf("%w: request_id", ErrMissingField)
	}
	switch r.Action {
	case ActionApprove:
		if r.AdminPassword == "" {
			return ErrMissingAdminPassword
		}
	case ActionReject:
		if strings.TrimSpace(r.RejectionReason) == "" {
			return ErrMissingReason
		}
	default:
		return ErrInvalidAction
	}
	return nil
}

// FamilyPasswordRequest is the body of the family-password retrieval route.
// The admin re-supplies their login password, which doubles as the decryption
// passphrase for the stored ciphertext.
type FamilyPasswordRequest struct {
	AdminPassword string `json:"admin_password"`
}

func (r FamilyPasswordRequest) Validate() error {
	if r.AdminPassword == "" {
		return fmt.Errorf("%w: admin_password", ErrMissingField)
	}
	return nil
}

// EmailRequest is the body of the magic-link send route.
type EmailRequest struct {
	Email string `json:"email"`
}

func (r EmailRequest) Validate() error {
	if !validEmail(r.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// MagicLinkVerifyRequest carries the one-time passcode a user received by
// email back to the service for verification by the hosted auth provider.
type MagicLinkVerifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func (r MagicLinkVerifyRequest) Validate() error {
	if !validEmail(r.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Token) == "" {
		return fmt.Errorf("%w: token", ErrMissingField)
	}
	return nil
}

// RefreshTokenRequest carries the hosted auth provider's refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return fmt.Errorf("%w: refresh_token", ErrMissingField)
	}
	return nil
}

// CreateUserRequest is the body of the user-creation route.
type CreateUserRequest struct {
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
	FamilyID *string `json:"family_id,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	if !validEmail(r.Email) {
		return ErrInvalidEmail
	}
	if !r.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrMissingField, r.Role)
	}
	return nil
}

// CreateFamilyMemberRequest is the body of both the single and the bulk
// member-creation routes.
type CreateFamilyMemberRequest struct {
	Name          string         `json:"name"`
	PhotoURL      string         `json:"photo_url,omitempty"`
	Relationships map[string]any `json:"relationships"`
	CustomFields  map[string]any `json:"custom_fields"`
}

func (r CreateFamilyMemberRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyMemberName
	}
	return nil
}

// Member converts the request into a FamilyMember row for the given family.
// Name is trimmed; nil maps become empty maps so the hosted store receives
// JSON objects rather than nulls.
func (r CreateFamilyMemberRequest) Member(familyID string) FamilyMember {
	relationships := r.Relationships
	if relationships == nil {
		relationships = map[string]any{}
	}
	customFields := r.CustomFields
	if customFields == nil {
		customFields = map[string]any{}
	}
	return FamilyMember{
		FamilyID:      familyID,
		Name:          strings.TrimSpace(r.Name),
		PhotoURL:      r.PhotoURL,
		Relationships: relationships,
		CustomFields:  customFields,
	}
}

// BulkCreateFamilyMembersRequest creates up to 100 members in one batched
// insert. Validation is all-or-nothing: one bad entry fails the whole batch
// before anything is written.
type BulkCreateFamilyMembersRequest struct {
	Members []CreateFamilyMemberRequest `json:"members"`
}

func (r BulkCreateFamilyMembersRequest) Validate() error {
	if len(r.Members) == 0 {
		return ErrNoMembersProvided
	}
	if len(r.Members) > 100 {
		return ErrTooManyMembers
	}
	for i, m := range r.Members {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("member %d: %w", i+1, err)
		}
	}
	return nil
}

// UpdateFamilyMemberRequest carries a partial member update. Only non-nil
// fields are written.
type UpdateFamilyMemberRequest struct {
	Name          *string         `json:"name,omitempty"`
	PhotoURL      *string         `json:"photo_url,omitempty"`
	Relationships *map[string]any `json:"relationships,omitempty"`
	CustomFields  *map[string]any `json:"custom_fields,omitempty"`
}

func (r UpdateFamilyMemberRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ErrEmptyMemberName
	}
	return nil
}

// Fields returns the update as a column map for the hosted store.
func (r UpdateFamilyMemberRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = strings.TrimSpace(*r.Name)
	}
	if r.PhotoURL != nil {
		fields["photo_url"] = *r.PhotoURL
	}
	if r.Relationships != nil {
		fields["relationships"] = *r.Relationships
	}
	if r.CustomFields != nil {
		fields["custom_fields"] = *r.CustomFields
	}
	return fields
}
