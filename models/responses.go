package models

import "time"

// AuthResponse is the common shape of every successful login route.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
	Message      string `json:"message,omitempty"`
}

// RegisterResponse acknowledges a newly created onboarding request.
type RegisterResponse struct {
	RequestID string         `json:"request_id"`
	Status    ApprovalStatus `json:"status"`
	Message   string         `json:"message"`
}

// RequestStatusResponse is the read-only projection returned by the status
// lookup route. It intentionally omits the stored password fields.
type RequestStatusResponse struct {
	RequestID       string         `json:"request_id"`
	Status          ApprovalStatus `json:"status"`
	Email           string         `json:"email"`
	FamilyName      string         `json:"family_name"`
	RequestedAt     time.Time      `json:"requested_at"`
	ReviewedAt      *time.Time     `json:"reviewed_at"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
}

// PendingRequestsResponse lists pending onboarding requests, newest first,
// with credential material stripped from every entry.
type PendingRequestsResponse struct {
	Total    int                 `json:"total"`
	Requests []OnboardingRequest `json:"requests"`
}

// DecisionResponse reports the outcome of an approve/reject action.
type DecisionResponse struct {
	Message         string         `json:"message"`
	Status          ApprovalStatus `json:"status"`
	UserID          string         `json:"user_id,omitempty"`
	FamilyID        string         `json:"family_id,omitempty"`
	Email           string         `json:"email,omitempty"`
	FamilyName      string         `json:"family_name,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
}

// FamilyPasswordResponse returns the decrypted shared family password to the
// family admin who proved knowledge of their login password.
type FamilyPasswordResponse struct {
	FamilyPassword string `json:"family_password"`
}

// BulkCreateFamilyMembersResponse summarises an all-or-nothing batched
// member insert.
type BulkCreateFamilyMembersResponse struct {
	Success      bool     `json:"success"`
	CreatedCount int      `json:"created_count"`
	FailedCount  int      `json:"failed_count"`
	MemberIDs    []string `json:"member_ids"`
	Message      string   `json:"message"`
}

// TokenVerifyResponse echoes the identity claims of a verified session
// token back to the caller.
type TokenVerifyResponse struct {
	UserID   string  `json:"user_id"`
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
	FamilyID *string `json:"family_id"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// ErrorResponse is the uniform error body produced by the handler layer.
type ErrorResponse struct {
	Error string `json:"error"`
}
