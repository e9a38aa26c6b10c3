package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the JWT claim set carried by every session token issued by
// this service. The four custom claims are embedded verbatim as required by
// the authentication contract; RegisteredClaims supplies iss/exp/iat.
//
// FamilyID is a pointer so that the super-administrator (who belongs to no
// family) serialises as an explicit null rather than an empty string.
type TokenClaims struct {
	jwt.RegisteredClaims

	UserID   string  `json:"user_id"`
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
	FamilyID *string `json:"family_id"`
}

// Token pairs decoded claims with their compact signed representation.
type Token struct {
	Claims       TokenClaims `json:"-"`
	SignedString string      `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
