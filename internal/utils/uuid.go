package utils

import "github.com/google/uuid"

// UUIDGenerator mints the string identifiers used for every locally created
// row (families, onboarding requests, directory accounts).
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a version 7 UUID so identifiers sort by creation time,
// falling back to a random v4 if the clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
