package store

import "github.com/apnaparivar/familytree-backend/internal/logger"

// Storages bundles every persistence boundary the service layer needs. All
// repositories share one REST client and therefore one connection pool.
type Storages struct {
	OnboardingRequests OnboardingRequestRepository
	Users              UserRepository
	Families           FamilyRepository
	FamilyMembers      FamilyMemberRepository
	Auth               AuthClient
}

// NewStorages wires the repositories and the auth client against the hosted
// service described by cfg.
func NewStorages(cfg RestConfig, logger *logger.Logger) *Storages {
	client := NewRestClient(cfg, logger)

	return &Storages{
		OnboardingRequests: NewOnboardingRequestRepository(client, logger),
		Users:              NewUserRepository(client, logger),
		Families:           NewFamilyRepository(client, logger),
		FamilyMembers:      NewFamilyMemberRepository(client, logger),
		Auth:               NewAuthClient(cfg, logger),
	}
}
