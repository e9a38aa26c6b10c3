package service

import (
	"github.com/apnaparivar/familytree-backend/internal/config"
	"github.com/apnaparivar/familytree-backend/internal/crypto"
	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/store"
)

// Services bundles every application service the handler layer consumes.
type Services struct {
	TokenService        TokenService
	OnboardingService   OnboardingService
	AuthService         AuthService
	FamilyService       FamilyService
	FamilyMemberService FamilyMemberService
	UserService         UserService
}

// NewServices wires the service layer over the given storages and ambient
// dependencies.
func NewServices(
	storages *store.Storages,
	credentials crypto.CredentialService,
	mailer Mailer,
	cfg config.App,
	logger *logger.Logger,
) *Services {
	tokens := NewTokenService(cfg, logger)

	return &Services{
		TokenService:        tokens,
		OnboardingService:   NewOnboardingService(storages, credentials, mailer, logger),
		AuthService:         NewAuthService(storages, tokens, credentials, cfg, logger),
		FamilyService:       NewFamilyService(storages.Families, logger),
		FamilyMemberService: NewFamilyMemberService(storages.FamilyMembers, logger),
		UserService:         NewUserService(storages.Users, logger),
	}
}
