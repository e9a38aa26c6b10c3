package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/store"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/apnaparivar/familytree-backend/models"
)

// familyService is the directory service over family rows. Every returned
// family has its password fields stripped; the only reader of those fields
// is the auth service.
type familyService struct {
	families store.FamilyRepository
	uuid     *utils.UUIDGenerator
	logger   *logger.Logger
}

// NewFamilyService constructs a FamilyService over the given repository.
func NewFamilyService(families store.FamilyRepository, logger *logger.Logger) FamilyService {
	return &familyService{
		families: families,
		uuid:     utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// Create inserts a bare family row. The onboarding approval path is the
// normal way families come into existence; this direct route exists for the
// super-administrator only.
func (s *familyService) Create(ctx context.Context, familyName string) (models.Family, error) {
	family, err := s.families.Create(ctx, models.Family{
		ID:         s.uuid.Generate(),
		FamilyName: familyName,
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.Family{}, ErrDuplicateFamilyName
		}
		return models.Family{}, fmt.Errorf("family creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("family_id", family.ID).Msg("family created")
	return family.Public(), nil
}

func (s *familyService) Get(ctx context.Context, familyID string) (models.Family, error) {
	family, err := s.families.GetByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Family{}, ErrNotFound
		}
		return models.Family{}, fmt.Errorf("family lookup failed: %w", err)
	}

	return family.Public(), nil
}

func (s *familyService) List(ctx context.Context) ([]models.Family, error) {
	families, err := s.families.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("family listing failed: %w", err)
	}

	public := make([]models.Family, 0, len(families))
	for _, family := range families {
		public = append(public, family.Public())
	}
	return public, nil
}

// Update applies a partial update. The stored credential columns, the row
// identity, and the admin ownership are not updatable through this route;
// admin ownership is set once by the approval workflow.
func (s *familyService) Update(ctx context.Context, familyID string, fields map[string]any) (models.Family, error) {
	delete(fields, "id")
	delete(fields, "family_password_encrypted")
	delete(fields, "family_password_hash")
	delete(fields, "admin_user_id")
	delete(fields, "created_at")
	if len(fields) == 0 {
		return s.Get(ctx, familyID)
	}

	family, err := s.families.Update(ctx, familyID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Family{}, ErrNotFound
		}
		if errors.Is(err, store.ErrUniqueViolation) {
			return models.Family{}, ErrDuplicateFamilyName
		}
		return models.Family{}, fmt.Errorf("family update failed: %w", err)
	}

	return family.Public(), nil
}

func (s *familyService) Delete(ctx context.Context, familyID string) error {
	if _, err := s.families.GetByID(ctx, familyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("family lookup failed: %w", err)
	}

	if err := s.families.Delete(ctx, familyID); err != nil {
		return fmt.Errorf("family deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("family_id", familyID).Msg("family deleted")
	return nil
}
