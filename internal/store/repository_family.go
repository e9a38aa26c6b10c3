package store

import (
	"context"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/models"
)

// familyRepository is the hosted-store implementation of [FamilyRepository],
// backed by the families table.
type familyRepository struct {
	client *RestClient
	logger *logger.Logger
}

// NewFamilyRepository constructs a [FamilyRepository] backed by the provided
// REST client.
func NewFamilyRepository(client *RestClient, logger *logger.Logger) FamilyRepository {
	logger.Debug().Msg("creating family repository")
	return &familyRepository{client: client, logger: logger}
}

func (r *familyRepository) table() string {
	return models.Family{}.TableName()
}

// Create inserts the family row. The id is generated by the caller (the
// approval transition mints it) so that the response can reference the new
// family before the insert round-trips.
func (r *familyRepository) Create(ctx context.Context, family models.Family) (models.Family, error) {
	payload := map[string]any{
		"id":                        family.ID,
		"family_name":               family.FamilyName,
		"admin_user_id":             family.AdminUserID,
		"family_password_encrypted": family.FamilyPasswordEncrypted,
		"family_password_hash":      family.FamilyPasswordHash,
	}

	var stored []models.Family
	if err := r.client.From(r.table()).Insert(ctx, payload, &stored); err != nil {
		return models.Family{}, err
	}
	if len(stored) == 0 {
		return models.Family{}, fmt.Errorf("insert into %s returned no rows", r.table())
	}

	return stored[0], nil
}

func (r *familyRepository) GetByID(ctx context.Context, familyID string) (models.Family, error) {
	var rows []models.Family
	if err := r.client.From(r.table()).Eq("id", familyID).Select(ctx, &rows); err != nil {
		return models.Family{}, err
	}
	if len(rows) == 0 {
		return models.Family{}, ErrNotFound
	}

	return rows[0], nil
}

func (r *familyRepository) FindByName(ctx context.Context, familyName string) (models.Family, error) {
	var rows []models.Family
	if err := r.client.From(r.table()).Eq("family_name", familyName).Select(ctx, &rows); err != nil {
		return models.Family{}, err
	}
	if len(rows) == 0 {
		return models.Family{}, ErrNotFound
	}

	return rows[0], nil
}

func (r *familyRepository) List(ctx context.Context) ([]models.Family, error) {
	var rows []models.Family
	if err := r.client.From(r.table()).Select(ctx, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *familyRepository) Update(ctx context.Context, familyID string, fields map[string]any) (models.Family, error) {
	var updated []models.Family
	err := r.client.From(r.table()).Eq("id", familyID).Update(ctx, fields, &updated)
	if err != nil {
		return models.Family{}, err
	}
	if len(updated) == 0 {
		return models.Family{}, ErrNotFound
	}

	return updated[0], nil
}

func (r *familyRepository) Delete(ctx context.Context, familyID string) error {
	log := logger.FromContext(ctx)
	log.Debug().Str("family_id", familyID).Msg("deleting family")

	return r.client.From(r.table()).Eq("id", familyID).Delete(ctx)
}
