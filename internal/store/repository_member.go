package store

import (
	"context"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/models"
)

// memberRepository is the hosted-store implementation of
// [FamilyMemberRepository], backed by the family_members table.
type memberRepository struct {
	client *RestClient
	logger *logger.Logger
}

// NewFamilyMemberRepository constructs a [FamilyMemberRepository] backed by
// the provided REST client.
func NewFamilyMemberRepository(client *RestClient, logger *logger.Logger) FamilyMemberRepository {
	logger.Debug().Msg("creating family member repository")
	return &memberRepository{client: client, logger: logger}
}

func (r *memberRepository) table() string {
	return models.FamilyMember{}.TableName()
}

func memberPayload(member models.FamilyMember) map[string]any {
	return map[string]any{
		"family_id":     member.FamilyID,
		"name":          member.Name,
		"photo_url":     member.PhotoURL,
		"relationships": member.Relationships,
		"custom_fields": member.CustomFields,
	}
}

func (r *memberRepository) Create(ctx context.Context, member models.FamilyMember) (models.FamilyMember, error) {
	var stored []models.FamilyMember
	if err := r.client.From(r.table()).Insert(ctx, memberPayload(member), &stored); err != nil {
		return models.FamilyMember{}, err
	}
	if len(stored) == 0 {
		return models.FamilyMember{}, fmt.Errorf("insert into %s returned no rows", r.table())
	}

	return stored[0], nil
}

// CreateBatch inserts all members as one request body. The hosted store
// treats a batched insert as a single statement, so a failure stores
// nothing.
func (r *memberRepository) CreateBatch(ctx context.Context, members []models.FamilyMember) ([]models.FamilyMember, error) {
	payload := make([]map[string]any, 0, len(members))
	for _, member := range members {
		payload = append(payload, memberPayload(member))
	}

	var stored []models.FamilyMember
	if err := r.client.From(r.table()).Insert(ctx, payload, &stored); err != nil {
		return nil, err
	}
	if len(stored) != len(members) {
		return nil, fmt.Errorf("batched insert into %s stored %d of %d rows", r.table(), len(stored), len(members))
	}

	return stored, nil
}

func (r *memberRepository) GetByID(ctx context.Context, memberID string) (models.FamilyMember, error) {
	var rows []models.FamilyMember
	if err := r.client.From(r.table()).Eq("id", memberID).Select(ctx, &rows); err != nil {
		return models.FamilyMember{}, err
	}
	if len(rows) == 0 {
		return models.FamilyMember{}, ErrNotFound
	}

	return rows[0], nil
}

func (r *memberRepository) ListByFamily(ctx context.Context, familyID string) ([]models.FamilyMember, error) {
	var rows []models.FamilyMember
	if err := r.client.From(r.table()).Eq("family_id", familyID).Select(ctx, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *memberRepository) SearchByName(ctx context.Context, familyID, query string) ([]models.FamilyMember, error) {
	var rows []models.FamilyMember
	err := r.client.From(r.table()).
		Eq("family_id", familyID).
		ILike("name", "*"+query+"*").
		Select(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *memberRepository) Update(ctx context.Context, memberID string, fields map[string]any) (models.FamilyMember, error) {
	var updated []models.FamilyMember
	err := r.client.From(r.table()).Eq("id", memberID).Update(ctx, fields, &updated)
	if err != nil {
		return models.FamilyMember{}, err
	}
	if len(updated) == 0 {
		return models.FamilyMember{}, ErrNotFound
	}

	return updated[0], nil
}

func (r *memberRepository) Delete(ctx context.Context, memberID string) error {
	log := logger.FromContext(ctx)
	log.Debug().Str("member_id", memberID).Msg("deleting family member")

	return r.client.From(r.table()).Eq("id", memberID).Delete(ctx)
}
