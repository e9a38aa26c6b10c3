package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/store"
	"github.com/apnaparivar/familytree-backend/models"
)

// familyMemberService is the directory service over family-member rows.
type familyMemberService struct {
	members store.FamilyMemberRepository
	logger  *logger.Logger
}

// NewFamilyMemberService constructs a FamilyMemberService over the given
// repository.
func NewFamilyMemberService(members store.FamilyMemberRepository, logger *logger.Logger) FamilyMemberService {
	return &familyMemberService{members: members, logger: logger}
}

func (s *familyMemberService) Create(ctx context.Context, familyID string, request models.CreateFamilyMemberRequest) (models.FamilyMember, error) {
	if err := request.Validate(); err != nil {
		return models.FamilyMember{}, err
	}

	member, err := s.members.Create(ctx, request.Member(familyID))
	if err != nil {
		return models.FamilyMember{}, fmt.Errorf("member creation failed: %w", err)
	}

	return member, nil
}

// BulkCreate inserts up to 100 members in one batched call. Validation is
// all-or-nothing: any invalid entry fails the batch before a single row is
// written, and the batched insert itself stores either every row or none.
func (s *familyMemberService) BulkCreate(ctx context.Context, familyID string, request models.BulkCreateFamilyMembersRequest) (models.BulkCreateFamilyMembersResponse, error) {
	if err := request.Validate(); err != nil {
		return models.BulkCreateFamilyMembersResponse{}, err
	}

	rows := make([]models.FamilyMember, 0, len(request.Members))
	for _, entry := range request.Members {
		rows = append(rows, entry.Member(familyID))
	}

	stored, err := s.members.CreateBatch(ctx, rows)
	if err != nil {
		return models.BulkCreateFamilyMembersResponse{}, fmt.Errorf("batched member creation failed: %w", err)
	}

	ids := make([]string, 0, len(stored))
	for _, member := range stored {
		ids = append(ids, member.ID)
	}

	logger.FromContext(ctx).Info().Str("family_id", familyID).Int("count", len(ids)).Msg("members created in bulk")

	return models.BulkCreateFamilyMembersResponse{
		Success:      true,
		CreatedCount: len(ids),
		MemberIDs:    ids,
		Message:      fmt.Sprintf("Created %d family members", len(ids)),
	}, nil
}

func (s *familyMemberService) Get(ctx context.Context, memberID string) (models.FamilyMember, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.FamilyMember{}, ErrNotFound
		}
		return models.FamilyMember{}, fmt.Errorf("member lookup failed: %w", err)
	}

	return member, nil
}

func (s *familyMemberService) ListByFamily(ctx context.Context, familyID string) ([]models.FamilyMember, error) {
	members, err := s.members.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("member listing failed: %w", err)
	}

	return members, nil
}

// Search matches member names case-insensitively within one family. An
// empty query returns the full family listing.
func (s *familyMemberService) Search(ctx context.Context, familyID, query string) ([]models.FamilyMember, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListByFamily(ctx, familyID)
	}

	members, err := s.members.SearchByName(ctx, familyID, query)
	if err != nil {
		return nil, fmt.Errorf("member search failed: %w", err)
	}

	return members, nil
}

func (s *familyMemberService) Update(ctx context.Context, memberID string, request models.UpdateFamilyMemberRequest) (models.FamilyMember, error) {
	if err := request.Validate(); err != nil {
		return models.FamilyMember{}, err
	}

	fields := request.Fields()
	if len(fields) == 0 {
		return s.Get(ctx, memberID)
	}

	member, err := s.members.Update(ctx, memberID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.FamilyMember{}, ErrNotFound
		}
		return models.FamilyMember{}, fmt.Errorf("member update failed: %w", err)
	}

	return member, nil
}

func (s *familyMemberService) Delete(ctx context.Context, memberID string) error {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("member lookup failed: %w", err)
	}

	if err := s.members.Delete(ctx, memberID); err != nil {
		return fmt.Errorf("member deletion failed: %w", err)
	}

	return nil
}
