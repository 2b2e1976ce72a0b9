package repository

import (
	"context"
	"fmt"

	"rfpcred/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository reads the user_organizations link table.
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// OrganizationIDs lists every organization the user currently belongs to,
// oldest membership first.
func (r *MembershipRepository) OrganizationIDs(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&domain.UserOrganization{}).
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Pluck("organization_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list organization ids: %w", err)
	}
	return ids, nil
}

func (r *MembershipRepository) IsMember(ctx context.Context, userID, organizationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserOrganization{}).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return count > 0, nil
}

// Add inserts the membership, leaving an existing one untouched.
func (r *MembershipRepository) Add(ctx context.Context, m *domain.UserOrganization) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
	if err != nil {
		return fmt.Errorf("add membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Remove(ctx context.Context, userID, organizationID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Delete(&domain.UserOrganization{}).Error
	if err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}
	return nil
}
