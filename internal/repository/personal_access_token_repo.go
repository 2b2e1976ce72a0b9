package repository

import (
	"context"
	"fmt"
	"time"

	"rfpcred/internal/domain"

	"gorm.io/gorm"
)

// PersonalAccessTokenRepository provides DB access for personal access tokens.
type PersonalAccessTokenRepository struct {
	db *gorm.DB
}

func NewPersonalAccessTokenRepository(db *gorm.DB) *PersonalAccessTokenRepository {
	return &PersonalAccessTokenRepository{db: db}
}

func (r *PersonalAccessTokenRepository) Create(ctx context.Context, t *domain.PersonalAccessToken) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if tr := translate(err); tr == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("create personal access token: %w", err)
	}
	return nil
}

func (r *PersonalAccessTokenRepository) FindByHash(ctx context.Context, hash string) (*domain.PersonalAccessToken, error) {
	var t domain.PersonalAccessToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		if tr := translate(err); tr == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find personal access token: %w", err)
	}
	return &t, nil
}

// ListActive returns the owner's non-revoked tokens in one organization, newest first.
func (r *PersonalAccessTokenRepository) ListActive(ctx context.Context, userID, organizationID string) ([]domain.PersonalAccessToken, error) {
	var tokens []domain.PersonalAccessToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND revoked_at IS NULL", userID, organizationID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("list personal access tokens: %w", err)
	}
	return tokens, nil
}

// RevokeOwned reports whether a live token with this id owned by userID was revoked.
func (r *PersonalAccessTokenRepository) RevokeOwned(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.PersonalAccessToken{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL", id, userID).
		Update("revoked_at", at.UTC())
	if res.Error != nil {
		return false, fmt.Errorf("revoke personal access token: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *PersonalAccessTokenRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&domain.PersonalAccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", at.UTC()).Error
	if err != nil {
		return fmt.Errorf("touch personal access token: %w", err)
	}
	return nil
}

// PurgeInactive deletes tokens revoked or expired before the cutoff.
func (r *PersonalAccessTokenRepository) PurgeInactive(ctx context.Context, before time.Time) (int64, error) {
	before = before.UTC()
	res := r.db.WithContext(ctx).
		Where("(revoked_at IS NOT NULL AND revoked_at < ?) OR (expires_at IS NOT NULL AND expires_at < ?)", before, before).
		Delete(&domain.PersonalAccessToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge personal access tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}
