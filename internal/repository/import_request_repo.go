package repository

import (
	"context"
	"fmt"
	"time"

	"rfpcred/internal/domain"

	"gorm.io/gorm"
)

type ImportRequestRepository struct {
	db *gorm.DB
}

func NewImportRequestRepository(db *gorm.DB) *ImportRequestRepository {
	return &ImportRequestRepository{db: db}
}

func (r *ImportRequestRepository) Create(ctx context.Context, req *domain.ImportRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create import request: %w", err)
	}
	return nil
}

func (r *ImportRequestRepository) GetByID(ctx context.Context, id string) (*domain.ImportRequest, error) {
	var req domain.ImportRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		if tr := translate(err); tr == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get import request: %w", err)
	}
	return &req, nil
}

// PurgeBefore deletes import requests created before the cutoff.
func (r *ImportRequestRepository) PurgeBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", before.UTC()).
		Delete(&domain.ImportRequest{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge import requests: %w", res.Error)
	}
	return res.RowsAffected, nil
}
