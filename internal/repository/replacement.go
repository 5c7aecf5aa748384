package repository

import (
	"context"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type ReplacementRepository interface {
	Create(ctx context.Context, request *model.ReplacementRequest) error
	FindByID(ctx context.Context, id string) (*model.ReplacementRequest, error)
	List(ctx context.Context, limit, offset int) ([]*model.ReplacementRequest, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.ReplacementRequest, error)
}

type replacementRepoImpl struct {
	db *gorm.DB
}

func NewReplacementRepository(db *gorm.DB) ReplacementRepository {
	return &replacementRepoImpl{
		db: db,
	}
}

func (r *replacementRepoImpl) Create(ctx context.Context, request *model.ReplacementRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *replacementRepoImpl) FindByID(ctx context.Context, id string) (*model.ReplacementRequest, error) {
	var request model.ReplacementRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error

	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *replacementRepoImpl) List(ctx context.Context, limit, offset int) ([]*model.ReplacementRequest, error) {
	var requests []*model.ReplacementRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error

	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *replacementRepoImpl) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.ReplacementRequest, error) {
	updates["updated_at"] = time.Now()

	var request model.ReplacementRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ReplacementRequest{}).
			Where("id = ?", id).
			Updates(updates)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", id).First(&request).Error
	})

	if err != nil {
		return nil, err
	}

	return &request, nil
}
