package repository

import (
	"context"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type WarrantyRepository interface {
	Create(ctx context.Context, registration *model.WarrantyRegistration) error
	FindByID(ctx context.Context, id string) (*model.WarrantyRegistration, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.WarrantyRegistration, error)
	List(ctx context.Context, limit, offset int) ([]*model.WarrantyRegistration, error)
	UpdateStatus(ctx context.Context, id string, status model.WarrantyStatus) error
}

type warrantyRepoImpl struct {
	db *gorm.DB
}

func NewWarrantyRepository(db *gorm.DB) WarrantyRepository {
	return &warrantyRepoImpl{
		db: db,
	}
}

func (r *warrantyRepoImpl) Create(ctx context.Context, registration *model.WarrantyRegistration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *warrantyRepoImpl) FindByID(ctx context.Context, id string) (*model.WarrantyRegistration, error) {
	var registration model.WarrantyRegistration
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&registration).Error

	if err != nil {
		return nil, err
	}

	return &registration, nil
}

func (r *warrantyRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.WarrantyRegistration, error) {
	var registration model.WarrantyRegistration
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&registration).Error

	if err != nil {
		return nil, err
	}

	return &registration, nil
}

func (r *warrantyRepoImpl) List(ctx context.Context, limit, offset int) ([]*model.WarrantyRegistration, error) {
	var registrations []*model.WarrantyRegistration
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&registrations).Error

	if err != nil {
		return nil, err
	}

	return registrations, nil
}

func (r *warrantyRepoImpl) UpdateStatus(ctx context.Context, id string, status model.WarrantyStatus) error {
	result := r.db.WithContext(ctx).Model(&model.WarrantyRegistration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
