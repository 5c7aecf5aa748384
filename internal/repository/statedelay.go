package repository

import (
	"context"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type StateDelayRepository interface {
	ListAll(ctx context.Context) ([]*model.StateDelay, error)
	FindByStateName(ctx context.Context, stateName string) (*model.StateDelay, error)
	Create(ctx context.Context, delay *model.StateDelay) error
	Update(ctx context.Context, id string, stateName string, delayHours int) (*model.StateDelay, error)
	Delete(ctx context.Context, id string) error
}

type stateDelayRepoImpl struct {
	db *gorm.DB
}

func NewStateDelayRepository(db *gorm.DB) StateDelayRepository {
	return &stateDelayRepoImpl{
		db: db,
	}
}

func (r *stateDelayRepoImpl) ListAll(ctx context.Context) ([]*model.StateDelay, error) {
	var delays []*model.StateDelay
	err := r.db.WithContext(ctx).
		Order("state_name ASC").
		Find(&delays).Error

	if err != nil {
		return nil, err
	}

	return delays, nil
}

func (r *stateDelayRepoImpl) FindByStateName(ctx context.Context, stateName string) (*model.StateDelay, error) {
	var delay model.StateDelay
	err := r.db.WithContext(ctx).
		Where("state_name = ?", stateName).
		First(&delay).Error

	if err != nil {
		return nil, err
	}

	return &delay, nil
}

func (r *stateDelayRepoImpl) Create(ctx context.Context, delay *model.StateDelay) error {
	return r.db.WithContext(ctx).Create(delay).Error
}

func (r *stateDelayRepoImpl) Update(ctx context.Context, id string, stateName string, delayHours int) (*model.StateDelay, error) {
	updates := map[string]interface{}{
		"delay_hours": delayHours,
		"updated_at":  time.Now(),
	}
	if stateName != "" {
		updates["state_name"] = stateName
	}

	var delay model.StateDelay
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.StateDelay{}).
			Where("id = ?", id).
			Updates(updates)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", id).First(&delay).Error
	})

	if err != nil {
		return nil, err
	}

	return &delay, nil
}

func (r *stateDelayRepoImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StateDelay{}).Error
}
