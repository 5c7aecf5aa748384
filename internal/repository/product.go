package repository

import (
	"context"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByFSN(ctx context.Context, fsn string) (*model.Product, error)
	ListAll(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, fsn string, updates map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, fsn string) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByFSN(ctx context.Context, fsn string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("fsn = ?", fsn).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) ListAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Update(ctx context.Context, fsn string, updates map[string]interface{}) (*model.Product, error) {
	updates["updated_at"] = time.Now()

	var product model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Product{}).
			Where("fsn = ?", fsn).
			Updates(updates)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("fsn = ?", fsn).First(&product).Error
	})

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) Delete(ctx context.Context, fsn string) error {
	return r.db.WithContext(ctx).
		Where("fsn = ?", fsn).
		Delete(&model.Product{}).Error
}
