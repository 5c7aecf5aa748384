package repository

import (
	"context"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type AmazonOrderRepository interface {
	Create(ctx context.Context, order *model.AmazonOrder) error
	CreateBatch(ctx context.Context, orders []*model.AmazonOrder) error
	ExistsByOrderID(ctx context.Context, orderID string) (bool, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.AmazonOrder, error)
	FindByID(ctx context.Context, id string) (*model.AmazonOrder, error)
	List(ctx context.Context, limit, offset int) ([]*model.AmazonOrder, error)
	UpdateWarrantyStatus(ctx context.Context, id string, status model.WarrantyStatus) error
	AssignLicenseKey(ctx context.Context, id, licenseKeyID string) error
	UnlinkSellerAccount(ctx context.Context, sellerAccountID string) error
	Delete(ctx context.Context, id string) error
}

type amazonOrderRepoImpl struct {
	db *gorm.DB
}

func NewAmazonOrderRepository(db *gorm.DB) AmazonOrderRepository {
	return &amazonOrderRepoImpl{
		db: db,
	}
}

func (r *amazonOrderRepoImpl) Create(ctx context.Context, order *model.AmazonOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *amazonOrderRepoImpl) CreateBatch(ctx context.Context, orders []*model.AmazonOrder) error {
	return r.db.WithContext(ctx).Create(&orders).Error
}

func (r *amazonOrderRepoImpl) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AmazonOrder{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count > 0, err
}

func (r *amazonOrderRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.AmazonOrder, error) {
	var order model.AmazonOrder
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *amazonOrderRepoImpl) FindByID(ctx context.Context, id string) (*model.AmazonOrder, error) {
	var order model.AmazonOrder
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *amazonOrderRepoImpl) List(ctx context.Context, limit, offset int) ([]*model.AmazonOrder, error) {
	var orders []*model.AmazonOrder
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *amazonOrderRepoImpl) UpdateWarrantyStatus(ctx context.Context, id string, status model.WarrantyStatus) error {
	result := r.db.WithContext(ctx).Model(&model.AmazonOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"warranty_status": string(status),
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *amazonOrderRepoImpl) AssignLicenseKey(ctx context.Context, id, licenseKeyID string) error {
	result := r.db.WithContext(ctx).Model(&model.AmazonOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"license_key_id": licenseKeyID,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *amazonOrderRepoImpl) UnlinkSellerAccount(ctx context.Context, sellerAccountID string) error {
	return r.db.WithContext(ctx).Model(&model.AmazonOrder{}).
		Where("seller_account_id = ?", sellerAccountID).
		Updates(map[string]interface{}{
			"seller_account_id": nil,
			"updated_at":        time.Now(),
		}).Error
}

func (r *amazonOrderRepoImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AmazonOrder{}).Error
}
