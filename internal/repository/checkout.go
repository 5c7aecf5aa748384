package repository

import (
	"context"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type CheckoutRepository interface {
	CreateWithItems(ctx context.Context, order *model.CheckoutOrder, items []*model.CheckoutItem) error
	// SetRazorpayOrderID attaches the gateway order id once the gateway
	// accepts the order; rows are persisted before the gateway call.
	SetRazorpayOrderID(ctx context.Context, id, razorpayOrderID string) error
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.CheckoutOrder, error)
	// MarkPaid transitions CREATED -> PAID. Returns the affected-row count so
	// the caller can tell a repeated verification from the first one.
	MarkPaid(ctx context.Context, razorpayOrderID string) (int64, error)
	MarkDelivered(ctx context.Context, id string) error
	GetItems(ctx context.Context, checkoutOrderID string) ([]*model.CheckoutItem, error)
	SetItemLicenseKey(ctx context.Context, itemID uint, licenseKeyID string) error
}

type checkoutRepoImpl struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepoImpl{
		db: db,
	}
}

func (r *checkoutRepoImpl) CreateWithItems(ctx context.Context, order *model.CheckoutOrder, items []*model.CheckoutItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.CheckoutOrderID = order.ID
		}
		return tx.Create(&items).Error
	})
}

func (r *checkoutRepoImpl) SetRazorpayOrderID(ctx context.Context, id, razorpayOrderID string) error {
	return r.db.WithContext(ctx).Model(&model.CheckoutOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"razorpay_order_id": razorpayOrderID,
			"updated_at":        time.Now(),
		}).Error
}

func (r *checkoutRepoImpl) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.CheckoutOrder, error) {
	var order model.CheckoutOrder
	err := r.db.WithContext(ctx).
		Where("razorpay_order_id = ?", razorpayOrderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *checkoutRepoImpl) MarkPaid(ctx context.Context, razorpayOrderID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.CheckoutOrder{}).
		Where("razorpay_order_id = ? AND status = ?", razorpayOrderID, string(model.CheckoutCreated)).
		Updates(map[string]interface{}{
			"status":     string(model.CheckoutPaid),
			"updated_at": time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *checkoutRepoImpl) MarkDelivered(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&model.CheckoutOrder{}).
		Where("id = ? AND status = ?", id, string(model.CheckoutPaid)).
		Updates(map[string]interface{}{
			"status":     string(model.CheckoutDelivered),
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

func (r *checkoutRepoImpl) GetItems(ctx context.Context, checkoutOrderID string) ([]*model.CheckoutItem, error) {
	var items []*model.CheckoutItem
	err := r.db.WithContext(ctx).
		Where("checkout_order_id = ?", checkoutOrderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *checkoutRepoImpl) SetItemLicenseKey(ctx context.Context, itemID uint, licenseKeyID string) error {
	return r.db.WithContext(ctx).Model(&model.CheckoutItem{}).
		Where("id = ?", itemID).
		Update("license_key_id", licenseKeyID).Error
}
