package repository

import (
	"context"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type SellerAccountRepository interface {
	Create(ctx context.Context, account *model.SellerAccount) error
	FindByID(ctx context.Context, id string) (*model.SellerAccount, error)
	// ListAll returns every account ordered by priority, creation order
	// breaking ties.
	ListAll(ctx context.Context) ([]*model.SellerAccount, error)
	// ListActive returns active accounts in the same ordering; this is the
	// fan-out sequence the sync job walks.
	ListActive(ctx context.Context) ([]*model.SellerAccount, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.SellerAccount, error)
	RecordSyncResult(ctx context.Context, id, status string, syncedCount int) error
	Delete(ctx context.Context, id string) error
}

type sellerAccountRepoImpl struct {
	db *gorm.DB
}

func NewSellerAccountRepository(db *gorm.DB) SellerAccountRepository {
	return &sellerAccountRepoImpl{
		db: db,
	}
}

func (r *sellerAccountRepoImpl) Create(ctx context.Context, account *model.SellerAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *sellerAccountRepoImpl) FindByID(ctx context.Context, id string) (*model.SellerAccount, error) {
	var account model.SellerAccount
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error

	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *sellerAccountRepoImpl) ListAll(ctx context.Context) ([]*model.SellerAccount, error) {
	var accounts []*model.SellerAccount
	err := r.db.WithContext(ctx).
		Order("priority ASC").
		Order("created_at ASC").
		Find(&accounts).Error

	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *sellerAccountRepoImpl) ListActive(ctx context.Context) ([]*model.SellerAccount, error) {
	var accounts []*model.SellerAccount
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority ASC").
		Order("created_at ASC").
		Find(&accounts).Error

	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *sellerAccountRepoImpl) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.SellerAccount, error) {
	updates["updated_at"] = time.Now()

	var account model.SellerAccount
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SellerAccount{}).
			Where("id = ?", id).
			Updates(updates)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", id).First(&account).Error
	})

	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *sellerAccountRepoImpl) RecordSyncResult(ctx context.Context, id, status string, syncedCount int) error {
	return r.db.WithContext(ctx).Model(&model.SellerAccount{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_sync_at":        time.Now(),
			"last_sync_status":    status,
			"orders_synced_count": gorm.Expr("orders_synced_count + ?", syncedCount),
			"updated_at":          time.Now(),
		}).Error
}

func (r *sellerAccountRepoImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SellerAccount{}).Error
}
