package repository

import (
	"context"
	"errors"
	"license-store/internal/model"
	"time"

	"gorm.io/gorm"
)

// ErrOutOfStock means no unredeemed key exists for the requested FSN.
var ErrOutOfStock = errors.New("no unredeemed license key available")

type LicenseKeyRepository interface {
	CreateBatch(ctx context.Context, keys []*model.LicenseKey) error
	FindByID(ctx context.Context, id string) (*model.LicenseKey, error)
	ListByFSN(ctx context.Context, fsn string) ([]*model.LicenseKey, error)
	CountByFSN(ctx context.Context, fsn string) (available, redeemed int64, err error)
	// Allocate atomically claims one unredeemed key for the FSN and links it
	// to orderID. At most one caller can win a given key.
	Allocate(ctx context.Context, fsn, orderID string) (*model.LicenseKey, error)
	MarkRedeemed(ctx context.Context, id, orderID string) error
	Delete(ctx context.Context, ids []string) (int64, error)
}

type licenseKeyRepoImpl struct {
	db *gorm.DB
}

func NewLicenseKeyRepository(db *gorm.DB) LicenseKeyRepository {
	return &licenseKeyRepoImpl{
		db: db,
	}
}

func (r *licenseKeyRepoImpl) CreateBatch(ctx context.Context, keys []*model.LicenseKey) error {
	return r.db.WithContext(ctx).Create(&keys).Error
}

func (r *licenseKeyRepoImpl) FindByID(ctx context.Context, id string) (*model.LicenseKey, error) {
	var key model.LicenseKey
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&key).Error

	if err != nil {
		return nil, err
	}

	return &key, nil
}

func (r *licenseKeyRepoImpl) ListByFSN(ctx context.Context, fsn string) ([]*model.LicenseKey, error) {
	var keys []*model.LicenseKey
	err := r.db.WithContext(ctx).
		Where("fsn = ?", fsn).
		Order("created_at ASC").
		Find(&keys).Error

	if err != nil {
		return nil, err
	}

	return keys, nil
}

func (r *licenseKeyRepoImpl) CountByFSN(ctx context.Context, fsn string) (int64, int64, error) {
	var available, redeemed int64

	err := r.db.WithContext(ctx).Model(&model.LicenseKey{}).
		Where("fsn = ? AND is_redeemed = ?", fsn, false).
		Count(&available).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.WithContext(ctx).Model(&model.LicenseKey{}).
		Where("fsn = ? AND is_redeemed = ?", fsn, true).
		Count(&redeemed).Error
	if err != nil {
		return 0, 0, err
	}

	return available, redeemed, nil
}

// Allocate picks candidate rows and claims one with a conditional update,
// verified by the affected-row count. A concurrent caller claiming the same
// candidate loses the update and moves on to the next candidate.
func (r *licenseKeyRepoImpl) Allocate(ctx context.Context, fsn, orderID string) (*model.LicenseKey, error) {
	for {
		var candidates []*model.LicenseKey
		err := r.db.WithContext(ctx).
			Where("fsn = ? AND is_redeemed = ? AND order_id IS NULL", fsn, false).
			Order("created_at ASC").
			Limit(10).
			Find(&candidates).Error
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, ErrOutOfStock
		}

		for _, candidate := range candidates {
			result := r.db.WithContext(ctx).Model(&model.LicenseKey{}).
				Where("id = ? AND is_redeemed = ?", candidate.ID, false).
				Updates(map[string]interface{}{
					"is_redeemed": true,
					"order_id":    orderID,
					"updated_at":  time.Now(),
				})

			if result.Error != nil {
				return nil, result.Error
			}
			if result.RowsAffected == 1 {
				candidate.IsRedeemed = true
				candidate.OrderID = &orderID
				return candidate, nil
			}
			// lost the race for this key, try the next candidate
		}
	}
}

func (r *licenseKeyRepoImpl) MarkRedeemed(ctx context.Context, id, orderID string) error {
	result := r.db.WithContext(ctx).Model(&model.LicenseKey{}).
		Where("id = ? AND is_redeemed = ?", id, false).
		Updates(map[string]interface{}{
			"is_redeemed": true,
			"order_id":    orderID,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *licenseKeyRepoImpl) Delete(ctx context.Context, ids []string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.LicenseKey{})

	return result.RowsAffected, result.Error
}
