package service

import (
	"context"
	"fmt"
	"license-store/internal/model"
	"license-store/internal/repository"
	"strings"

	"github.com/google/uuid"
)

type InventorySummary struct {
	FSN       string `json:"fsn"`
	Available int64  `json:"available"`
	Redeemed  int64  `json:"redeemed"`
}

type LicenseKeyService interface {
	// AddKeys bulk-loads keys for one FSN; blank lines are skipped.
	AddKeys(ctx context.Context, fsn string, keyValues []string) (int, error)
	ListByFSN(ctx context.Context, fsn string) ([]*model.LicenseKey, InventorySummary, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

type licenseKeyServiceImpl struct {
	licenseKeyRepo repository.LicenseKeyRepository
}

func NewLicenseKeyService(licenseKeyRepo repository.LicenseKeyRepository) LicenseKeyService {
	return &licenseKeyServiceImpl{
		licenseKeyRepo: licenseKeyRepo,
	}
}

func (s *licenseKeyServiceImpl) AddKeys(ctx context.Context, fsn string, keyValues []string) (int, error) {
	if fsn == "" {
		return 0, NewValidationError("product FSN is required")
	}

	keys := make([]*model.LicenseKey, 0, len(keyValues))
	for _, value := range keyValues {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		keys = append(keys, &model.LicenseKey{
			ID:       uuid.NewString(),
			FSN:      fsn,
			KeyValue: value,
		})
	}

	if len(keys) == 0 {
		return 0, NewValidationError("at least one license key is required")
	}

	if err := s.licenseKeyRepo.CreateBatch(ctx, keys); err != nil {
		return 0, fmt.Errorf("insert keys: %w", err)
	}

	return len(keys), nil
}

func (s *licenseKeyServiceImpl) ListByFSN(ctx context.Context, fsn string) ([]*model.LicenseKey, InventorySummary, error) {
	if fsn == "" {
		return nil, InventorySummary{}, NewValidationError("product FSN is required")
	}

	keys, err := s.licenseKeyRepo.ListByFSN(ctx, fsn)
	if err != nil {
		return nil, InventorySummary{}, err
	}

	available, redeemed, err := s.licenseKeyRepo.CountByFSN(ctx, fsn)
	if err != nil {
		return nil, InventorySummary{}, err
	}

	return keys, InventorySummary{FSN: fsn, Available: available, Redeemed: redeemed}, nil
}

func (s *licenseKeyServiceImpl) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, NewValidationError("at least one key id is required")
	}
	return s.licenseKeyRepo.Delete(ctx, ids)
}
