package service

import (
	"context"
	"errors"
	"fmt"
	"license-store/internal/model"
	"license-store/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReplacementService interface {
	Submit(ctx context.Context, rawIdentifier, reason string) (*model.ReplacementRequest, error)
	List(ctx context.Context, limit, offset int) ([]*model.ReplacementRequest, error)
	// Approve allocates a fresh key for the order's product and marks the
	// request verified. Out-of-stock is surfaced for manual handling.
	Approve(ctx context.Context, id string) (*model.ReplacementRequest, error)
	Reject(ctx context.Context, id, reason string) (*model.ReplacementRequest, error)
	RequestResubmission(ctx context.Context, id, reason string) (*model.ReplacementRequest, error)
}

type replacementServiceImpl struct {
	replacementRepo repository.ReplacementRepository
	orderRepo       repository.AmazonOrderRepository
	licenseKeyRepo  repository.LicenseKeyRepository
}

func NewReplacementService(
	replacementRepo repository.ReplacementRepository,
	orderRepo repository.AmazonOrderRepository,
	licenseKeyRepo repository.LicenseKeyRepository,
) ReplacementService {
	return &replacementServiceImpl{
		replacementRepo: replacementRepo,
		orderRepo:       orderRepo,
		licenseKeyRepo:  licenseKeyRepo,
	}
}

func (s *replacementServiceImpl) Submit(ctx context.Context, rawIdentifier, reason string) (*model.ReplacementRequest, error) {
	identifier := CleanIdentifier(rawIdentifier)
	if !IsAmazonOrderID(identifier) && !IsLookupCode(identifier) {
		return nil, NewValidationError("enter a 15-17 digit secret code or an Amazon order ID")
	}

	if _, err := s.orderRepo.FindByOrderID(ctx, identifier); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	request := &model.ReplacementRequest{
		ID:      uuid.NewString(),
		OrderID: identifier,
		Reason:  reason,
		Status:  string(model.ReplacementProcessing),
	}

	if err := s.replacementRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create replacement request: %w", err)
	}

	return request, nil
}

func (s *replacementServiceImpl) List(ctx context.Context, limit, offset int) ([]*model.ReplacementRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.replacementRepo.List(ctx, limit, offset)
}

func (s *replacementServiceImpl) Approve(ctx context.Context, id string) (*model.ReplacementRequest, error) {
	request, err := s.replacementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByOrderID(ctx, request.OrderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order.FSN == "" {
		return nil, NewValidationError("order has no product configured")
	}

	key, err := s.licenseKeyRepo.Allocate(ctx, order.FSN, order.OrderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.AssignLicenseKey(ctx, order.ID, key.ID); err != nil {
		return nil, fmt.Errorf("link replacement key: %w", err)
	}

	return s.replacementRepo.Update(ctx, id, map[string]interface{}{
		"status":             string(model.ReplacementVerified),
		"new_license_key_id": key.ID,
	})
}

func (s *replacementServiceImpl) Reject(ctx context.Context, id, reason string) (*model.ReplacementRequest, error) {
	return s.replacementRepo.Update(ctx, id, map[string]interface{}{
		"status":        string(model.ReplacementRejected),
		"reject_reason": reason,
	})
}

func (s *replacementServiceImpl) RequestResubmission(ctx context.Context, id, reason string) (*model.ReplacementRequest, error) {
	return s.replacementRepo.Update(ctx, id, map[string]interface{}{
		"status":        string(model.ReplacementNeedsResubmission),
		"reject_reason": reason,
	})
}
