package service

import (
	"context"
	"errors"
	"fmt"
	"license-store/internal/model"
	"license-store/internal/repository"
	"time"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type ProductInfo struct {
	ProductName     string
	ProductImage    string
	DownloadURL     string
	InstallationDoc string
}

type ActivationResult struct {
	LicenseKey      string
	AlreadyRedeemed bool
	Product         *ProductInfo
}

type ActivationService interface {
	// VerifyOrder looks up an order by either identifier form and evaluates
	// redemption eligibility.
	VerifyOrder(ctx context.Context, rawIdentifier string, now time.Time) (*model.AmazonOrder, *RedemptionResult, error)
	// GenerateKey discloses the order's license key, allocating one from
	// inventory on first redemption.
	GenerateKey(ctx context.Context, rawIdentifier string, now time.Time) (*ActivationResult, error)
}

type activationServiceImpl struct {
	orderRepo      repository.AmazonOrderRepository
	licenseKeyRepo repository.LicenseKeyRepository
	productRepo    repository.ProductRepository
	redemption     RedemptionService
}

func NewActivationService(
	orderRepo repository.AmazonOrderRepository,
	licenseKeyRepo repository.LicenseKeyRepository,
	productRepo repository.ProductRepository,
	redemption RedemptionService,
) ActivationService {
	return &activationServiceImpl{
		orderRepo:      orderRepo,
		licenseKeyRepo: licenseKeyRepo,
		productRepo:    productRepo,
		redemption:     redemption,
	}
}

func (s *activationServiceImpl) findOrder(ctx context.Context, rawIdentifier string) (*model.AmazonOrder, error) {
	identifier := CleanIdentifier(rawIdentifier)
	if identifier == "" {
		return nil, NewValidationError("order identifier is required")
	}
	if !IsAmazonOrderID(identifier) && !IsLookupCode(identifier) {
		return nil, NewValidationError("enter a 15-17 digit secret code or an Amazon order ID")
	}

	order, err := s.orderRepo.FindByOrderID(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	return order, nil
}

func (s *activationServiceImpl) VerifyOrder(ctx context.Context, rawIdentifier string, now time.Time) (*model.AmazonOrder, *RedemptionResult, error) {
	order, err := s.findOrder(ctx, rawIdentifier)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.redemption.Check(ctx, order, now)
	if err != nil {
		return nil, nil, err
	}

	return order, result, nil
}

func (s *activationServiceImpl) GenerateKey(ctx context.Context, rawIdentifier string, now time.Time) (*ActivationResult, error) {
	order, err := s.findOrder(ctx, rawIdentifier)
	if err != nil {
		return nil, err
	}

	// repeated redemptions return the key already linked to the order
	if order.LicenseKeyID != nil {
		key, err := s.licenseKeyRepo.FindByID(ctx, *order.LicenseKeyID)
		if err == nil {
			return &ActivationResult{
				LicenseKey:      key.KeyValue,
				AlreadyRedeemed: true,
				Product:         s.productInfo(ctx, key.FSN),
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find linked key: %w", err)
		}
	}

	check, err := s.redemption.Check(ctx, order, now)
	if err != nil {
		return nil, err
	}
	if !check.CanRedeem {
		return nil, NewValidationError(check.Reason)
	}

	if order.FSN == "" {
		return nil, NewValidationError("product not configured for this order, please contact support")
	}

	key, err := s.licenseKeyRepo.Allocate(ctx, order.FSN, order.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOutOfStock) {
			return nil, err
		}
		return nil, fmt.Errorf("allocate key: %w", err)
	}

	if err := s.orderRepo.AssignLicenseKey(ctx, order.ID, key.ID); err != nil {
		return nil, fmt.Errorf("link key to order: %w", err)
	}

	return &ActivationResult{
		LicenseKey: key.KeyValue,
		Product:    s.productInfo(ctx, key.FSN),
	}, nil
}

// productInfo is best-effort; a missing product row does not block key
// disclosure.
func (s *activationServiceImpl) productInfo(ctx context.Context, fsn string) *ProductInfo {
	product, err := s.productRepo.FindByFSN(ctx, fsn)
	if err != nil {
		return nil
	}

	return &ProductInfo{
		ProductName:     product.Title,
		ProductImage:    product.ProductImage,
		DownloadURL:     product.DownloadLink,
		InstallationDoc: product.InstallationDoc,
	}
}
