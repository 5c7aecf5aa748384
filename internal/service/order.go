package service

import (
	"context"
	"errors"
	"fmt"
	"license-store/internal/model"
	"license-store/internal/repository"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	amazonOrderIDPattern = regexp.MustCompile(`^\d{3}-\d{7}-\d{7}$`)
	secretCodePattern    = regexp.MustCompile(`^[1-9]\d{14}$`)
	// lookup accepts legacy 16/17-digit codes still in circulation
	lookupCodePattern = regexp.MustCompile(`^\d{15,17}$`)
)

const (
	bulkCountMin = 1
	bulkCountMax = 100
)

type ManualOrderInput struct {
	AmazonOrderID string
	SecretCode    string
	FSN           string
	State         string
	LicenseKeyID  string
}

type OrderService interface {
	CreateManual(ctx context.Context, input ManualOrderInput) (*model.AmazonOrder, error)
	// CreateBulk generates count unique secret codes and persists one digital
	// order per code. Returns the codes in creation order.
	CreateBulk(ctx context.Context, count int, fsn string) ([]string, error)
	List(ctx context.Context, limit, offset int) ([]*model.AmazonOrder, error)
	Get(ctx context.Context, id string) (*model.AmazonOrder, error)
	UpdateWarrantyStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type orderServiceImpl struct {
	orderRepo      repository.AmazonOrderRepository
	licenseKeyRepo repository.LicenseKeyRepository
	codeGen        *SecretCodeGenerator
}

func NewOrderService(
	orderRepo repository.AmazonOrderRepository,
	licenseKeyRepo repository.LicenseKeyRepository,
	codeGen *SecretCodeGenerator,
) OrderService {
	return &orderServiceImpl{
		orderRepo:      orderRepo,
		licenseKeyRepo: licenseKeyRepo,
		codeGen:        codeGen,
	}
}

func (s *orderServiceImpl) CreateManual(ctx context.Context, input ManualOrderInput) (*model.AmazonOrder, error) {
	if input.FSN == "" {
		return nil, NewValidationError("product FSN is required")
	}

	hasAmazonID := input.AmazonOrderID != ""
	hasSecretCode := input.SecretCode != ""
	if hasAmazonID == hasSecretCode {
		return nil, NewValidationError("provide exactly one of Amazon order ID or secret code")
	}

	var identifier string
	var fulfillment model.FulfillmentType
	if hasAmazonID {
		identifier = strings.TrimSpace(input.AmazonOrderID)
		if !amazonOrderIDPattern.MatchString(identifier) {
			return nil, NewValidationError("Amazon order ID must match XXX-XXXXXXX-XXXXXXX")
		}
		fulfillment = model.FulfillmentFBA
	} else {
		identifier = strings.TrimSpace(input.SecretCode)
		if !secretCodePattern.MatchString(identifier) {
			return nil, NewValidationError("secret code must be 15 digits with no leading zero")
		}
		fulfillment = model.FulfillmentDigital
	}

	exists, err := s.orderRepo.ExistsByOrderID(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("check order exists: %w", err)
	}
	if exists {
		return nil, ErrOrderExists
	}

	order := &model.AmazonOrder{
		ID:              uuid.NewString(),
		OrderID:         identifier,
		FSN:             input.FSN,
		FulfillmentType: string(fulfillment),
		WarrantyStatus:  string(model.WarrantyPending),
		State:           strings.ToUpper(strings.TrimSpace(input.State)),
	}

	// manual key assignment bypasses inventory selection but still flips the
	// redeemed flag atomically
	if input.LicenseKeyID != "" {
		if err := s.licenseKeyRepo.MarkRedeemed(ctx, input.LicenseKeyID, identifier); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("license key not found or already redeemed")
			}
			return nil, fmt.Errorf("mark key redeemed: %w", err)
		}
		order.LicenseKeyID = &input.LicenseKeyID
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrderExists
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) CreateBulk(ctx context.Context, count int, fsn string) ([]string, error) {
	if fsn == "" {
		return nil, NewValidationError("product FSN is required")
	}
	if count < bulkCountMin || count > bulkCountMax {
		return nil, NewValidationError(fmt.Sprintf("count must be between %d and %d", bulkCountMin, bulkCountMax))
	}

	codes := make([]string, 0, count)
	usedCodes := make(map[string]struct{}, count)

	for len(codes) < count {
		code, err := s.codeGen.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("generated %d of %d codes: %w", len(codes), count, err)
		}

		// an in-batch duplicate is treated like a storage collision
		if _, dup := usedCodes[code]; dup {
			continue
		}
		usedCodes[code] = struct{}{}
		codes = append(codes, code)
	}

	now := time.Now()
	orders := make([]*model.AmazonOrder, 0, count)
	for _, code := range codes {
		orders = append(orders, &model.AmazonOrder{
			ID:              uuid.NewString(),
			OrderID:         code,
			FSN:             fsn,
			FulfillmentType: string(model.FulfillmentDigital),
			WarrantyStatus:  string(model.WarrantyPending),
			CreatedAt:       now,
		})
	}

	if err := s.orderRepo.CreateBatch(ctx, orders); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent generator won the identifier between our check and
			// the insert; the whole batch must be retried
			return nil, fmt.Errorf("identifier collision on insert: %w", ErrCodeExhausted)
		}
		return nil, fmt.Errorf("insert bulk orders: %w", err)
	}

	return codes, nil
}

func (s *orderServiceImpl) List(ctx context.Context, limit, offset int) ([]*model.AmazonOrder, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.orderRepo.List(ctx, limit, offset)
}

func (s *orderServiceImpl) Get(ctx context.Context, id string) (*model.AmazonOrder, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *orderServiceImpl) UpdateWarrantyStatus(ctx context.Context, id, status string) error {
	parsed, err := model.ParseWarrantyStatus(status)
	if err != nil {
		return NewValidationError(err.Error())
	}

	return s.orderRepo.UpdateWarrantyStatus(ctx, id, parsed)
}

func (s *orderServiceImpl) Delete(ctx context.Context, id string) error {
	return s.orderRepo.Delete(ctx, id)
}

// CleanIdentifier strips spaces from a customer-entered identifier.
func CleanIdentifier(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
}

// IsAmazonOrderID reports whether the identifier is in Amazon order id form.
func IsAmazonOrderID(identifier string) bool {
	return amazonOrderIDPattern.MatchString(identifier)
}

// IsLookupCode reports whether the identifier is an acceptable secret code
// for lookup (15-17 digits).
func IsLookupCode(identifier string) bool {
	return lookupCodePattern.MatchString(identifier)
}
