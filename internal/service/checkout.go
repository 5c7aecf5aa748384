package service

import (
	"context"
	"errors"
	"fmt"
	"license-store/internal/client"
	"license-store/internal/logger"
	"license-store/internal/model"
	"license-store/internal/repository"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutItemInput struct {
	FSN      string
	Quantity int32
}

type CheckoutResult struct {
	RazorpayOrderID string `json:"razorpayOrderId"`
	RazorpayKeyID   string `json:"razorpayKeyId"`
	AmountPaise     int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type VerifyResult struct {
	OrderID     string   `json:"orderId"`
	LicenseKeys []string `json:"licenseKeys"`
	AlreadyPaid bool     `json:"alreadyPaid"`
}

type CheckoutService interface {
	CreateCheckout(ctx context.Context, email string, items []CheckoutItemInput) (*CheckoutResult, error)
	// VerifyPayment checks the gateway signature, marks the order paid
	// exactly once and fulfills its items with license keys.
	VerifyPayment(ctx context.Context, razorpayOrderID, paymentID, signature string) (*VerifyResult, error)
}

type checkoutServiceImpl struct {
	checkoutRepo   repository.CheckoutRepository
	productRepo    repository.ProductRepository
	licenseKeyRepo repository.LicenseKeyRepository
	razorpay       client.RazorpayClient
	mail           client.MailClient
}

func NewCheckoutService(
	checkoutRepo repository.CheckoutRepository,
	productRepo repository.ProductRepository,
	licenseKeyRepo repository.LicenseKeyRepository,
	razorpay client.RazorpayClient,
	mail client.MailClient,
) CheckoutService {
	return &checkoutServiceImpl{
		checkoutRepo:   checkoutRepo,
		productRepo:    productRepo,
		licenseKeyRepo: licenseKeyRepo,
		razorpay:       razorpay,
		mail:           mail,
	}
}

func (s *checkoutServiceImpl) CreateCheckout(ctx context.Context, email string, items []CheckoutItemInput) (*CheckoutResult, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("a valid email is required")
	}
	if len(items) == 0 {
		return nil, NewValidationError("at least one item is required")
	}

	total := decimal.Zero
	orderItems := make([]*model.CheckoutItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, NewValidationError("item quantity must be at least 1")
		}

		product, err := s.productRepo.FindByFSN(ctx, item.FSN)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError(fmt.Sprintf("unknown product %s", item.FSN))
			}
			return nil, fmt.Errorf("find product: %w", err)
		}

		line := decimal.NewFromInt(product.PricePaise).Mul(decimal.NewFromInt32(item.Quantity))
		total = total.Add(line)

		orderItems = append(orderItems, &model.CheckoutItem{
			FSN:            item.FSN,
			Quantity:       item.Quantity,
			UnitPricePaise: product.PricePaise,
		})
	}

	// persist before talking to the gateway so a gateway failure never
	// leaves an order we have no local record of
	orderID := uuid.NewString()
	order := &model.CheckoutOrder{
		ID:              orderID,
		Email:           email,
		RazorpayOrderID: "local:" + orderID,
		Status:          string(model.CheckoutCreated),
		AmountPaise:     total.IntPart(),
		Currency:        "INR",
	}

	if err := s.checkoutRepo.CreateWithItems(ctx, order, orderItems); err != nil {
		return nil, fmt.Errorf("persist checkout order: %w", err)
	}

	gatewayOrder, err := s.razorpay.CreateOrder(ctx, total.IntPart(), "INR", orderID)
	if err != nil {
		return nil, fmt.Errorf("create razorpay order: %w", err)
	}

	if err := s.checkoutRepo.SetRazorpayOrderID(ctx, orderID, gatewayOrder.ID); err != nil {
		logger.Log.Error("orphaned razorpay order",
			zap.String("order", orderID),
			zap.String("razorpayOrder", gatewayOrder.ID),
			zap.Error(err))
		return nil, fmt.Errorf("attach razorpay order id: %w", err)
	}

	return &CheckoutResult{
		RazorpayOrderID: gatewayOrder.ID,
		RazorpayKeyID:   s.razorpay.KeyID(),
		AmountPaise:     total.IntPart(),
		Currency:        "INR",
	}, nil
}

func (s *checkoutServiceImpl) VerifyPayment(ctx context.Context, razorpayOrderID, paymentID, signature string) (*VerifyResult, error) {
	if razorpayOrderID == "" || paymentID == "" || signature == "" {
		return nil, NewValidationError("order id, payment id and signature are required")
	}

	if !s.razorpay.VerifyPaymentSignature(razorpayOrderID, paymentID, signature) {
		return nil, ErrInvalidSignature
	}

	order, err := s.checkoutRepo.FindByRazorpayOrderID(ctx, razorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find checkout order: %w", err)
	}

	affected, err := s.checkoutRepo.MarkPaid(ctx, razorpayOrderID)
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}
	if affected == 0 {
		// a second verify for the same payment is not an error
		return &VerifyResult{OrderID: order.ID, AlreadyPaid: true}, nil
	}

	items, err := s.checkoutRepo.GetItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	var unitsWanted int
	keys := make([]string, 0, len(items))
	for _, item := range items {
		unitsWanted += int(item.Quantity)

		for q := int32(0); q < item.Quantity; q++ {
			key, err := s.licenseKeyRepo.Allocate(ctx, item.FSN, order.ID)
			if err != nil {
				if errors.Is(err, repository.ErrOutOfStock) {
					// leave the rest for manual assignment instead of failing
					// the whole payment
					logger.Log.Warn("license stock exhausted during fulfillment",
						zap.String("order", order.ID),
						zap.String("fsn", item.FSN))
					break
				}
				return nil, fmt.Errorf("allocate key for %s: %w", item.FSN, err)
			}

			if q == 0 {
				if err := s.checkoutRepo.SetItemLicenseKey(ctx, item.ID, key.ID); err != nil {
					return nil, fmt.Errorf("link key to item: %w", err)
				}
			}
			keys = append(keys, key.KeyValue)
		}
	}

	if len(keys) == unitsWanted {
		if err := s.checkoutRepo.MarkDelivered(ctx, order.ID); err != nil {
			logger.Log.Error("mark delivered", zap.String("order", order.ID), zap.Error(err))
		}
	}

	if err := s.sendDeliveryMail(ctx, order.Email, keys); err != nil {
		// delivery mail is best effort; keys are already visible in the
		// customer dashboard
		logger.Log.Error("send delivery mail", zap.String("order", order.ID), zap.Error(err))
	}

	return &VerifyResult{
		OrderID:     order.ID,
		LicenseKeys: keys,
	}, nil
}

func (s *checkoutServiceImpl) sendDeliveryMail(ctx context.Context, email string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("<h2>Thank you for your purchase</h2><p>Your license keys:</p><ul>")
	for _, key := range keys {
		b.WriteString("<li><code>" + key + "</code></li>")
	}
	b.WriteString("</ul>")

	return s.mail.Send(ctx, email, "Your license keys", b.String())
}
