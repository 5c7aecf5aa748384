package service

import (
	"context"
	"errors"
	"fmt"
	"license-store/internal/model"
	"license-store/internal/repository"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	// DefaultDelayHours applies when neither the state nor the DEFAULT row is
	// configured (4 days).
	DefaultDelayHours = 96

	MinDelayHours = 1
	MaxDelayHours = 336 // 14 days

	defaultStateName = "DEFAULT"
)

type RedemptionResult struct {
	CanRedeem    bool
	RedeemableAt time.Time
	Reason       string
}

type RedemptionService interface {
	// DelayHours resolves the configured delay for a state, falling back to
	// the DEFAULT row, then to DefaultDelayHours. Reads fresh every call;
	// admins mutate these rows directly.
	DelayHours(ctx context.Context, state string) (int, error)
	Check(ctx context.Context, order *model.AmazonOrder, now time.Time) (*RedemptionResult, error)
}

type redemptionServiceImpl struct {
	stateDelayRepo repository.StateDelayRepository
}

func NewRedemptionService(stateDelayRepo repository.StateDelayRepository) RedemptionService {
	return &redemptionServiceImpl{
		stateDelayRepo: stateDelayRepo,
	}
}

func (s *redemptionServiceImpl) DelayHours(ctx context.Context, state string) (int, error) {
	normalized := strings.ToUpper(strings.TrimSpace(state))

	if normalized != "" {
		row, err := s.stateDelayRepo.FindByStateName(ctx, normalized)
		if err == nil {
			return row.DelayHours, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("lookup state delay: %w", err)
		}
	}

	row, err := s.stateDelayRepo.FindByStateName(ctx, defaultStateName)
	if err == nil {
		return row.DelayHours, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("lookup default delay: %w", err)
	}

	return DefaultDelayHours, nil
}

func (s *redemptionServiceImpl) Check(ctx context.Context, order *model.AmazonOrder, now time.Time) (*RedemptionResult, error) {
	delayHours, err := s.DelayHours(ctx, order.State)
	if err != nil {
		return nil, err
	}

	orderDate := order.CreatedAt
	if order.OrderDate != nil {
		orderDate = *order.OrderDate
	}
	redeemableAt := orderDate.Add(time.Duration(delayHours) * time.Hour)

	status, err := model.ParseWarrantyStatus(order.WarrantyStatus)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", order.OrderID, err)
	}

	// a pending order is blocked no matter how much time has passed; the
	// delivery window only starts counting once the issue clears
	if status == model.WarrantyPending {
		return &RedemptionResult{
			CanRedeem:    false,
			RedeemableAt: redeemableAt,
			Reason:       "Your order is still being processed. Activation will open once it has been verified.",
		}, nil
	}

	if now.Before(redeemableAt) {
		return &RedemptionResult{
			CanRedeem:    false,
			RedeemableAt: redeemableAt,
			Reason:       "Your order is still on the way. You can activate once the delivery period has passed.",
		}, nil
	}

	return &RedemptionResult{
		CanRedeem:    true,
		RedeemableAt: redeemableAt,
	}, nil
}

// ToHours converts an admin-entered delay to hours. Unit is "hours" or
// "days".
func ToHours(value int, unit string) (int, error) {
	switch unit {
	case "hours":
		return value, nil
	case "days":
		return value * 24, nil
	default:
		return 0, NewValidationError(fmt.Sprintf("unknown delay unit %q", unit))
	}
}

// ForDisplay picks the largest whole unit for a stored delay.
func ForDisplay(hours int) (int, string) {
	if hours%24 == 0 {
		return hours / 24, "days"
	}
	return hours, "hours"
}

// ValidateDelayHours rejects out-of-range delays; values are never clamped.
func ValidateDelayHours(hours int) error {
	if hours < MinDelayHours || hours > MaxDelayHours {
		return NewValidationError(fmt.Sprintf("delay must be between %d and %d hours (14 days)", MinDelayHours, MaxDelayHours))
	}
	return nil
}
