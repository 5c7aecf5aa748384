package service

import (
	"context"
	"errors"
	"fmt"
	"license-store/internal/model"
	"license-store/internal/repository"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStateExists means a delay row for the state is already configured.
var ErrStateExists = errors.New("state already exists")

type StateDelayService interface {
	List(ctx context.Context) ([]*model.StateDelay, error)
	// Add accepts the delay in hours or days; conversion happens before the
	// 1..336 hour bounds check.
	Add(ctx context.Context, stateName string, value int, unit string) (*model.StateDelay, error)
	Update(ctx context.Context, id, stateName string, value int, unit string) (*model.StateDelay, error)
	Delete(ctx context.Context, id string) error
}

type stateDelayServiceImpl struct {
	stateDelayRepo repository.StateDelayRepository
}

func NewStateDelayService(stateDelayRepo repository.StateDelayRepository) StateDelayService {
	return &stateDelayServiceImpl{
		stateDelayRepo: stateDelayRepo,
	}
}

func (s *stateDelayServiceImpl) List(ctx context.Context) ([]*model.StateDelay, error) {
	return s.stateDelayRepo.ListAll(ctx)
}

func (s *stateDelayServiceImpl) Add(ctx context.Context, stateName string, value int, unit string) (*model.StateDelay, error) {
	normalized := strings.ToUpper(strings.TrimSpace(stateName))
	if normalized == "" {
		return nil, NewValidationError("state name is required")
	}

	hours, err := ToHours(value, unit)
	if err != nil {
		return nil, err
	}
	if err := ValidateDelayHours(hours); err != nil {
		return nil, err
	}

	delay := &model.StateDelay{
		ID:         uuid.NewString(),
		StateName:  normalized,
		DelayHours: hours,
	}

	if err := s.stateDelayRepo.Create(ctx, delay); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStateExists
		}
		return nil, fmt.Errorf("create state delay: %w", err)
	}

	return delay, nil
}

func (s *stateDelayServiceImpl) Update(ctx context.Context, id, stateName string, value int, unit string) (*model.StateDelay, error) {
	if id == "" {
		return nil, NewValidationError("state ID is required")
	}

	hours, err := ToHours(value, unit)
	if err != nil {
		return nil, err
	}
	if err := ValidateDelayHours(hours); err != nil {
		return nil, err
	}

	normalized := strings.ToUpper(strings.TrimSpace(stateName))

	delay, err := s.stateDelayRepo.Update(ctx, id, normalized, hours)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStateExists
		}
		return nil, err
	}

	return delay, nil
}

func (s *stateDelayServiceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return NewValidationError("state ID is required")
	}
	return s.stateDelayRepo.Delete(ctx, id)
}
