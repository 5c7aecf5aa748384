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
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrAlreadyRegistered = errors.New("warranty already registered for this order")

type WarrantyService interface {
	Register(ctx context.Context, rawIdentifier, email string) (*model.WarrantyRegistration, error)
	List(ctx context.Context, limit, offset int) ([]*model.WarrantyRegistration, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ResendEmail(ctx context.Context, id string) error
}

type warrantyServiceImpl struct {
	warrantyRepo repository.WarrantyRepository
	orderRepo    repository.AmazonOrderRepository
	mail         client.MailClient
}

func NewWarrantyService(
	warrantyRepo repository.WarrantyRepository,
	orderRepo repository.AmazonOrderRepository,
	mail client.MailClient,
) WarrantyService {
	return &warrantyServiceImpl{
		warrantyRepo: warrantyRepo,
		orderRepo:    orderRepo,
		mail:         mail,
	}
}

func (s *warrantyServiceImpl) Register(ctx context.Context, rawIdentifier, email string) (*model.WarrantyRegistration, error) {
	identifier := CleanIdentifier(rawIdentifier)
	if !IsAmazonOrderID(identifier) && !IsLookupCode(identifier) {
		return nil, NewValidationError("enter a 15-17 digit secret code or an Amazon order ID")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("a valid email is required")
	}

	if _, err := s.orderRepo.FindByOrderID(ctx, identifier); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if _, err := s.warrantyRepo.FindByOrderID(ctx, identifier); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}

	registration := &model.WarrantyRegistration{
		ID:      uuid.NewString(),
		OrderID: identifier,
		Email:   email,
		Status:  string(model.WarrantyPending),
	}

	if err := s.warrantyRepo.Create(ctx, registration); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	if err := s.sendConfirmation(ctx, registration); err != nil {
		logger.Log.Error("send warranty confirmation",
			zap.String("registration", registration.ID),
			zap.Error(err))
	}

	return registration, nil
}

func (s *warrantyServiceImpl) List(ctx context.Context, limit, offset int) ([]*model.WarrantyRegistration, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.warrantyRepo.List(ctx, limit, offset)
}

func (s *warrantyServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	parsed, err := model.ParseWarrantyStatus(status)
	if err != nil {
		return NewValidationError(err.Error())
	}

	return s.warrantyRepo.UpdateStatus(ctx, id, parsed)
}

func (s *warrantyServiceImpl) ResendEmail(ctx context.Context, id string) error {
	registration, err := s.warrantyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return s.sendConfirmation(ctx, registration)
}

func (s *warrantyServiceImpl) sendConfirmation(ctx context.Context, registration *model.WarrantyRegistration) error {
	body := fmt.Sprintf(
		"<h2>Warranty registered</h2><p>Your warranty for order <b>%s</b> has been registered and is being processed.</p>",
		registration.OrderID,
	)
	return s.mail.Send(ctx, registration.Email, "Warranty registration received", body)
}
