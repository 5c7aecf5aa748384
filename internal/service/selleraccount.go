package service

import (
	"context"
	"fmt"
	"license-store/internal/client"
	"license-store/internal/model"
	"license-store/internal/repository"
	"license-store/internal/secrets"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPriority = 100
	priorityStep    = 10
)

type SellerAccountInput struct {
	Name          string
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	MerchantToken string
	MarketplaceID string
	Priority      *int
}

type SellerAccountUpdate struct {
	Name          *string
	ClientID      *string
	ClientSecret  *string
	RefreshToken  *string
	MerchantToken *string
	MarketplaceID *string
	Priority      *int
	IsActive      *bool
}

// SellerAccountView is the admin-facing shape; credentials never leave the
// service decrypted except through Credentials.
type SellerAccountView struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	MerchantToken     string     `json:"merchantToken"`
	MarketplaceID     string     `json:"marketplaceId"`
	Priority          int        `json:"priority"`
	IsActive          bool       `json:"isActive"`
	LastSyncAt        *time.Time `json:"lastSyncAt"`
	LastSyncStatus    string     `json:"lastSyncStatus"`
	OrdersSyncedCount int        `json:"ordersSyncedCount"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type SellerCredentials struct {
	AccountID     string
	Name          string
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	MerchantToken string
	MarketplaceID string
	Priority      int
}

type SellerAccountService interface {
	// Create validates the credentials against the provider before saving;
	// an account that fails the test is never persisted.
	Create(ctx context.Context, input SellerAccountInput) (*SellerAccountView, error)
	// Update does not re-validate credentials.
	Update(ctx context.Context, id string, update SellerAccountUpdate) (*SellerAccountView, error)
	Get(ctx context.Context, id string) (*SellerAccountView, error)
	ListAll(ctx context.Context) ([]*SellerAccountView, error)
	// ActiveCredentials is the fan-out sequence: active accounts with
	// decrypted credentials, ascending priority, creation order on ties.
	ActiveCredentials(ctx context.Context) ([]*SellerCredentials, error)
	// NudgePriority moves the account up (earlier, -10) or down (later, +10).
	NudgePriority(ctx context.Context, id, direction string) (*SellerAccountView, error)
	TestCredentials(ctx context.Context, clientID, clientSecret, refreshToken string) error
	// Delete unlinks the account's orders before removing it.
	Delete(ctx context.Context, id string) error
}

type sellerAccountServiceImpl struct {
	accountRepo          repository.SellerAccountRepository
	orderRepo            repository.AmazonOrderRepository
	spapi                client.SpapiClient
	cipher               *secrets.Cipher
	defaultMarketplaceID string
}

func NewSellerAccountService(
	accountRepo repository.SellerAccountRepository,
	orderRepo repository.AmazonOrderRepository,
	spapi client.SpapiClient,
	cipher *secrets.Cipher,
	defaultMarketplaceID string,
) SellerAccountService {
	return &sellerAccountServiceImpl{
		accountRepo:          accountRepo,
		orderRepo:            orderRepo,
		spapi:                spapi,
		cipher:               cipher,
		defaultMarketplaceID: defaultMarketplaceID,
	}
}

func (s *sellerAccountServiceImpl) Create(ctx context.Context, input SellerAccountInput) (*SellerAccountView, error) {
	if input.Name == "" || input.ClientID == "" || input.ClientSecret == "" ||
		input.RefreshToken == "" || input.MerchantToken == "" {
		return nil, NewValidationError("name, clientId, clientSecret, refreshToken and merchantToken are required")
	}

	if err := s.spapi.TestCredentials(ctx, input.ClientID, input.ClientSecret, input.RefreshToken); err != nil {
		return nil, &CredentialError{Detail: err.Error()}
	}

	encClientID, err := s.cipher.Encrypt(input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("encrypt client id: %w", err)
	}
	encClientSecret, err := s.cipher.Encrypt(input.ClientSecret)
	if err != nil {
		return nil, fmt.Errorf("encrypt client secret: %w", err)
	}
	encRefreshToken, err := s.cipher.Encrypt(input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("encrypt refresh token: %w", err)
	}

	marketplaceID := input.MarketplaceID
	if marketplaceID == "" {
		marketplaceID = s.defaultMarketplaceID
	}
	priority := defaultPriority
	if input.Priority != nil {
		priority = *input.Priority
	}

	account := &model.SellerAccount{
		ID:            uuid.NewString(),
		Name:          input.Name,
		ClientID:      encClientID,
		ClientSecret:  encClientSecret,
		RefreshToken:  encRefreshToken,
		MerchantToken: input.MerchantToken,
		MarketplaceID: marketplaceID,
		Priority:      priority,
		IsActive:      true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create seller account: %w", err)
	}

	return viewOf(account), nil
}

func (s *sellerAccountServiceImpl) Update(ctx context.Context, id string, update SellerAccountUpdate) (*SellerAccountView, error) {
	updates := map[string]interface{}{}

	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.ClientID != nil {
		enc, err := s.cipher.Encrypt(*update.ClientID)
		if err != nil {
			return nil, fmt.Errorf("encrypt client id: %w", err)
		}
		updates["client_id"] = enc
	}
	if update.ClientSecret != nil {
		enc, err := s.cipher.Encrypt(*update.ClientSecret)
		if err != nil {
			return nil, fmt.Errorf("encrypt client secret: %w", err)
		}
		updates["client_secret"] = enc
	}
	if update.RefreshToken != nil {
		enc, err := s.cipher.Encrypt(*update.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("encrypt refresh token: %w", err)
		}
		updates["refresh_token"] = enc
	}
	if update.MerchantToken != nil {
		updates["merchant_token"] = *update.MerchantToken
	}
	if update.MarketplaceID != nil {
		updates["marketplace_id"] = *update.MarketplaceID
	}
	if update.Priority != nil {
		updates["priority"] = *update.Priority
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) == 0 {
		return nil, NewValidationError("no fields to update")
	}

	account, err := s.accountRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	return viewOf(account), nil
}

func (s *sellerAccountServiceImpl) Get(ctx context.Context, id string) (*SellerAccountView, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return viewOf(account), nil
}

func (s *sellerAccountServiceImpl) ListAll(ctx context.Context) ([]*SellerAccountView, error) {
	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*SellerAccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, viewOf(account))
	}

	return views, nil
}

func (s *sellerAccountServiceImpl) ActiveCredentials(ctx context.Context) ([]*SellerCredentials, error) {
	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	credentials := make([]*SellerCredentials, 0, len(accounts))
	for _, account := range accounts {
		clientID, err := s.cipher.Decrypt(account.ClientID)
		if err != nil {
			return nil, fmt.Errorf("decrypt client id for %s: %w", account.Name, err)
		}
		clientSecret, err := s.cipher.Decrypt(account.ClientSecret)
		if err != nil {
			return nil, fmt.Errorf("decrypt client secret for %s: %w", account.Name, err)
		}
		refreshToken, err := s.cipher.Decrypt(account.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("decrypt refresh token for %s: %w", account.Name, err)
		}

		credentials = append(credentials, &SellerCredentials{
			AccountID:     account.ID,
			Name:          account.Name,
			ClientID:      clientID,
			ClientSecret:  clientSecret,
			RefreshToken:  refreshToken,
			MerchantToken: account.MerchantToken,
			MarketplaceID: account.MarketplaceID,
			Priority:      account.Priority,
		})
	}

	return credentials, nil
}

func (s *sellerAccountServiceImpl) NudgePriority(ctx context.Context, id, direction string) (*SellerAccountView, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var priority int
	switch direction {
	case "up":
		priority = account.Priority - priorityStep
	case "down":
		priority = account.Priority + priorityStep
	default:
		return nil, NewValidationError(`direction must be "up" or "down"`)
	}

	updated, err := s.accountRepo.Update(ctx, id, map[string]interface{}{
		"priority": priority,
	})
	if err != nil {
		return nil, err
	}

	return viewOf(updated), nil
}

func (s *sellerAccountServiceImpl) TestCredentials(ctx context.Context, clientID, clientSecret, refreshToken string) error {
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return NewValidationError("clientId, clientSecret and refreshToken are required")
	}

	if err := s.spapi.TestCredentials(ctx, clientID, clientSecret, refreshToken); err != nil {
		return &CredentialError{Detail: err.Error()}
	}

	return nil
}

func (s *sellerAccountServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.orderRepo.UnlinkSellerAccount(ctx, id); err != nil {
		return fmt.Errorf("unlink orders: %w", err)
	}

	return s.accountRepo.Delete(ctx, id)
}

func viewOf(account *model.SellerAccount) *SellerAccountView {
	return &SellerAccountView{
		ID:                account.ID,
		Name:              account.Name,
		MerchantToken:     account.MerchantToken,
		MarketplaceID:     account.MarketplaceID,
		Priority:          account.Priority,
		IsActive:          account.IsActive,
		LastSyncAt:        account.LastSyncAt,
		LastSyncStatus:    account.LastSyncStatus,
		OrdersSyncedCount: account.OrdersSyncedCount,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}
