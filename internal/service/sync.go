package service

import (
	"context"
	"fmt"
	"license-store/internal/client"
	"license-store/internal/logger"
	"license-store/internal/model"
	"license-store/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// syncLookback bounds how far back each sync run asks the provider for
// orders.
const syncLookback = 7 * 24 * time.Hour

type SyncResult struct {
	AccountID    string `json:"accountId"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	OrdersSynced int    `json:"ordersSynced"`
	Error        string `json:"error,omitempty"`
}

// SyncService pulls recent orders from every active seller account. Accounts
// are processed strictly one at a time in priority order; one account's
// failure does not stop the rest. Priority and active-flag changes take
// effect on the next run.
type SyncService interface {
	RunAll(ctx context.Context) ([]*SyncResult, error)
}

type syncServiceImpl struct {
	accounts    SellerAccountService
	accountRepo repository.SellerAccountRepository
	orderRepo   repository.AmazonOrderRepository
	spapi       client.SpapiClient
}

func NewSyncService(
	accounts SellerAccountService,
	accountRepo repository.SellerAccountRepository,
	orderRepo repository.AmazonOrderRepository,
	spapi client.SpapiClient,
) SyncService {
	return &syncServiceImpl{
		accounts:    accounts,
		accountRepo: accountRepo,
		orderRepo:   orderRepo,
		spapi:       spapi,
	}
}

func (s *syncServiceImpl) RunAll(ctx context.Context) ([]*SyncResult, error) {
	credentials, err := s.accounts.ActiveCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active accounts: %w", err)
	}

	results := make([]*SyncResult, 0, len(credentials))
	for _, creds := range credentials {
		synced, err := s.syncAccount(ctx, creds)

		result := &SyncResult{
			AccountID:    creds.AccountID,
			Name:         creds.Name,
			OrdersSynced: synced,
		}

		if err != nil {
			result.Status = model.SyncStatusFailed
			result.Error = err.Error()
			logger.Log.Error("seller account sync failed",
				zap.String("account", creds.Name),
				zap.Error(err))
		} else {
			result.Status = model.SyncStatusSuccess
			logger.Log.Info("seller account synced",
				zap.String("account", creds.Name),
				zap.Int("orders", synced))
		}

		if recordErr := s.accountRepo.RecordSyncResult(ctx, creds.AccountID, result.Status, synced); recordErr != nil {
			logger.Log.Error("record sync result",
				zap.String("account", creds.Name),
				zap.Error(recordErr))
		}

		results = append(results, result)
	}

	return results, nil
}

func (s *syncServiceImpl) syncAccount(ctx context.Context, creds *SellerCredentials) (int, error) {
	accessToken, err := s.spapi.GetAccessToken(ctx, creds.ClientID, creds.ClientSecret, creds.RefreshToken)
	if err != nil {
		return 0, fmt.Errorf("get access token: %w", err)
	}

	orders, err := s.spapi.ListOrders(ctx, accessToken, creds.MarketplaceID, time.Now().Add(-syncLookback))
	if err != nil {
		return 0, fmt.Errorf("list orders: %w", err)
	}

	synced := 0
	for _, remote := range orders {
		// only AFN orders carry the delivery-delay gate; merchant-fulfilled
		// orders are out of scope for this sync
		if remote.FulfillmentChannel != "AFN" {
			continue
		}

		exists, err := s.orderRepo.ExistsByOrderID(ctx, remote.AmazonOrderID)
		if err != nil {
			return synced, fmt.Errorf("check order %s: %w", remote.AmazonOrderID, err)
		}
		if exists {
			continue
		}

		accountID := creds.AccountID
		orderDate := remote.PurchaseDate
		order := &model.AmazonOrder{
			ID:              uuid.NewString(),
			OrderID:         remote.AmazonOrderID,
			FulfillmentType: string(model.FulfillmentFBA),
			WarrantyStatus:  string(model.WarrantyPending),
			State:           remote.State,
			SellerAccountID: &accountID,
			OrderDate:       &orderDate,
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return synced, fmt.Errorf("create order %s: %w", remote.AmazonOrderID, err)
		}
		synced++
	}

	return synced, nil
}
