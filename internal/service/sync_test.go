package service

import (
	"context"
	"errors"
	"license-store/internal/client"
	"license-store/internal/model"
	"license-store/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSpapi routes responses by refresh token, so each seller account in
// a test can behave differently.
type scriptedSpapi struct {
	ordersByToken map[string][]*client.SpapiOrder
	errByToken    map[string]error
}

func (f *scriptedSpapi) GetAccessToken(ctx context.Context, clientID, clientSecret, refreshToken string) (string, error) {
	if err := f.errByToken[refreshToken]; err != nil {
		return "", err
	}
	return "tok|" + refreshToken, nil
}

func (f *scriptedSpapi) TestCredentials(ctx context.Context, clientID, clientSecret, refreshToken string) error {
	_, err := f.GetAccessToken(ctx, clientID, clientSecret, refreshToken)
	return err
}

func (f *scriptedSpapi) ListOrders(ctx context.Context, accessToken, marketplaceID string, createdAfter time.Time) ([]*client.SpapiOrder, error) {
	return f.ordersByToken[accessToken], nil
}

func remoteOrder(id, state, channel string) *client.SpapiOrder {
	return &client.SpapiOrder{
		AmazonOrderID:      id,
		PurchaseDate:       time.Now().Add(-24 * time.Hour),
		State:              state,
		FulfillmentChannel: channel,
	}
}

func TestRunAllWalksAccountsInPriorityOrder(t *testing.T) {
	db := newServiceTestDB(t)
	accountRepo := repository.NewSellerAccountRepository(db)
	orderRepo := repository.NewAmazonOrderRepository(db)

	spapi := &scriptedSpapi{
		ordersByToken: map[string][]*client.SpapiOrder{
			"tok|Atzr|first": {
				remoteOrder("403-1111111-1111111", "Karnataka", "AFN"),
				remoteOrder("403-2222222-2222222", "Delhi", "AFN"),
			},
			"tok|Atzr|second": {
				remoteOrder("403-3333333-3333333", "Kerala", "AFN"),
			},
		},
		errByToken: map[string]error{},
	}

	cipher := newTestCipher(t)
	accounts := NewSellerAccountService(accountRepo, orderRepo, spapi, cipher, "A21TJRUUN4KGV")

	low, high := 20, 10
	first := accountInput("first")
	first.Priority = &high
	second := accountInput("second")
	second.Priority = &low
	_, err := accounts.Create(context.Background(), first)
	require.NoError(t, err)
	_, err = accounts.Create(context.Background(), second)
	require.NoError(t, err)

	svc := NewSyncService(accounts, accountRepo, orderRepo, spapi)

	results, err := svc.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, model.SyncStatusSuccess, results[0].Status)
	assert.Equal(t, 2, results[0].OrdersSynced)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, 1, results[1].OrdersSynced)

	order, err := orderRepo.FindByOrderID(context.Background(), "403-1111111-1111111")
	require.NoError(t, err)
	assert.Equal(t, string(model.FulfillmentFBA), order.FulfillmentType)
	assert.Equal(t, string(model.WarrantyPending), order.WarrantyStatus)
	assert.Equal(t, "Karnataka", order.State)
	require.NotNil(t, order.SellerAccountID)
	require.NotNil(t, order.OrderDate)
}

func TestRunAllSkipsExistingAndMerchantFulfilled(t *testing.T) {
	db := newServiceTestDB(t)
	accountRepo := repository.NewSellerAccountRepository(db)
	orderRepo := repository.NewAmazonOrderRepository(db)

	spapi := &scriptedSpapi{
		ordersByToken: map[string][]*client.SpapiOrder{
			"tok|Atzr|main": {
				remoteOrder("403-1111111-1111111", "Karnataka", "AFN"),
				remoteOrder("403-4444444-4444444", "Delhi", "MFN"),
				remoteOrder("403-5555555-5555555", "Kerala", "AFN"),
			},
		},
		errByToken: map[string]error{},
	}

	accounts := NewSellerAccountService(accountRepo, orderRepo, spapi, newTestCipher(t), "A21TJRUUN4KGV")
	_, err := accounts.Create(context.Background(), accountInput("main"))
	require.NoError(t, err)

	// already ingested by a previous run
	require.NoError(t, orderRepo.Create(context.Background(), &model.AmazonOrder{
		ID:              "existing",
		OrderID:         "403-1111111-1111111",
		FulfillmentType: string(model.FulfillmentFBA),
		WarrantyStatus:  string(model.WarrantyNotified),
	}))

	svc := NewSyncService(accounts, accountRepo, orderRepo, spapi)

	results, err := svc.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].OrdersSynced)

	// the pre-existing row kept its status
	order, err := orderRepo.FindByOrderID(context.Background(), "403-1111111-1111111")
	require.NoError(t, err)
	assert.Equal(t, string(model.WarrantyNotified), order.WarrantyStatus)

	_, err = orderRepo.FindByOrderID(context.Background(), "403-4444444-4444444")
	assert.Error(t, err, "MFN order must not be ingested")
}

func TestRunAllContinuesPastFailingAccount(t *testing.T) {
	db := newServiceTestDB(t)
	accountRepo := repository.NewSellerAccountRepository(db)
	orderRepo := repository.NewAmazonOrderRepository(db)

	spapi := &scriptedSpapi{
		ordersByToken: map[string][]*client.SpapiOrder{
			"tok|Atzr|good": {remoteOrder("403-1111111-1111111", "Karnataka", "AFN")},
		},
		errByToken: map[string]error{},
	}

	accounts := NewSellerAccountService(accountRepo, orderRepo, spapi, newTestCipher(t), "A21TJRUUN4KGV")

	first, second := 10, 20
	bad := accountInput("bad")
	bad.Priority = &first
	good := accountInput("good")
	good.Priority = &second
	badView, err := accounts.Create(context.Background(), bad)
	require.NoError(t, err)
	_, err = accounts.Create(context.Background(), good)
	require.NoError(t, err)

	// credentials rot after the account was created
	spapi.errByToken["Atzr|bad"] = errors.New("invalid_grant")

	svc := NewSyncService(accounts, accountRepo, orderRepo, spapi)

	results, err := svc.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, model.SyncStatusFailed, results[0].Status)
	assert.Contains(t, results[0].Error, "invalid_grant")
	assert.Equal(t, model.SyncStatusSuccess, results[1].Status)
	assert.Equal(t, 1, results[1].OrdersSynced)

	// the failure was recorded on the account
	account, err := accountRepo.FindByID(context.Background(), badView.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SyncStatusFailed, account.LastSyncStatus)
}
