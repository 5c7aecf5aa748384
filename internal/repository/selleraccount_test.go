package repository

import (
	"context"
	"testing"
	"time"

	"license-store/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, repo SellerAccountRepository, name string, priority int, active bool, createdAt time.Time) string {
	t.Helper()

	account := &model.SellerAccount{
		ID:            uuid.NewString(),
		Name:          name,
		ClientID:      "enc-client-id",
		ClientSecret:  "enc-client-secret",
		RefreshToken:  "enc-refresh-token",
		MerchantToken: "MERCHANT" + name,
		MarketplaceID: "A21TJRUUN4KGV",
		Priority:      priority,
		IsActive:      active,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), account))
	return account.ID
}

func TestListActiveOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewSellerAccountRepository(db)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedAccount(t, repo, "fifty", 50, true, base)
	seedAccount(t, repo, "ten", 10, true, base.Add(time.Hour))
	seedAccount(t, repo, "thirty", 30, true, base.Add(2*time.Hour))
	seedAccount(t, repo, "disabled", 5, false, base.Add(3*time.Hour))

	accounts, err := repo.ListActive(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(accounts))
	for _, a := range accounts {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"ten", "thirty", "fifty"}, names)
}

func TestListActiveBreaksTiesByCreation(t *testing.T) {
	db := newTestDB(t)
	repo := NewSellerAccountRepository(db)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedAccount(t, repo, "second", 100, true, base.Add(time.Hour))
	seedAccount(t, repo, "first", 100, true, base)

	accounts, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "first", accounts[0].Name)
	assert.Equal(t, "second", accounts[1].Name)
}

func TestRecordSyncResultAccumulates(t *testing.T) {
	db := newTestDB(t)
	repo := NewSellerAccountRepository(db)

	id := seedAccount(t, repo, "acct", 100, true, time.Now())

	require.NoError(t, repo.RecordSyncResult(context.Background(), id, model.SyncStatusSuccess, 3))
	require.NoError(t, repo.RecordSyncResult(context.Background(), id, model.SyncStatusFailed, 0))

	account, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, account.OrdersSyncedCount)
	assert.Equal(t, model.SyncStatusFailed, account.LastSyncStatus)
	require.NotNil(t, account.LastSyncAt)
}
