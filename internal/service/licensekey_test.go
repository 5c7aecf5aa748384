package service

import (
	"context"
	"license-store/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLicenseKeyService(t *testing.T) (LicenseKeyService, repository.LicenseKeyRepository) {
	t.Helper()

	repo := repository.NewLicenseKeyRepository(newServiceTestDB(t))
	return NewLicenseKeyService(repo), repo
}

func TestAddKeysSkipsBlankLines(t *testing.T) {
	svc, _ := newLicenseKeyService(t)

	added, err := svc.AddKeys(context.Background(), "FSN001", []string{
		"KEY-0001",
		"  ",
		"",
		"  KEY-0002  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	keys, summary, err := svc.ListByFSN(context.Background(), "FSN001")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "KEY-0001", keys[0].KeyValue)
	assert.Equal(t, "KEY-0002", keys[1].KeyValue, "values are trimmed before insert")
	assert.Equal(t, int64(2), summary.Available)
	assert.Equal(t, int64(0), summary.Redeemed)
}

func TestAddKeysValidation(t *testing.T) {
	svc, _ := newLicenseKeyService(t)

	var verr *ValidationError

	_, err := svc.AddKeys(context.Background(), "", []string{"KEY-0001"})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.AddKeys(context.Background(), "FSN001", []string{"", "  "})
	assert.ErrorAs(t, err, &verr)
}

func TestInventorySummaryTracksRedemption(t *testing.T) {
	svc, repo := newLicenseKeyService(t)

	_, err := svc.AddKeys(context.Background(), "FSN001", []string{"KEY-0001", "KEY-0002", "KEY-0003"})
	require.NoError(t, err)

	_, err = repo.Allocate(context.Background(), "FSN001", "512345678901234")
	require.NoError(t, err)

	_, summary, err := svc.ListByFSN(context.Background(), "FSN001")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Available)
	assert.Equal(t, int64(1), summary.Redeemed)
}

func TestDeleteKeys(t *testing.T) {
	svc, _ := newLicenseKeyService(t)

	_, err := svc.AddKeys(context.Background(), "FSN001", []string{"KEY-0001", "KEY-0002"})
	require.NoError(t, err)

	keys, _, err := svc.ListByFSN(context.Background(), "FSN001")
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), []string{keys[0].ID, "no-such-id"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var verr *ValidationError
	_, err = svc.Delete(context.Background(), nil)
	assert.ErrorAs(t, err, &verr)
}
