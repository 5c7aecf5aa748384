package service

import (
	"context"
	"errors"
	"license-store/internal/client"
	"license-store/internal/repository"
	"license-store/internal/secrets"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSpapi accepts or rejects every credential test.
type fakeSpapi struct {
	tokenErr error
	orders   []*client.SpapiOrder
}

func (f *fakeSpapi) GetAccessToken(ctx context.Context, clientID, clientSecret, refreshToken string) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return "Atza|token", nil
}

func (f *fakeSpapi) TestCredentials(ctx context.Context, clientID, clientSecret, refreshToken string) error {
	return f.tokenErr
}

func (f *fakeSpapi) ListOrders(ctx context.Context, accessToken, marketplaceID string, createdAfter time.Time) ([]*client.SpapiOrder, error) {
	return f.orders, nil
}

func newTestCipher(t *testing.T) *secrets.Cipher {
	t.Helper()

	cipher, err := secrets.NewCipher("test-passphrase")
	require.NoError(t, err)
	return cipher
}

func newSellerAccountService(t *testing.T, spapi client.SpapiClient) SellerAccountService {
	t.Helper()

	db := newServiceTestDB(t)
	return NewSellerAccountService(
		repository.NewSellerAccountRepository(db),
		repository.NewAmazonOrderRepository(db),
		spapi,
		newTestCipher(t),
		"A21TJRUUN4KGV",
	)
}

func accountInput(name string) SellerAccountInput {
	return SellerAccountInput{
		Name:          name,
		ClientID:      "amzn1.application-oa2-client." + name,
		ClientSecret:  "secret-" + name,
		RefreshToken:  "Atzr|" + name,
		MerchantToken: "MERCHANT" + name,
	}
}

func TestCreateAccountDefaults(t *testing.T) {
	svc := newSellerAccountService(t, &fakeSpapi{})

	view, err := svc.Create(context.Background(), accountInput("main"))
	require.NoError(t, err)

	assert.Equal(t, 100, view.Priority)
	assert.Equal(t, "A21TJRUUN4KGV", view.MarketplaceID)
	assert.True(t, view.IsActive)
}

func TestCreateAccountRejectedCredentialsNotPersisted(t *testing.T) {
	svc := newSellerAccountService(t, &fakeSpapi{tokenErr: errors.New("invalid_grant: bad refresh token")})

	_, err := svc.Create(context.Background(), accountInput("broken"))

	var cerr *CredentialError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Detail, "invalid_grant")

	views, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestActiveCredentialsDecryptsAndOrders(t *testing.T) {
	svc := newSellerAccountService(t, &fakeSpapi{})

	for _, tc := range []struct {
		name     string
		priority int
	}{
		{"late", 50},
		{"early", 10},
		{"middle", 30},
	} {
		input := accountInput(tc.name)
		input.Priority = &tc.priority
		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
	}

	inactive, err := svc.Create(context.Background(), accountInput("off"))
	require.NoError(t, err)
	off := false
	_, err = svc.Update(context.Background(), inactive.ID, SellerAccountUpdate{IsActive: &off})
	require.NoError(t, err)

	creds, err := svc.ActiveCredentials(context.Background())
	require.NoError(t, err)
	require.Len(t, creds, 3)

	assert.Equal(t, "early", creds[0].Name)
	assert.Equal(t, "middle", creds[1].Name)
	assert.Equal(t, "late", creds[2].Name)

	// decrypted, round-tripped plaintext
	assert.Equal(t, "amzn1.application-oa2-client.early", creds[0].ClientID)
	assert.Equal(t, "secret-early", creds[0].ClientSecret)
	assert.Equal(t, "Atzr|early", creds[0].RefreshToken)
}

func TestViewNeverExposesCredentials(t *testing.T) {
	svc := newSellerAccountService(t, &fakeSpapi{})

	view, err := svc.Create(context.Background(), accountInput("main"))
	require.NoError(t, err)
	assert.NotEmpty(t, view.MerchantToken)

	got, err := svc.Get(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)
	// the view type has no credential fields at all; spot check the zero shape
	assert.NotContains(t, []string{got.Name, got.MerchantToken, got.MarketplaceID}, "secret-main")
}

func TestNudgePriority(t *testing.T) {
	svc := newSellerAccountService(t, &fakeSpapi{})

	view, err := svc.Create(context.Background(), accountInput("main"))
	require.NoError(t, err)
	require.Equal(t, 100, view.Priority)

	up, err := svc.NudgePriority(context.Background(), view.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, 90, up.Priority)

	down, err := svc.NudgePriority(context.Background(), view.ID, "down")
	require.NoError(t, err)
	assert.Equal(t, 100, down.Priority)

	_, err = svc.NudgePriority(context.Background(), view.ID, "sideways")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateDoesNotRevalidateCredentials(t *testing.T) {
	spapi := &fakeSpapi{}
	svc := newSellerAccountService(t, spapi)

	view, err := svc.Create(context.Background(), accountInput("main"))
	require.NoError(t, err)

	// provider starts rejecting, edits must still go through
	spapi.tokenErr = errors.New("invalid_client")

	newToken := "Atzr|rotated"
	updated, err := svc.Update(context.Background(), view.ID, SellerAccountUpdate{RefreshToken: &newToken})
	require.NoError(t, err)
	assert.Equal(t, view.ID, updated.ID)

	creds, err := svc.ActiveCredentials(context.Background())
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, "Atzr|rotated", creds[0].RefreshToken)
}
