package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"license-store/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "refresh-token", r.PostForm.Get("refresh_token"))

		w.Write([]byte(`{"access_token":"Atza|token","token_type":"bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	c := NewSpapiClient(&config.Amazon{TokenURL: srv.URL})

	token, err := c.GetAccessToken(context.Background(), "client-id", "client-secret", "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "Atza|token", token)
}

func TestTestCredentialsSurfacesLWADetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"The request has an invalid grant parameter : refresh_token"}`))
	}))
	defer srv.Close()

	c := NewSpapiClient(&config.Amazon{TokenURL: srv.URL})

	err := c.TestCredentials(context.Background(), "client-id", "client-secret", "stale-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Contains(t, err.Error(), "invalid grant parameter")
}

func TestListOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/v0/orders", r.URL.Path)
		assert.Equal(t, "Atza|token", r.Header.Get("x-amz-access-token"))
		assert.Equal(t, "A21TJRUUN4KGV", r.URL.Query().Get("MarketplaceIds"))
		assert.NotEmpty(t, r.URL.Query().Get("CreatedAfter"))

		w.Write([]byte(`{"payload":{"Orders":[
			{"AmazonOrderId":"403-1111111-1111111","PurchaseDate":"2026-02-01T10:00:00Z","FulfillmentChannel":"AFN","ShippingAddress":{"StateOrRegion":"Karnataka"}},
			{"AmazonOrderId":"403-2222222-2222222","PurchaseDate":"2026-02-02T11:30:00Z","FulfillmentChannel":"MFN","ShippingAddress":{"StateOrRegion":"Delhi"}}
		]}}`))
	}))
	defer srv.Close()

	c := NewSpapiClient(&config.Amazon{EndpointURL: srv.URL})

	orders, err := c.ListOrders(context.Background(), "Atza|token", "A21TJRUUN4KGV", time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "403-1111111-1111111", orders[0].AmazonOrderID)
	assert.Equal(t, "Karnataka", orders[0].State)
	assert.Equal(t, "AFN", orders[0].FulfillmentChannel)
	assert.Equal(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), orders[0].PurchaseDate)
	assert.Equal(t, "MFN", orders[1].FulfillmentChannel)
}

func TestListOrdersSkipsMalformedPurchaseDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"payload":{"Orders":[
			{"AmazonOrderId":"403-3333333-3333333","PurchaseDate":"not-a-date","FulfillmentChannel":"AFN","ShippingAddress":{"StateOrRegion":"Karnataka"}},
			{"AmazonOrderId":"403-4444444-4444444","PurchaseDate":"2026-02-03T09:00:00Z","FulfillmentChannel":"AFN","ShippingAddress":{"StateOrRegion":"Delhi"}}
		]}}`))
	}))
	defer srv.Close()

	c := NewSpapiClient(&config.Amazon{EndpointURL: srv.URL})

	orders, err := c.ListOrders(context.Background(), "Atza|token", "A21TJRUUN4KGV", time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)

	// the unparseable row must not come back with a zero purchase date
	require.Len(t, orders, 1)
	assert.Equal(t, "403-4444444-4444444", orders[0].AmazonOrderID)
	assert.False(t, orders[0].PurchaseDate.IsZero())
}
