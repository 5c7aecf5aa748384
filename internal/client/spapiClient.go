package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"license-store/internal/config"
	"license-store/internal/logger"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SpapiClient talks to Amazon's LWA token endpoint. Minting an access token
// from a refresh token is both the credential test and the first step of any
// SP API call.
type SpapiClient interface {
	GetAccessToken(ctx context.Context, clientID, clientSecret, refreshToken string) (string, error)
	TestCredentials(ctx context.Context, clientID, clientSecret, refreshToken string) error
	ListOrders(ctx context.Context, accessToken, marketplaceID string, createdAfter time.Time) ([]*SpapiOrder, error)
}

type SpapiOrder struct {
	AmazonOrderID      string
	PurchaseDate       time.Time
	State              string
	FulfillmentChannel string // AFN or MFN
}

type spapiClientImpl struct {
	httpClient  *http.Client
	tokenURL    string
	endpointURL string
}

func NewSpapiClient(amazonCfg *config.Amazon) SpapiClient {
	return &spapiClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokenURL:    amazonCfg.TokenURL,
		endpointURL: amazonCfg.EndpointURL,
	}
}

func (c *spapiClientImpl) GetAccessToken(ctx context.Context, clientID, clientSecret, refreshToken string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)

		// LWA error bodies carry error/error_description; surface the detail
		var lwaErr struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if jsonErr := json.Unmarshal(b, &lwaErr); jsonErr == nil && lwaErr.Error != "" {
			return "", fmt.Errorf("lwa token error %s: %s", lwaErr.Error, lwaErr.Description)
		}
		return "", fmt.Errorf("lwa token error %d: %s", resp.StatusCode, string(b))
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode lwa response: %w", err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("lwa response missing access token")
	}

	return res.AccessToken, nil
}

func (c *spapiClientImpl) TestCredentials(ctx context.Context, clientID, clientSecret, refreshToken string) error {
	_, err := c.GetAccessToken(ctx, clientID, clientSecret, refreshToken)
	return err
}

func (c *spapiClientImpl) ListOrders(ctx context.Context, accessToken, marketplaceID string, createdAfter time.Time) ([]*SpapiOrder, error) {
	query := url.Values{}
	query.Set("MarketplaceIds", marketplaceID)
	query.Set("CreatedAfter", createdAfter.UTC().Format(time.RFC3339))

	endpoint := c.endpointURL + "/orders/v0/orders?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("x-amz-access-token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sp api orders error %d: %s", resp.StatusCode, string(b))
	}

	var result struct {
		Payload struct {
			Orders []struct {
				AmazonOrderID      string `json:"AmazonOrderId"`
				PurchaseDate       string `json:"PurchaseDate"`
				FulfillmentChannel string `json:"FulfillmentChannel"`
				ShippingAddress    struct {
					StateOrRegion string `json:"StateOrRegion"`
				} `json:"ShippingAddress"`
			} `json:"Orders"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sp api response: %w", err)
	}

	orders := make([]*SpapiOrder, 0, len(result.Payload.Orders))
	for _, o := range result.Payload.Orders {
		purchased, err := time.Parse(time.RFC3339, o.PurchaseDate)
		if err != nil {
			// a zero purchase date would make the order redeemable
			// immediately once ingested; skip the row
			logger.Log.Warn("skipping order with malformed purchase date",
				zap.String("order", o.AmazonOrderID),
				zap.String("purchaseDate", o.PurchaseDate))
			continue
		}
		orders = append(orders, &SpapiOrder{
			AmazonOrderID:      o.AmazonOrderID,
			PurchaseDate:       purchased,
			State:              o.ShippingAddress.StateOrRegion,
			FulfillmentChannel: o.FulfillmentChannel,
		})
	}

	return orders, nil
}
