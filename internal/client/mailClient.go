package client

import (
	"context"
	"fmt"
	"io"
	"license-store/internal/config"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type MailClient interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type mailClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	domain     string
	apiKey     string
	sender     string
}

func NewMailClient(mailgunCfg *config.Mailgun) MailClient {
	return &mailClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: mailgunCfg.BaseApiURL,
		domain:     mailgunCfg.Domain,
		apiKey:     mailgunCfg.APIKey,
		sender:     mailgunCfg.Sender,
	}
}

func (c *mailClientImpl) Send(ctx context.Context, to, subject, htmlBody string) error {
	form := url.Values{}
	form.Set("from", c.sender)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("html", htmlBody)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", c.baseApiURL, c.domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.SetBasicAuth("api", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailgun error %d: %s", resp.StatusCode, string(b))
	}

	return nil
}
