package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"famick/internal/config"
)

// Result is the outcome wrapper for cloud calls: success flag, an optional
// human-readable message, and the HTTP status code when one was received.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Client pushes entities to the Famick cloud sync target. The access token is
// lazily acquired and refreshed; the refresh is guarded by a mutex so
// concurrent 401s trigger exactly one refresh.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
	now      func() time.Time
}

// NewClient builds a cloud client from config. The HTTP client should carry an
// instrumented transport and a timeout.
func NewClient(cfg config.CloudConfig, httpClient *http.Client) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("cloud base url is required")
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		now:          time.Now,
	}, nil
}

// PushItem uploads one entity payload. A 401 triggers a single token refresh
// and one retry; every other failure is reported in the Result, never as an
// error, so the transfer loop can record it and move on.
func (c *Client) PushItem(ctx context.Context, tenantID, entityType string, payload []byte) Result {
	token, err := c.currentToken(ctx)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("token acquire failed: %v", err)}
	}

	res := c.doPush(ctx, token, tenantID, entityType, payload)
	if res.StatusCode != http.StatusUnauthorized {
		return res
	}

	token, err = c.refreshToken(ctx, token)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("token refresh failed: %v", err), StatusCode: http.StatusUnauthorized}
	}
	return c.doPush(ctx, token, tenantID, entityType, payload)
}

func (c *Client) doPush(ctx context.Context, token, tenantID, entityType string, payload []byte) Result {
	u := fmt.Sprintf("%s/v1/tenants/%s/%s", c.baseURL, tenantID, entityType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Success: true, StatusCode: resp.StatusCode}
	}

	// Keep a short slice of the body as the failure message.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return Result{
		Success:    false,
		Message:    fmt.Sprintf("cloud returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		StatusCode: resp.StatusCode,
	}
}

// currentToken returns a valid cached token or acquires a fresh one.
func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.tokenExp) {
		return c.token, nil
	}
	if err := c.fetchTokenLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

// refreshToken replaces the cached token after a 401. The token is only
// discarded if it is still the one the 401 was observed with; callers that
// lost the race reuse the token the winner already fetched.
func (c *Client) refreshToken(ctx context.Context, stale string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == stale {
		c.token = ""
	}
	if err := c.fetchTokenLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// fetchTokenLocked performs the client-credentials exchange. Caller holds mu.
func (c *Client) fetchTokenLocked(ctx context.Context) error {
	if c.token != "" && c.now().Before(c.tokenExp) {
		// Another caller refreshed while we waited on the lock.
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/token", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return errors.New("token endpoint returned empty token")
	}

	c.token = tr.AccessToken
	c.tokenExp = c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return nil
}
