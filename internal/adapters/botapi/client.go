package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client notifies the companion bot's webhook so it can refresh its cached
// catalog after admin edits.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) NotifyUpdate(ctx context.Context, entityType, action string, data map[string]any) error {
	if c.baseURL == "" {
		return fmt.Errorf("bot api url not configured")
	}
	body, err := json.Marshal(map[string]any{
		"type":   entityType,
		"action": action,
		"data":   data,
	})
	if err != nil {
		return fmt.Errorf("encode bot notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/webhook/update", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build bot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify bot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bot webhook returned %d", resp.StatusCode)
	}
	return nil
}
