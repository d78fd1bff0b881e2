/**
 * @description
 * Client for triggering the batch reminder run on the billing API
 * server. Used by the reminder runner for server-to-server calls
 * authenticated with the internal API key.
 */
package reminderclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RunSummary is the server's summary of a batch reminder run.
type RunSummary struct {
	Processed     int `json:"processed"`
	Sent          int `json:"sent"`
	Failed        int `json:"failed"`
	SkippedPaid   int `json:"skipped_paid"`
	SkippedOptOut int `json:"skipped_opt_out"`
}

// Client is a client for the billing API's internal reminder endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new reminder run client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// RunReminders triggers a batch reminder run and returns its summary.
func (c *Client) RunReminders(ctx context.Context) (*RunSummary, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("billing server base URL is not configured")
	}

	url := fmt.Sprintf("%s/internal/notifications/run", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call billing server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reminder run failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var summary RunSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode run summary: %w", err)
	}
	return &summary, nil
}
