/**
 * @description
 * This package provides a client for the WhatsApp Cloud API (Graph API).
 * It encapsulates the authenticated HTTP call for sending a text
 * message and translates provider failures into errors that carry the
 * status code and response body.
 *
 * @notes
 * - The client performs exactly one request per send; timeout
 *   enforcement beyond the default client timeout and any retry policy
 *   belong to the caller.
 */
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Graph API root used when none is configured.
const DefaultBaseURL = "https://graph.facebook.com/v19.0"

// Client is a client for the WhatsApp Cloud API.
type Client struct {
	baseURL    string
	phoneID    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new WhatsApp Cloud API client for the given
// business phone number id.
func NewClient(baseURL, phoneID, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		phoneID: phoneID,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type textMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

type textPayload struct {
	Body string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// Send delivers a text message to the given E.164 phone number and
// returns the provider-assigned message id.
func (c *Client) Send(ctx context.Context, phoneE164, body string) (string, error) {
	if c.phoneID == "" || c.token == "" {
		return "", fmt.Errorf("whatsapp provider is not configured")
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	payload, err := json.Marshal(textMessageRequest{
		MessagingProduct: "whatsapp",
		To:               phoneE164,
		Type:             "text",
		Text:             textPayload{Body: body},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal message body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request to whatsapp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("whatsapp api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var sendResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return "", fmt.Errorf("failed to decode whatsapp response: %w", err)
	}

	if len(sendResp.Messages) == 0 {
		return "", nil
	}
	return sendResp.Messages[0].ID, nil
}
