// Package provider is the HTTP client for the chat gateway's send API.
// The wire format is the provider-neutral one exposed by the messaging
// relay: JSON POSTs authenticated with an account/token pair.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured reports that the credential pair is absent. Sends are
// classified as configuration failures rather than attempted.
var ErrNotConfigured = errors.New("chat gateway credentials not configured")

// ChatClient sends free-text and templated messages on behalf of one
// registered sender number.
type ChatClient struct {
	apiURL    string
	accountID string
	authToken string
	sender    string
	client    *http.Client
}

func NewChatClient(apiURL, accountID, authToken, sender string) *ChatClient {
	return &ChatClient{
		apiURL:    apiURL,
		accountID: accountID,
		authToken: authToken,
		sender:    sender,
		client: &http.Client{
			// bounds the worst-case stall of the dispatch worker
			Timeout: 15 * time.Second,
		},
	}
}

type textRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

type templateRequest struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	TemplateID string   `json:"template_id"`
	Variables  []string `json:"variables"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// SendText delivers a free-form body, used for direct replies inside an
// interactive conversation window.
func (c *ChatClient) SendText(ctx context.Context, to, body string) (string, error) {
	return c.post(ctx, "/v1/messages", textRequest{From: c.sender, To: to, Body: body})
}

// SendTemplate delivers a pre-approved template with positional variables,
// required outside the conversation window.
func (c *ChatClient) SendTemplate(ctx context.Context, to, templateID string, variables []string) (string, error) {
	return c.post(ctx, "/v1/templates", templateRequest{
		From:       c.sender,
		To:         to,
		TemplateID: templateID,
		Variables:  variables,
	})
}

func (c *ChatClient) post(ctx context.Context, path string, payload any) (string, error) {
	if c.accountID == "" || c.authToken == "" {
		return "", ErrNotConfigured
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.accountID, c.authToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var sr sendResponse
		if json.Unmarshal(body, &sr) == nil && sr.Error != "" {
			return "", fmt.Errorf("gateway rejected send: %s", sr.Error)
		}
		return "", fmt.Errorf("unexpected status code: %d body=%q", resp.StatusCode, string(body))
	}

	var sr sendResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("failed to decode json: %w body=%q", err, string(body))
	}
	if sr.MessageID == "" {
		return "", fmt.Errorf("missing message_id in response body=%q", string(body))
	}

	return sr.MessageID, nil
}
