// Package line delivers the digest via the LINE Messaging API.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const pushAPIURL = "https://api.line.me/v2/bot/message/push"

// Client sends push messages to a single LINE recipient.
type Client struct {
	channelToken string
	userID       string
	endpoint     string
	client       *http.Client
}

// NewClient creates a Client for the given channel token and recipient
// user ID with a 30-second timeout HTTP client.
func NewClient(channelToken, userID string) *Client {
	return &Client{
		channelToken: channelToken,
		userID:       userID,
		endpoint:     pushAPIURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// pushRequest is the request body for the LINE push-message endpoint.
type pushRequest struct {
	To       string        `json:"to"`
	Messages []pushMessage `json:"messages"`
}

// pushMessage is a single message in the LINE push request.
type pushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Push sends one text message to the configured recipient. Missing
// credentials short-circuit to an error without attempting the call.
// A non-2xx status or transport failure is an error; there is no retry.
func (c *Client) Push(ctx context.Context, text string) error {
	if c.channelToken == "" || c.userID == "" {
		slog.Warn("LINE credentials missing, not sending message")
		return errors.New("line: channel token or user ID is not set")
	}

	body, err := json.Marshal(pushRequest{
		To: c.userID,
		Messages: []pushMessage{
			{Type: "text", Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.channelToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push rejected (status %d): %s", resp.StatusCode, respBody)
	}

	slog.Info("sent LINE message", "chars", len([]rune(text)))
	return nil
}
