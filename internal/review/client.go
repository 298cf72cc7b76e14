// Package review is a thin client for an external chat-completion
// endpoint used as an optional second opinion on a translation (spec
// §6). Like internal/sandbox, it is host-layer only.
package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rhino1998/polyglot/pkg/token"
)

// ReviewResult is the collaborator's verdict on one translated
// snippet. On parse failure, Client.Review falls back to the original
// translated text with no issues rather than erroring the whole run.
type ReviewResult struct {
	Translated string   `json:"corrected_code"`
	Issues     []string `json:"issues"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client wraps a configured chat-completion endpoint.
type Client struct {
	logger            *slog.Logger
	httpClient        *http.Client
	endpoint          string
	model             string
	apiKey            string
	interRequestDelay time.Duration
}

func New(logger *slog.Logger, httpClient *http.Client, endpoint, model, apiKey string) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		logger:            logger,
		httpClient:        httpClient,
		endpoint:          endpoint,
		model:             model,
		apiKey:            apiKey,
		interRequestDelay: 250 * time.Millisecond,
	}
}

// Review asks the collaborator to critique translated against source,
// sleeping a small delay first to respect rate limits (spec §6).
func (c *Client) Review(ctx context.Context, source, translated string, srcLang, dstLang token.Language) (ReviewResult, error) {
	time.Sleep(c.interRequestDelay)

	prompt := fmt.Sprintf(
		"Source (%s):\n%s\n\nTranslated (%s):\n%s\n\nReply with JSON {\"corrected_code\": string, \"issues\": [string]}.",
		srcLang, source, dstLang, translated,
	)
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return ReviewResult{}, fmt.Errorf("review: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return ReviewResult{}, fmt.Errorf("review: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("review request failed", "error", err)
		return ReviewResult{Translated: translated}, fmt.Errorf("review: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ReviewResult{Translated: translated}, fmt.Errorf("review: unexpected status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil || len(chat.Choices) == 0 {
		return ReviewResult{Translated: translated}, fmt.Errorf("review: decode response: %w", err)
	}

	raw := extractJSON(chat.Choices[0].Message.Content)
	if raw == "" {
		c.logger.Debug("review: no JSON payload found in response, falling back")
		return ReviewResult{Translated: translated}, nil
	}

	var result ReviewResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.logger.Debug("review: malformed JSON payload, falling back", "error", err)
		return ReviewResult{Translated: translated}, nil
	}
	if result.Translated == "" {
		result.Translated = translated
	}
	return result, nil
}
