// Package deepseek implements llm.Client against the DeepSeek chat
// completions API.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resumelens-backend/internal/llm"
	"resumelens-backend/internal/shared/apperror"
)

const defaultAPIURL = "https://api.deepseek.com/v1/chat/completions"

// Client implements llm.Client using DeepSeek Chat Completions.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a DeepSeek client. timeout bounds the full
// request/response exchange.
func NewClient(apiKey, apiURL, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("DEEPSEEK_MODEL is required")
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultAPIURL
	}
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// AnalyzeResume sends a scoring request and returns the raw assistant
// content. Callers parse it; clean JSON is not guaranteed here.
func (c *Client) AnalyzeResume(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildUserPrompt(input.ResumeText, input.JobTitle, input.JobDescription)},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", apperror.UpstreamTimeout("inference request exceeded its time limit", err)
		}
		return "", apperror.Upstream("inference request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Upstream("failed to read inference response", err)
	}

	if resp.StatusCode == http.StatusGatewayTimeout {
		return "", apperror.UpstreamTimeout("inference service timed out", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 200)))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusPaymentRequired || strings.Contains(strings.ToLower(string(body)), "insufficient balance") {
			return "", apperror.Upstream("inference account has insufficient balance", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 200)))
		}
		return "", apperror.Upstream(fmt.Sprintf("inference service returned status %d", resp.StatusCode), fmt.Errorf("%s", truncate(body, 200)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperror.Upstream("inference response is not valid JSON", err)
	}
	if parsed.Error != nil {
		return "", apperror.Upstream(fmt.Sprintf("inference error: %s (%s)", parsed.Error.Message, parsed.Error.Type), nil)
	}
	if len(parsed.Choices) == 0 {
		return "", apperror.Upstream("inference response missing choices", nil)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", apperror.Upstream("inference response empty content", nil)
	}
	return content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

var _ llm.Client = (*Client)(nil)
