// Package llm talks to an OpenAI-compatible chat completions endpoint.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sashabaranov/go-openai"

	"deskchat-server/internal/domain/assistant"
	"deskchat-server/internal/utils/apierror"
)

// Client issues non-streaming chat completions over the OpenAI wire format.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

var _ assistant.Completer = (*Client)(nil)

// NewClient wires a resty client with the upstream timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetHeader("User-Agent", "deskchat-server/1.0").
			SetTimeout(timeout).
			SetRetryCount(0),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
	}
}

// CreateChatCompletion posts the request and decodes one completion.
// Upstream API errors keep their status code so the HTTP boundary can
// propagate it.
func (c *Client) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	var respBody openai.ChatCompletionResponse
	var errBody struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(request).
		SetResult(&respBody).
		SetError(&errBody).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		message := strings.TrimSpace(errBody.Error.Message)
		if message == "" {
			message = fmt.Sprintf("chat completion failed with status %d", resp.StatusCode())
		}
		return nil, apierror.New(resp.StatusCode(), message)
	}
	return &respBody, nil
}
