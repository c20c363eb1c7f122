package service

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

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Choice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`
}

type CompletionResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// Completer sends one request to a completion service.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// OpenAICompleter talks to a chat completions deployment that authenticates
// with an api-key header.
type OpenAICompleter struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewOpenAICompleter(endpoint, apiKey string, timeout time.Duration) *OpenAICompleter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAICompleter{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, completionReq CompletionRequest) (CompletionResponse, error) {
	jsonData, err := json.Marshal(completionReq)
	if err != nil {
		return CompletionResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return CompletionResponse{}, &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CompletionResponse{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return CompletionResponse{}, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", bytes.TrimSpace(body)),
		}
	}

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return CompletionResponse{}, &ResponseFormatError{Err: fmt.Errorf("decode completion body: %w", err)}
	}
	return completion, nil
}

// firstChoiceContent is the only part of a completion the engine consumes.
func firstChoiceContent(resp CompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", &ResponseFormatError{Err: errors.New("no choices in completion")}
	}
	return resp.Choices[0].Message.Content, nil
}
