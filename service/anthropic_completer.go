package service

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAnthropicModel = "claude-sonnet-4-20250514"

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicCompleter serves completion requests from the Anthropic messages
// API and reshapes the reply into a single choice.
type AnthropicCompleter struct {
	messages AnthropicMessager
	model    string
}

func NewAnthropicCompleter(apiKey, model string) *AnthropicCompleter {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewAnthropicCompleterWithMessager(&c.Messages, model)
}

func NewAnthropicCompleterWithMessager(messages AnthropicMessager, model string) *AnthropicCompleter {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicCompleter{messages: messages, model: model}
}

func (a *AnthropicCompleter) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if len(req.Messages) == 0 {
		return CompletionResponse{}, errors.New("completion request has no messages")
	}

	// The messages API expects the conversation to open with a user turn,
	// so the prompt messages are sent as one user message.
	contents := make([]string, 0, len(req.Messages))
	for _, m := range req.Messages {
		contents = append(contents, m.Content)
	}
	prompt := strings.Join(contents, "\n\n")

	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   int64(req.MaxTokens),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(req.Temperature),
	})
	if err != nil {
		return CompletionResponse{}, &TransportError{Err: err}
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return CompletionResponse{
		ID: resp.ID,
		Choices: []Choice{{
			Index:   0,
			Message: Message{Role: "assistant", Content: sb.String()},
		}},
	}, nil
}
