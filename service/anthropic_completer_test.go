package service

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessager struct {
	params anthropic.MessageNewParams
	resp   *anthropic.Message
	err    error
}

func (f *fakeMessager) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	f.params = params
	return f.resp, f.err
}

func TestAnthropicCompleter_Complete(t *testing.T) {
	messager := &fakeMessager{resp: &anthropic.Message{
		ID: "msg_1",
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: `{"status":"Denied",`},
			{Type: "text", Text: `"reason":"ratio"}`},
		},
	}}
	completer := NewAnthropicCompleterWithMessager(messager, "")

	resp, err := completer.Complete(context.Background(), CompletionRequest{
		Messages:    []Message{{Role: PromptRole, Content: "prompt"}},
		MaxTokens:   500,
		Temperature: 0.1,
	})
	require.NoError(t, err)

	assert.Equal(t, anthropic.Model(DefaultAnthropicModel), messager.params.Model)
	assert.Equal(t, int64(500), messager.params.MaxTokens)
	require.Len(t, messager.params.Messages, 1)
	assert.Equal(t, anthropic.MessageParamRoleUser, messager.params.Messages[0].Role)

	assert.Equal(t, "msg_1", resp.ID)
	content, err := firstChoiceContent(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"Denied","reason":"ratio"}`, content)
}

func TestAnthropicCompleter_TransportFailure(t *testing.T) {
	completer := NewAnthropicCompleterWithMessager(&fakeMessager{err: errors.New("529 overloaded")}, "claude-test")

	_, err := completer.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: PromptRole, Content: "prompt"}},
	})

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestAnthropicCompleter_NoMessages(t *testing.T) {
	_, err := NewAnthropicCompleterWithMessager(&fakeMessager{}, "").Complete(context.Background(), CompletionRequest{})
	assert.Error(t, err)
}
