package llm

import (
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider Provider
		key      string
		wantName string
		wantErr  bool
	}{
		{name: "anthropic", provider: ProviderAnthropic, key: "sk-ant-test", wantName: "anthropic"},
		{name: "openai", provider: ProviderOpenAI, key: "sk-test", wantName: "openai"},
		{name: "empty provider defaults to anthropic", provider: "", key: "sk-ant-test", wantName: "anthropic"},
		{name: "unknown provider", provider: "mistral", key: "k", wantErr: true},
		{name: "anthropic without key", provider: ProviderAnthropic, wantErr: true},
		{name: "openai without key", provider: ProviderOpenAI, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := NewClient(tt.provider, tt.key)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got client %v", client)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			if client.Name() != tt.wantName {
				t.Fatalf("Name=%q, want %q", client.Name(), tt.wantName)
			}
			if client.DefaultModel() == "" {
				t.Fatalf("DefaultModel is empty")
			}
		})
	}
}

func TestMissingKeyIsSentinel(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenAIClient(""); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err=%v, want ErrMissingAPIKey", err)
	}
	if _, err := NewAnthropicClient(""); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err=%v, want ErrMissingAPIKey", err)
	}
}

func TestAnthropicMessageParams(t *testing.T) {
	t.Parallel()

	c, err := NewAnthropicClient("sk-ant-test")
	if err != nil {
		t.Fatalf("NewAnthropicClient: %v", err)
	}

	params := c.messageParams(&CompletionRequest{
		System:   "be brief",
		Messages: []ChatMessage{{Role: "user", Content: "summarize"}},
	})
	if len(params.System.Value) != 1 || params.System.Value[0].Text.Value != "be brief" {
		t.Fatalf("System=%+v, want one block with the system prompt", params.System.Value)
	}
	if len(params.Messages.Value) != 1 {
		t.Fatalf("Messages=%+v, want the single user turn", params.Messages.Value)
	}
	block, ok := params.Messages.Value[0].Content.Value[0].(anthropic.TextBlockParam)
	if !ok || block.Text.Value != "summarize" {
		t.Fatalf("user turn=%+v, want untouched content", params.Messages.Value[0].Content.Value)
	}
	if params.Model.Value != c.DefaultModel() {
		t.Fatalf("Model=%q, want %q", params.Model.Value, c.DefaultModel())
	}

	bare := c.messageParams(&CompletionRequest{Messages: []ChatMessage{{Role: "user", Content: "hi"}}})
	if bare.System.Present {
		t.Fatalf("System should be unset without a system prompt")
	}
}

func TestOpenAIChatRequest(t *testing.T) {
	t.Parallel()

	c, err := NewOpenAIClient("sk-test")
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}
	req := c.chatRequest(&CompletionRequest{
		System:   "be brief",
		Messages: []ChatMessage{{Role: "user", Content: "summarize"}},
	})

	if req.Model != c.DefaultModel() {
		t.Fatalf("Model=%q, want %q", req.Model, c.DefaultModel())
	}
	if req.MaxTokens != defaultMaxTokens {
		t.Fatalf("MaxTokens=%d, want %d", req.MaxTokens, defaultMaxTokens)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "summarize" {
		t.Fatalf("unexpected messages: %+v", req.Messages)
	}
}
