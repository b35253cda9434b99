package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system", "tool"
	Content string

	// ToolCalls is set on assistant messages that request tool invocations.
	ToolCalls []ToolCall
	// ToolName is set on "tool" role messages carrying a tool result.
	ToolName string
}

// ToolCall is a structured function-call request produced by the model.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// ToolDef declares a callable tool to the model. Parameters is a JSON-schema
// object ({"type":"object","properties":{...},"required":[...]}); the
// description text is the only signal steering tool selection, so its wording
// is part of the contract.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Turn is one model turn: either final text content, or one-or-more tool
// call requests (a list, since some models request several at once).
type Turn struct {
	Content   string
	ToolCalls []ToolCall
}

// HasToolCalls reports whether the model requested tool invocations.
func (t *Turn) HasToolCalls() bool {
	return len(t.ToolCalls) > 0
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response text
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatWithTools sends a chat history plus tool declarations and returns
	// the model's turn, which is either final content or tool-call requests
	ChatWithTools(ctx context.Context, history []Message, tools []ToolDef, options ...Option) (*Turn, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// Ping is a cheap reachability probe that does not consume a completion
	Ping(ctx context.Context) error
}
