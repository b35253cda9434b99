package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/pkg/llm"
	"sushi-ordering-be/pkg/rag"
	"sushi-ordering-be/pkg/rag/tools"
)

// scriptedProvider returns pre-baked turns in order, then repeats the last
// one. It records every history it was called with.
type scriptedProvider struct {
	turns     []*llm.Turn
	chatReply string
	err       error
	calls     int
	chatCalls int
	histories [][]llm.Message
}

func (p *scriptedProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.chatCalls++
	if p.err != nil {
		return "", p.err
	}
	return p.chatReply, nil
}

func (p *scriptedProvider) ChatWithTools(_ context.Context, history []llm.Message, _ []llm.ToolDef, _ ...llm.Option) (*llm.Turn, error) {
	p.histories = append(p.histories, history)
	if p.err != nil {
		return nil, p.err
	}
	idx := p.calls
	if idx >= len(p.turns) {
		idx = len(p.turns) - 1
	}
	p.calls++
	return p.turns[idx], nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (p *scriptedProvider) Ping(context.Context) error {
	return p.err
}

type stubSearcher struct {
	results []rag.RetrievalResult
}

func (s *stubSearcher) Search(context.Context, string, int) ([]rag.RetrievalResult, error) {
	return s.results, nil
}

type stubLister struct{}

func (stubLister) Categories(context.Context) ([]string, error) {
	return []string{"nigiri"}, nil
}

func newTestAgent(provider llm.LLMProvider, maxRounds int) *Agent {
	registry := tools.NewRegistry(&stubSearcher{results: []rag.RetrievalResult{
		{Id: "1", Name: "Salmon Nigiri", Price: 6.5, Similarity: 0.9},
	}}, stubLister{})
	return New(provider, registry, maxRounds, logger.NewNopLogger())
}

func TestChatDirectAnswer(t *testing.T) {
	provider := &scriptedProvider{turns: []*llm.Turn{
		{Content: "Hello! Ask me about our menu."},
	}}
	agent := newTestAgent(provider, 5)

	result, err := agent.Chat(context.Background(), nil, "hi")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Response != "Hello! Ask me about our menu." {
		t.Errorf("Response = %q", result.Response)
	}
	if len(result.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %d, want 0", len(result.ToolsUsed))
	}
	if result.Truncated {
		t.Error("Truncated = true, want false")
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestChatSingleToolRound(t *testing.T) {
	provider := &scriptedProvider{turns: []*llm.Turn{
		{ToolCalls: []llm.ToolCall{{Name: "search_menu", Arguments: map[string]any{"query": "salmon"}}}},
		{Content: "We have Salmon Nigiri for $6.50."},
	}}
	agent := newTestAgent(provider, 5)

	result, err := agent.Chat(context.Background(), nil, "do you have salmon?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Response != "We have Salmon Nigiri for $6.50." {
		t.Errorf("Response = %q", result.Response)
	}
	if len(result.ToolsUsed) != 1 {
		t.Fatalf("ToolsUsed = %d, want 1", len(result.ToolsUsed))
	}
	if result.ToolsUsed[0].Tool != "search_menu" {
		t.Errorf("Tool = %q, want search_menu", result.ToolsUsed[0].Tool)
	}
	if result.ToolsUsed[0].Err != "" {
		t.Errorf("Err = %q, want empty", result.ToolsUsed[0].Err)
	}

	// Second round history must carry the assistant turn and the tool result.
	second := provider.histories[1]
	last := second[len(second)-1]
	if last.Role != "tool" || last.ToolName != "search_menu" {
		t.Errorf("last message = %+v, want tool result for search_menu", last)
	}
	if !strings.Contains(last.Content, "Salmon Nigiri") {
		t.Errorf("tool payload %q does not contain result", last.Content)
	}
}

func TestChatToolErrorFedBack(t *testing.T) {
	provider := &scriptedProvider{turns: []*llm.Turn{
		{ToolCalls: []llm.ToolCall{{Name: "no_such_tool", Arguments: map[string]any{}}}},
		{Content: "Sorry, I could not look that up."},
	}}
	agent := newTestAgent(provider, 5)

	result, err := agent.Chat(context.Background(), nil, "order a pizza")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if len(result.ToolsUsed) != 1 {
		t.Fatalf("ToolsUsed = %d, want 1", len(result.ToolsUsed))
	}
	if result.ToolsUsed[0].Err == "" {
		t.Error("expected recorded tool error")
	}

	second := provider.histories[1]
	last := second[len(second)-1]
	if !strings.Contains(last.Content, "error") {
		t.Errorf("tool payload %q does not carry the error", last.Content)
	}
}

func TestChatBudgetExhaustion(t *testing.T) {
	// Model keeps asking for tools forever.
	provider := &scriptedProvider{
		turns: []*llm.Turn{
			{ToolCalls: []llm.ToolCall{{Name: "search_menu", Arguments: map[string]any{"query": "more"}}}},
		},
		chatReply: "Here is what I found so far.",
	}
	agent := newTestAgent(provider, 3)

	result, err := agent.Chat(context.Background(), nil, "tell me everything")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !result.Truncated {
		t.Error("Truncated = false, want true")
	}
	if !strings.Contains(result.Response, "Here is what I found so far.") {
		t.Errorf("Response = %q", result.Response)
	}
	if !strings.Contains(result.Response, "lookup limit") {
		t.Errorf("Response %q missing truncation note", result.Response)
	}
	if provider.calls != 3 {
		t.Errorf("tool-calling rounds = %d, want 3", provider.calls)
	}
	if provider.chatCalls != 1 {
		t.Errorf("final chat calls = %d, want 1", provider.chatCalls)
	}
	if len(result.ToolsUsed) != 3 {
		t.Errorf("ToolsUsed = %d, want 3", len(result.ToolsUsed))
	}
}

func TestChatProviderDown(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}
	agent := newTestAgent(provider, 5)

	_, err := agent.Chat(context.Background(), nil, "hi")
	if !errors.Is(err, rag.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestChatHistoryCarried(t *testing.T) {
	provider := &scriptedProvider{turns: []*llm.Turn{{Content: "ok"}}}
	agent := newTestAgent(provider, 5)

	history := []rag.ConversationTurn{
		{Role: rag.RoleUser, Content: "do you have tuna?"},
		{Role: rag.RoleAssistant, Content: "Yes, Tuna Nigiri for $7.00."},
	}
	if _, err := agent.Chat(context.Background(), history, "how spicy is it?"); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	sent := provider.histories[0]
	if len(sent) != 4 {
		t.Fatalf("len(messages) = %d, want 4 (system + 2 history + user)", len(sent))
	}
	if sent[0].Role != rag.RoleSystem {
		t.Errorf("first message role = %q, want system", sent[0].Role)
	}
	if sent[2].Content != "Yes, Tuna Nigiri for $7.00." {
		t.Errorf("history not preserved: %+v", sent[2])
	}
}
