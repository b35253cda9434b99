package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/pkg/llm"
	"sushi-ordering-be/pkg/rag"
	"sushi-ordering-be/pkg/rag/tools"
)

// DefaultMaxRounds bounds the tool-calling loop. One round is a model turn
// plus the execution of every tool it requested in that turn.
const DefaultMaxRounds = 5

// SystemPrompt anchors the model to the restaurant domain. Grounding rules
// live here, not in code: the model is told to rely on tool output only and
// to never claim order or cart side effects, because the assistant has no
// such capability.
const SystemPrompt = `You are the assistant of a sushi restaurant's online ordering site.
You help customers explore the menu and decide what to order.

Rules:
- Answer ONLY from the results of your tools. If the tools return nothing
  relevant, say you don't have that information. Never invent menu items,
  prices, or ingredients.
- You can NOT place orders, modify carts, or take payments. If asked to,
  explain that you can only help with menu questions and the customer
  should use the ordering page.
- When you mention an item, include its price.
- Be concise and friendly.`

// truncationNote is appended when the turn budget runs out before the model
// produced a final answer.
const truncationNote = "\n\n(Note: I hit my lookup limit for this question, so this answer may be incomplete.)"

// Agent runs the bounded tool-calling loop: send history plus tool schemas,
// execute every requested call, feed results back, repeat until the model
// answers in plain text or the round budget is spent.
type Agent struct {
	provider  llm.LLMProvider
	registry  *tools.Registry
	maxRounds int
	logger    logger.ILogger
}

func New(provider llm.LLMProvider, registry *tools.Registry, maxRounds int, log logger.ILogger) *Agent {
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	return &Agent{
		provider:  provider,
		registry:  registry,
		maxRounds: maxRounds,
		logger:    log,
	}
}

// Chat runs one conversational turn. History carries the caller's prior
// turns; the agent holds no state between calls.
func (a *Agent) Chat(ctx context.Context, history []rag.ConversationTurn, message string) (*rag.ChatResult, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: rag.RoleSystem, Content: SystemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: rag.RoleUser, Content: message})

	defs := a.registry.Definitions()
	var used []rag.ToolInvocation

	for round := 0; round < a.maxRounds; round++ {
		turn, err := a.provider.ChatWithTools(ctx, messages, defs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rag.ErrProviderUnavailable, err)
		}

		if !turn.HasToolCalls() {
			return &rag.ChatResult{Response: turn.Content, ToolsUsed: used}, nil
		}

		messages = append(messages, llm.Message{
			Role:      rag.RoleAssistant,
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		})

		for _, call := range turn.ToolCalls {
			payload, invocation := a.execute(ctx, call)
			used = append(used, invocation)
			messages = append(messages, llm.Message{
				Role:     "tool",
				ToolName: call.Name,
				Content:  payload,
			})
		}
	}

	a.logger.Warn("agent", "turn budget exhausted, forcing final answer", map[string]any{
		"rounds":     a.maxRounds,
		"tools_used": len(used),
	})

	// Budget spent with the model still asking for tools. Ask once more
	// without tool schemas so it has to answer from what it already saw.
	final, err := a.provider.Chat(ctx, append(messages, llm.Message{
		Role:    rag.RoleUser,
		Content: "Answer now using only the information gathered above. Do not request more lookups.",
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: no final answer after %d rounds: %v", rag.ErrTurnBudgetExceeded, a.maxRounds, err)
	}
	return &rag.ChatResult{
		Response:  final + truncationNote,
		ToolsUsed: used,
		Truncated: true,
	}, nil
}

// execute runs one tool call and serializes its outcome for the model.
// Failures become a structured error payload rather than aborting the loop;
// the model decides whether to retry differently or apologize.
func (a *Agent) execute(ctx context.Context, call llm.ToolCall) (string, rag.ToolInvocation) {
	invocation := rag.ToolInvocation{Tool: call.Name, Arguments: call.Arguments}

	out, err := a.registry.Execute(ctx, call.Name, call.Arguments)
	if err != nil {
		a.logger.Warn("agent", "tool call failed", map[string]any{
			"tool":  call.Name,
			"error": err.Error(),
		})
		invocation.Err = err.Error()
		payload, _ := json.Marshal(map[string]any{"error": err.Error()})
		return string(payload), invocation
	}

	invocation.Output = out
	payload, marshalErr := json.Marshal(out)
	if marshalErr != nil {
		payload, _ = json.Marshal(map[string]any{"error": "tool produced unserializable output"})
	}
	return string(payload), invocation
}
