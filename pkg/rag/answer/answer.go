package answer

import (
	"context"
	"fmt"
	"strings"

	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/pkg/llm"
	"sushi-ordering-be/pkg/rag"
)

// topK is how many documents ground a single-shot answer.
const topK = 5

// NoInformation is the fixed reply when retrieval finds nothing. It is
// returned without calling the model: with no context there is nothing to
// generate from, and a free-running model would hallucinate a menu.
const NoInformation = "I don't have that information in the menu. Could you rephrase, or ask about a specific dish?"

const groundedPrompt = `You are the assistant of a sushi restaurant's online ordering site.
Answer the customer's question using ONLY the menu context below. If the
context does not contain the answer, say you don't have that information.
Never invent menu items, prices, or ingredients. When you mention an item,
include its price.`

// Searcher is the retrieval dependency of the single-shot answer path.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]rag.RetrievalResult, error)
}

// Answerer is the non-agentic Q&A path: retrieve once, stuff the matches
// into a single prompt, generate once. Cheaper and more predictable than the
// tool-calling agent, at the cost of multi-step reasoning.
type Answerer struct {
	searcher Searcher
	provider llm.LLMProvider
	logger   logger.ILogger
}

func New(searcher Searcher, provider llm.LLMProvider, log logger.ILogger) *Answerer {
	return &Answerer{searcher: searcher, provider: provider, logger: log}
}

// Ask answers one standalone question grounded in the top retrieved menu
// items. Sources lists every item that went into the prompt, whether or not
// the model used it.
func (a *Answerer) Ask(ctx context.Context, question string) (*rag.Answer, error) {
	results, err := a.searcher.Search(ctx, question, topK)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &rag.Answer{Text: NoInformation, Sources: []rag.Source{}}, nil
	}

	var menuContext strings.Builder
	sources := make([]rag.Source, 0, len(results))
	for i, r := range results {
		fmt.Fprintf(&menuContext, "[%d] %s\n", i+1, r.Document)
		sources = append(sources, rag.Source{
			Id:         r.Id,
			Name:       r.Name,
			Price:      r.Price,
			Similarity: r.Similarity,
		})
	}

	messages := []llm.Message{
		{Role: rag.RoleSystem, Content: groundedPrompt},
		{Role: rag.RoleUser, Content: fmt.Sprintf("Menu context:\n%s\nQuestion: %s", menuContext.String(), question)},
	}

	text, err := a.provider.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrProviderUnavailable, err)
	}

	a.logger.Debug("answer", "grounded answer produced", map[string]any{
		"sources": len(sources),
	})
	return &rag.Answer{Text: text, Sources: sources}, nil
}
