package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sushi-ordering-be/internal/dto"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/contract"
	"sushi-ordering-be/pkg/embedding"
	"sushi-ordering-be/pkg/llm"
	"sushi-ordering-be/pkg/rag"
	"sushi-ordering-be/pkg/rag/agent"
	"sushi-ordering-be/pkg/rag/answer"
	"sushi-ordering-be/pkg/rag/retriever"
)

// UnavailableReply is what the assistant says when the model backend is
// down. Conversational endpoints degrade to this instead of a raw 5xx so
// the storefront widget keeps rendering a chat bubble.
const UnavailableReply = "Sorry, I'm having trouble answering right now. Please try again in a moment, or browse the menu directly."

const defaultSearchK = 5

type IAssistantService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	Search(ctx context.Context, query string, k int, minSimilarity float64) (*dto.SearchResponse, error)
	Status(ctx context.Context) (*dto.StatusResponse, error)
}

type assistantService struct {
	agent                 *agent.Agent
	answerer              *answer.Answerer
	retriever             *retriever.Retriever
	menuRepo              contract.MenuRepository
	embedProvider         embedding.EmbeddingProvider
	llmProvider           llm.LLMProvider
	embeddingProviderName string
	llmModel              string
	logger                logger.ILogger
}

func NewAssistantService(
	ag *agent.Agent,
	answerer *answer.Answerer,
	ret *retriever.Retriever,
	menuRepo contract.MenuRepository,
	embedProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	embeddingProviderName string,
	llmModel string,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		agent:                 ag,
		answerer:              answerer,
		retriever:             ret,
		menuRepo:              menuRepo,
		embedProvider:         embedProvider,
		llmProvider:           llmProvider,
		embeddingProviderName: embeddingProviderName,
		llmModel:              llmModel,
		logger:                log,
	}
}

// Chat runs the tool-calling conversation turn. Provider outages degrade to
// a canned apology rather than an error response.
func (s *assistantService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if err := validateHistory(req.History); err != nil {
		return nil, err
	}

	result, err := s.agent.Chat(ctx, req.History, req.Message)
	if err != nil {
		if errors.Is(err, rag.ErrProviderUnavailable) {
			s.logger.Error("assistant", "chat degraded, provider unavailable", map[string]any{
				"error": err.Error(),
			})
			return &dto.ChatResponse{Response: UnavailableReply, ToolsUsed: []rag.ToolInvocation{}}, nil
		}
		return nil, err
	}

	toolsUsed := result.ToolsUsed
	if toolsUsed == nil {
		toolsUsed = []rag.ToolInvocation{}
	}
	return &dto.ChatResponse{
		Response:  result.Response,
		ToolsUsed: toolsUsed,
		Truncated: result.Truncated,
	}, nil
}

// Ask is the single-shot grounded Q&A path.
func (s *assistantService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	result, err := s.answerer.Ask(ctx, req.Question)
	if err != nil {
		if errors.Is(err, rag.ErrProviderUnavailable) {
			s.logger.Error("assistant", "ask degraded, provider unavailable", map[string]any{
				"error": err.Error(),
			})
			return &dto.AskResponse{Answer: UnavailableReply, Sources: []rag.Source{}}, nil
		}
		return nil, err
	}
	return &dto.AskResponse{Answer: result.Text, Sources: result.Sources}, nil
}

// Search exposes raw retrieval for debugging and for the storefront's
// search-as-you-type box. minSimilarity trims low-scoring tail results;
// zero keeps everything the retriever returns.
func (s *assistantService) Search(ctx context.Context, query string, k int, minSimilarity float64) (*dto.SearchResponse, error) {
	if k < 1 {
		k = defaultSearchK
	}
	results, err := s.retriever.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}

	if minSimilarity > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Similarity >= minSimilarity {
				kept = append(kept, r)
			}
		}
		results = kept
	}
	return &dto.SearchResponse{Query: query, Results: results}, nil
}

// Status reports operability per operation so callers can pick between chat
// and ask when one backend is down. Provider probes hit cheap version or
// metadata endpoints, never a model call. "empty" means everything is up
// but nothing is indexed yet.
func (s *assistantService) Status(ctx context.Context) (*dto.StatusResponse, error) {
	embedOK := true
	if err := s.embedProvider.Ping(ctx); err != nil {
		s.logger.Warn("assistant", "embedding provider unreachable", map[string]any{
			"error": err.Error(),
		})
		embedOK = false
	}

	llmOK := true
	if err := s.llmProvider.Ping(ctx); err != nil {
		s.logger.Warn("assistant", "llm provider unreachable", map[string]any{
			"error": err.Error(),
		})
		llmOK = false
	}

	indexOK := true
	indexed, err := s.retriever.Count(ctx)
	if err != nil {
		s.logger.Warn("assistant", "index count failed", map[string]any{
			"error": err.Error(),
		})
		indexOK = false
	}

	catalogOK := true
	menuCount, err := s.menuRepo.Count(ctx)
	if err != nil {
		catalogOK = false
	}

	res := &dto.StatusResponse{
		Operations: dto.OperationFlags{
			// Chat survives tool failures: tool errors are fed back to the
			// model, so only the LLM itself is a hard dependency.
			Chat:   llmOK,
			Ask:    llmOK && embedOK && indexOK,
			Search: embedOK && indexOK,
			Index:  embedOK && indexOK && catalogOK,
		},
		IndexedItems:      indexed,
		MenuItems:         menuCount,
		EmbeddingProvider: s.embeddingProviderName,
		LLMModel:          s.llmModel,
	}

	switch {
	case !llmOK || !embedOK || !indexOK || !catalogOK:
		res.Status = "degraded"
	case indexed == 0:
		res.Status = "empty"
	default:
		res.Status = "ok"
	}
	return res, nil
}

func validateHistory(history []rag.ConversationTurn) error {
	for _, turn := range history {
		switch turn.Role {
		case rag.RoleUser, rag.RoleAssistant:
		default:
			return fmt.Errorf("%w: history roles must be 'user' or 'assistant', got %q", rag.ErrInvalidQuery, strings.TrimSpace(turn.Role))
		}
	}
	return nil
}
