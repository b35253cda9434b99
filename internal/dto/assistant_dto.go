package dto

import "sushi-ordering-be/pkg/rag"

type ChatRequest struct {
	Message string                 `json:"message" validate:"required,max=2000"`
	History []rag.ConversationTurn `json:"history" validate:"omitempty,dive"`
}

type ChatResponse struct {
	Response  string               `json:"response"`
	ToolsUsed []rag.ToolInvocation `json:"tools_used"`
	Truncated bool                 `json:"truncated,omitempty"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type AskResponse struct {
	Answer  string       `json:"answer"`
	Sources []rag.Source `json:"sources"`
}

type SearchResponse struct {
	Query   string                `json:"query"`
	Results []rag.RetrievalResult `json:"results"`
}

// OperationFlags reports which assistant operations are currently usable,
// so a caller can fall back from chat to ask (or to plain search) when one
// backend is down.
type OperationFlags struct {
	Chat   bool `json:"chat"`
	Ask    bool `json:"ask"`
	Search bool `json:"search"`
	Index  bool `json:"index"`
}

type StatusResponse struct {
	Status            string         `json:"status"` // "ok" | "empty" | "degraded"
	Operations        OperationFlags `json:"operations"`
	IndexedItems      int64          `json:"indexed_items"`
	MenuItems         int64          `json:"menu_items"`
	EmbeddingProvider string         `json:"embedding_provider"`
	LLMModel          string         `json:"llm_model"`
}
