package rag

// Chat roles used across the assistant. The caller supplies history with
// these roles; anything else is rejected at the DTO layer.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationTurn is one prior turn of the conversation. The backend never
// stores turns between calls; history lifecycle is owned by the caller.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RetrievalResult is one scored match from the vector index. Ephemeral,
// produced per query. Similarity is 1 - cosine distance, clamped to [0,1].
type RetrievalResult struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category,omitempty"`
	Dietary     []string `json:"dietary,omitempty"`
	SpiceLevel  int      `json:"spice_level"`
	Document    string   `json:"document,omitempty"`
	Similarity  float64  `json:"similarity"`
}

// ToolInvocation is the audit record of one tool call made during a chat
// turn. Output is whatever the tool returned (JSON-serializable); Err is set
// instead of Output when the call failed and the error was fed back to the
// model.
type ToolInvocation struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
	Output    any            `json:"output,omitempty"`
	Err       string         `json:"error,omitempty"`
}

// ChatResult is the outcome of one orchestrated chat turn.
type ChatResult struct {
	Response  string           `json:"response"`
	ToolsUsed []ToolInvocation `json:"tools_used"`
	Truncated bool             `json:"truncated,omitempty"`
}

// Source identifies a menu item that grounded an answer.
type Source struct {
	Id         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Similarity float64 `json:"similarity"`
}

// Answer is the result of the single-shot grounded Q&A path.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}
