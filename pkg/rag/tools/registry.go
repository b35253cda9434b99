package tools

import (
	"context"
	"fmt"

	"sushi-ordering-be/pkg/llm"
	"sushi-ordering-be/pkg/rag"
)

// Handler executes a tool against already validated arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Tool pairs a model-facing definition with its executor.
type Tool struct {
	Def     llm.ToolDef
	handler Handler
}

// Registry holds the assistant's tools and dispatches model tool calls to
// them. Execution failures are reported, never swallowed: the caller decides
// whether to surface them to the model or to the user.
type Registry struct {
	tools map[string]*Tool
	order []string
}

// NewRegistry wires the standard menu tools against their data sources.
func NewRegistry(searcher Searcher, lister CategoryLister) *Registry {
	r := &Registry{tools: make(map[string]*Tool)}
	r.register(searchMenu(searcher))
	r.register(filterByPrice(searcher))
	r.register(getItemDetails(searcher))
	r.register(listCategories(lister))
	return r
}

func (r *Registry) register(t *Tool) {
	r.tools[t.Def.Name] = t
	r.order = append(r.order, t.Def.Name)
}

// Definitions returns the tool schemas in registration order, ready to be
// sent with a chat request.
func (r *Registry) Definitions() []llm.ToolDef {
	defs := make([]llm.ToolDef, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Def)
	}
	return defs
}

// Execute validates the arguments against the tool's schema and runs it.
// Unknown tools and malformed arguments both come back as ErrToolExecution
// so the agent loop can feed a structured failure to the model instead of
// aborting the conversation.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown tool %q", rag.ErrToolExecution, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := validateArgs(tool.Def, args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rag.ErrToolExecution, name, err)
	}
	out, err := tool.handler(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", rag.ErrToolExecution, name, err)
	}
	return out, nil
}

// validateArgs checks required fields and primitive types against the
// tool's JSON schema. Arguments decoded from JSON carry float64 for every
// number, so integer and number collapse to the same check.
func validateArgs(def llm.ToolDef, args map[string]any) error {
	properties, _ := def.Parameters["properties"].(map[string]any)

	if required, ok := def.Parameters["required"].([]string); ok {
		for _, field := range required {
			if _, present := args[field]; !present {
				return fmt.Errorf("missing required argument %q", field)
			}
		}
	}

	for key, value := range args {
		schema, known := properties[key].(map[string]any)
		if !known {
			return fmt.Errorf("unexpected argument %q", key)
		}
		wantType, _ := schema["type"].(string)
		switch wantType {
		case "string":
			if _, ok := value.(string); !ok {
				return fmt.Errorf("argument %q must be a string", key)
			}
		case "number", "integer":
			if _, ok := value.(float64); !ok {
				return fmt.Errorf("argument %q must be a number", key)
			}
		}
	}
	return nil
}
