package tools

import (
	"context"
	"fmt"
	"math"

	"sushi-ordering-be/pkg/llm"
	"sushi-ordering-be/pkg/rag"
)

// Fixed access patterns of the tool layer. The candidate pool for the price
// filter is deliberately capped at 20: catalogs larger than the pool yield
// incomplete results by construction. Changing the pool size changes
// observable behavior and is a product decision, not a patch.
const (
	searchMenuTopK      = 5
	priceFilterPoolSize = 20
	priceFilterPoolSeed = "menu items"

	listCategoriesDefaultLimit = 20
	listCategoriesMaxLimit     = 100
)

// Searcher is the retrieval dependency of the semantic tools.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]rag.RetrievalResult, error)
}

// CategoryLister lists the distinct categories of the catalog, for the
// coverage tool.
type CategoryLister interface {
	Categories(ctx context.Context) ([]string, error)
}

// Item is the JSON-serializable payload tools return to the model.
type Item struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category,omitempty"`
	Dietary     []string `json:"dietary,omitempty"`
	SpiceLevel  int      `json:"spice_level"`
	Similarity  float64  `json:"similarity"`
}

// NotFound is the explicit miss payload of get_item_details. The tool never
// fabricates an item when the index has nothing close.
type NotFound struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

func toItem(r rag.RetrievalResult) Item {
	return Item{
		Id:          r.Id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Dietary:     r.Dietary,
		SpiceLevel:  r.SpiceLevel,
		Similarity:  r.Similarity,
	}
}

func toItems(results []rag.RetrievalResult) []Item {
	items := make([]Item, len(results))
	for i, r := range results {
		items[i] = toItem(r)
	}
	return items
}

// searchMenu is pure semantic lookup over the knowledge base.
func searchMenu(searcher Searcher) *Tool {
	return &Tool{
		Def: llm.ToolDef{
			Name: "search_menu",
			Description: "Search the menu by meaning (dish names, ingredients, flavors, dietary needs). " +
				"Returns the 5 closest menu items with name, description, price, category, dietary tags and spice level. " +
				"Use this for any question about what is on the menu.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "What to look for, e.g. 'spicy tuna', 'vegetarian rolls'",
					},
				},
				"required": []string{"query"},
			},
		},
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			results, err := searcher.Search(ctx, query, searchMenuTopK)
			if err != nil {
				return nil, err
			}
			return toItems(results), nil
		},
	}
}

// filterByPrice filters a broad semantic candidate pool by a numeric
// predicate: min is inclusive, max is exclusive. "under $10" excludes an
// item priced exactly $10; "at least $15" includes one priced exactly $15.
func filterByPrice(searcher Searcher) *Tool {
	return &Tool{
		Def: llm.ToolDef{
			Name: "filter_by_price",
			Description: "Filter menu items by price. min_price is INCLUSIVE (price >= min_price), " +
				"max_price is EXCLUSIVE (price < max_price), so 'under $10' means max_price=10 and " +
				"an item priced exactly $10 is excluded. Checks the top 20 menu items only.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"min_price": map[string]any{
						"type":        "number",
						"description": "Lowest price to include, inclusive. Omit for no lower bound.",
					},
					"max_price": map[string]any{
						"type":        "number",
						"description": "Price ceiling, exclusive. Omit for no upper bound.",
					},
				},
			},
		},
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			min := 0.0
			max := math.Inf(1)
			if v, ok := args["min_price"].(float64); ok {
				min = v
			}
			if v, ok := args["max_price"].(float64); ok {
				max = v
			}

			pool, err := searcher.Search(ctx, priceFilterPoolSeed, priceFilterPoolSize)
			if err != nil {
				return nil, err
			}

			filtered := make([]Item, 0, len(pool))
			for _, r := range pool {
				if min <= r.Price && r.Price < max {
					filtered = append(filtered, toItem(r))
				}
			}
			return filtered, nil
		},
	}
}

// CategoryList is the payload of list_categories. Total counts every
// distinct category even when the limit cuts the returned slice short.
type CategoryList struct {
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
}

// listCategories reports what the menu covers, so the model can orient
// itself before searching.
func listCategories(lister CategoryLister) *Tool {
	return &Tool{
		Def: llm.ToolDef{
			Name: "list_categories",
			Description: "List the distinct categories of the menu (e.g. nigiri, maki, soup). " +
				"Useful to learn what the menu covers before searching for specific items.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of categories to return (1-100, default 20).",
					},
				},
			},
		},
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			limit := listCategoriesDefaultLimit
			if v, ok := args["limit"].(float64); ok && v >= 1 {
				limit = int(v)
			}
			if limit > listCategoriesMaxLimit {
				limit = listCategoriesMaxLimit
			}

			categories, err := lister.Categories(ctx)
			if err != nil {
				return nil, err
			}

			total := len(categories)
			if len(categories) > limit {
				categories = categories[:limit]
			}
			return CategoryList{Total: total, Categories: categories}, nil
		},
	}
}

// getItemDetails returns the single nearest match for an item name, or an
// explicit not-found payload.
func getItemDetails(searcher Searcher) *Tool {
	return &Tool{
		Def: llm.ToolDef{
			Name: "get_item_details",
			Description: "Look up one menu item by name and return its full details " +
				"(description, price, ingredients, dietary tags, spice level). " +
				"Reports not-found when nothing on the menu matches.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"item_name": map[string]any{
						"type":        "string",
						"description": "The name of the menu item, e.g. 'Dragon Roll'",
					},
				},
				"required": []string{"item_name"},
			},
		},
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			name, _ := args["item_name"].(string)
			results, err := searcher.Search(ctx, name, 1)
			if err != nil {
				return nil, err
			}
			if len(results) == 0 {
				return NotFound{
					Found:   false,
					Message: fmt.Sprintf("no menu item matching %q", name),
				}, nil
			}
			return toItem(results[0]), nil
		},
	}
}
