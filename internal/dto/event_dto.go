package dto

// MenuUpdatedMessage is the payload of the menu-updated topic. The consumer
// always rebuilds from the catalog, so the payload only carries provenance.
type MenuUpdatedMessage struct {
	Reason string `json:"reason"` // "menu_replaced" | "startup_seed"
}
