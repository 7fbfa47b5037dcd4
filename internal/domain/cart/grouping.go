// internal/domain/cart/grouping.go
package cart

import (
	"strings"

	"atelier/internal/domain/catalog"
)

// BackendLine is one raw line record from the cart-listing collaborator.
// The server may return several records for the same variant (e.g. the same
// item added across sessions); grouping happens locally.
type BackendLine struct {
	VariantID   string `json:"variantId"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
	UnitPrice   *int64 `json:"unitPrice,omitempty"`
	Quantity    int    `json:"quantity"`
	ProductName string `json:"productName,omitempty"`
	ProductID   string `json:"productId,omitempty"`
	Image       string `json:"image,omitempty"`
}

// GroupKey identifies a reconciled line.
//
// Unit price is part of the identity: the same variant bought at two price
// points (e.g. before/after a discount) must stay two lines, not silently
// merge. A struct key avoids the separator collisions a concatenated string
// key would have.
type GroupKey struct {
	VariantID string
	Color     string
	Size      string
	UnitPrice int64
}

// GroupBackendLines folds raw server records into display lines.
//
// Rules:
// - records sharing a GroupKey have quantities summed
// - the first occurrence's display metadata (name, image) wins
// - output order is first-seen order
// - nil unit price is normalized to 0
func GroupBackendLines(raw []BackendLine) []Line {
	grouped := map[GroupKey]int{} // key -> index into out
	out := make([]Line, 0, len(raw))

	for _, r := range raw {
		vid := strings.TrimSpace(r.VariantID)
		if vid == "" {
			continue
		}
		qty := r.Quantity
		if qty <= 0 {
			continue
		}

		var price int64
		if r.UnitPrice != nil {
			price = *r.UnitPrice
		}
		if price < 0 {
			price = 0
		}

		key := GroupKey{
			VariantID: vid,
			Color:     strings.TrimSpace(r.Color),
			Size:      strings.TrimSpace(r.Size),
			UnitPrice: price,
		}

		if idx, ok := grouped[key]; ok {
			out[idx].Quantity += qty
			continue
		}

		pid := strings.TrimSpace(r.ProductID)
		if pid == "" {
			// older list responses carry only the variant id
			pid = vid
		}

		grouped[key] = len(out)
		out = append(out, Line{
			Product: catalog.ProductSnapshot{
				ID:    pid,
				Name:  strings.TrimSpace(r.ProductName),
				Price: price,
				Image: strings.TrimSpace(r.Image),
			},
			Quantity:      qty,
			SelectedColor: key.Color,
			SelectedSize:  key.Size,
		})
	}

	return out
}
