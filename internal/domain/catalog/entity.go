// internal/domain/catalog/entity.go
package catalog

import "strings"

// ProductSnapshot is the catalog fields a line item carries at add-to-cart time.
//
// NOTE:
// - Owned by value: the cart copies this struct, so later catalog edits
//   (price changes, renames) do not retroactively alter existing cart lines.
// - Price / OriginalPrice are minor units (no decimals).
type ProductSnapshot struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	ReviewCount   int      `json:"reviewCount,omitempty"`
	IsNew         bool     `json:"isNew,omitempty"`
	OnSale        bool     `json:"onSale,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
}

// Valid reports whether the snapshot can be placed into a cart.
func (p ProductSnapshot) Valid() bool {
	return strings.TrimSpace(p.ID) != ""
}
