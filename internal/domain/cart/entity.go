// internal/domain/cart/entity.go
package cart

import (
	"strings"

	"atelier/internal/domain/catalog"
)

// Line represents "one line item" in the cart.
// The product snapshot is held by value, so catalog edits after add-to-cart
// do not change the line's price or display fields.
type Line struct {
	Product  catalog.ProductSnapshot `json:"product"`
	Quantity int                     `json:"quantity"`

	// Variant discriminators. Empty string means "no variant selected" and
	// matches only empty, never "any".
	SelectedColor string `json:"selectedColor,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty"`
}

// VariantKey identifies a line on the local mutation path.
// Uniqueness is defined by (productId, color, size).
type VariantKey struct {
	ProductID string
	Color     string
	Size      string
}

// Key returns the line's composite identity.
func (l Line) Key() VariantKey {
	return VariantKey{
		ProductID: l.Product.ID,
		Color:     l.SelectedColor,
		Size:      l.SelectedSize,
	}
}

// Subtotal returns unit price × quantity.
func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Add merges qty into the line matching (product.ID, color, size), or appends
// a new line. qty defaults to 1 when <= 0 is passed by a caller that means
// "one more"; stock ceilings are not this layer's concern.
func Add(lines []Line, p catalog.ProductSnapshot, qty int, color, size string) []Line {
	if !p.Valid() {
		return lines
	}
	if qty <= 0 {
		qty = 1
	}

	color = strings.TrimSpace(color)
	size = strings.TrimSpace(size)

	out := Clone(lines)
	idx := findLineIndex(out, VariantKey{ProductID: p.ID, Color: color, Size: size})
	if idx >= 0 {
		out[idx].Quantity += qty
		return out
	}

	return append(out, Line{
		Product:       p,
		Quantity:      qty,
		SelectedColor: color,
		SelectedSize:  size,
	})
}

// Remove drops every line matching (productID, color, size) exactly.
// A line with an empty color/size only matches an empty discriminator.
func Remove(lines []Line, productID, color, size string) []Line {
	key := VariantKey{
		ProductID: strings.TrimSpace(productID),
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
	}

	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Key() == key {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SetQuantity sets quantity to max(0, qty) and prunes lines left at zero.
//
// Scope:
// - color/size both empty: applies to every line of the product (the coarse
//   "product-wide" form used by the cart screen's remove-all flows).
// - otherwise: applies to the exact (productID, color, size) line only.
func SetQuantity(lines []Line, productID, color, size string, qty int) []Line {
	pid := strings.TrimSpace(productID)
	color = strings.TrimSpace(color)
	size = strings.TrimSpace(size)
	if qty < 0 {
		qty = 0
	}

	productWide := color == "" && size == ""
	key := VariantKey{ProductID: pid, Color: color, Size: size}

	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		match := false
		if productWide {
			match = l.Product.ID == pid
		} else {
			match = l.Key() == key
		}

		if match {
			if qty == 0 {
				continue
			}
			l.Quantity = qty
		}
		out = append(out, l)
	}
	return out
}

// Normalize returns a copy with negative unit prices coerced to 0 and
// non-positive quantities dropped. Used on the authoritative overwrite path.
func Normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if l.Product.Price < 0 {
			l.Product.Price = 0
		}
		out = append(out, l)
	}
	return out
}

// Total returns the sum of line subtotals.
func Total(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Subtotal()
	}
	return sum
}

// ItemCount returns the sum of quantities.
func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Clone returns a shallow line copy (snapshots are values, so this is enough
// for reducer isolation).
func Clone(lines []Line) []Line {
	if len(lines) == 0 {
		return []Line{}
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// ----------------------------
// Helpers
// ----------------------------

func findLineIndex(lines []Line, key VariantKey) int {
	for i := range lines {
		if lines[i].Key() == key {
			return i
		}
	}
	return -1
}
