// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain/catalog"
)

func snapshot(id string, price int64) catalog.ProductSnapshot {
	return catalog.ProductSnapshot{ID: id, Name: "item-" + id, Price: price}
}

func TestAddMergesSameVariant(t *testing.T) {
	p := snapshot("P1", 1200)

	lines := Add(nil, p, 2, "red", "M")
	lines = Add(lines, p, 3, "red", "M")

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, VariantKey{ProductID: "P1", Color: "red", Size: "M"}, lines[0].Key())
}

func TestAddKeepsVariantsSeparate(t *testing.T) {
	p := snapshot("P1", 1200)

	lines := Add(nil, p, 1, "red", "M")
	lines = Add(lines, p, 1, "blue", "M")
	lines = Add(lines, p, 1, "red", "L")

	require.Len(t, lines, 3)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	lines := Add(nil, snapshot("P1", 500), 0, "", "")

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddIgnoresInvalidProduct(t *testing.T) {
	lines := Add(nil, catalog.ProductSnapshot{}, 1, "", "")
	assert.Empty(t, lines)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	lines := Add(nil, snapshot("A", 100), 1, "", "")
	lines = Add(lines, snapshot("B", 200), 1, "", "")
	lines = Add(lines, snapshot("A", 100), 1, "", "") // merge, no move

	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].Product.ID)
	assert.Equal(t, "B", lines[1].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestRemoveMatchesTupleExactly(t *testing.T) {
	p := snapshot("P1", 1000)
	lines := Add(nil, p, 1, "red", "M")
	lines = Add(lines, p, 1, "red", "L")

	lines = Remove(lines, "P1", "red", "M")

	require.Len(t, lines, 1)
	assert.Equal(t, "L", lines[0].SelectedSize)
}

func TestRemoveEmptyDiscriminatorMatchesEmptyOnly(t *testing.T) {
	p := snapshot("P1", 1000)
	lines := Add(nil, p, 1, "", "")
	lines = Add(lines, p, 1, "red", "M")

	lines = Remove(lines, "P1", "", "")

	require.Len(t, lines, 1)
	assert.Equal(t, "red", lines[0].SelectedColor)
}

func TestSetQuantityProductWideZeroPrunesAllVariants(t *testing.T) {
	p := snapshot("P1", 1000)
	lines := Add(nil, p, 1, "red", "M")
	lines = Add(lines, p, 2, "blue", "L")
	lines = Add(lines, snapshot("P2", 500), 1, "", "")

	lines = SetQuantity(lines, "P1", "", "", 0)

	require.Len(t, lines, 1)
	assert.Equal(t, "P2", lines[0].Product.ID)
}

func TestSetQuantityExactVariantOnly(t *testing.T) {
	p := snapshot("P1", 1000)
	lines := Add(nil, p, 1, "red", "M")
	lines = Add(lines, p, 2, "blue", "L")

	lines = SetQuantity(lines, "P1", "red", "M", 7)

	require.Len(t, lines, 2)
	for _, l := range lines {
		if l.SelectedColor == "red" {
			assert.Equal(t, 7, l.Quantity)
		} else {
			assert.Equal(t, 2, l.Quantity)
		}
	}
}

func TestSetQuantityClampsNegativeToZero(t *testing.T) {
	lines := Add(nil, snapshot("P1", 1000), 3, "", "")

	lines = SetQuantity(lines, "P1", "", "", -5)

	assert.Empty(t, lines)
}

func TestNormalizeCoercesNegativePriceAndDropsZeroQty(t *testing.T) {
	lines := []Line{
		{Product: catalog.ProductSnapshot{ID: "A", Price: -300}, Quantity: 2},
		{Product: catalog.ProductSnapshot{ID: "B", Price: 100}, Quantity: 0},
	}

	out := Normalize(lines)

	require.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].Product.Price)
}

func TestTotalAndItemCount(t *testing.T) {
	lines := []Line{
		{Product: catalog.ProductSnapshot{ID: "A", Price: 100000}, Quantity: 2},
		{Product: catalog.ProductSnapshot{ID: "B", Price: 50000}, Quantity: 1},
	}

	assert.Equal(t, int64(250000), Total(lines))
	assert.Equal(t, 3, ItemCount(lines))
}

func TestCloneIsIndependent(t *testing.T) {
	lines := Add(nil, snapshot("P1", 100), 1, "", "")
	cp := Clone(lines)
	cp[0].Quantity = 99

	assert.Equal(t, 1, lines[0].Quantity)
}
