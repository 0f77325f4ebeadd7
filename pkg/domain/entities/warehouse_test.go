package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockItem_Available(t *testing.T) {
	item, err := NewStockItem("N007", 100, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, Quantity(80), item.Available())
}

func TestNewStockItem_Validation(t *testing.T) {
	tests := []struct {
		name      string
		code      ItemCode
		quantity  Quantity
		minAmount Quantity
	}{
		{name: "empty_code", code: "", quantity: 1, minAmount: 0},
		{name: "negative_quantity", code: "N007", quantity: -1, minAmount: 0},
		{name: "negative_min", code: "N007", quantity: 1, minAmount: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStockItem(tt.code, tt.quantity, tt.minAmount, nil)
			assert.Error(t, err)
		})
	}
}

func TestWarehouse_AvailableQuantity(t *testing.T) {
	w := NewWarehouse("A")
	item, err := NewStockItem("N007", 100, 20, nil)
	require.NoError(t, err)
	w.AddStock(item)

	avail, found := w.AvailableQuantity("N007")
	assert.True(t, found)
	assert.Equal(t, Quantity(80), avail)

	avail, found = w.AvailableQuantity("H014")
	assert.False(t, found)
	assert.Equal(t, Quantity(0), avail)
}

func TestWarehouse_Credit_ExistingItem(t *testing.T) {
	w := NewWarehouse("A")
	item, err := NewStockItem("N007", 10, 5, nil)
	require.NoError(t, err)
	w.AddStock(item)

	w.Credit("N007", 15)

	assert.Equal(t, Quantity(25), item.Quantity)
	assert.Len(t, w.Stock, 1)
}

func TestWarehouse_Credit_CreatesRecord(t *testing.T) {
	w := NewWarehouse("A")

	w.Credit("H014", 40)

	created := w.FindStock("H014")
	require.NotNil(t, created)
	assert.Equal(t, Quantity(40), created.Quantity)
	assert.Equal(t, Quantity(0), created.MinAmount)
	assert.Nil(t, created.Expiry)
}

func TestWarehouse_Debit(t *testing.T) {
	w := NewWarehouse("A")
	item, err := NewStockItem("N007", 100, 20, nil)
	require.NoError(t, err)
	w.AddStock(item)

	require.NoError(t, w.Debit("N007", 80))
	assert.Equal(t, Quantity(20), item.Quantity)
}

func TestWarehouse_Debit_RespectsReserve(t *testing.T) {
	// Release of 30 against quantity=40, min_amount=20 must fail: only 20
	// units are eligible for allocation.
	w := NewWarehouse("A")
	item, err := NewStockItem("N007", 40, 20, nil)
	require.NoError(t, err)
	w.AddStock(item)

	err = w.Debit("N007", 30)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, Quantity(40), item.Quantity, "failed debit must leave the record untouched")
}

func TestWarehouse_Debit_UnknownItem(t *testing.T) {
	w := NewWarehouse("A")

	err := w.Debit("GHOST", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestWarehouse_Neighbors_Sorted(t *testing.T) {
	w := NewWarehouse("A")
	require.NoError(t, w.AddConnection("C", 3))
	require.NoError(t, w.AddConnection("B", 1))
	require.NoError(t, w.AddConnection("D", 2))

	assert.Equal(t, []WarehouseCode{"B", "C", "D"}, w.Neighbors())
}

func TestWarehouse_AddConnection_NegativeCost(t *testing.T) {
	w := NewWarehouse("A")
	assert.Error(t, w.AddConnection("B", -1))
}

func TestNetwork_EnsureAndGet(t *testing.T) {
	n := NewNetwork()

	a := n.Ensure("A")
	assert.Same(t, a, n.Ensure("A"), "Ensure must be idempotent")

	got, err := n.Get("A")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = n.Get("Z")
	assert.ErrorIs(t, err, ErrWarehouseNotFound)
}

func TestNetwork_Codes_Sorted(t *testing.T) {
	n := NewNetwork()
	n.Ensure("C")
	n.Ensure("A")
	n.Ensure("B")

	assert.Equal(t, []WarehouseCode{"A", "B", "C"}, n.Codes())
	assert.Equal(t, 3, n.Len())
}
