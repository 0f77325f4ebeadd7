package entities

import (
	"fmt"
	"sort"
)

// Warehouse is a node in the distribution network: an item ledger plus
// directed, weighted travel edges to neighboring warehouses.
type Warehouse struct {
	Code     WarehouseCode
	Adjacent map[WarehouseCode]Cost
	Stock    []*StockItem
}

// NewWarehouse creates an empty warehouse with the given code.
func NewWarehouse(code WarehouseCode) *Warehouse {
	return &Warehouse{
		Code:     code,
		Adjacent: make(map[WarehouseCode]Cost),
		Stock:    []*StockItem{},
	}
}

// AddConnection declares a directed edge to a neighbor. The inverse edge is
// not implied; bidirectional travel needs two declarations.
func (w *Warehouse) AddConnection(neighbor WarehouseCode, cost Cost) error {
	if cost < 0 {
		return fmt.Errorf("travel cost to %s cannot be negative, got %d", neighbor, cost)
	}
	w.Adjacent[neighbor] = cost
	return nil
}

// Neighbors returns the outgoing neighbor codes in sorted order, so traversal
// discovery order is deterministic.
func (w *Warehouse) Neighbors() []WarehouseCode {
	codes := make([]WarehouseCode, 0, len(w.Adjacent))
	for code := range w.Adjacent {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// AddStock appends an item record to the ledger. Callers are responsible for
// keeping item codes unique per warehouse; the loaders enforce this.
func (w *Warehouse) AddStock(item *StockItem) {
	w.Stock = append(w.Stock, item)
}

// FindStock returns the record for the given item code, or nil if the
// warehouse has no record for it.
func (w *Warehouse) FindStock(code ItemCode) *StockItem {
	for _, item := range w.Stock {
		if item.ItemCode == code {
			return item
		}
	}
	return nil
}

// AvailableQuantity returns the summed available quantity (quantity minus
// reserve) across the warehouse's records for the item code, and whether any
// record exists. Absent items report zero.
func (w *Warehouse) AvailableQuantity(code ItemCode) (Quantity, bool) {
	var total Quantity
	found := false
	for _, item := range w.Stock {
		if item.ItemCode == code {
			total += item.Available()
			found = true
		}
	}
	return total, found
}

// Credit increases the quantity of an item, creating a zero-reserve,
// non-expiring record if the item is unknown at this warehouse.
func (w *Warehouse) Credit(code ItemCode, qty Quantity) {
	if item := w.FindStock(code); item != nil {
		item.Quantity += qty
		return
	}
	w.AddStock(&StockItem{ItemCode: code, Quantity: qty, MinAmount: 0, Expiry: nil})
}

// Debit decreases the quantity of an item. It fails with ErrItemNotFound if
// the item has no record here, and with ErrInsufficientStock if the request
// would eat into the reserve buffer. The record is left untouched on failure.
func (w *Warehouse) Debit(code ItemCode, qty Quantity) error {
	item := w.FindStock(code)
	if item == nil {
		return fmt.Errorf("warehouse %s, item %s: %w", w.Code, code, ErrItemNotFound)
	}
	if qty > item.Available() {
		return fmt.Errorf("warehouse %s, item %s: need %d, available %d: %w",
			w.Code, code, qty, item.Available(), ErrInsufficientStock)
	}
	item.Quantity -= qty
	return nil
}
