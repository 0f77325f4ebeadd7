package entities

import (
	"fmt"
	"time"
)

// StockItem represents one item record in a warehouse ledger. Quantity and
// MinAmount are mutated in place by allocation; nothing else writes them.
type StockItem struct {
	ItemCode  ItemCode
	Quantity  Quantity
	MinAmount Quantity
	Expiry    *time.Time // nil when the item does not expire
}

// NewStockItem creates a validated StockItem.
func NewStockItem(code ItemCode, quantity, minAmount Quantity, expiry *time.Time) (*StockItem, error) {
	if code == "" {
		return nil, fmt.Errorf("item code cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}
	if minAmount < 0 {
		return nil, fmt.Errorf("min amount cannot be negative, got %d", minAmount)
	}

	return &StockItem{
		ItemCode:  code,
		Quantity:  quantity,
		MinAmount: minAmount,
		Expiry:    expiry,
	}, nil
}

// Available returns the portion of stock eligible for allocation. MinAmount
// defines a reserve buffer that is never released.
func (s *StockItem) Available() Quantity {
	return s.Quantity - s.MinAmount
}
