package entities

import (
	"fmt"
	"sort"
)

// Network is a caller-owned warehouse graph. It is built fresh from an
// external snapshot per orchestration call; mutations exist only in memory
// until the caller externalizes the final state.
type Network struct {
	warehouses map[WarehouseCode]*Warehouse
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{warehouses: make(map[WarehouseCode]*Warehouse)}
}

// Ensure returns the warehouse for the given code, creating it with empty
// stock and adjacency if it has not been seen yet. Load contract: any code
// referenced by a stock or connection record exists after loading.
func (n *Network) Ensure(code WarehouseCode) *Warehouse {
	if w, ok := n.warehouses[code]; ok {
		return w
	}
	w := NewWarehouse(code)
	n.warehouses[code] = w
	return w
}

// Get returns the warehouse for the given code.
func (n *Network) Get(code WarehouseCode) (*Warehouse, error) {
	w, ok := n.warehouses[code]
	if !ok {
		return nil, fmt.Errorf("%s: %w", code, ErrWarehouseNotFound)
	}
	return w, nil
}

// Codes returns all warehouse codes in sorted order.
func (n *Network) Codes() []WarehouseCode {
	codes := make([]WarehouseCode, 0, len(n.warehouses))
	for code := range n.warehouses {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Len returns the number of warehouses in the network.
func (n *Network) Len() int {
	return len(n.warehouses)
}
