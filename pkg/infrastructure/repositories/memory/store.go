// Package memory provides an in-process snapshot store. It is used by tests
// and by embedders that manage snapshot records themselves.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/nlim/stockroute/pkg/domain/entities"
	"github.com/nlim/stockroute/pkg/domain/repositories"
)

// StockRecord is one flattened stock row.
type StockRecord struct {
	Warehouse entities.WarehouseCode
	Item      entities.ItemCode
	Quantity  entities.Quantity
	MinAmount entities.Quantity
	Expiry    *time.Time
}

// ConnectionRecord is one directed travel edge.
type ConnectionRecord struct {
	Warehouse entities.WarehouseCode
	Neighbor  entities.WarehouseCode
	Cost      entities.Cost
}

// Store holds snapshot records in memory.
type Store struct {
	stock       []StockRecord
	connections []ConnectionRecord
}

// NewStore creates a store seeded with the given records.
func NewStore(stock []StockRecord, connections []ConnectionRecord) *Store {
	return &Store{stock: stock, connections: connections}
}

// Verify interface compliance
var _ repositories.SnapshotStore = (*Store)(nil)

// LoadNetwork materializes a fresh network from the held records. Each call
// returns an independent graph; mutations to one do not leak into the next.
func (s *Store) LoadNetwork(ctx context.Context) (*entities.Network, error) {
	network := entities.NewNetwork()

	for _, rec := range s.stock {
		item, err := entities.NewStockItem(rec.Item, rec.Quantity, rec.MinAmount, rec.Expiry)
		if err != nil {
			return nil, fmt.Errorf("stock record %s/%s: %w", rec.Warehouse, rec.Item, err)
		}
		warehouse := network.Ensure(rec.Warehouse)
		if warehouse.FindStock(rec.Item) != nil {
			return nil, fmt.Errorf("duplicate stock record for warehouse %s, item %s", rec.Warehouse, rec.Item)
		}
		warehouse.AddStock(item)
	}

	for _, rec := range s.connections {
		network.Ensure(rec.Neighbor)
		if err := network.Ensure(rec.Warehouse).AddConnection(rec.Neighbor, rec.Cost); err != nil {
			return nil, fmt.Errorf("connection record %s->%s: %w", rec.Warehouse, rec.Neighbor, err)
		}
	}
	return network, nil
}

// SaveStock replaces the held stock records with the network's flattened
// state, warehouses and items in ledger order.
func (s *Store) SaveStock(ctx context.Context, network *entities.Network) error {
	var records []StockRecord
	for _, code := range network.Codes() {
		warehouse, err := network.Get(code)
		if err != nil {
			return fmt.Errorf("saving stock: %w", err)
		}
		for _, item := range warehouse.Stock {
			records = append(records, StockRecord{
				Warehouse: code,
				Item:      item.ItemCode,
				Quantity:  item.Quantity,
				MinAmount: item.MinAmount,
				Expiry:    item.Expiry,
			})
		}
	}
	s.stock = records
	return nil
}

// StockRecords returns the held stock records.
func (s *Store) StockRecords() []StockRecord {
	out := make([]StockRecord, len(s.stock))
	copy(out, s.stock)
	return out
}
