// Package repositories defines the persistence ports of the allocation core.
// The core never performs I/O itself; snapshot stores implement these
// interfaces around it.
package repositories

import (
	"context"

	"github.com/nlim/stockroute/pkg/domain/entities"
)

// NetworkLoader materializes a full warehouse network from an external
// snapshot: stock records plus connection records. Any warehouse code
// referenced by either record set exists in the result, created on demand
// with empty stock and adjacency.
type NetworkLoader interface {
	LoadNetwork(ctx context.Context) (*entities.Network, error)
}

// StockWriter externalizes the flattened stock state of a network after an
// orchestration completes, one record per (warehouse, item) pair.
type StockWriter interface {
	SaveStock(ctx context.Context, network *entities.Network) error
}

// SnapshotStore combines loading and saving for stores that do both.
type SnapshotStore interface {
	NetworkLoader
	StockWriter
}
