package entities

import "errors"

// Sentinel errors surfaced at the request boundary. Callers distinguish
// outcomes with errors.Is rather than by parsing messages.
var (
	// ErrItemNotFound is returned when an item has no record at a warehouse
	// where presence was assumed.
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientStock is returned when the available quantity
	// (quantity - min_amount) is below the requested amount.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoFulfillingWarehouse is returned when the source search exhausts
	// the network without finding a warehouse able to satisfy a bundle.
	ErrNoFulfillingWarehouse = errors.New("no fulfilling warehouse found")

	// ErrWarehouseNotFound is returned when a warehouse code is not part of
	// the loaded network.
	ErrWarehouseNotFound = errors.New("warehouse not found")
)
