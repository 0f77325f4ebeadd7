package services

import (
	"fmt"

	"github.com/nlim/stockroute/pkg/domain/entities"
)

// Allocator commits resolved allocations against the ledger. Both variants
// are staged: every item in the bundle is validated against the source
// before any record is mutated, so a bundle either moves entirely or not at
// all. Items are processed in sorted item-code order.
type Allocator struct{}

// NewAllocator creates an allocation executor.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Transfer moves a bundle from the source warehouse into the destination
// warehouse (replenishment flow). Records created at the destination carry a
// zero reserve and no expiry date.
func (a *Allocator) Transfer(network *entities.Network, source, dest entities.WarehouseCode, bundle entities.Bundle) error {
	src, err := network.Get(source)
	if err != nil {
		return fmt.Errorf("transfer source: %w", err)
	}
	dst, err := network.Get(dest)
	if err != nil {
		return fmt.Errorf("transfer destination: %w", err)
	}

	if err := validateDebits(src, bundle); err != nil {
		return err
	}

	for _, code := range bundle.Codes() {
		if err := src.Debit(code, bundle[code]); err != nil {
			// Unreachable after validation; a failure here means the
			// validation and debit logic diverged.
			return fmt.Errorf("transfer commit: %w", err)
		}
		dst.Credit(code, bundle[code])
	}
	return nil
}

// Release debits a bundle from the source warehouse for external customer
// consumption (dispatch flow). There is no credit step; the stock leaves the
// system entirely.
func (a *Allocator) Release(network *entities.Network, source entities.WarehouseCode, bundle entities.Bundle) error {
	src, err := network.Get(source)
	if err != nil {
		return fmt.Errorf("release source: %w", err)
	}

	if err := validateDebits(src, bundle); err != nil {
		return err
	}

	for _, code := range bundle.Codes() {
		if err := src.Debit(code, bundle[code]); err != nil {
			return fmt.Errorf("release commit: %w", err)
		}
	}
	return nil
}

// validateDebits checks every requested item against the source ledger
// before any mutation, using the same availability rule Debit enforces.
func validateDebits(src *entities.Warehouse, bundle entities.Bundle) error {
	for _, code := range bundle.Codes() {
		item := src.FindStock(code)
		if item == nil {
			return fmt.Errorf("warehouse %s, item %s: %w", src.Code, code, entities.ErrItemNotFound)
		}
		if bundle[code] > item.Available() {
			return fmt.Errorf("warehouse %s, item %s: need %d, available %d: %w",
				src.Code, code, bundle[code], item.Available(), entities.ErrInsufficientStock)
		}
	}
	return nil
}
