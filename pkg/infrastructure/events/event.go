// Package events records an audit trail of stock movements. Each
// orchestrated request appends its committed movements and unmet items to a
// journal, keyed by request id.
package events

import (
	"time"

	"github.com/nlim/stockroute/pkg/domain/entities"
)

// Movement types.
const (
	TypeTransferred = "stock.transferred"
	TypeReleased    = "stock.released"
	TypeUnmet       = "stock.unmet"
)

// Movement is one journal entry: a committed allocation or an unmet
// requirement within a request.
type Movement struct {
	Type      string
	RequestID string
	Source    entities.WarehouseCode // empty for unmet items
	Dest      entities.WarehouseCode // empty for releases and unmet items
	Items     entities.Bundle
	Cost      entities.Cost
	At        time.Time
}

// Journal appends and reads movements. Implementations must be safe for
// concurrent use.
type Journal interface {
	Append(m Movement) error
	Read(requestID string) ([]Movement, error)
	ReadAll() ([]Movement, error)
}

// Noop discards all movements.
type Noop struct{}

func (Noop) Append(Movement) error           { return nil }
func (Noop) Read(string) ([]Movement, error) { return nil, nil }
func (Noop) ReadAll() ([]Movement, error)    { return nil, nil }

// Verify interface compliance
var _ Journal = Noop{}
