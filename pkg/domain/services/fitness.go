// Package services holds pure domain logic: the fitness heuristic that
// guides the best-source search and the terminal fulfillment test.
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nlim/stockroute/pkg/domain/entities"
)

const (
	// shortfallWeight is the penalty per missing unit.
	shortfallWeight = 2

	// expiryHorizonDays is the window within which nearing expiry earns a
	// reward. Beyond it the expiry term contributes nothing.
	expiryHorizonDays = 30
)

// expiryWeight scales the expiry-proximity reward. Decimal keeps the
// fractional weight exact before the ceiling is taken.
var expiryWeight = decimal.NewFromFloat(0.1)

// Penalty scores how well a warehouse's ledger satisfies a requested bundle.
// Lower is better. The result is in travel-cost units so the search can add
// it to path cost. The score sums independently over requested items:
//
//   - item absent:            += amount * 2
//   - available < amount:     += (amount - available) * 2
//   - expiry within 30 days:  -= ceil((30 - daysToExpiry) * 0.1)
//
// The expiry reward can drive the total negative, so Penalty is not an
// admissible lower bound on remaining cost; the search is best-first
// heuristic search, not guaranteed-optimal A*.
func Penalty(stock []*entities.StockItem, bundle entities.Bundle, now time.Time) entities.Cost {
	byCode := make(map[entities.ItemCode]*entities.StockItem, len(stock))
	for _, item := range stock {
		if _, seen := byCode[item.ItemCode]; !seen {
			byCode[item.ItemCode] = item
		}
	}

	var penalty entities.Cost
	for code, amount := range bundle {
		item, ok := byCode[code]
		if !ok {
			penalty += entities.Cost(amount) * shortfallWeight
			continue
		}

		if avail := item.Available(); avail < amount {
			penalty += entities.Cost(amount-avail) * shortfallWeight
		}

		if item.Expiry != nil {
			days := daysToExpiry(*item.Expiry, now)
			if days < expiryHorizonDays {
				penalty -= expiryReward(days)
			}
		}
	}
	return penalty
}

// CanFulfill is the terminal test of the search: for every requested item the
// summed available quantity across the warehouse's records must cover the
// requested amount. An empty bundle is trivially satisfied.
func CanFulfill(w *entities.Warehouse, bundle entities.Bundle) bool {
	for code, amount := range bundle {
		avail, _ := w.AvailableQuantity(code)
		if avail < amount {
			return false
		}
	}
	return true
}

// daysToExpiry counts whole calendar days from now to the expiry date,
// clamped at zero: an expired item earns the same maximum reward as one
// expiring today.
func daysToExpiry(expiry, now time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(n).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// expiryReward computes ceil((horizon - days) * 0.1) in cost units.
func expiryReward(days int) entities.Cost {
	urgency := decimal.NewFromInt(int64(expiryHorizonDays - days))
	return entities.Cost(urgency.Mul(expiryWeight).Ceil().IntPart())
}
