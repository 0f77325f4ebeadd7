package entities

import (
	"fmt"
	"sort"
)

// Bundle maps item codes to required quantities for one request. It is a
// structured, validated input; the request boundary never evaluates
// caller-supplied expressions.
type Bundle map[ItemCode]Quantity

// NewBundle validates and copies the given requirements. Every quantity must
// be a positive integer.
func NewBundle(required map[ItemCode]Quantity) (Bundle, error) {
	b := make(Bundle, len(required))
	for code, qty := range required {
		if code == "" {
			return nil, fmt.Errorf("bundle item code cannot be empty")
		}
		if qty <= 0 {
			return nil, fmt.Errorf("bundle quantity for %s must be positive, got %d", code, qty)
		}
		b[code] = qty
	}
	return b, nil
}

// Codes returns the item codes in sorted order for deterministic processing.
func (b Bundle) Codes() []ItemCode {
	codes := make([]ItemCode, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Clone returns an independent copy of the bundle.
func (b Bundle) Clone() Bundle {
	c := make(Bundle, len(b))
	for code, qty := range b {
		c[code] = qty
	}
	return c
}

// String renders the bundle as "CODE=QTY, ..." in sorted order.
func (b Bundle) String() string {
	s := ""
	for i, code := range b.Codes() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%d", code, b[code])
	}
	return s
}
