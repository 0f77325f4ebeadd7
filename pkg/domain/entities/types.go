package entities

// ItemCode represents a unique item identifier
type ItemCode string

// WarehouseCode represents a unique warehouse identifier
type WarehouseCode string

// Quantity represents an integer quantity of discrete stock units
type Quantity int64

// Cost represents travel cost in abstract route units. Heuristic penalties
// are expressed in the same units so they can be added to path cost.
type Cost int64
