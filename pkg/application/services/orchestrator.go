package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nlim/stockroute/pkg/domain/entities"
	"github.com/nlim/stockroute/pkg/infrastructure/events"
)

// RequestKind distinguishes the two allocation flows.
type RequestKind int

const (
	// Optimize moves stock into the target warehouse from a resolved source.
	Optimize RequestKind = iota
	// Dispatch releases stock out of a resolved source to an external
	// customer.
	Dispatch
)

func (k RequestKind) String() string {
	switch k {
	case Optimize:
		return "optimize"
	case Dispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// AllocationLine records one committed allocation within a request: the
// items it served, the route that served them, and its travel cost.
type AllocationLine struct {
	Items entities.Bundle
	Route Route
}

// Report aggregates the outcome of one orchestrated request. Sourcing
// failures never raise; they land in Unmet. A report is always returned for
// a well-formed request.
type Report struct {
	RequestID   uuid.UUID
	Kind        RequestKind
	Target      entities.WarehouseCode
	WholeBundle bool // phase 1 satisfied the entire bundle at one source
	Lines       []AllocationLine
	Unmet       entities.Bundle
}

// Fulfilled reports whether every requested item was allocated.
func (r *Report) Fulfilled() bool {
	return len(r.Unmet) == 0
}

// String renders the report for human consumption.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s request %s, target %s\n", r.Kind, r.RequestID, r.Target)

	if !r.WholeBundle && len(r.Lines)+len(r.Unmet) > 0 {
		b.WriteString("no single warehouse could provide the full bundle, processed per item\n")
	}
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "  %s: path %s, cost %d\n", line.Items, formatPath(line.Route.Path), line.Route.Cost)
	}
	for _, code := range r.Unmet.Codes() {
		fmt.Fprintf(&b, "  %s=%d: unmet\n", code, r.Unmet[code])
	}
	return b.String()
}

func formatPath(path []entities.WarehouseCode) string {
	parts := make([]string, len(path))
	for i, code := range path {
		parts[i] = string(code)
	}
	return strings.Join(parts, " -> ")
}

// Orchestrator drives the whole-bundle-then-per-item strategy over one
// in-memory network snapshot. It is single-threaded; callers needing
// concurrent requests must serialize calls or give each request its own
// snapshot.
type Orchestrator struct {
	search    *SourceSearch
	allocator *Allocator
	journal   events.Journal
	now       func() time.Time
}

// NewOrchestrator wires the orchestrator from its collaborators. Movements
// are not journaled; use NewOrchestratorWithJournal for an audit trail.
func NewOrchestrator(search *SourceSearch, allocator *Allocator) *Orchestrator {
	return NewOrchestratorWithJournal(search, allocator, events.Noop{})
}

// NewOrchestratorWithJournal wires the orchestrator with an audit journal
// that receives every committed movement and unmet requirement.
func NewOrchestratorWithJournal(search *SourceSearch, allocator *Allocator, journal events.Journal) *Orchestrator {
	return NewOrchestratorAt(search, allocator, journal, time.Now)
}

// NewOrchestratorAt wires the orchestrator with an injected clock for
// journal timestamps. Tests use this to pin movement times.
func NewOrchestratorAt(search *SourceSearch, allocator *Allocator, journal events.Journal, now func() time.Time) *Orchestrator {
	return &Orchestrator{search: search, allocator: allocator, journal: journal, now: now}
}

// Optimize resolves the cheapest source for the bundle and transfers the
// stock into the target warehouse.
func (o *Orchestrator) Optimize(ctx context.Context, network *entities.Network, target entities.WarehouseCode, required map[entities.ItemCode]entities.Quantity) (*Report, error) {
	return o.process(ctx, network, target, required, Optimize)
}

// Dispatch resolves the cheapest source for the bundle and releases the
// stock from it to an external customer.
func (o *Orchestrator) Dispatch(ctx context.Context, network *entities.Network, target entities.WarehouseCode, required map[entities.ItemCode]entities.Quantity) (*Report, error) {
	return o.process(ctx, network, target, required, Dispatch)
}

func (o *Orchestrator) process(ctx context.Context, network *entities.Network, target entities.WarehouseCode, required map[entities.ItemCode]entities.Quantity, kind RequestKind) (*Report, error) {
	bundle, err := entities.NewBundle(required)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if _, err := network.Get(target); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	report := &Report{
		RequestID: uuid.New(),
		Kind:      kind,
		Target:    target,
		Unmet:     entities.Bundle{},
	}

	// Phase 1: try to satisfy the entire bundle from a single source.
	route, err := o.search.Find(ctx, network, target, bundle)
	switch {
	case err == nil:
		if err := o.allocate(network, target, *route, bundle, kind); err != nil {
			return nil, err
		}
		report.WholeBundle = true
		report.Lines = append(report.Lines, AllocationLine{Items: bundle, Route: *route})
		o.record(report, *route, bundle, kind)
		return report, nil
	case !errors.Is(err, entities.ErrNoFulfillingWarehouse):
		return nil, err
	}

	// Phase 2: fall back to sourcing each item independently. Items that
	// cannot be sourced anywhere are reported, not raised.
	for _, code := range bundle.Codes() {
		single := entities.Bundle{code: bundle[code]}
		route, err := o.search.Find(ctx, network, target, single)
		if err != nil {
			if errors.Is(err, entities.ErrNoFulfillingWarehouse) {
				report.Unmet[code] = bundle[code]
				o.recordUnmet(report, single)
				continue
			}
			return nil, err
		}
		if err := o.allocate(network, target, *route, single, kind); err != nil {
			return nil, err
		}
		report.Lines = append(report.Lines, AllocationLine{Items: single, Route: *route})
		o.record(report, *route, single, kind)
	}
	return report, nil
}

// record journals one committed movement. Journal failures never undo a
// committed allocation, so the append result is discarded.
func (o *Orchestrator) record(report *Report, route Route, items entities.Bundle, kind RequestKind) {
	m := events.Movement{
		RequestID: report.RequestID.String(),
		Source:    route.Source(),
		Items:     items.Clone(),
		Cost:      route.Cost,
		At:        o.now(),
	}
	if kind == Optimize {
		m.Type = events.TypeTransferred
		m.Dest = report.Target
	} else {
		m.Type = events.TypeReleased
	}
	_ = o.journal.Append(m)
}

func (o *Orchestrator) recordUnmet(report *Report, items entities.Bundle) {
	_ = o.journal.Append(events.Movement{
		Type:      events.TypeUnmet,
		RequestID: report.RequestID.String(),
		Items:     items.Clone(),
		At:        o.now(),
	})
}

// allocate commits one resolved route. The search has already proven the
// source sufficient, so executor errors here indicate a divergence between
// the fulfillment test and the debit logic and are propagated as bugs, not
// suppressed.
func (o *Orchestrator) allocate(network *entities.Network, target entities.WarehouseCode, route Route, items entities.Bundle, kind RequestKind) error {
	switch kind {
	case Optimize:
		return o.allocator.Transfer(network, route.Source(), target, items)
	case Dispatch:
		return o.allocator.Release(network, route.Source(), items)
	default:
		return fmt.Errorf("unknown request kind %d", kind)
	}
}
