// Package services implements the allocation use cases on top of the domain
// layer: best-source search, the allocation executor, and the request
// orchestrator.
package services

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/nlim/stockroute/pkg/domain/entities"
	domainsvc "github.com/nlim/stockroute/pkg/domain/services"
)

// Route is the result of a successful source search: the accumulated travel
// cost and the path from the requesting warehouse to the chosen source. Path
// always ends with the source; for a self-fulfilling request it is just the
// start warehouse.
type Route struct {
	Cost entities.Cost
	Path []entities.WarehouseCode
}

// Source returns the warehouse at the end of the route.
func (r Route) Source() entities.WarehouseCode {
	return r.Path[len(r.Path)-1]
}

// SourceSearch finds the cheapest reachable warehouse able to fulfill a
// bundle. Candidates are ordered by f = g + h where g is accumulated travel
// cost and h is the fitness penalty of the candidate's current stock; h is
// not admissible (the expiry reward can be negative), so the first success
// popped is not guaranteed globally cheapest. That matches the documented
// behavior and is deliberately preserved.
type SourceSearch struct {
	now func() time.Time
}

// NewSourceSearch creates a search using the wall clock for expiry scoring.
func NewSourceSearch() *SourceSearch {
	return &SourceSearch{now: time.Now}
}

// NewSourceSearchAt creates a search with an injected clock. Tests use this
// to pin the heuristic's expiry term.
func NewSourceSearchAt(now func() time.Time) *SourceSearch {
	return &SourceSearch{now: now}
}

// Find runs a best-first traversal from start over outgoing edges and
// returns the first popped warehouse whose current stock satisfies the
// bundle. The start warehouse itself is evaluated before any neighbor.
// Exhausting the queue returns ErrNoFulfillingWarehouse. The network is not
// mutated; a caller wrapping Find in a deadline can abandon it between
// iterations without ledger cleanup.
func (s *SourceSearch) Find(ctx context.Context, network *entities.Network, start entities.WarehouseCode, bundle entities.Bundle) (*Route, error) {
	if _, err := network.Get(start); err != nil {
		return nil, fmt.Errorf("search start: %w", err)
	}

	now := s.now()
	pq := newCandidateQueue()
	pq.push(candidate{g: 0, f: 0, code: start, path: nil})
	visited := make(map[entities.WarehouseCode]bool)

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := pq.pop()
		if visited[cur.code] {
			continue
		}
		visited[cur.code] = true

		warehouse, err := network.Get(cur.code)
		if err != nil {
			return nil, fmt.Errorf("search expansion: %w", err)
		}

		// Terminal test uses live stock, not the heuristic.
		if domainsvc.CanFulfill(warehouse, bundle) {
			return &Route{
				Cost: cur.g,
				Path: append(cur.path, cur.code),
			}, nil
		}

		for _, neighbor := range warehouse.Neighbors() {
			if visited[neighbor] {
				continue
			}
			next, err := network.Get(neighbor)
			if err != nil {
				return nil, fmt.Errorf("search expansion: %w", err)
			}

			g := cur.g + warehouse.Adjacent[neighbor]
			h := domainsvc.Penalty(next.Stock, bundle, now)

			path := make([]entities.WarehouseCode, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			pq.push(candidate{g: g, f: g + h, code: neighbor, path: append(path, cur.code)})
		}
	}

	return nil, fmt.Errorf("bundle %s from %s: %w", bundle, start, entities.ErrNoFulfillingWarehouse)
}

// candidate is one priority-queue entry. seq preserves insertion order so
// equal-f candidates pop in discovery order.
type candidate struct {
	g    entities.Cost
	f    entities.Cost
	seq  int
	code entities.WarehouseCode
	path []entities.WarehouseCode
}

type candidateQueue struct {
	entries []candidate
	nextSeq int
}

func newCandidateQueue() *candidateQueue {
	return &candidateQueue{}
}

func (q *candidateQueue) push(c candidate) {
	c.seq = q.nextSeq
	q.nextSeq++
	heap.Push((*candidateHeap)(q), c)
}

func (q *candidateQueue) pop() candidate {
	return heap.Pop((*candidateHeap)(q)).(candidate)
}

func (q *candidateQueue) Len() int { return len(q.entries) }

// candidateHeap adapts candidateQueue to container/heap.
type candidateHeap candidateQueue

func (h *candidateHeap) Len() int { return len(h.entries) }

func (h *candidateHeap) Less(i, j int) bool {
	if h.entries[i].f != h.entries[j].f {
		return h.entries[i].f < h.entries[j].f
	}
	return h.entries[i].seq < h.entries[j].seq
}

func (h *candidateHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *candidateHeap) Push(x any) {
	h.entries = append(h.entries, x.(candidate))
}

func (h *candidateHeap) Pop() any {
	old := h.entries
	n := len(old)
	c := old[n-1]
	h.entries = old[:n-1]
	return c
}
