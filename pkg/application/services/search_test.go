package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlim/stockroute/pkg/domain/entities"
)

var testNow = time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)

func testSearch() *SourceSearch {
	return NewSourceSearchAt(func() time.Time { return testNow })
}

func addStock(t *testing.T, w *entities.Warehouse, code entities.ItemCode, qty, min entities.Quantity, expiry *time.Time) {
	t.Helper()
	item, err := entities.NewStockItem(code, qty, min, expiry)
	require.NoError(t, err)
	w.AddStock(item)
}

func connect(t *testing.T, net *entities.Network, from, to entities.WarehouseCode, cost entities.Cost) {
	t.Helper()
	net.Ensure(to)
	require.NoError(t, net.Ensure(from).AddConnection(to, cost))
}

func TestFind_StartFulfillsItself(t *testing.T) {
	// Isolated warehouse, no edges: a satisfiable bundle resolves at the
	// start with zero cost and a single-node path.
	net := entities.NewNetwork()
	addStock(t, net.Ensure("A"), "N007", 100, 20, nil)

	route, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"N007": 50})
	require.NoError(t, err)

	assert.Equal(t, entities.Cost(0), route.Cost)
	assert.Equal(t, []entities.WarehouseCode{"A"}, route.Path)
	assert.Equal(t, entities.WarehouseCode("A"), route.Source())
}

func TestFind_EmptyBundle(t *testing.T) {
	net := entities.NewNetwork()
	net.Ensure("A")

	route, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{})
	require.NoError(t, err)
	assert.Equal(t, entities.Cost(0), route.Cost)
	assert.Equal(t, []entities.WarehouseCode{"A"}, route.Path)
}

func TestFind_ReachableNeighbor(t *testing.T) {
	// B cannot fulfill but A (edge B->A, cost 5) can.
	net := entities.NewNetwork()
	addStock(t, net.Ensure("A"), "X", 100, 20, nil)
	addStock(t, net.Ensure("B"), "X", 10, 0, nil)
	connect(t, net, "B", "A", 5)

	route, err := testSearch().Find(context.Background(), net, "B", entities.Bundle{"X": 50})
	require.NoError(t, err)

	assert.Equal(t, entities.Cost(5), route.Cost)
	assert.Equal(t, []entities.WarehouseCode{"B", "A"}, route.Path)
}

func TestFind_AdjacencyIsDirected(t *testing.T) {
	// Edge A->B only: from B the fulfilling warehouse A is unreachable.
	net := entities.NewNetwork()
	addStock(t, net.Ensure("A"), "X", 100, 20, nil)
	addStock(t, net.Ensure("B"), "X", 10, 0, nil)
	connect(t, net, "A", "B", 5)

	_, err := testSearch().Find(context.Background(), net, "B", entities.Bundle{"X": 50})
	assert.ErrorIs(t, err, entities.ErrNoFulfillingWarehouse)

	// The same request from A travels the declared direction and fails at
	// B's stock, but A itself fulfills it.
	route, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"X": 50})
	require.NoError(t, err)
	assert.Equal(t, []entities.WarehouseCode{"A"}, route.Path)
}

func TestFind_Unsatisfiable_ExhaustsQueue(t *testing.T) {
	net := entities.NewNetwork()
	addStock(t, net.Ensure("A"), "X", 5, 0, nil)
	addStock(t, net.Ensure("B"), "X", 5, 0, nil)
	connect(t, net, "A", "B", 1)
	connect(t, net, "B", "A", 1)

	_, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"X": 50})
	assert.ErrorIs(t, err, entities.ErrNoFulfillingWarehouse)
}

func TestFind_AccumulatesTravelCost(t *testing.T) {
	// A -> B -> D costs 2+3=5; A -> C -> D costs 10+1=11. Both B and C are
	// empty; D fulfills. The cheaper chain wins and the reported cost is
	// pure travel cost along it.
	net := entities.NewNetwork()
	net.Ensure("B")
	net.Ensure("C")
	addStock(t, net.Ensure("D"), "X", 100, 0, nil)
	connect(t, net, "A", "B", 2)
	connect(t, net, "A", "C", 10)
	connect(t, net, "B", "D", 3)
	connect(t, net, "C", "D", 1)

	route, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"X": 50})
	require.NoError(t, err)

	assert.Equal(t, entities.Cost(5), route.Cost)
	assert.Equal(t, []entities.WarehouseCode{"A", "B", "D"}, route.Path)
}

func TestFind_HeuristicGuidesExpansion(t *testing.T) {
	// Two fulfilling candidates at equal travel cost: the one whose stock
	// expires soon scores a negative penalty and is popped first.
	urgent := testNow.AddDate(0, 0, 3)

	net := entities.NewNetwork()
	addStock(t, net.Ensure("FRESH"), "X", 100, 0, nil)
	addStock(t, net.Ensure("URGENT"), "X", 100, 0, &urgent)
	connect(t, net, "A", "FRESH", 4)
	connect(t, net, "A", "URGENT", 4)

	route, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"X": 50})
	require.NoError(t, err)
	assert.Equal(t, entities.WarehouseCode("URGENT"), route.Source())
}

func TestFind_TieBrokenByDiscoveryOrder(t *testing.T) {
	// Identical stock and identical edge costs: neighbors are discovered in
	// sorted order, so the first-discovered candidate wins the tie.
	net := entities.NewNetwork()
	addStock(t, net.Ensure("B"), "X", 100, 0, nil)
	addStock(t, net.Ensure("C"), "X", 100, 0, nil)
	connect(t, net, "A", "C", 4)
	connect(t, net, "A", "B", 4)

	route, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"X": 50})
	require.NoError(t, err)
	assert.Equal(t, entities.WarehouseCode("B"), route.Source())
}

func TestFind_SelfLoopAndZeroCostEdges(t *testing.T) {
	// A self-loop and a zero-cost edge neither short-circuit nor loop the
	// traversal; the visited set retires each warehouse once.
	net := entities.NewNetwork()
	addStock(t, net.Ensure("B"), "X", 100, 0, nil)
	connect(t, net, "A", "A", 0)
	connect(t, net, "A", "B", 0)

	route, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"X": 50})
	require.NoError(t, err)

	assert.Equal(t, entities.Cost(0), route.Cost)
	assert.Equal(t, []entities.WarehouseCode{"A", "B"}, route.Path)
}

func TestFind_UnknownStart(t *testing.T) {
	net := entities.NewNetwork()
	_, err := testSearch().Find(context.Background(), net, "NOPE", entities.Bundle{"X": 1})
	assert.ErrorIs(t, err, entities.ErrWarehouseNotFound)
}

func TestFind_CanceledContext(t *testing.T) {
	net := entities.NewNetwork()
	addStock(t, net.Ensure("A"), "X", 100, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testSearch().Find(ctx, net, "A", entities.Bundle{"X": 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFind_DoesNotMutateNetwork(t *testing.T) {
	net := entities.NewNetwork()
	addStock(t, net.Ensure("A"), "X", 100, 20, nil)

	_, err := testSearch().Find(context.Background(), net, "A", entities.Bundle{"X": 50})
	require.NoError(t, err)

	item := net.Ensure("A").FindStock("X")
	assert.Equal(t, entities.Quantity(100), item.Quantity)
}
