// Package sqlite provides a SQLite-backed network snapshot store with the
// same load/save contract as the CSV store. Useful when snapshots are shared
// between runs or tools; the pure-Go driver keeps the binary self-contained.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nlim/stockroute/pkg/domain/entities"
	"github.com/nlim/stockroute/pkg/domain/repositories"
)

const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS warehouse_stock (
	warehouse_code TEXT NOT NULL,
	item_code      TEXT NOT NULL,
	quantity       INTEGER NOT NULL,
	min_amount     INTEGER NOT NULL,
	expiry_date    TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (warehouse_code, item_code)
);

CREATE TABLE IF NOT EXISTS warehouse_connections (
	warehouse_code TEXT NOT NULL,
	neighbor_code  TEXT NOT NULL,
	travel_cost    INTEGER NOT NULL,
	PRIMARY KEY (warehouse_code, neighbor_code)
);
`

// Open opens (creating if needed) a snapshot database at the given path and
// ensures the schema exists. ":memory:" opens an in-memory database.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// Store reads and writes network snapshots from a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore creates a SQLite snapshot store over an opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Verify interface compliance
var _ repositories.SnapshotStore = (*Store)(nil)

// LoadNetwork materializes the warehouse network from the stock and
// connection tables. Codes referenced by either table are created on demand.
func (s *Store) LoadNetwork(ctx context.Context) (*entities.Network, error) {
	network := entities.NewNetwork()

	if err := s.loadStock(ctx, network); err != nil {
		return nil, err
	}
	if err := s.loadConnections(ctx, network); err != nil {
		return nil, err
	}
	return network, nil
}

func (s *Store) loadStock(ctx context.Context, network *entities.Network) error {
	rows, err := s.db.QueryContext(ctx, `SELECT warehouse_code, item_code, quantity, min_amount, expiry_date
		FROM warehouse_stock ORDER BY warehouse_code, item_code`)
	if err != nil {
		return fmt.Errorf("querying warehouse stock: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var warehouseCode, itemCode, expiryStr string
		var quantity, minAmount int64
		if err := rows.Scan(&warehouseCode, &itemCode, &quantity, &minAmount, &expiryStr); err != nil {
			return fmt.Errorf("scanning stock record: %w", err)
		}

		var expiry *time.Time
		if expiryStr != "" {
			parsed, err := time.Parse(dateLayout, expiryStr)
			if err != nil {
				return fmt.Errorf("stock record %s/%s: invalid expiry_date %q: %w",
					warehouseCode, itemCode, expiryStr, err)
			}
			expiry = &parsed
		}

		item, err := entities.NewStockItem(entities.ItemCode(itemCode),
			entities.Quantity(quantity), entities.Quantity(minAmount), expiry)
		if err != nil {
			return fmt.Errorf("stock record %s/%s: %w", warehouseCode, itemCode, err)
		}
		network.Ensure(entities.WarehouseCode(warehouseCode)).AddStock(item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading warehouse stock: %w", err)
	}
	return nil
}

func (s *Store) loadConnections(ctx context.Context, network *entities.Network) error {
	rows, err := s.db.QueryContext(ctx, `SELECT warehouse_code, neighbor_code, travel_cost
		FROM warehouse_connections ORDER BY warehouse_code, neighbor_code`)
	if err != nil {
		return fmt.Errorf("querying warehouse connections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var warehouseCode, neighborCode string
		var cost int64
		if err := rows.Scan(&warehouseCode, &neighborCode, &cost); err != nil {
			return fmt.Errorf("scanning connection record: %w", err)
		}

		network.Ensure(entities.WarehouseCode(neighborCode))
		warehouse := network.Ensure(entities.WarehouseCode(warehouseCode))
		if err := warehouse.AddConnection(entities.WarehouseCode(neighborCode), entities.Cost(cost)); err != nil {
			return fmt.Errorf("connection record %s->%s: %w", warehouseCode, neighborCode, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading warehouse connections: %w", err)
	}
	return nil
}

// SaveStock replaces the stock table with the flattened state of the
// network inside a single transaction. Connections are static input and are
// left untouched.
func (s *Store) SaveStock(ctx context.Context, network *entities.Network) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning stock save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM warehouse_stock`); err != nil {
		return fmt.Errorf("clearing warehouse stock: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO warehouse_stock
		(warehouse_code, item_code, quantity, min_amount, expiry_date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing stock insert: %w", err)
	}
	defer stmt.Close()

	for _, code := range network.Codes() {
		warehouse, err := network.Get(code)
		if err != nil {
			return fmt.Errorf("saving stock: %w", err)
		}
		for _, item := range warehouse.Stock {
			expiry := ""
			if item.Expiry != nil {
				expiry = item.Expiry.Format(dateLayout)
			}
			if _, err := stmt.ExecContext(ctx, string(code), string(item.ItemCode),
				int64(item.Quantity), int64(item.MinAmount), expiry); err != nil {
				return fmt.Errorf("inserting stock record %s/%s: %w", code, item.ItemCode, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stock save: %w", err)
	}
	return nil
}

// SaveConnections writes the connection table from the network's adjacency,
// replacing previous contents. Used when seeding a database from CSV input.
func (s *Store) SaveConnections(ctx context.Context, network *entities.Network) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning connection save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM warehouse_connections`); err != nil {
		return fmt.Errorf("clearing warehouse connections: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO warehouse_connections
		(warehouse_code, neighbor_code, travel_cost) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing connection insert: %w", err)
	}
	defer stmt.Close()

	for _, code := range network.Codes() {
		warehouse, err := network.Get(code)
		if err != nil {
			return fmt.Errorf("saving connections: %w", err)
		}
		for _, neighbor := range warehouse.Neighbors() {
			if _, err := stmt.ExecContext(ctx, string(code), string(neighbor),
				int64(warehouse.Adjacent[neighbor])); err != nil {
				return fmt.Errorf("inserting connection %s->%s: %w", code, neighbor, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing connection save: %w", err)
	}
	return nil
}
