// Package csv loads and saves warehouse network snapshots as flat CSV
// files: one file for stock records, one for connection records.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nlim/stockroute/pkg/domain/entities"
	"github.com/nlim/stockroute/pkg/domain/repositories"
)

const dateLayout = "2006-01-02"

var (
	stockHeader      = []string{"warehouse_code", "item_code", "quantity", "min_amount", "expiry_date"}
	connectionHeader = []string{"warehouse_code", "neighbor_code", "travel_cost"}
)

// Store reads and writes network snapshots as CSV files.
type Store struct {
	stockFile      string
	connectionFile string
	outputFile     string
}

// NewStore creates a CSV snapshot store. SaveStock writes to outputFile;
// pass the stock file path again to overwrite in place.
func NewStore(stockFile, connectionFile, outputFile string) *Store {
	return &Store{
		stockFile:      stockFile,
		connectionFile: connectionFile,
		outputFile:     outputFile,
	}
}

// Verify interface compliance
var _ repositories.SnapshotStore = (*Store)(nil)

// LoadNetwork materializes the warehouse network from the stock and
// connection files. Warehouse codes referenced by either file are created on
// demand with empty stock and adjacency.
func (s *Store) LoadNetwork(ctx context.Context) (*entities.Network, error) {
	network := entities.NewNetwork()

	if err := s.loadStock(network); err != nil {
		return nil, err
	}
	if err := s.loadConnections(network); err != nil {
		return nil, err
	}
	return network, nil
}

func (s *Store) loadStock(network *entities.Network) error {
	records, err := readRecords(s.stockFile, stockHeader)
	if err != nil {
		return fmt.Errorf("stock file: %w", err)
	}

	for i, record := range records {
		warehouseCode := entities.WarehouseCode(record[0])
		item, err := parseStockItem(record)
		if err != nil {
			return fmt.Errorf("stock file row %d: %w", i+2, err)
		}

		warehouse := network.Ensure(warehouseCode)
		if warehouse.FindStock(item.ItemCode) != nil {
			return fmt.Errorf("stock file row %d: duplicate record for warehouse %s, item %s",
				i+2, warehouseCode, item.ItemCode)
		}
		warehouse.AddStock(item)
	}
	return nil
}

func (s *Store) loadConnections(network *entities.Network) error {
	records, err := readRecords(s.connectionFile, connectionHeader)
	if err != nil {
		return fmt.Errorf("connection file: %w", err)
	}

	for i, record := range records {
		warehouseCode := entities.WarehouseCode(record[0])
		neighborCode := entities.WarehouseCode(record[1])

		cost, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return fmt.Errorf("connection file row %d: invalid travel_cost: %s", i+2, record[2])
		}

		network.Ensure(neighborCode)
		if err := network.Ensure(warehouseCode).AddConnection(neighborCode, entities.Cost(cost)); err != nil {
			return fmt.Errorf("connection file row %d: %w", i+2, err)
		}
	}
	return nil
}

// readRecords reads a CSV file, validates its header, and returns the data
// rows.
func readRecords(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s: missing header row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s: header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d",
				filename, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseStockItem(record []string) (*entities.StockItem, error) {
	itemCode := entities.ItemCode(record[1])

	quantity, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[2])
	}

	minAmount, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid min_amount: %s", record[3])
	}

	var expiry *time.Time
	if record[4] != "" {
		parsed, err := time.Parse(dateLayout, record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid expiry_date: %s (expected YYYY-MM-DD)", record[4])
		}
		expiry = &parsed
	}

	return entities.NewStockItem(itemCode, entities.Quantity(quantity), entities.Quantity(minAmount), expiry)
}
