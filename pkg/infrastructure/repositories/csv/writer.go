package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/nlim/stockroute/pkg/domain/entities"
)

// SaveStock writes the flattened stock state of the network, one row per
// (warehouse, item) pair, warehouses in sorted order. The expiry column is
// empty for non-expiring items. Connections are static input and are not
// rewritten.
func (s *Store) SaveStock(ctx context.Context, network *entities.Network) error {
	file, err := os.Create(s.outputFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.outputFile, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(stockHeader); err != nil {
		return fmt.Errorf("failed to write stock header: %w", err)
	}

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
			row := []string{
				string(code),
				string(item.ItemCode),
				fmt.Sprintf("%d", item.Quantity),
				fmt.Sprintf("%d", item.MinAmount),
				expiry,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write stock row for %s/%s: %w", code, item.ItemCode, err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", s.outputFile, err)
	}
	return nil
}
