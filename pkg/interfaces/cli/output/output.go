// Package output renders orchestration reports and stock tables for the
// terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mattn/go-isatty"

	"github.com/nlim/stockroute/pkg/application/services"
	"github.com/nlim/stockroute/pkg/domain/entities"
	"github.com/nlim/stockroute/pkg/infrastructure/events"
)

// IsTerminal reports whether the writer is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteReport renders the orchestration report.
func WriteReport(w io.Writer, report *services.Report) {
	fmt.Fprint(w, report.String())
	if report.Fulfilled() {
		fmt.Fprintln(w, "all requested items allocated")
	} else {
		fmt.Fprintf(w, "%d item(s) could not be sourced\n", len(report.Unmet))
	}
}

// WriteStock renders the ledger of every warehouse, warehouses and items in
// sorted order. On an interactive terminal records are grouped per warehouse
// with aligned columns; piped output is flat tab-separated rows, one per
// (warehouse, item) pair.
func WriteStock(w io.Writer, network *entities.Network) error {
	if IsTerminal(w) {
		return writeStockTable(w, network)
	}
	return writeStockPlain(w, network)
}

func writeStockTable(w io.Writer, network *entities.Network) error {
	for _, code := range network.Codes() {
		warehouse, err := network.Get(code)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "Warehouse %s:\n", code)
		for _, item := range sortedItems(warehouse) {
			fmt.Fprintf(w, "  %-12s qty=%-6d min=%-6d expiry=%s\n",
				item.ItemCode, item.Quantity, item.MinAmount, formatExpiry(item))
		}
	}
	return nil
}

func writeStockPlain(w io.Writer, network *entities.Network) error {
	for _, code := range network.Codes() {
		warehouse, err := network.Get(code)
		if err != nil {
			return err
		}
		for _, item := range sortedItems(warehouse) {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				code, item.ItemCode, item.Quantity, item.MinAmount, formatExpiry(item))
		}
	}
	return nil
}

// WriteMovements renders journaled movements in append order.
func WriteMovements(w io.Writer, movements []events.Movement) {
	for _, m := range movements {
		switch m.Type {
		case events.TypeTransferred:
			fmt.Fprintf(w, "  %s %s -> %s %s cost %d\n", m.Type, m.Source, m.Dest, m.Items, m.Cost)
		case events.TypeReleased:
			fmt.Fprintf(w, "  %s %s %s cost %d\n", m.Type, m.Source, m.Items, m.Cost)
		default:
			fmt.Fprintf(w, "  %s %s\n", m.Type, m.Items)
		}
	}
}

func sortedItems(warehouse *entities.Warehouse) []*entities.StockItem {
	items := make([]*entities.StockItem, len(warehouse.Stock))
	copy(items, warehouse.Stock)
	sort.Slice(items, func(i, j int) bool { return items[i].ItemCode < items[j].ItemCode })
	return items
}

func formatExpiry(item *entities.StockItem) string {
	if item.Expiry == nil {
		return "-"
	}
	return item.Expiry.Format("2006-01-02")
}
