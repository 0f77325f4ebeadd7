// Package commands defines the stockroute command tree. Commands load a
// network snapshot, run one orchestration against it, print the report, and
// externalize the resulting stock state.
package commands

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlim/stockroute/pkg/config"
	"github.com/nlim/stockroute/pkg/domain/entities"
	"github.com/nlim/stockroute/pkg/domain/repositories"
	csvstore "github.com/nlim/stockroute/pkg/infrastructure/repositories/csv"
	"github.com/nlim/stockroute/pkg/infrastructure/repositories/sqlite"
)

// rootFlags are shared by all subcommands and override config-file values.
type rootFlags struct {
	cfgFile        string
	store          string
	stockFile      string
	connectionFile string
	outputFile     string
	dbPath         string
	verbose        bool
}

// NewRootCmd builds the stockroute command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "stockroute",
		Short: "Allocate perishable warehouse stock over a travel-cost network",
		Long: `stockroute resolves requests for item bundles against a network of
warehouses, picking the cheapest reachable source using a best-first search
that blends travel cost with stock sufficiency and expiry urgency.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "Path to config file (default ./stockroute.yaml)")
	pf.StringVar(&flags.store, "store", "", "Snapshot store backend: csv or sqlite")
	pf.StringVar(&flags.stockFile, "stock", "", "Path to warehouse stock CSV")
	pf.StringVar(&flags.connectionFile, "connections", "", "Path to warehouse connections CSV")
	pf.StringVar(&flags.outputFile, "output", "", "Path for the updated stock CSV")
	pf.StringVar(&flags.dbPath, "db", "", "Path to the SQLite snapshot database")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Print stock state before and after allocation")

	cmd.AddCommand(newOptimizeCmd(flags))
	cmd.AddCommand(newDispatchCmd(flags))
	cmd.AddCommand(newStockCmd(flags))

	return cmd
}

// loadConfig resolves configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("store") {
		cfg.Store = flags.store
	}
	if cmd.Flags().Changed("stock") {
		cfg.StockFile = flags.stockFile
	}
	if cmd.Flags().Changed("connections") {
		cfg.ConnectionFile = flags.connectionFile
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputFile = flags.outputFile
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	return cfg, nil
}

// openStore builds the configured snapshot store. The returned closer is nil
// for stores without underlying handles.
func openStore(cfg *config.Config) (repositories.SnapshotStore, *sql.DB, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewStore(db), db, nil
	default:
		return csvstore.NewStore(cfg.StockFile, cfg.ConnectionFile, cfg.OutputFile), nil, nil
	}
}

// parseBundle parses ITEM=QTY arguments into a quantity map. Input is
// strictly validated; quantities must be positive integers.
func parseBundle(args []string) (map[entities.ItemCode]entities.Quantity, error) {
	required := make(map[entities.ItemCode]entities.Quantity, len(args))
	for _, arg := range args {
		code, qtyStr, ok := strings.Cut(arg, "=")
		if !ok || code == "" {
			return nil, fmt.Errorf("invalid item requirement %q (expected ITEM=QTY)", arg)
		}
		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in %q (expected positive integer)", arg)
		}
		if _, dup := required[entities.ItemCode(code)]; dup {
			return nil, fmt.Errorf("duplicate item %q in request", code)
		}
		required[entities.ItemCode(code)] = entities.Quantity(qty)
	}
	return required, nil
}
