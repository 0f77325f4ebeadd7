package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlim/stockroute/pkg/interfaces/cli/output"
)

func newStockCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Print the stock ledger of every warehouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			store, db, err := openStore(cfg)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			network, err := store.LoadNetwork(context.Background())
			if err != nil {
				return fmt.Errorf("loading network: %w", err)
			}
			return output.WriteStock(cmd.OutOrStdout(), network)
		},
	}
}
