package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlim/stockroute/pkg/application/services"
	"github.com/nlim/stockroute/pkg/domain/entities"
	"github.com/nlim/stockroute/pkg/infrastructure/events"
	"github.com/nlim/stockroute/pkg/interfaces/cli/output"
)

func newOptimizeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize TARGET ITEM=QTY...",
		Short: "Replenish a warehouse from the cheapest reachable source",
		Long: `Resolve the cheapest source for the requested bundle and transfer the
stock into the target warehouse. Falls back to per-item sourcing when no
single warehouse can provide the whole bundle.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAllocation(cmd, flags, args, services.Optimize)
		},
	}
}

func newDispatchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch TARGET ITEM=QTY...",
		Short: "Release stock to a customer from the cheapest reachable source",
		Long: `Resolve the cheapest source for the requested bundle, starting from the
target warehouse, and release the stock to an external customer. The stock
leaves the network entirely.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAllocation(cmd, flags, args, services.Dispatch)
		},
	}
}

func runAllocation(cmd *cobra.Command, flags *rootFlags, args []string, kind services.RequestKind) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	target := entities.WarehouseCode(args[0])
	required, err := parseBundle(args[1:])
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

	ctx := context.Background()
	network, err := store.LoadNetwork(ctx)
	if err != nil {
		return fmt.Errorf("loading network: %w", err)
	}

	out := cmd.OutOrStdout()
	if cfg.Verbose {
		fmt.Fprintln(out, "Stock before allocation:")
		if err := output.WriteStock(out, network); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	journal := events.NewInMemoryJournal()
	orchestrator := services.NewOrchestratorWithJournal(services.NewSourceSearch(), services.NewAllocator(), journal)

	var report *services.Report
	switch kind {
	case services.Optimize:
		report, err = orchestrator.Optimize(ctx, network, target, required)
	case services.Dispatch:
		report, err = orchestrator.Dispatch(ctx, network, target, required)
	}
	if err != nil {
		return err
	}

	output.WriteReport(out, report)

	if cfg.Verbose {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Stock after allocation:")
		if err := output.WriteStock(out, network); err != nil {
			return err
		}

		movements, err := journal.Read(report.RequestID.String())
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Movement journal:")
		output.WriteMovements(out, movements)
	}

	if err := store.SaveStock(ctx, network); err != nil {
		return fmt.Errorf("saving stock: %w", err)
	}
	return nil
}
