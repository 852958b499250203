// Package cli exposes the generators and the status board on the command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/app"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/config"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// WireFunc builds the container a command runs against. Commands that only
// touch the dashboard pass generation=false and get no LLM provider.
type WireFunc func(ctx context.Context, generation bool) (*app.Container, error)

// DefaultWire loads .env and the environment, then wires the real components
func DefaultWire(ctx context.Context, generation bool) (*app.Container, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.Environment)
	if !generation {
		return app.NewDashboard(ctx, cfg, app.Dependencies{})
	}
	return app.New(ctx, cfg, app.Dependencies{})
}

// NewRootCmd assembles ldrctl and its subcommands
func NewRootCmd(wire WireFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "ldrctl",
		Short:         "ldrctl talks to the LDR Sync generators and status board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLetterCmd(wire),
		newDateCmd(wire),
		newDistanceCmd(wire),
		newStatusCmd(wire),
	)
	return root
}

// Execute runs ldrctl with the real wiring
func Execute() {
	if err := NewRootCmd(DefaultWire).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withContainer wires a container for the command and flushes it afterwards
func withContainer(cmd *cobra.Command, wire WireFunc, generation bool, run func(ctx context.Context, c *app.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	container, err := wire(ctx, generation)
	if err != nil {
		return err
	}
	defer container.Close(ctx)
	return run(ctx, container)
}
