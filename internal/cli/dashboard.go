package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/app"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/dashboard"
	"github.com/spf13/cobra"
)

func newDistanceCmd(wire WireFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "distance",
		Short: "Show the distance between both cities and the days until the next visit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, wire, false, func(_ context.Context, c *app.Container) error {
				cfg := c.Config
				km := dashboard.Distance(cfg.HomeLat, cfg.HomeLon, cfg.PartnerLat, cfg.PartnerLon)
				days := dashboard.DaysUntil(time.Now(), cfg.NextMeetDate)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s <-> %s: %d km\n", cfg.HomeCity, cfg.PartnerCity, km)
				fmt.Fprintf(out, "Next meet %s: %d days\n", cfg.NextMeetDate.Format("2006-01-02"), days)
				return nil
			})
		},
	}
}

func newStatusCmd(wire WireFunc) *cobra.Command {
	var update dashboard.StatusUpdate

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the status board, or update one person with --user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, wire, false, func(ctx context.Context, c *app.Container) error {
				var (
					board dashboard.Board
					err   error
				)
				if update.User != "" {
					board, err = c.Store.Update(ctx, update)
				} else {
					board, err = c.Store.Load(ctx)
				}
				if err != nil {
					return err
				}
				printBoard(cmd, board)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&update.User, "user", "", "person to update")
	cmd.Flags().StringVar(&update.Mood, "mood", "", "new mood")
	cmd.Flags().IntVar(&update.Rating, "rating", 0, "new rating, 1 to 10")
	return cmd
}

func printBoard(cmd *cobra.Command, board dashboard.Board) {
	names := make([]string, 0, len(board))
	for name := range board {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		s := board[name]
		fmt.Fprintf(out, "%-8s %2d/10  %-30s (%s)\n", name, s.Rating, s.Mood, s.LastUpdated)
	}
}
