package cli

import (
	"context"
	"fmt"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/app"
	"github.com/spf13/cobra"
)

func newLetterCmd(wire WireFunc) *cobra.Command {
	var mood string

	cmd := &cobra.Command{
		Use:   "letter",
		Short: "Write a short love letter for a mood",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, wire, true, func(ctx context.Context, c *app.Container) error {
				result := c.Generation.GenerateLetter(ctx, mood)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "To: %s\n", result.Recipient)
				fmt.Fprintf(out, "Mood: %s\n\n", result.Mood)
				fmt.Fprintln(out, result.Text)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mood, "mood", "", "feeling the letter should express")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func newDateCmd(wire WireFunc) *cobra.Command {
	var duration, vibe string

	cmd := &cobra.Command{
		Use:   "date",
		Short: "Plan a virtual date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, wire, true, func(ctx context.Context, c *app.Container) error {
				result := c.Generation.GenerateDatePlan(ctx, duration, vibe)
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", result.Source, result.Text)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&duration, "duration", "", "how long the date lasts, e.g. \"1 Hour\"")
	cmd.Flags().StringVar(&vibe, "vibe", "", "mood of the date, e.g. \"Chill\"")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("vibe")
	return cmd
}
