package main

import (
	"context"
	"fmt"
	"mood_tracker/internal/usecases"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the mood_log table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Info().Msg("mood_log is ready")
			return nil
		},
	}
}

func newSaveCmd() *cobra.Command {
	var name, mood string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a mood for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(ctx context.Context, t *usecases.Tracker) error {
				if err := t.Save(ctx, usecases.SaveRequest{Name: name, Mood: mood}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Mood saved successfully!")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "user name (required)")
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "one of Happy, Sad, Angry, Stressed, Anxious, Neutral, Excited (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func newLogCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the mood log of a user, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(ctx context.Context, t *usecases.Tracker) error {
				log, err := t.History(ctx, name)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if log.Empty {
					fmt.Fprintln(out, "No mood logs found for you.")
					return nil
				}

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "MOOD\tDATE")
				for _, row := range log.Rows {
					fmt.Fprintf(tw, "%s\t%s\n", row.Mood, row.Date)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "user name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLastCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Print the mood that would be preselected for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(ctx context.Context, t *usecases.Tracker) error {
				last, found, err := t.LastMood(ctx, name)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "none (default %s)\n", usecases.PickDefault(last, found))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), last)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "user name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func withTracker(ctx context.Context, fn func(context.Context, *usecases.Tracker) error) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.QueryTimeout)
	defer cancel()

	return fn(ctx, usecases.NewTracker(a.moods))
}
