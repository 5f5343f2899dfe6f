package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
)

func newFetchLogCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-log",
		Short: "Show the last successful fetch per club",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.services.Throttle.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(c.out, "No clubs fetched yet.")
				return nil
			}

			now := time.Now().UTC()
			cooldown := c.services.Throttle.Cooldown()
			for _, entry := range entries {
				state := color.GreenString("due")
				if due, _ := c.services.Throttle.ShouldFetch(cmd.Context(), entry.ClubID, now); !due {
					state = color.YellowString("next %s", entry.LastFetchedAt.Add(cooldown).Format("2006-01-02 15:04"))
				}
				last := entry.LastFetchedAt.Format("2006-01-02 15:04")
				if entry.LastFetchedAt.Equal(fetchlog.NeverFetched) {
					last = "never"
				}
				fmt.Fprintf(c.out, "%s %s %s\n", padRight(fmt.Sprintf("%d", entry.ClubID), 10), padRight(last, 17), state)
			}
			return nil
		},
	}
}
