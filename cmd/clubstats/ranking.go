package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/club-activity/internal/domain/ranking"
	"github.com/riskibarqy/club-activity/internal/usecase"
)

func newPalmaresCmd(c *cli) *cobra.Command {
	var (
		flags    filterFlags
		category string
		metric   string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "palmares",
		Short: "Rank athletes by their best single activity",
		Long: `Rank athletes by the best value of one metric over a single activity.
Each athlete appears once.

METRICS:

  distance, moving_time, avg_speed, total_elevation_gain

CATEGORIES:

  running (Trail, Run), cycling (Gravel Ride, Ride, MountainBikeRide,
  VirtualRide), swimming (Swim)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			entries, err := c.services.Ranking.Palmares(cmd.Context(), usecase.PalmaresQuery{
				Filter:   filter,
				Category: category,
				Metric:   metric,
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			printEntries(c, entries)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&category, "category", "c", "", "sport category (running, cycling, swimming)")
	cmd.Flags().StringVarP(&metric, "metric", "m", string(ranking.MetricDistance), "metric to rank by")
	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "max number of athletes")
	return cmd
}

func printEntries(c *cli, entries []ranking.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No activities found.")
		return
	}
	bold := color.New(color.Bold)
	for i, entry := range entries {
		fmt.Fprintf(c.out, "%s %s %.2f\n",
			bold.Sprintf("%2d.", i+1),
			padRight(entry.Firstname+" "+entry.Lastname, 28),
			entry.Value,
		)
	}
}

func newSummaryCmd(c *cli) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Per-sport totals and means",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			totals, err := c.services.Ranking.ClubStats(cmd.Context(), filter)
			if err != nil {
				return err
			}
			rows, err := c.services.Ranking.Summary(cmd.Context(), filter)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "%s %d activities, %.2f km, %.2f h\n",
				color.New(color.Bold).Sprint("Total:"),
				totals.Activities, totals.Distance, totals.MovingTime,
			)
			if len(rows) == 0 {
				return nil
			}
			faint := color.New(color.Faint)
			fmt.Fprintln(c.out, faint.Sprintf("%s %6s %10s %8s %8s %8s", padRight("sport", 18), "count", "km", "mean km", "hours", "km/h"))
			for _, row := range rows {
				fmt.Fprintf(c.out, "%s %6d %10.2f %8.2f %8.2f %8s\n",
					padRight(row.SportType, 18),
					row.Count,
					row.TotalDistance,
					row.MeanDistance,
					row.TotalMovingTime,
					formatSpeed(row.MeanAvgSpeed),
				)
			}
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}
