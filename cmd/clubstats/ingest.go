package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/club-activity/internal/usecase"
)

func newIngestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Run one ingestion cycle over the athlete's clubs",
		Long: `Fetch recent activities for every club of the authenticated athlete and
merge them into the register. Clubs above the member cap or still inside the
fetch cooldown are skipped. The first failed fetch stops the cycle; clubs
merged before it stay merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.services.Ingestion.RunCycle(cmd.Context())
			if result.RunID == "" {
				return err
			}

			faint := color.New(color.Faint)
			for _, item := range result.Clubs {
				fmt.Fprintf(c.out, "%s %s %s %s\n",
					clubStatusLabel(item.Status),
					padRight(fmt.Sprintf("%d", item.ClubID), 10),
					padRight(item.ClubName, 32),
					faint.Sprint(clubOutcomeDetail(item)),
				)
			}

			if result.StoppedEarly {
				fmt.Fprintln(c.out, color.YellowString("! cycle stopped early, register holds %d activities", result.RegisterSize))
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, color.GreenString("✓ cycle %s completed, register holds %d activities", result.RunID, result.RegisterSize))
			return nil
		},
	}
}

func clubStatusLabel(status string) string {
	label := padRight(status, 17)
	switch status {
	case usecase.ClubStatusMerged:
		return color.New(color.FgGreen).Sprint(label)
	case usecase.ClubStatusFailed:
		return color.New(color.FgRed).Sprint(label)
	case usecase.ClubStatusNotAttempted:
		return color.New(color.Faint).Sprint(label)
	default:
		return color.New(color.FgYellow).Sprint(label)
	}
}

func clubOutcomeDetail(item usecase.ClubOutcome) string {
	switch item.Status {
	case usecase.ClubStatusMerged:
		return fmt.Sprintf("%d fetched", item.Fetched)
	case usecase.ClubStatusSkippedCooldown:
		if item.LastFetchedAt != nil {
			return "last fetched " + item.LastFetchedAt.Format("2006-01-02 15:04")
		}
		return ""
	default:
		return item.Message
	}
}
