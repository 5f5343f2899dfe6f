package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/club-activity/internal/app"
	"github.com/riskibarqy/club-activity/internal/config"
	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
)

const dateLayout = "2006-01-02"

type buildFunc func(ctx context.Context) (*app.Services, error)

// cli carries what every subcommand needs. Services are built lazily in
// PersistentPreRunE so --help never touches storage.
type cli struct {
	out      io.Writer
	build    buildFunc
	services *app.Services
}

func buildFromEnv(ctx context.Context) (*app.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, logging.FormatConsole)
	logging.SetDefault(logger)

	return app.Build(ctx, cfg, logger)
}

func newRootCmd(out io.Writer, build buildFunc) *cobra.Command {
	c := &cli{out: out, build: build}

	root := &cobra.Command{
		Use:   "clubstats",
		Short: "Strava club activity register and rankings",
		Long: `clubstats pulls recent activities for every club of the authenticated
Strava athlete into a local register and ranks club members.

STORAGE:

  STORAGE_BACKEND=file (default) keeps the register under DATA_DIR.
  STORAGE_BACKEND=postgres reads DB_URL.

EXAMPLES:

  clubstats ingest
  clubstats palmares --club-id 123 --category running --metric distance
  clubstats summary --club-id 123 --from 2026-03-01
  clubstats export --format yaml -o register.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			services, err := c.build(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			c.services = services
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return c.services.Close()
		},
	}
	root.SetOut(out)

	root.AddCommand(
		newIngestCmd(c),
		newPalmaresCmd(c),
		newSummaryCmd(c),
		newFetchLogCmd(c),
		newExportCmd(c),
	)
	return root
}

// filterFlags binds the register filter shared by the read commands.
type filterFlags struct {
	clubID     int64
	clubName   string
	sportTypes []string
	from       string
	to         string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.clubID, "club-id", 0, "only activities of this club")
	cmd.Flags().StringVar(&f.clubName, "club-name", "", "only activities of this club name")
	cmd.Flags().StringSliceVar(&f.sportTypes, "sport-type", nil, "sport types to keep (repeatable)")
	cmd.Flags().StringVar(&f.from, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day to include (YYYY-MM-DD)")
}

func (f *filterFlags) filter() (activity.Filter, error) {
	filter := activity.Filter{
		ClubID:     f.clubID,
		ClubName:   strings.TrimSpace(f.clubName),
		SportTypes: f.sportTypes,
	}
	var err error
	if filter.From, err = parseDay("from", f.from); err != nil {
		return activity.Filter{}, err
	}
	if filter.To, err = parseDay("to", f.to); err != nil {
		return activity.Filter{}, err
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return activity.Filter{}, fmt.Errorf("--to must not be before --from")
	}
	return filter, nil
}

func parseDay(flag, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (use YYYY-MM-DD)", flag, v)
	}
	return day, nil
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func formatSpeed(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
