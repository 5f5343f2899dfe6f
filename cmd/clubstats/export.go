package main

import (
	"bytes"
	"fmt"
	"os"

	sonic "github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/infrastructure/repository/file"
)

const (
	formatCSV  = "csv"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		flags  filterFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the register",
		Long: `Export the register, or a filtered slice of it.

FORMATS:

  csv    same columns as the file backend
  json   array of activity objects
  yaml   list of activity mappings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			records, err := c.services.Register.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			data, err := encodeRecords(format, records)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := c.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintln(c.out, color.GreenString("✓ Exported %d activities to %s", len(records), output))
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "csv, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func encodeRecords(format string, records []activity.Record) ([]byte, error) {
	switch format {
	case formatCSV:
		var buf bytes.Buffer
		if err := file.WriteCSV(&buf, records); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case formatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (use csv, json or yaml)", format)
	}
}
