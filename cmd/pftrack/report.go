package pftrack

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate reports from logged entries",
}

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "CSV of daily totals for the current week, Monday first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			doc, err := state.WeekReport(keeper.Envelope(), time.Now())
			if err != nil {
				return err
			}
			if reportOut == "" || reportOut == "-" {
				_, err := cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(reportOut, doc, 0o644); err != nil {
				return fmt.Errorf("write report file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote weekly report to %s\n", reportOut)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportWeekCmd)
	reportWeekCmd.Flags().StringVar(&reportOut, "out", "", "Output file (default stdout)")
}
