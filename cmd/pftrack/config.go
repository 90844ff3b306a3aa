package pftrack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
}

var configFloorCmd = &cobra.Command{
	Use:   "floor <grams>",
	Short: "Set the daily protein floor in grams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grams, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid grams %q", args[0])
		}
		return withState(cmd, func(keeper *state.Keeper) error {
			if err := keeper.SetProteinFloor(grams); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Protein floor set to %.0fg/day\n", grams)
			return nil
		})
	},
}

var configAPIKeyCmd = &cobra.Command{
	Use:   "apikey <key>",
	Short: "Store the nutrition-lookup API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			if err := keeper.SetExternalAPIKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")
			return nil
		})
	},
}

var configRoadTripCmd = &cobra.Command{
	Use:   "roadtrip <on|off>",
	Short: "Toggle road trip mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch strings.ToLower(strings.TrimSpace(args[0])) {
		case "on", "true", "1":
			enabled = true
		case "off", "false", "0":
			enabled = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}
		return withState(cmd, func(keeper *state.Keeper) error {
			if err := keeper.SetRoadTripMode(enabled); err != nil {
				return err
			}
			if enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Road trip mode enabled. Floor shortfalls will not nag.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Road trip mode disabled.")
			}
			return nil
		})
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			env := keeper.Envelope()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Protein floor:   %.0fg/day\n", env.ProteinFloorGramsPerDay)
			fmt.Fprintf(out, "Road trip mode:  %v\n", env.RoadTripModeEnabled)
			if env.ExternalAPIKey != "" {
				fmt.Fprintf(out, "API key:         set (%s...)\n", safePrefix(env.ExternalAPIKey, 4))
			} else {
				fmt.Fprintln(out, "API key:         not set")
			}
			fmt.Fprintf(out, "Entries:         %d\n", len(env.Entries))
			fmt.Fprintf(out, "Templates:       %d\n", len(env.QuickAddTemplates))
			fmt.Fprintf(out, "Schema version:  %d\n", env.SchemaVersion)
			if !env.SavedAt.IsZero() {
				fmt.Fprintf(out, "Last saved:      %s\n", env.SavedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		})
	},
}

func safePrefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configFloorCmd, configAPIKeyCmd, configRoadTripCmd, configShowCmd)
}
