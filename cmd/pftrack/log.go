package pftrack

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/lookup"
	"github.com/dandelion9999/protein-floor-tracker/internal/model"
	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var (
	logName     string
	logCalories float64
	logProtein  float64
	logCarbs    float64
	logFat      float64
	logQty      float64
	logServing  string
	logMeal     string
	logBarcode  string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a consumption entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			in := state.AddEntryInput{
				Name:             logName,
				Source:           state.SourceManual,
				ServingSizeLabel: logServing,
				Quantity:         logQty,
				Macros:           model.Macro{Calories: logCalories, Protein: logProtein, Carbs: logCarbs, Fat: logFat},
				MealTag:          model.ParseMealTag(logMeal),
			}
			if logBarcode != "" {
				svc := lookup.NewService(resolveAPIKey(keeper.Envelope()))
				record, err := svc.Barcode(cmd.Context(), logBarcode)
				if err != nil {
					return err
				}
				in.Name = record.Name
				in.Source = state.SourceLookup
				in.ServingSizeLabel = record.ServingSizeLabel
				in.Macros = record.MacrosPerServing
			}
			entry, err := keeper.AddEntry(in)
			if err != nil {
				return err
			}
			total := entry.Total()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s): %.0f kcal, %.1fg protein\n",
				entry.Name, shortID(entry.ID), total.Calories, total.Protein)
			return nil
		})
	},
}

var listToday bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			env := keeper.Envelope()
			today := time.Now().Format("2006-01-02")
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tWHEN\tMEAL\tNAME\tQTY\tKCAL\tPROTEIN")
			for _, e := range env.Entries {
				when := e.CreatedAt.Local()
				if listToday && when.Format("2006-01-02") != today {
					continue
				}
				total := e.Total()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%g\t%.0f\t%.1fg\n",
					shortID(e.ID), when.Format("2006-01-02 15:04"), e.MealTag, e.Name, e.Quantity, total.Calories, total.Protein)
			}
			return nil
		})
	},
}

var quantityCmd = &cobra.Command{
	Use:   "quantity <entry-id> <qty>",
	Short: "Change the quantity of an existing entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := parsePositiveFloat("quantity", args[1])
		if err != nil {
			return err
		}
		return withState(cmd, func(keeper *state.Keeper) error {
			id, err := findEntryID(keeper, args[0])
			if err != nil {
				return err
			}
			if err := keeper.UpdateEntryQuantity(id, qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated quantity for %s\n", shortID(id))
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete one logged entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			id, err := findEntryID(keeper, args[0])
			if err != nil {
				return err
			}
			if err := keeper.DeleteEntry(id); err != nil {
				if state.IsWipeRefusal(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), "refused: deleting the last entry empties your history; use 'pftrack wipe' if that is really what you want")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(id))
			return nil
		})
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's totals against the protein floor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			env := keeper.Envelope()
			total := env.TotalForDay(time.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Today: %.0f kcal | %.1fg protein | %.1fg carbs | %.1fg fat\n",
				total.Calories, total.Protein, total.Carbs, total.Fat)
			remaining := env.ProteinFloorGramsPerDay - total.Protein
			switch {
			case env.RoadTripModeEnabled:
				fmt.Fprintf(out, "Protein floor: %.0fg (road trip mode, floor relaxed)\n", env.ProteinFloorGramsPerDay)
			case remaining > 0:
				fmt.Fprintf(out, "Protein floor: %.0fg, %.1fg to go\n", env.ProteinFloorGramsPerDay, remaining)
			default:
				fmt.Fprintf(out, "Protein floor: %.0fg, met\n", env.ProteinFloorGramsPerDay)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd, listCmd, quantityCmd, deleteCmd, todayCmd)

	logCmd.Flags().StringVar(&logName, "name", "", "Entry name")
	logCmd.Flags().Float64Var(&logCalories, "calories", 0, "Calories per unit")
	logCmd.Flags().Float64Var(&logProtein, "protein", 0, "Protein grams per unit")
	logCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "Carb grams per unit")
	logCmd.Flags().Float64Var(&logFat, "fat", 0, "Fat grams per unit")
	logCmd.Flags().Float64Var(&logQty, "qty", 1, "Quantity of units consumed")
	logCmd.Flags().StringVar(&logServing, "serving", "", "Serving size label, e.g. '1 bowl'")
	logCmd.Flags().StringVar(&logMeal, "meal", "snack", "Meal tag: breakfast|lunch|dinner|snack")
	logCmd.Flags().StringVar(&logBarcode, "barcode", "", "Fill the entry from a barcode lookup")

	listCmd.Flags().BoolVar(&listToday, "today", false, "Only show today's entries")
}
