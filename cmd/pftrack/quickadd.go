package pftrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var (
	quickAddCalories float64
	quickAddProtein  float64
	quickAddCarbs    float64
	quickAddFat      float64
	quickAddServing  string
	quickUseQty      float64
	quickUseMeal     string
)

var quickaddCmd = &cobra.Command{
	Use:   "quickadd",
	Short: "Manage and use quick-add templates",
}

var quickaddAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a new quick-add template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			tpl := model.QuickAddTemplate{
				Name:             args[0],
				ServingSizeLabel: quickAddServing,
				MacrosPerServing: model.Macro{
					Calories: quickAddCalories,
					Protein:  quickAddProtein,
					Carbs:    quickAddCarbs,
					Fat:      quickAddFat,
				},
			}
			if err := keeper.AddQuickAddTemplate(tpl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %q\n", tpl.Name)
			return nil
		})
	},
}

var quickaddListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quick-add templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			env := keeper.Envelope()
			if len(env.QuickAddTemplates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quick-add templates saved.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tSERVING\tKCAL\tPROTEIN\tCARBS\tFAT")
			for _, tpl := range env.QuickAddTemplates {
				m := tpl.MacrosPerServing
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.1fg\t%.1fg\t%.1fg\n",
					tpl.Name, tpl.ServingSizeLabel, m.Calories, m.Protein, m.Carbs, m.Fat)
			}
			return nil
		})
	},
}

var quickaddRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a quick-add template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			if err := keeper.RemoveQuickAddTemplate(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed template %q\n", args[0])
			return nil
		})
	},
}

var quickaddUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Log an entry from a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			entry, err := keeper.ApplyQuickAdd(args[0], quickUseQty, model.ParseMealTag(quickUseMeal))
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

func init() {
	rootCmd.AddCommand(quickaddCmd)
	quickaddCmd.AddCommand(quickaddAddCmd, quickaddListCmd, quickaddRemoveCmd, quickaddUseCmd)

	quickaddAddCmd.Flags().Float64Var(&quickAddCalories, "calories", 0, "Calories per serving")
	quickaddAddCmd.Flags().Float64Var(&quickAddProtein, "protein", 0, "Protein grams per serving")
	quickaddAddCmd.Flags().Float64Var(&quickAddCarbs, "carbs", 0, "Carb grams per serving")
	quickaddAddCmd.Flags().Float64Var(&quickAddFat, "fat", 0, "Fat grams per serving")
	quickaddAddCmd.Flags().StringVar(&quickAddServing, "serving", "", "Serving size label, e.g. '1 scoop'")

	quickaddUseCmd.Flags().Float64Var(&quickUseQty, "qty", 1, "Number of servings")
	quickaddUseCmd.Flags().StringVar(&quickUseMeal, "meal", "snack", "Meal tag: breakfast|lunch|dinner|snack")
}
