package pftrack

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/lookup"
	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var (
	lookupJSON  bool
	searchLimit int
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up foods in external catalogs",
}

var lookupBarcodeCmd = &cobra.Command{
	Use:   "barcode <code>",
	Short: "Look up a product by barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			svc := lookup.NewService(resolveAPIKey(keeper.Envelope()))
			record, err := svc.Barcode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRecords(cmd, []lookup.Record{record})
		})
	},
}

var lookupSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			svc := lookup.NewService(resolveAPIKey(keeper.Envelope()))
			records, err := svc.Search(cmd.Context(), strings.Join(args, " "), searchLimit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results.")
				return nil
			}
			return printRecords(cmd, records)
		})
	},
}

func printRecords(cmd *cobra.Command, records []lookup.Record) error {
	if lookupJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "NAME\tSERVING\tKCAL\tPROTEIN\tCARBS\tFAT\tSOURCE")
	for _, r := range records {
		m := r.MacrosPerServing
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.1fg\t%.1fg\t%.1fg\t%s\n",
			r.Name, r.ServingSizeLabel, m.Calories, m.Protein, m.Carbs, m.Fat, r.Source)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.AddCommand(lookupBarcodeCmd, lookupSearchCmd)

	lookupCmd.PersistentFlags().BoolVar(&lookupJSON, "json", false, "Print results as JSON")
	lookupSearchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
}
