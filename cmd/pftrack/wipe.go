package pftrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var wipeConfirmed bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all logged entries",
	Long:  "Deletes every logged entry. Settings, templates, and snapshots are kept, so a mistaken wipe can be undone with 'pftrack snapshot restore'.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			count := keeper.EntryCount()
			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to wipe.")
				return nil
			}
			if !wipeConfirmed {
				return fmt.Errorf("refusing to delete %d entries; re-run with --yes to confirm", count)
			}
			keeper.AuthorizeWipe()
			if err := keeper.Wipe(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wiped %d entries.\n", count)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(wipeCmd)
	wipeCmd.Flags().BoolVar(&wipeConfirmed, "yes", false, "Confirm the wipe")
}
