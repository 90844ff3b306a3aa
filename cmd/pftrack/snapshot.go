package pftrack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "List and restore rollback snapshots",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			snaps, err := keeper.Snapshots()
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "INDEX\tTAKEN\tENTRIES")
			for i, snap := range snaps {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\n",
					i, snap.TakenAt.Local().Format("2006-01-02 15:04:05"), len(snap.State.Entries))
			}
			return nil
		})
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <index>",
	Short: "Replace current state with a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid snapshot index %q", args[0])
		}
		return withState(cmd, func(keeper *state.Keeper) error {
			env, err := keeper.RestoreSnapshot(index)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot %d (%d entries).\n", index, len(env.Entries))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotListCmd, snapshotRestoreCmd)
}
