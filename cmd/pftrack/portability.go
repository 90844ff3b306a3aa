package pftrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/state"
)

var (
	exportOut   string
	importIn    string
	importForce bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a portable JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(keeper *state.Keeper) error {
			doc, err := state.Export(keeper.Envelope())
			if err != nil {
				return err
			}
			if exportOut == "" || exportOut == "-" {
				_, err := cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(exportOut, doc, 0o644); err != nil {
				return fmt.Errorf("write backup file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", keeper.EntryCount(), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace current state from a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importIn == "" {
			return fmt.Errorf("--in is required")
		}
		raw, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read backup file: %w", err)
		}
		env, err := state.Import(raw)
		if err != nil {
			return err
		}
		return withState(cmd, func(keeper *state.Keeper) error {
			if importForce {
				keeper.AuthorizeWipe()
			}
			if err := keeper.Install(env); err != nil {
				if state.IsWipeRefusal(err) {
					return fmt.Errorf("backup has no entries and current state does; re-run with --force to replace anyway")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", len(env.Entries), importIn)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Backup file to import")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Allow importing a backup with zero entries over existing data")
}
