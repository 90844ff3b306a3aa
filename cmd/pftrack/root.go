package pftrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var storePath string

var rootCmd = &cobra.Command{
	Use:   "pftrack",
	Short: "pftrack logs daily macros against your protein floor",
	Long:  "pftrack is a local-first daily nutrition logger with a protein floor, quick-add templates, rollback snapshots, and portable backups.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to local state store")
}
