package cmd

import "github.com/spf13/cobra"

// storeCmd groups storage-related subcommands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Storage utilities",
}

func init() {
	rootCmd.AddCommand(storeCmd)
}
