package cmd

import (
	"fmt"

	"github.com/clustervault/s3dirsync/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the s3dirsync version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
