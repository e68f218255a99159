/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/gtechsltn/csharp-to-js/core/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of tojs",
	Long:  `Displays the version of tojs.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tojs %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
