/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/gtechsltn/csharp-to-js/core/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tojs",
	Short: "Generate JavaScript classes from typed object definitions.",
	Long: `tojs turns typed object definitions into ES module classes.
Each type becomes one file exporting a class whose constructor assigns every
public property, importing the classes of nested instances it creates.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if noColor {
			logger.SetNoColor(true)
		}
		if logfile == "" {
			return nil
		}
		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logger.AddWriterForAll(f)
		return nil
	},
	SilenceUsage: true,
}

var logfile string
var verbose bool
var noColor bool

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
