/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gtechsltn/csharp-to-js/core/logger"
	"github.com/gtechsltn/csharp-to-js/core/template_engine"
	"github.com/spf13/cobra"
)

var (
	force     bool
	namespace string
)

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Initialize a new tojs project",
	Long:  `Creates a tojs.yaml config and an example types.yaml schema in <dir>.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		dir := args[0]
		if _, err := os.Stat(dir); err == nil {
			if !force {
				return fmt.Errorf("directory %s already exists, use --force to overwrite", dir)
			}
			logger.Debug("Directory %s already exists. Overwriting.", dir)
		}

		projectName := filepath.Base(filepath.Clean(dir))
		ns := namespace
		if ns == "" {
			ns = strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(projectName))
		}
		initData := map[string]string{
			"ProjectName": projectName,
			"Namespace":   ns,
		}

		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		engine := template_engine.NewTemplateEngine()
		if err := engine.GenerateFolder(template_engine.TEMPLATES.INIT.Ref, dir, initData); err != nil {
			return fmt.Errorf("failed to generate project: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Successfully generated project: %s\n", dir)
		fmt.Fprintf(out, "Next Steps:\n")
		fmt.Fprintf(out, "  - cd %s\n", dir)
		fmt.Fprintf(out, "  - tojs generate\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
	initCmd.Flags().StringVar(&namespace, "namespace", "", "Root namespace for the example schema")
}
