/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gtechsltn/csharp-to-js/core/cache"
	"github.com/gtechsltn/csharp-to-js/core/config"
	"github.com/gtechsltn/csharp-to-js/core/generator"
	"github.com/gtechsltn/csharp-to-js/core/introspect"
	"github.com/gtechsltn/csharp-to-js/core/logger"
	"github.com/gtechsltn/csharp-to-js/core/watcher"
	"github.com/spf13/cobra"
)

var (
	configPath string
	watch      bool
	dryRun     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates JavaScript classes from the type schema",
	Long: `Generates one JavaScript class file per type declared in the schema.
Configuration is read from tojs.yaml in the working directory unless --config is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("generate called")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if dryRun {
			return runPlan(cmd, cfg)
		}

		generationCache := cache.NewGenerationCache()
		if err := runGenerate(cfg, generationCache); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		return watchAndGenerate(cfg, generationCache)
	},
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

func runGenerate(cfg *config.Config, generationCache *cache.GenerationCache) error {
	g, err := generator.NewClassGenerator(cfg, generator.WithCache(generationCache))
	if err != nil {
		return err
	}

	result, err := g.GenerateSchema()
	if err != nil {
		return fmt.Errorf("failed to generate classes: %w", err)
	}

	logger.Info("Generated %d classes (%d written, %d unchanged)",
		len(result.Classes), len(result.Written), len(result.Skipped))
	return nil
}

func runPlan(cmd *cobra.Command, cfg *config.Config) error {
	g, err := generator.NewClassGenerator(cfg)
	if err != nil {
		return err
	}
	schema, err := introspect.LoadSchema(cfg.SchemaPath())
	if err != nil {
		return err
	}
	result, err := g.Build(schema.Sources())
	if err != nil {
		return fmt.Errorf("failed to build classes: %w", err)
	}
	changes, err := g.Plan(result)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, change := range changes {
		fmt.Fprintf(out, "%-9s %s\n", change.Status, change.Path)
		if len(change.ImportedBy) > 0 {
			fmt.Fprintf(out, "%-9s imported by %s\n", "", strings.Join(change.ImportedBy, ", "))
		}
		if verbose && change.Diff != "" {
			fmt.Fprint(out, change.Diff)
		}
	}
	return nil
}

func watchAndGenerate(cfg *config.Config, generationCache *cache.GenerationCache) error {
	fw, err := watcher.NewFileWatcher(cfg)
	if err != nil {
		return err
	}

	fw.OnStart = func() error {
		logger.Info("Watching %s for changes", fw.RootDir)
		return nil
	}
	// OnChange runs one batch at a time, so cfg is only touched by one run.
	fw.OnChange = func(change watcher.Change) error {
		if change.ConfigChanged {
			reloaded, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Info("Config changed, regenerating everything")
			generationCache.Clear()
			cfg = reloaded
			if err := fw.Reconfigure(cfg); err != nil {
				return err
			}
		}
		return runGenerate(cfg, generationCache)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		logger.Info("Stopping watcher")
		fw.Close()
	}()

	if err := fw.Watch(); err != nil && !errors.Is(err, watcher.ErrClosed) {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	generateCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate when the schema or config changes")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print which files would change without writing them")
}
