package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/gqlrdf/config"
	"github.com/geoknoesis/gqlrdf/export"
	"github.com/geoknoesis/gqlrdf/metric"
	"github.com/geoknoesis/gqlrdf/source"
)

type exportFlags struct {
	configPath string
	envFile    string
	outputDir  string
	pageLimit  int
	strict     bool
	buffered   bool
	safeMode   bool
	logLevel   string
	logFormat  string
}

func exportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every type of the API to Turtle files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(cmd.ErrOrStderr(), flags.logLevel, flags.logFormat)
			slog.SetDefault(logger)

			loader := config.NewLoader(logger)
			loader.EnvFile = flags.envFile
			cfg, err := loader.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			applyFlags(cmd, cfg, flags)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runExport(cmd.Context(), cmd, *cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&flags.envFile, "env-file", config.DefaultEnvFile, "Dotenv file to load")
	cmd.Flags().StringVarP(&flags.outputDir, "out", "o", "", "Output directory")
	cmd.Flags().IntVar(&flags.pageLimit, "page-limit", 0, "Page size (negative disables pagination)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail a type on the first quad that cannot be written")
	cmd.Flags().BoolVar(&flags.buffered, "buffered", false, "Decode all documents of a type at once")
	cmd.Flags().BoolVar(&flags.safeMode, "safe-mode", false, "Fail a type when the JSON-LD processor would drop a value")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "text", "Log format (text, json)")
	return cmd
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags exportFlags) {
	if cmd.Flags().Changed("out") {
		cfg.Export.OutputDir = flags.outputDir
	}
	if cmd.Flags().Changed("page-limit") {
		cfg.Export.PageLimit = flags.pageLimit
	}
	if cmd.Flags().Changed("strict") {
		cfg.Export.StrictQuads = flags.strict
	}
	if cmd.Flags().Changed("buffered") {
		cfg.Export.Streaming = !flags.buffered
	}
	if cmd.Flags().Changed("safe-mode") {
		cfg.Export.SafeMode = flags.safeMode
	}
}

func newClient(cfg config.Config, logger *slog.Logger) *source.Client {
	return source.NewClient(source.ClientOptions{
		APIURL:     cfg.API.URL,
		GraphQLURL: cfg.API.GraphQLURL,
		Timeout:    cfg.API.Timeout,
		PageLimit:  cfg.Export.PageLimit,
		MaxPages:   cfg.Export.MaxPages,
		Builder:    source.NewQueryBuilder(cfg.Export.PropertyBlacklist, cfg.Export.QueryDepth),
		Logger:     logger,
	})
}

func runExport(ctx context.Context, cmd *cobra.Command, cfg config.Config, logger *slog.Logger) error {
	registry := prometheus.NewRegistry()
	metrics, err := metric.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	exporter := export.New(cfg, newClient(cfg, logger),
		export.WithLogger(logger),
		export.WithProgress(cmd.OutOrStdout()),
		export.WithMetrics(metrics),
	)
	summary, runErr := exporter.Run(ctx)

	if cfg.Metrics.PushgatewayURL != "" {
		if err := metric.Push(context.WithoutCancel(ctx), cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, registry); err != nil {
			logger.Warn("Failed to push metrics", "url", cfg.Metrics.PushgatewayURL, "error", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if failed := summary.Failed(); len(failed) > 0 {
		for _, r := range failed {
			logger.Error("Type failed", "type", r.Type, "status", r.Status, "error", r.Err)
		}
		return fmt.Errorf("%w: %s", errExportFailed, summary)
	}
	return nil
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.DefaultConfig().SaveToFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cmd
}
