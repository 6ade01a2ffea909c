package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/infrastructure/export"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/infrastructure/middleware"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/infrastructure/rostersource"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/application"
)

type runOptions struct {
	roster      string
	plan        string
	format      string
	out         string
	metricsFile string
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute a report from a roster",
		Long: `Compute a report from a roster file (JSON or YAML) and write it as JSON or as
an XLSX workbook. Without --plan the built-in school overview plan is used.`,
		Example: `  scorereport run --roster roster.json
  scorereport run --roster roster.yaml --plan examples/plans/class_radar.yaml --out report.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := flags.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), opts, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().StringVar(&opts.roster, "roster", "", "Roster file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&opts.plan, "plan", "", "Report plan YAML (default: built-in plan)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: json or xlsx (default: from --out, else json)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "Output file, or - for stdout")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "",
		"Write Prometheus metrics of the run to this file in text format")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

// resolveFormat picks the output format from --format, falling back to the
// --out extension and then to JSON.
func resolveFormat(format, out string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if strings.EqualFold(filepath.Ext(out), ".xlsx") {
		return export.FormatXLSX, nil
	}
	return export.FormatJSON, nil
}

func runReport(ctx context.Context, opts *runOptions, stdout io.Writer, logger *slog.Logger) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := resolveFormat(opts.format, opts.out)
	if err != nil {
		return err
	}
	if format == export.FormatXLSX && opts.out == "-" {
		return errors.New("xlsx output requires --out")
	}

	source, err := rostersource.NewFile(opts.roster)
	if err != nil {
		return err
	}
	roster, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics := middleware.NewPrometheusMetrics(reg)

	registry := application.NewDefaultUnitRegistry()
	registry.Use(middleware.Instrument(
		middleware.WithMetricsCollector(metrics),
		middleware.WithLogger(logger),
	))

	loader, err := application.NewPlanLoader(registry)
	if err != nil {
		return err
	}
	var plan *application.CompiledPlan
	if opts.plan != "" {
		plan, err = loader.LoadFromFile(ctx, opts.plan)
	} else {
		plan, err = loader.LoadDefault(ctx)
	}
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	runner := application.NewReportRunner(
		application.WithLogger(logger),
		application.WithMetrics(metrics),
	)
	report, err := runner.Run(ctx, roster, plan)
	if err != nil {
		return err
	}

	w := stdout
	if opts.out != "-" {
		if err := os.MkdirAll(filepath.Dir(opts.out), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = f
	}

	writer, err := export.NewWriter(format, w)
	if err != nil {
		return err
	}
	if err := writer.Write(ctx, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	logger.Info("report written", "id", report.ID, "format", format, "out", opts.out)
	return nil
}
