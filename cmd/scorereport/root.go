package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "scorereport",
		Short: "Aggregate exam scores into dashboard reports",
		Long: `scorereport turns a roster of subjects, students and sub-topic scores into a
report: per-student subject and total percentages, cohort statistics for box
plots, rankings with top, bottom and at-risk lists, weakest-first sub-topic
gaps and radar comparisons. What is computed is described by a YAML report
plan; a default plan is built in.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("scorereport version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn",
		"Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text",
		"Log format: text or json")

	cmd.AddCommand(newRunCmd(flags), newSeedCmd(flags), newPlanCmd(flags))
	return cmd
}

// logger builds the command logger writing to w.
func (f *globalFlags) logger(w io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: levelFromString(f.logLevel)}
	switch strings.ToLower(f.logFormat) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: must be text or json", f.logFormat)
	}
}

// levelFromString converts a case-insensitive level name to a slog.Level.
// Unrecognized names fall back to warn.
func levelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
