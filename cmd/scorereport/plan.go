package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/application"
)

func newPlanCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect report plans",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a report plan and print its execution order",
		Long: `Validate a report plan and print its execution order. Without a file the
built-in plan is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := flags.logger(cmd.ErrOrStderr()); err != nil {
				return err
			}

			loader, err := application.NewPlanLoader(application.NewDefaultUnitRegistry())
			if err != nil {
				return err
			}
			var plan *application.CompiledPlan
			if len(args) == 1 {
				plan, err = loader.LoadFromFile(cmd.Context(), args[0])
			} else {
				plan, err = loader.LoadDefault(cmd.Context())
			}
			if err != nil {
				return err
			}

			order, err := plan.Graph.TopologicalSort()
			if err != nil {
				return err
			}
			ids := make([]string, len(order))
			for i, node := range order {
				ids[i] = node.ID()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan:  %s (version %s)\n", plan.Name(), plan.Config.Version)
			fmt.Fprintf(out, "Hash:  %s\n", plan.Hash)
			fmt.Fprintf(out, "Units: %d\n", len(plan.Config.Units))
			fmt.Fprintf(out, "Order: %s\n", strings.Join(ids, " -> "))
			return nil
		},
	}

	defaultCmd := &cobra.Command{
		Use:   "default",
		Short: "Print the built-in report plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(application.DefaultPlanYAML())
			return err
		},
	}

	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "List the unit types a plan may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range application.NewDefaultUnitRegistry().GetSupportedTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	cmd.AddCommand(validateCmd, defaultCmd, typesCmd)
	return cmd
}
