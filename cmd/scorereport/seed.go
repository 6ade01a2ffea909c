package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/infrastructure/rostersource"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/testutils"
)

func newSeedCmd(flags *globalFlags) *cobra.Command {
	defaults := testutils.DefaultRosterOptions()
	var (
		out     string
		seed    int64
		genOpts = defaults
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a demo roster",
		Long: `Generate a reproducible demo roster with a science and mathematics catalog.
The same --seed always produces the same roster.`,
		Example: `  scorereport seed --out demo/roster.json
  scorereport seed --out roster.yaml --classes 6A,6B,6C --students-per-class 30 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := flags.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			roster, err := testutils.GenerateSampleRoster(genOpts, seed)
			if err != nil {
				return err
			}
			if err := rostersource.Save(roster, out); err != nil {
				return err
			}

			logger.Info("roster generated", "out", out, "students", len(roster.Students), "seed", seed)
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d students in %d classes: %s\n",
				len(roster.Students), len(genOpts.Classes), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output roster file (.json, .yaml or .yml)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().StringSliceVar(&genOpts.Classes, "classes", defaults.Classes, "Class ids")
	cmd.Flags().IntVar(&genOpts.StudentsPerClass, "students-per-class", defaults.StudentsPerClass,
		"Students generated per class")
	cmd.Flags().Float64Var(&genOpts.MissingRate, "missing-rate", defaults.MissingRate,
		"Probability that a sub-topic score is left out")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
