package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/boolprob/exact"
	"github.com/katalvlaran/boolprob/meanfield"
	"github.com/katalvlaran/boolprob/montecarlo"
	"github.com/katalvlaran/boolprob/series"
)

func newExactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exact <model>",
		Short: "Enumerate every trajectory from every initial state",
		Long: `Computes the marginal activation probabilities exactly by carrying the
full weighted distribution of states forward. Memory grows with 2^n, so only
small networks are accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.close()

			out, err := runExact(cmd.Context(), s)
			if err != nil {
				return err
			}
			return s.finish("exact", out, map[string]any{"discipline": s.cfg.Run.Discipline})
		},
	}
	addRunFlags(cmd, "steps", "discipline", "max-entries", "merge")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <model>",
		Short: "Estimate probabilities from random trajectories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.close()

			out, err := runMonteCarlo(cmd.Context(), s)
			if err != nil {
				return err
			}
			return s.finish("montecarlo", out, map[string]any{
				"discipline": s.cfg.Run.Discipline,
				"trials":     s.cfg.Run.Trials,
				"seed":       s.cfg.Run.Seed,
			})
		},
	}
	addRunFlags(cmd, "steps", "discipline", "trials", "seed")
	return cmd
}

func newMeanFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meanfield <model>",
		Short: "Independent Boolean mean-field approximation",
		Long: `Tracks one probability per node, treating the nodes as independent at
every step. Without --mode the recurrence follows --discipline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.close()

			out, mode, err := runMeanField(s)
			if err != nil {
				return err
			}
			return s.finish("meanfield", out, map[string]any{"mode": mode.String()})
		},
	}
	addRunFlags(cmd, "steps", "discipline", "mode", "max-table-rows", "fixed")
	return cmd
}

func runExact(ctx context.Context, s *session) (*series.Series, error) {
	d, err := s.cfg.Discipline()
	if err != nil {
		return nil, err
	}
	opts := []exact.Option{
		exact.WithContext(ctx),
		exact.WithWorkers(s.cfg.Run.Workers),
	}
	if s.cfg.Run.MaxEntries > 0 {
		opts = append(opts, exact.WithMaxEntries(s.cfg.Run.MaxEntries))
	}
	if s.cfg.Run.Merge {
		opts = append(opts, exact.WithMergeDuplicates())
	}
	s.log.Debug("exact enumeration", "discipline", d, "steps", s.cfg.Run.Steps)
	return exact.Enumerate(s.net, d, s.cfg.Run.Steps, opts...)
}

func runMonteCarlo(ctx context.Context, s *session) (*series.Series, error) {
	d, err := s.cfg.Discipline()
	if err != nil {
		return nil, err
	}
	s.log.Debug("monte carlo", "discipline", d, "steps", s.cfg.Run.Steps,
		"trials", s.cfg.Run.Trials, "seed", s.cfg.Run.Seed)
	return montecarlo.Simulate(s.net, d, s.cfg.Run.Steps, s.cfg.Run.Trials,
		montecarlo.WithContext(ctx),
		montecarlo.WithSeed(s.cfg.Run.Seed),
		montecarlo.WithWorkers(s.cfg.Run.Workers))
}

func runMeanField(s *session) (*series.Series, meanfield.Mode, error) {
	mode, err := s.cfg.Mode()
	if err != nil {
		return nil, 0, err
	}
	opts := meanFieldOptions(s)
	s.log.Debug("mean-field approximation", "mode", mode, "steps", s.cfg.Run.Steps, "fixed", len(opts.Fixed))
	out, err := meanfield.Approximate(s.net, s.cfg.Run.Steps, mode, &opts)
	return out, mode, err
}

// meanFieldOptions maps the run configuration onto meanfield.Options.
func meanFieldOptions(s *session) meanfield.Options {
	opts := meanfield.DefaultOptions()
	opts.Workers = s.cfg.Run.Workers
	opts.Fixed = s.cfg.Run.Fixed
	if s.cfg.Run.MaxTableRows > 0 {
		opts.MaxTableRows = s.cfg.Run.MaxTableRows
	}
	return opts
}
