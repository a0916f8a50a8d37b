package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/boolprob/meanfield"
	"github.com/katalvlaran/boolprob/series"
)

// driverReport is the output of the drivers command.
type driverReport struct {
	Mode    string             `json:"mode" yaml:"mode"`
	Steps   int                `json:"steps" yaml:"steps"`
	Fixes   []meanfield.Fix    `json:"fixes" yaml:"fixes"`
	Fixed   map[string]float64 `json:"fixed" yaml:"fixed"`
	Entropy float64            `json:"entropy" yaml:"entropy"`
	Series  *series.Series     `json:"series" yaml:"series"`
}

func newDriversCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drivers <model>",
		Short: "Greedily find node fixes that determine the mean-field state",
		Long: `Repeatedly pins the single node value (0 or 1) that most lowers the mean
binary entropy of the mean-field marginals at the last step, until that
entropy is 0 or every node is pinned. --fixed seeds the search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.close()

			mode, err := s.cfg.Mode()
			if err != nil {
				return err
			}
			opts := meanFieldOptions(s)
			s.log.Debug("driver set search", "mode", mode, "steps", s.cfg.Run.Steps, "fixed", len(opts.Fixed))

			ds, err := meanfield.FindDriverSet(s.net, s.cfg.Run.Steps, mode, &opts)
			if err != nil {
				return err
			}
			for i, f := range ds.Fixes {
				s.log.Debug("fix chosen", "round", i+1, "fix", f.String())
			}
			rep := &driverReport{
				Mode:    mode.String(),
				Steps:   s.cfg.Run.Steps,
				Fixes:   ds.Fixes,
				Fixed:   ds.Fixed,
				Entropy: ds.Entropy,
				Series:  ds.Series,
			}
			if rep.Fixes == nil {
				rep.Fixes = []meanfield.Fix{}
			}
			return s.finish("drivers", rep, map[string]any{"fixes": len(ds.Fixes), "entropy": ds.Entropy})
		},
	}
	addRunFlags(cmd, "steps", "discipline", "mode", "max-table-rows", "fixed")
	return cmd
}
