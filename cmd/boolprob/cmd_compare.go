package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/boolprob/series"
)

// comparison is one row of the compare report.
type comparison struct {
	Estimator    string  `json:"estimator" yaml:"estimator"`
	MaxDeviation float64 `json:"max_deviation" yaml:"max_deviation"`
	FinalEntropy float64 `json:"final_entropy" yaml:"final_entropy"`
}

// report is the output of the compare command.
type report struct {
	Discipline string       `json:"discipline" yaml:"discipline"`
	Mode       string       `json:"mode" yaml:"mode"`
	Steps      int          `json:"steps" yaml:"steps"`
	Trials     int          `json:"trials" yaml:"trials"`
	Results    []comparison `json:"results" yaml:"results"`
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <model>",
		Short: "Compare Monte Carlo and mean-field against exact enumeration",
		Long: `Runs the three estimators on the same model and reports, for each, the
largest absolute deviation from the exact marginals over all nodes and steps,
and the mean binary entropy of the marginals at the last step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.close()

			rep, err := runCompare(s)
			if err != nil {
				return err
			}
			attrs := make(map[string]any, len(rep.Results))
			for _, c := range rep.Results {
				attrs[c.Estimator+"_deviation"] = c.MaxDeviation
			}
			return s.finish("compare", rep, attrs)
		},
	}
	addRunFlags(cmd, "steps", "discipline", "trials", "seed", "max-entries", "mode", "max-table-rows")
	return cmd
}

func runCompare(s *session) (*report, error) {
	var exactS, mcS, mfS *series.Series
	var rep report

	g, ctx := errgroup.WithContext(s.cmd.Context())
	g.Go(func() (err error) {
		exactS, err = runExact(ctx, s)
		return err
	})
	g.Go(func() (err error) {
		mcS, err = runMonteCarlo(ctx, s)
		return err
	})
	g.Go(func() error {
		out, mode, err := runMeanField(s)
		mfS = out
		rep.Mode = mode.String()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.Discipline = s.cfg.Run.Discipline
	rep.Steps = s.cfg.Run.Steps
	rep.Trials = s.cfg.Run.Trials
	for _, r := range []struct {
		name string
		s    *series.Series
	}{{"exact", exactS}, {"montecarlo", mcS}, {"meanfield", mfS}} {
		dev, err := r.s.MaxAbsDiff(exactS)
		if err != nil {
			return nil, err
		}
		h, err := r.s.Entropy(r.s.Steps() - 1)
		if err != nil {
			return nil, err
		}
		rep.Results = append(rep.Results, comparison{Estimator: r.name, MaxDeviation: dev, FinalEntropy: h})
	}
	return &rep, nil
}
