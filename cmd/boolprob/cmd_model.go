package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/boolprob/modelfile"
	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/successor"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model <model>",
		Short: "Validate a model file and print it in normalized form",
		Long: `Parses the model, then prints it back with nodes and literals sorted and
values written as 0/1. The node order shown is the coordinate order of states
given to the successors command. With --summary it prints node order and
implicant counts in the configured format instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			net, err := modelfile.Load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if summary, _ := cmd.Flags().GetBool("summary"); summary {
				return encode(w, cfg.Output.Format, describe(net))
			}
			return modelfile.Encode(w, net)
		},
	}
	cmd.Flags().Bool("summary", false, "Print node order and implicant counts")
	return cmd
}

// modelSummary is the JSON view of a model.
type modelSummary struct {
	Nodes      []string       `json:"nodes" yaml:"nodes"`
	Positive   map[string]int `json:"positive_implicants" yaml:"positive_implicants"`
	Negative   map[string]int `json:"negative_implicants" yaml:"negative_implicants"`
	Enumerable bool           `json:"enumerable" yaml:"enumerable"`
}

func describe(net *network.Network) modelSummary {
	sum := modelSummary{
		Nodes:      net.Nodes(),
		Positive:   make(map[string]int, net.Len()),
		Negative:   make(map[string]int, net.Len()),
		Enumerable: net.Len() <= network.MaxEnumerableNodes,
	}
	for i, name := range sum.Nodes {
		sum.Positive[name] = len(net.Positive(i))
		sum.Negative[name] = len(net.Negative(i))
	}
	return sum
}

// successorReport lists the successors of one state.
type successorReport struct {
	Discipline string   `json:"discipline" yaml:"discipline"`
	Nodes      []string `json:"nodes" yaml:"nodes"`
	State      string   `json:"state" yaml:"state"`
	Successors []string `json:"successors" yaml:"successors"`
	Steady     bool     `json:"steady" yaml:"steady"`
}

func newSuccessorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "successors <model> <state>",
		Short: "List the successors of a state",
		Long: `Prints the successor states of <state>, a 0/1 string in the node order
reported by the model command. A state without asynchronous successors is
reported as steady.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			d, err := cfg.Discipline()
			if err != nil {
				return err
			}
			net, err := modelfile.Load(args[0])
			if err != nil {
				return err
			}
			st, err := network.ParseState(args[1])
			if err != nil {
				return err
			}
			if st.Len() != net.Len() {
				return fmt.Errorf("state %q has %d values, model has %d nodes", args[1], st.Len(), net.Len())
			}

			succ, err := successor.Successors(net, st, d)
			if err != nil {
				return err
			}
			rep := successorReport{
				Discipline: d.String(),
				Nodes:      net.Nodes(),
				State:      st.String(),
				Successors: make([]string, 0, len(succ)),
				Steady:     len(succ) == 0 || (len(succ) == 1 && succ[0] == st),
			}
			for _, x := range succ {
				rep.Successors = append(rep.Successors, x.String())
			}
			return encode(cmd.OutOrStdout(), cfg.Output.Format, rep)
		},
	}
	addRunFlags(cmd, "discipline")
	return cmd
}
