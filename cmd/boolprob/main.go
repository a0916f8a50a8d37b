// Command boolprob estimates the time evolution of node activation
// probabilities of Boolean networks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boolprob",
		Short: "Activation probabilities of Boolean networks",
		Long: `boolprob estimates, for every node of a Boolean network given as prime
implicants, the probability that the node is active at each time step when
the initial state is drawn uniformly at random.

Three estimators are available: exact enumeration, Monte Carlo simulation and
the independent Boolean mean-field approximation.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: error, warn, info, debug, trace")
	rootCmd.PersistentFlags().String("format", "", "Output format: json or yaml")
	rootCmd.PersistentFlags().String("out", "", "Write output to this file instead of stdout")
	rootCmd.PersistentFlags().String("journal", "", "Append a JSON line per run to this file")
	rootCmd.PersistentFlags().Int("workers", 0, "Worker goroutines per estimator")

	rootCmd.AddCommand(
		newVersionCmd(),
		newModelCmd(),
		newSuccessorsCmd(),
		// Estimators
		newExactCmd(),
		newSimulateCmd(),
		newMeanFieldCmd(),
		newCompareCmd(),
		newDriversCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "boolprob version %s\n", version)
		},
	}
}
