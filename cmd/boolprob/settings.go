package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolprob/internal/config"
	"github.com/katalvlaran/boolprob/internal/logging"
	"github.com/katalvlaran/boolprob/modelfile"
	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/series"
)

// session carries what every model command needs.
type session struct {
	cmd     *cobra.Command
	cfg     *config.Config
	log     *slog.Logger
	journal *logging.Journal
	model   string
	net     *network.Network
	started time.Time
}

// addRunFlags registers the estimator flags used by a command.
func addRunFlags(cmd *cobra.Command, names ...string) {
	f := cmd.Flags()
	for _, name := range names {
		switch name {
		case "steps":
			f.Int("steps", 0, "Number of reported time steps, including step 0")
		case "discipline":
			f.String("discipline", "", "Update discipline: synchronous or asynchronous")
		case "trials":
			f.Int("trials", 0, "Monte Carlo trajectories")
		case "seed":
			f.Int64("seed", 0, "Monte Carlo seed (0 selects the fixed default)")
		case "max-entries":
			f.Int("max-entries", 0, "Cap on the exact distribution size")
		case "merge":
			f.Bool("merge", false, "Merge duplicate states during exact enumeration")
		case "mode":
			f.String("mode", "", "Mean-field mode: synchronous or asynchronous-blend")
		case "max-table-rows":
			f.Int("max-table-rows", 0, "Cap on the rows of a mean-field table")
		case "fixed":
			f.StringToString("fixed", nil, "Pin mean-field nodes, e.g. --fixed A=1,B=0.3")
		}
	}
}

// loadConfig resolves defaults, the config file, the environment and the
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f.Changed("log-level") {
		cfg.Logging.Level, _ = f.GetString("log-level")
	}
	if f.Changed("format") {
		cfg.Output.Format, _ = f.GetString("format")
	}
	if f.Changed("out") {
		cfg.Output.Path, _ = f.GetString("out")
	}
	if f.Changed("journal") {
		cfg.Logging.Journal, _ = f.GetString("journal")
	}
	if f.Changed("workers") {
		cfg.Run.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("steps") {
		cfg.Run.Steps, _ = f.GetInt("steps")
	}
	if f.Changed("discipline") {
		cfg.Run.Discipline, _ = f.GetString("discipline")
	}
	if f.Changed("trials") {
		cfg.Run.Trials, _ = f.GetInt("trials")
	}
	if f.Changed("seed") {
		cfg.Run.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("max-entries") {
		cfg.Run.MaxEntries, _ = f.GetInt("max-entries")
	}
	if f.Changed("merge") {
		cfg.Run.Merge, _ = f.GetBool("merge")
	}
	if f.Changed("mode") {
		cfg.Run.Mode, _ = f.GetString("mode")
	}
	if f.Changed("max-table-rows") {
		cfg.Run.MaxTableRows, _ = f.GetInt("max-table-rows")
	}
	if f.Changed("fixed") {
		pins, _ := f.GetStringToString("fixed")
		cfg.Run.Fixed = make(map[string]float64, len(pins))
		for name, v := range pins {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --fixed value for %s: %w", name, err)
			}
			cfg.Run.Fixed[name] = p
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openSession loads the configuration and the model named by args[0].
func openSession(cmd *cobra.Command, args []string) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	net, err := modelfile.Load(args[0])
	if err != nil {
		return nil, err
	}
	journal, err := logging.OpenJournal(cfg.Logging.Journal)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	log.Debug("model loaded", "path", args[0], "nodes", net.Len())

	return &session{
		cmd:     cmd,
		cfg:     cfg,
		log:     log,
		journal: journal,
		model:   args[0],
		net:     net,
		started: time.Now(),
	}, nil
}

// close releases the journal.
func (s *session) close() {
	if err := s.journal.Close(); err != nil {
		s.log.Warn("closing journal", "error", err)
	}
}

// finish writes v, logs the run and appends it to the journal.
func (s *session) finish(estimator string, v any, attrs map[string]any) error {
	if err := s.write(v); err != nil {
		return err
	}
	elapsed := time.Since(s.started)
	s.log.Info("run complete",
		"estimator", estimator,
		"nodes", s.net.Len(),
		"steps", s.cfg.Run.Steps,
		"elapsed", elapsed)

	if ser, ok := v.(*series.Series); ok {
		for t := 0; t < ser.Steps(); t++ {
			h, _ := ser.Entropy(t)
			s.log.Log(s.cmd.Context(), logging.LevelTrace, "step", "t", t, "entropy", h)
		}
	}

	event := map[string]any{
		"estimator":  estimator,
		"model":      s.model,
		"nodes":      s.net.Len(),
		"steps":      s.cfg.Run.Steps,
		"elapsed_ms": elapsed.Milliseconds(),
	}
	for k, v := range attrs {
		event[k] = v
	}
	if err := s.journal.Record(event); err != nil {
		s.log.Warn("journal write failed", "error", err)
	}
	return nil
}

// write encodes v to the configured destination.
func (s *session) write(v any) (err error) {
	var w io.Writer = s.cmd.OutOrStdout()
	if s.cfg.Output.Path != "" {
		f, cerr := os.Create(s.cfg.Output.Path)
		if cerr != nil {
			return fmt.Errorf("creating output file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return encode(w, s.cfg.Output.Format, v)
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "yaml":
		if ser, ok := v.(*series.Series); ok {
			return ser.WriteYAML(w)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if ser, ok := v.(*series.Series); ok {
			return ser.WriteJSON(w)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
