package main

import (
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/plansearch/internal/config"
	"github.com/pdrpinto/plansearch/internal/logging"
	"github.com/pdrpinto/plansearch/metrics"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	timeout    string
	parallel   int
	cache      int
	progress   bool
	metrics    bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	command := &cobra.Command{
		Use:           "plansearch",
		Short:         "Find minimum-cost plans with eager A* search",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	persistent := command.PersistentFlags()
	persistent.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	persistent.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	persistent.StringVar(&flags.logFormat, "log-format", "", "log format: text or json")
	persistent.StringVar(&flags.timeout, "timeout", "", "abort each search after this duration, e.g. 30s")
	persistent.IntVar(&flags.parallel, "parallel", 0, "maximum number of problems solved at once")
	persistent.IntVar(&flags.cache, "heuristic-cache", 0, "LRU size for heuristic values, 0 disables")
	persistent.BoolVar(&flags.progress, "progress", false, "log every f-layer boundary")
	persistent.BoolVar(&flags.metrics, "metrics", false, "print Prometheus metrics after solving")

	command.AddCommand(newSolveCommand(flags), newGridCommand(flags))
	return command
}

// loadConfig applies explicitly set flags over the configuration file.
func (flags *rootFlags) loadConfig(command *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	changed := command.Flags().Changed
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if changed("timeout") {
		timeout, err := time.ParseDuration(flags.timeout)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Search.Timeout = timeout
	}
	if changed("parallel") {
		cfg.Search.Parallel = flags.parallel
	}
	if changed("heuristic-cache") {
		cfg.Search.HeuristicCache = flags.cache
	}
	if changed("progress") {
		cfg.Search.Progress = flags.progress
	}
	if changed("metrics") {
		cfg.Metrics.Enabled = flags.metrics
	}
	return cfg, cfg.Validate()
}

// newRunner builds the shared runtime of a subcommand.
func (flags *rootFlags) newRunner(command *cobra.Command) (*runner, error) {
	cfg, err := flags.loadConfig(command)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(command.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	r := &runner{cfg: cfg, logger: logger, out: command.OutOrStdout()}
	if cfg.Metrics.Enabled {
		r.registry = prometheus.NewRegistry()
		r.collector, err = metrics.NewCollector(r.registry, cfg.Metrics.Namespace)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// writeMetrics prints the gathered metrics in the Prometheus text format.
func (r *runner) writeMetrics(w io.Writer) error {
	if r.registry == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	encoder := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	var errs []error
	for _, family := range families {
		errs = append(errs, encoder.Encode(family))
	}
	return errors.Join(errs...)
}
