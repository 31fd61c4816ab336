package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/plansearch"
	"github.com/pdrpinto/plansearch/domain/graph"
)

func newSolveCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "solve FILE...",
		Short: "Solve graph problems described in YAML files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			r, err := flags.newRunner(command)
			if err != nil {
				return err
			}

			results := make([]plansearch.Result[graph.Edge], len(args))
			group, ctx := errgroup.WithContext(command.Context())
			group.SetLimit(r.cfg.Search.Parallel)
			for i, path := range args {
				i, path := i, path
				group.Go(func() error {
					problem, err := graph.LoadFile(path)
					if err != nil {
						return err
					}
					result, err := search[string, graph.Edge](ctx, r, path, problem, problem, problem.Heuristic(), nil)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					results[i] = result
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			for i, path := range args {
				printResult(r.out, path, results[i])
			}
			return r.writeMetrics(r.out)
		},
	}
}

func printResult[ActionType plansearch.Action](w io.Writer, name string, result plansearch.Result[ActionType]) {
	if result.Status != plansearch.Solved {
		fmt.Fprintf(w, "%s: %s (expanded %d)\n", name, result.Status, result.Counters.Expanded)
		return
	}
	steps := make([]string, 0, len(result.Plan))
	for _, action := range result.Plan {
		steps = append(steps, fmt.Sprint(action))
	}
	fmt.Fprintf(w, "%s: solved cost=%g length=%d expanded=%d plan=[%s]\n",
		name, result.Cost, len(result.Plan), result.Counters.Expanded, strings.Join(steps, " "))
}
