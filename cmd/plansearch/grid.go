package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/plansearch"
	"github.com/pdrpinto/plansearch/domain/grid"
	"github.com/pdrpinto/plansearch/heuristic"
)

type gridFlags struct {
	options    grid.GenerateOptions
	seed       int64
	blind      bool
	traceSteps bool
}

// stepRecord is one line of --trace-steps output.
type stepRecord struct {
	Step    int        `json:"step"`
	Current grid.Point `json:"current"`
	G       float64    `json:"g"`
	H       float64    `json:"h"`
	Done    bool       `json:"done"`
	Status  string     `json:"status,omitempty"`
}

func newGridCommand(flags *rootFlags) *cobra.Command {
	local := &gridFlags{options: grid.DefaultGenerateOptions()}
	command := &cobra.Command{
		Use:   "grid",
		Short: "Generate a random grid world and plan a route through it",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			r, err := flags.newRunner(command)
			if err != nil {
				return err
			}
			if local.seed == 0 {
				local.seed = time.Now().UnixNano()
			}
			world, err := grid.Generate(local.options, rand.New(rand.NewSource(local.seed)))
			if err != nil {
				return err
			}

			var h plansearch.Heuristic[grid.Point] = world.Heuristic()
			if local.blind {
				h = heuristic.Blind[grid.Point]{}
			}

			var onStep func(plansearch.StepSnapshot[grid.Point, grid.Move]) error
			if local.traceSteps {
				encoder := json.NewEncoder(r.out)
				onStep = func(snapshot plansearch.StepSnapshot[grid.Point, grid.Move]) error {
					record := stepRecord{Step: snapshot.StepIndex, Current: snapshot.State, G: snapshot.G, H: snapshot.H, Done: snapshot.Done}
					if snapshot.Done {
						record.Status = snapshot.Status.String()
					}
					return encoder.Encode(record)
				}
			}

			name := fmt.Sprintf("grid-%d", local.seed)
			result, err := search(command.Context(), r, name, world, world, h, onStep)
			if err != nil {
				return err
			}
			if !local.traceSteps {
				printResult(r.out, name, result)
				fmt.Fprint(r.out, world.Render(result.Plan))
			}
			return r.writeMetrics(r.out)
		},
	}

	fs := command.Flags()
	fs.IntVar(&local.options.Width, "width", local.options.Width, "grid width")
	fs.IntVar(&local.options.Height, "height", local.options.Height, "grid height")
	fs.IntVar(&local.options.Clusters, "clusters", local.options.Clusters, "number of wall clusters")
	fs.IntVar(&local.options.Steps, "steps", local.options.Steps, "random-walk length per cluster")
	fs.Float64Var(&local.options.Density, "density", local.options.Density, "wall probability per walk step")
	fs.Int64Var(&local.seed, "seed", 0, "random seed, 0 picks one from the clock")
	fs.BoolVar(&local.blind, "blind", false, "use the blind heuristic instead of Manhattan distance")
	fs.BoolVar(&local.traceSteps, "trace-steps", false, "print every accepted frame as a JSON line")
	return command
}
