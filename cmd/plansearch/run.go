package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/plansearch"
	"github.com/pdrpinto/plansearch/heuristic"
	"github.com/pdrpinto/plansearch/internal/config"
	"github.com/pdrpinto/plansearch/metrics"
)

// runner holds what every search of one command invocation shares.
type runner struct {
	cfg       config.Config
	logger    *slog.Logger
	out       io.Writer
	registry  *prometheus.Registry
	collector *metrics.Collector
}

// search runs one problem with a fresh engine. With onStep set the search
// is driven step by step and every accepted frame is reported.
func search[StateType comparable, ActionType plansearch.Action](
	ctx context.Context,
	r *runner,
	name string,
	problem plansearch.Problem[StateType, ActionType],
	successors plansearch.SuccessorGenerator[StateType, ActionType],
	h plansearch.Heuristic[StateType],
	onStep func(plansearch.StepSnapshot[StateType, ActionType]) error,
) (plansearch.Result[ActionType], error) {
	logger := r.logger.With("run_id", uuid.NewString(), "problem", name)

	if r.cfg.Search.HeuristicCache > 0 {
		cached, err := heuristic.NewCached(h, r.cfg.Search.HeuristicCache)
		if err != nil {
			return plansearch.Result[ActionType]{}, err
		}
		h = cached
	}

	engine := plansearch.New(problem, successors, h, plansearch.NewHeapOpenList(), plansearch.WithLogger(logger))
	if r.cfg.Search.Progress {
		engine.RegisterHandler(func() {
			statistics, _ := engine.Statistics()
			logger.Info("f-layer", "f", statistics.MaxF, "g", statistics.MaxG, "depth", statistics.MaxDepth,
				"expanded", statistics.Expanded, "generated", statistics.Generated, "evaluated", statistics.Evaluated)
		})
	}
	if r.collector != nil {
		engine.RegisterHandler(r.collector.Handler(engine))
	}

	if r.cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Search.Timeout)
		defer cancel()
	}
	// Interrupts and timeouts reach the search loop through the abort flag.
	stopAbort := context.AfterFunc(ctx, engine.Abort)
	defer stopAbort()

	started := time.Now()
	var (
		result plansearch.Result[ActionType]
		err    error
	)
	if onStep == nil {
		result, err = engine.Plan(ctx)
	} else {
		result, err = drive(ctx, engine, onStep)
	}
	if err != nil {
		return result, err
	}
	if r.collector != nil {
		r.collector.ObserveResult(result.Status, time.Since(started))
	}
	return result, nil
}

func drive[StateType comparable, ActionType plansearch.Action](
	ctx context.Context,
	engine *plansearch.Engine[StateType, ActionType],
	onStep func(plansearch.StepSnapshot[StateType, ActionType]) error,
) (plansearch.Result[ActionType], error) {
	stepper, err := engine.NewStepper(ctx)
	if err != nil {
		return plansearch.Result[ActionType]{}, err
	}
	for !stepper.Done() {
		snapshot, err := stepper.Step()
		if err != nil {
			return stepper.Result(), err
		}
		if err := onStep(snapshot); err != nil {
			return stepper.Result(), err
		}
	}
	return stepper.Result(), nil
}
