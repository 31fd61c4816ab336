package plansearch

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrOpenListNotEmpty is returned when a search is started on an open list
// that still holds entries.
var ErrOpenListNotEmpty = errors.New("plansearch: open list is not initially empty")

const tracerName = "github.com/pdrpinto/plansearch"

// Engine runs eager A* searches over one problem. It owns the frames and the
// state index of the running search; only one search may run at a time.
//
// The open list is shared with the caller and must be empty when a search
// starts. A solved or aborted search may leave entries behind.
type Engine[StateType comparable, ActionType Action] struct {
	Control

	problem    Problem[StateType, ActionType]
	successors SuccessorGenerator[StateType, ActionType]
	heuristic  Heuristic[StateType]
	openList   OpenList

	options Options
	tracer  trace.Tracer
}

// New creates an engine from its collaborators.
func New[StateType comparable, ActionType Action](
	problem Problem[StateType, ActionType],
	successors SuccessorGenerator[StateType, ActionType],
	heuristic Heuristic[StateType],
	openList OpenList,
	options ...Option,
) *Engine[StateType, ActionType] {

	// --- Apply options ---
	engineOptions := defaultOptions()
	for _, option := range options {
		option(&engineOptions)
	}

	return &Engine[StateType, ActionType]{
		problem:    problem,
		successors: successors,
		heuristic:  heuristic,
		openList:   openList,
		options:    engineOptions,
		tracer:     engineOptions.TracerProvider.Tracer(tracerName),
	}
}

// Plan searches for a minimum-cost plan. Abort requests and ctx cancellation
// both end the search with status Aborted and a nil error. Errors returned by
// the collaborators end the search and are returned wrapped.
func (engine *Engine[StateType, ActionType]) Plan(ctx context.Context) (Result[ActionType], error) {
	ctx, span := engine.tracer.Start(ctx, "plansearch.Plan")
	defer span.End()
	started := time.Now()

	stepper, err := engine.NewStepper(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result[ActionType]{}, err
	}

	for {
		snapshot, err := stepper.Step()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			engine.options.Logger.Error("search failed", "error", err, "expanded", stepper.counters.Expanded)
			return Result[ActionType]{Counters: stepper.counters}, err
		}
		if snapshot.Done {
			break
		}
	}

	result := stepper.Result()
	span.SetAttributes(
		attribute.String("plansearch.status", result.Status.String()),
		attribute.Int("plansearch.expanded", result.Counters.Expanded),
		attribute.Int("plansearch.generated", result.Counters.Generated),
		attribute.Int("plansearch.evaluated", result.Counters.Evaluated),
		attribute.Int("plansearch.plan_length", len(result.Plan)),
		attribute.Float64("plansearch.plan_cost", result.Cost),
	)
	engine.options.Logger.Info("search finished",
		"status", result.Status.String(),
		"plan_length", len(result.Plan),
		"cost", result.Cost,
		"expanded", result.Counters.Expanded,
		"generated", result.Counters.Generated,
		"evaluated", result.Counters.Evaluated,
		"elapsed", time.Since(started),
	)
	return result, nil
}
