package plansearch

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdrpinto/plansearch/internal/store"
)

// StepSnapshot exposes the state of the search after one accepted frame.
type StepSnapshot[StateType comparable, ActionType Action] struct {
	StepIndex int
	Handle    Handle
	State     StateType
	Depth     int
	G         float64
	H         float64
	Done      bool
	Status    Status
	Plan      []ActionType
	Counters  Statistics
}

// Stepper runs the search of an Engine one accepted frame per Step call.
// Engine.Plan is a Stepper driven to completion.
type Stepper[StateType comparable, ActionType Action] struct {
	ctx    context.Context
	engine *Engine[StateType, ActionType]

	records *store.Records[StateType, ActionType]
	index   *store.Index[StateType]

	counters  Statistics
	lastF     float64
	stepCount int

	done   bool
	status Status
	plan   []ActionType
	cost   float64
	err    error
}

// NewStepper starts a search: it clears the statistics, evaluates the
// initial state and queues it. ctx cancellation aborts the search at the next
// accepted frame.
func (engine *Engine[StateType, ActionType]) NewStepper(ctx context.Context) (*Stepper[StateType, ActionType], error) {
	if engine.openList.Len() > 0 {
		return nil, ErrOpenListNotEmpty
	}
	engine.clearStatistics()

	stepper := &Stepper[StateType, ActionType]{
		ctx:     ctx,
		engine:  engine,
		records: store.NewRecords[StateType, ActionType](),
		index:   store.NewIndex[StateType](),
		lastF:   math.Inf(-1),
	}

	// --- Initialize state ---
	initialState, err := engine.problem.InitialState()
	if err != nil {
		return nil, fmt.Errorf("plansearch: initial state: %w", err)
	}
	initialH, err := engine.heuristic.Evaluate(initialState)
	if err != nil {
		return nil, fmt.Errorf("plansearch: evaluate initial state: %w", err)
	}
	stepper.counters.Evaluated++

	deadEnd := IsDeadEnd(initialH)
	initialHandle, _ := stepper.index.LookupOrReserve(initialState, stepper.records.Next())
	stepper.records.Allocate(store.Frame[StateType, ActionType]{
		State:  initialState,
		H:      initialH,
		Closed: deadEnd,
	})
	if !deadEnd {
		engine.openList.Insert(initialHandle, initialH)
	}
	return stepper, nil
}

// Step pops frames until one is accepted for expansion, then expands it.
// Once the search is done every call returns the final snapshot. A failed
// step is terminal: later calls return the same error.
func (stepper *Stepper[StateType, ActionType]) Step() (StepSnapshot[StateType, ActionType], error) {
	if stepper.err != nil {
		return StepSnapshot[StateType, ActionType]{}, stepper.err
	}
	if stepper.done {
		return stepper.finalSnapshot(), nil
	}

	engine := stepper.engine
	handle := NoHandle
	for handle == NoHandle {
		if engine.openList.Len() == 0 {
			return stepper.finish(Unsolvable, nil, 0), nil
		}
		candidate := engine.openList.Pop()
		// Skip stale duplicates of already closed frames
		if !stepper.records.Get(candidate).Closed {
			handle = candidate
		}
	}

	frame := stepper.records.Get(handle)
	frame.Closed = true
	stepper.stepCount++
	f := frame.G + frame.H
	stepper.counters.MaxDepth = max(stepper.counters.MaxDepth, frame.Depth)
	stepper.counters.MaxG = max(stepper.counters.MaxG, frame.G)
	stepper.counters.MaxF = max(stepper.counters.MaxF, f)

	if f > stepper.lastF {
		stepper.lastF = f
		stepper.reachLayer(frame, f)
	}

	if engine.Aborted() || stepper.ctx.Err() != nil {
		return stepper.finish(Aborted, nil, 0), nil
	}

	// Goal check
	if engine.problem.GoalHolds(frame.State) {
		return stepper.finish(Solved, stepper.records.Actions(handle), frame.G), nil
	}

	stepper.counters.Expanded++
	if err := stepper.expand(handle); err != nil {
		stepper.err = err
		stepper.done = true
		return StepSnapshot[StateType, ActionType]{}, err
	}

	return StepSnapshot[StateType, ActionType]{
		StepIndex: stepper.stepCount,
		Handle:    handle,
		State:     frame.State,
		Depth:     frame.Depth,
		G:         frame.G,
		H:         frame.H,
		Counters:  stepper.counters,
	}, nil
}

// expand generates the successors of handle. Frames are addressed by handle
// only after the index lookup has returned.
func (stepper *Stepper[StateType, ActionType]) expand(handle Handle) error {
	engine := stepper.engine
	parent := *stepper.records.Get(handle)

	actions, err := engine.successors.ApplicableActions(parent.State)
	if err != nil {
		return fmt.Errorf("plansearch: applicable actions: %w", err)
	}

	for _, action := range actions {
		successorState, err := engine.problem.Apply(action, parent.State)
		if err != nil {
			return fmt.Errorf("plansearch: apply action: %w", err)
		}
		successorG := parent.G + action.Cost()
		successorHandle, wasNew := stepper.index.LookupOrReserve(successorState, stepper.records.Next())

		if wasNew {
			successorH, err := engine.heuristic.Evaluate(successorState)
			if err != nil {
				return fmt.Errorf("plansearch: evaluate state: %w", err)
			}
			stepper.counters.Evaluated++

			deadEnd := IsDeadEnd(successorH)
			stepper.records.Allocate(store.Frame[StateType, ActionType]{
				State:       successorState,
				Action:      action,
				HasAction:   true,
				Predecessor: handle,
				Depth:       parent.Depth + 1,
				G:           successorG,
				H:           successorH,
				Closed:      deadEnd,
			})
			if !deadEnd {
				engine.openList.Insert(successorHandle, successorG+successorH)
				stepper.counters.Generated++
			}
			continue
		}

		successor := stepper.records.Get(successorHandle)
		if successorG < successor.G {
			successor.Action = action
			successor.HasAction = true
			successor.Predecessor = handle
			successor.Depth = parent.Depth + 1
			successor.G = successorG

			// The older queue entry stays and is dropped when popped.
			if !IsDeadEnd(successor.H) {
				engine.openList.Insert(successorHandle, successorG+successor.H)
				stepper.counters.Generated++
			}
		}
	}
	return nil
}

func (stepper *Stepper[StateType, ActionType]) reachLayer(frame *store.Frame[StateType, ActionType], f float64) {
	snapshot := Statistics{
		Expanded:  stepper.counters.Expanded,
		Generated: stepper.counters.Generated,
		Evaluated: stepper.counters.Evaluated,
		MaxDepth:  frame.Depth,
		MaxG:      frame.G,
		MaxF:      f,
	}
	stepper.engine.options.Logger.Debug("f-layer reached",
		"f", f,
		"depth", frame.Depth,
		"expanded", snapshot.Expanded,
		"generated", snapshot.Generated,
		"evaluated", snapshot.Evaluated,
	)
	trace.SpanFromContext(stepper.ctx).AddEvent("layer", trace.WithAttributes(
		attribute.Float64("plansearch.f", f),
		attribute.Int("plansearch.expanded", snapshot.Expanded),
	))
	stepper.engine.publish(snapshot)
}

func (stepper *Stepper[StateType, ActionType]) finish(status Status, plan []ActionType, cost float64) StepSnapshot[StateType, ActionType] {
	stepper.done = true
	stepper.status = status
	stepper.plan = plan
	stepper.cost = cost
	return stepper.finalSnapshot()
}

func (stepper *Stepper[StateType, ActionType]) finalSnapshot() StepSnapshot[StateType, ActionType] {
	return StepSnapshot[StateType, ActionType]{
		StepIndex: stepper.stepCount,
		Done:      true,
		Status:    stepper.status,
		Plan:      stepper.plan,
		Counters:  stepper.counters,
	}
}

// Done reports whether the search has ended, successfully or not.
func (stepper *Stepper[StateType, ActionType]) Done() bool {
	return stepper.done
}

// Counters returns the current counters of the search.
func (stepper *Stepper[StateType, ActionType]) Counters() Statistics {
	return stepper.counters
}

// Frames returns the number of frames recorded so far, the dummy root
// excluded.
func (stepper *Stepper[StateType, ActionType]) Frames() int {
	return stepper.records.Len() - 1
}

// Result returns the outcome once Done reports true.
func (stepper *Stepper[StateType, ActionType]) Result() Result[ActionType] {
	return Result[ActionType]{
		Status:   stepper.status,
		Plan:     stepper.plan,
		Cost:     stepper.cost,
		Counters: stepper.counters,
	}
}
