package plansearch

import (
	"math"

	"github.com/pdrpinto/plansearch/internal/store"
)

// Handle identifies a search frame. NoHandle (0) means "unseen"; handle 1 is
// a dummy root so the initial state always receives handle 2.
type Handle = store.Handle

// NoHandle is the zero handle.
const NoHandle = store.NoHandle

// DeadEnd is the heuristic value reporting that no goal is reachable from a
// state. Any positive infinity is treated as a dead end.
var DeadEnd = math.Inf(1)

// IsDeadEnd reports whether h is the dead-end sentinel.
func IsDeadEnd(h float64) bool {
	return math.IsInf(h, 1)
}

// Action is an operator with a nonnegative cost.
type Action interface {
	Cost() float64
}

// Problem describes the initial state, the goal and how actions change states.
type Problem[StateType comparable, ActionType Action] interface {
	InitialState() (StateType, error)
	GoalHolds(state StateType) bool
	Apply(action ActionType, state StateType) (StateType, error)
}

// SuccessorGenerator enumerates the actions applicable in a state.
type SuccessorGenerator[StateType comparable, ActionType Action] interface {
	ApplicableActions(state StateType) ([]ActionType, error)
}

// SuccessorFunc adapts a function to SuccessorGenerator.
type SuccessorFunc[StateType comparable, ActionType Action] func(state StateType) ([]ActionType, error)

// ApplicableActions calls f(state).
func (f SuccessorFunc[StateType, ActionType]) ApplicableActions(state StateType) ([]ActionType, error) {
	return f(state)
}

// Heuristic estimates the remaining cost from a state to a goal.
type Heuristic[StateType comparable] interface {
	Evaluate(state StateType) (float64, error)
}

// HeuristicFunc adapts a function to Heuristic.
type HeuristicFunc[StateType comparable] func(state StateType) (float64, error)

// Evaluate calls f(state).
func (f HeuristicFunc[StateType]) Evaluate(state StateType) (float64, error) {
	return f(state)
}

// OpenList is a min-priority queue over frame handles. The same handle may
// be inserted several times; the engine discards stale entries itself.
type OpenList interface {
	Insert(handle Handle, priority float64)
	// Pop removes and returns the entry with the lowest priority.
	Pop() Handle
	Len() int
}

// Status is the outcome of a search.
type Status int

const (
	// Solved means Result.Plan leads from the initial state to a goal.
	Solved Status = iota + 1
	// Unsolvable means the reachable state space holds no goal.
	Unsolvable
	// Aborted means the search stopped on request before finishing.
	Aborted
)

func (status Status) String() string {
	switch status {
	case Solved:
		return "solved"
	case Unsolvable:
		return "unsolvable"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a search
type Result[ActionType Action] struct {
	Status Status
	// Plan is only meaningful when Status is Solved.
	Plan []ActionType
	// Cost is the total cost of Plan.
	Cost float64
	// Counters holds the counters at the end of the run. Engine.Statistics
	// only reflects the last layer boundary.
	Counters Statistics
}
