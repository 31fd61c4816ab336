// Package heuristic provides general purpose heuristics for plansearch
// engines: a blind heuristic, lookup tables and an LRU cache in front of an
// expensive estimator.
package heuristic

import (
	"github.com/pdrpinto/plansearch"
)

// Blind estimates zero for every state, which turns A* into uniform-cost
// search.
type Blind[StateType comparable] struct{}

// Evaluate returns 0.
func (Blind[StateType]) Evaluate(StateType) (float64, error) {
	return 0, nil
}

// Func wraps an infallible estimate function.
func Func[StateType comparable](estimate func(state StateType) float64) plansearch.Heuristic[StateType] {
	return plansearch.HeuristicFunc[StateType](func(state StateType) (float64, error) {
		return estimate(state), nil
	})
}

// Table looks estimates up in a map. States missing from Values get Default.
type Table[StateType comparable] struct {
	Values  map[StateType]float64
	Default float64
}

// Evaluate returns the tabled estimate of state.
func (table Table[StateType]) Evaluate(state StateType) (float64, error) {
	if value, ok := table.Values[state]; ok {
		return value, nil
	}
	return table.Default, nil
}
