// Package graph models planning problems given as an explicit weighted
// graph: states are names, actions are directed edges. Problems are usually
// loaded from YAML:
//
//	initial: A
//	goals: [C]
//	edges:
//	  - {from: A, to: B, cost: 1}
//	  - {from: B, to: C, cost: 1, name: finish}
//	heuristic: {A: 2, B: 1}
//	dead_ends: [X]
package graph

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/plansearch"
	"github.com/pdrpinto/plansearch/heuristic"
)

// ErrInvalidProblem wraps every validation failure.
var ErrInvalidProblem = errors.New("graph: invalid problem")

// Edge is a directed, weighted edge and the action that traverses it.
type Edge struct {
	Name   string  `yaml:"name,omitempty"`
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Weight float64 `yaml:"cost"`
}

// Cost returns the edge weight.
func (edge Edge) Cost() float64 { return edge.Weight }

func (edge Edge) String() string {
	if edge.Name != "" {
		return edge.Name
	}
	return edge.From + "->" + edge.To
}

// Problem is an explicit graph planning problem. It implements both
// plansearch.Problem and plansearch.SuccessorGenerator.
type Problem struct {
	Initial   string             `yaml:"initial"`
	Goals     []string           `yaml:"goals"`
	Edges     []Edge             `yaml:"edges"`
	Estimates map[string]float64 `yaml:"heuristic,omitempty"`
	DeadEnds  []string           `yaml:"dead_ends,omitempty"`

	outgoing map[string][]Edge
	goals    map[string]bool
}

// Load decodes and validates a problem.
func Load(reader io.Reader) (*Problem, error) {
	var problem Problem
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&problem); err != nil {
		return nil, fmt.Errorf("graph: decode problem: %w", err)
	}
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	return &problem, nil
}

// LoadFile reads a problem from a YAML file.
func LoadFile(path string) (*Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: open problem: %w", err)
	}
	defer file.Close()
	return Load(file)
}

// Validate checks the problem and builds its adjacency. It must be called
// before searching a Problem built in code.
func (problem *Problem) Validate() error {
	if problem.Initial == "" {
		return fmt.Errorf("%w: missing initial state", ErrInvalidProblem)
	}
	if len(problem.Goals) == 0 {
		return fmt.Errorf("%w: no goal states", ErrInvalidProblem)
	}

	known := map[string]bool{problem.Initial: true}
	outgoing := make(map[string][]Edge)
	for i, edge := range problem.Edges {
		if edge.From == "" || edge.To == "" {
			return fmt.Errorf("%w: edge %d has an empty endpoint", ErrInvalidProblem, i)
		}
		if edge.Weight < 0 || math.IsNaN(edge.Weight) || math.IsInf(edge.Weight, 0) {
			return fmt.Errorf("%w: edge %s has invalid cost %v", ErrInvalidProblem, edge, edge.Weight)
		}
		known[edge.From] = true
		known[edge.To] = true
		outgoing[edge.From] = append(outgoing[edge.From], edge)
	}

	goals := make(map[string]bool, len(problem.Goals))
	for _, goal := range problem.Goals {
		if !known[goal] {
			return fmt.Errorf("%w: unknown goal state %q", ErrInvalidProblem, goal)
		}
		goals[goal] = true
	}
	for state, estimate := range problem.Estimates {
		if !known[state] {
			return fmt.Errorf("%w: heuristic for unknown state %q", ErrInvalidProblem, state)
		}
		if estimate < 0 || math.IsNaN(estimate) {
			return fmt.Errorf("%w: heuristic for %q is %v", ErrInvalidProblem, state, estimate)
		}
	}
	for _, state := range problem.DeadEnds {
		if !known[state] {
			return fmt.Errorf("%w: unknown dead end %q", ErrInvalidProblem, state)
		}
	}

	problem.outgoing = outgoing
	problem.goals = goals
	return nil
}

// InitialState returns the initial state.
func (problem *Problem) InitialState() (string, error) {
	return problem.Initial, nil
}

// GoalHolds reports whether state is one of the goals.
func (problem *Problem) GoalHolds(state string) bool {
	return problem.goals[state]
}

// Apply follows edge from state.
func (problem *Problem) Apply(edge Edge, state string) (string, error) {
	if edge.From != state {
		return "", fmt.Errorf("graph: edge %s is not applicable in %q", edge, state)
	}
	return edge.To, nil
}

// ApplicableActions returns the outgoing edges of state in file order.
func (problem *Problem) ApplicableActions(state string) ([]Edge, error) {
	return problem.outgoing[state], nil
}

// Heuristic returns the tabled estimates, with dead ends mapped to
// plansearch.DeadEnd and untabled states estimated at zero.
func (problem *Problem) Heuristic() plansearch.Heuristic[string] {
	values := make(map[string]float64, len(problem.Estimates)+len(problem.DeadEnds))
	for state, estimate := range problem.Estimates {
		values[state] = estimate
	}
	for _, state := range problem.DeadEnds {
		values[state] = plansearch.DeadEnd
	}
	return heuristic.Table[string]{Values: values}
}

// NewEngine builds an engine for the problem with a fresh HeapOpenList.
func (problem *Problem) NewEngine(h plansearch.Heuristic[string], options ...plansearch.Option) *plansearch.Engine[string, Edge] {
	if h == nil {
		h = problem.Heuristic()
	}
	return plansearch.New[string, Edge](problem, problem, h, plansearch.NewHeapOpenList(), options...)
}
