package plansearch_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/plansearch"
	"github.com/pdrpinto/plansearch/domain/graph"
	"github.com/pdrpinto/plansearch/heuristic"
)

func stateName(i int) string { return fmt.Sprintf("s%d", i) }

// randomProblem builds a graph with a costly backbone s0 -> ... -> s(n-1)
// plus random shortcuts, some of them free.
func randomProblem(seed int64, nodes, extraEdges int) *graph.Problem {
	random := rand.New(rand.NewSource(seed))
	problem := &graph.Problem{Initial: stateName(0), Goals: []string{stateName(nodes - 1)}}
	for i := 0; i+1 < nodes; i++ {
		problem.Edges = append(problem.Edges, edge(stateName(i), stateName(i+1), 5))
	}
	for i := 0; i < extraEdges; i++ {
		from, to := random.Intn(nodes), random.Intn(nodes)
		problem.Edges = append(problem.Edges, edge(stateName(from), stateName(to), float64(random.Intn(6))))
	}
	if err := problem.Validate(); err != nil {
		panic(err)
	}
	return problem
}

// sparseProblem has no backbone, so the goal may be unreachable.
func sparseProblem(seed int64, nodes, edges int) *graph.Problem {
	random := rand.New(rand.NewSource(seed))
	problem := &graph.Problem{Initial: stateName(0), Goals: []string{stateName(nodes - 1)}}
	for i := 0; i < edges; i++ {
		from, to := random.Intn(nodes), random.Intn(nodes)
		problem.Edges = append(problem.Edges, edge(stateName(from), stateName(to), float64(1+random.Intn(4))))
	}
	// Make the goal a known state without making it reachable.
	problem.Edges = append(problem.Edges, edge(stateName(nodes-1), stateName(nodes-1), 1))
	if err := problem.Validate(); err != nil {
		panic(err)
	}
	return problem
}

// distances runs a plain Dijkstra from source, following edges forward or,
// with reverse set, backward.
func distances(problem *graph.Problem, source string, reverse bool) map[string]float64 {
	adjacency := map[string][]graph.Edge{}
	for _, e := range problem.Edges {
		if reverse {
			adjacency[e.To] = append(adjacency[e.To], graph.Edge{From: e.To, To: e.From, Weight: e.Weight})
		} else {
			adjacency[e.From] = append(adjacency[e.From], e)
		}
	}
	dist := map[string]float64{source: 0}
	done := map[string]bool{}
	for {
		current, best := "", math.Inf(1)
		for state, d := range dist {
			if !done[state] && d < best {
				current, best = state, d
			}
		}
		if current == "" {
			return dist
		}
		done[current] = true
		for _, e := range adjacency[current] {
			if d, ok := dist[e.To]; !ok || best+e.Weight < d {
				dist[e.To] = best + e.Weight
			}
		}
	}
}

// perfectHeuristic returns the true distance to the goal, with unreachable
// states reported as dead ends. It is admissible and consistent.
func perfectHeuristic(problem *graph.Problem, scale float64) plansearch.Heuristic[string] {
	toGoal := distances(problem, problem.Goals[0], true)
	return plansearch.HeuristicFunc[string](func(state string) (float64, error) {
		d, ok := toGoal[state]
		if !ok {
			return plansearch.DeadEnd, nil
		}
		return d * scale, nil
	})
}

// replay applies the plan from the initial state and returns the reached
// state and the total cost.
func replay(t *testing.T, problem *graph.Problem, plan []graph.Edge) (string, float64) {
	t.Helper()
	state, err := problem.InitialState()
	require.NoError(t, err)
	cost := 0.0
	for _, action := range plan {
		state, err = problem.Apply(action, state)
		require.NoError(t, err)
		cost += action.Cost()
	}
	return state, cost
}

func TestPlan_OptimalOnRandomGraphs(t *testing.T) {
	heuristics := map[string]func(*graph.Problem) plansearch.Heuristic[string]{
		"blind":   func(*graph.Problem) plansearch.Heuristic[string] { return heuristic.Blind[string]{} },
		"perfect": func(problem *graph.Problem) plansearch.Heuristic[string] { return perfectHeuristic(problem, 1) },
		"halved":  func(problem *graph.Problem) plansearch.Heuristic[string] { return perfectHeuristic(problem, 0.5) },
	}
	problems := map[string]func(seed int64) *graph.Problem{
		"backbone": func(seed int64) *graph.Problem { return randomProblem(seed, 30, 60) },
		"sparse":   func(seed int64) *graph.Problem { return sparseProblem(seed, 25, 30) },
	}

	for problemName, build := range problems {
		for heuristicName, makeHeuristic := range heuristics {
			t.Run(problemName+"/"+heuristicName, func(t *testing.T) {
				for seed := int64(1); seed <= 25; seed++ {
					problem := build(seed)
					optimal, reachable := distances(problem, problem.Initial, false)[problem.Goals[0]]
					openList := plansearch.NewHeapOpenList()
					engine := plansearch.New[string, graph.Edge](problem, problem, makeHeuristic(problem), openList)

					result, err := engine.Plan(context.Background())
					require.NoError(t, err)

					if !reachable {
						assert.Equal(t, plansearch.Unsolvable, result.Status, "seed %d", seed)
						assert.Equal(t, 0, openList.Len(), "seed %d", seed)
						continue
					}
					require.Equal(t, plansearch.Solved, result.Status, "seed %d", seed)
					reached, cost := replay(t, problem, result.Plan)
					assert.True(t, problem.GoalHolds(reached), "seed %d", seed)
					assert.Equal(t, optimal, cost, "seed %d", seed)
					assert.Equal(t, optimal, result.Cost, "seed %d", seed)
				}
			})
		}
	}
}
