package graph

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/plansearch"
)

const chainProblem = `
initial: A
goals: [C]
edges:
  - {from: A, to: B, cost: 1}
  - {from: B, to: C, cost: 1, name: finish}
heuristic: {A: 2, B: 1, C: 0}
dead_ends: []
`

func TestLoad_Chain(t *testing.T) {
	problem, err := Load(strings.NewReader(chainProblem))
	require.NoError(t, err)

	initial, err := problem.InitialState()
	require.NoError(t, err)
	assert.Equal(t, "A", initial)
	assert.True(t, problem.GoalHolds("C"))
	assert.False(t, problem.GoalHolds("B"))

	actions, err := problem.ApplicableActions("A")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "A->B", actions[0].String())

	next, err := problem.Apply(actions[0], "A")
	require.NoError(t, err)
	assert.Equal(t, "B", next)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainProblem), 0o600))

	problem, err := LoadFile(path)
	require.NoError(t, err)

	result, err := problem.NewEngine(nil).Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plansearch.Solved, result.Status)
	require.Len(t, result.Plan, 2)
	assert.Equal(t, "finish", result.Plan[1].String())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing initial", "goals: [A]\n"},
		{"no goals", "initial: A\n"},
		{"unknown goal", "initial: A\ngoals: [Z]\n"},
		{"negative cost", "initial: A\ngoals: [B]\nedges:\n  - {from: A, to: B, cost: -1}\n"},
		{"empty endpoint", "initial: A\ngoals: [A]\nedges:\n  - {from: A, cost: 1}\n"},
		{"heuristic for unknown state", "initial: A\ngoals: [A]\nheuristic: {Q: 1}\n"},
		{"negative heuristic", "initial: A\ngoals: [A]\nheuristic: {A: -2}\n"},
		{"unknown dead end", "initial: A\ngoals: [A]\ndead_ends: [Q]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.content))
			assert.ErrorIs(t, err, ErrInvalidProblem)
		})
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("initial: A\ngoals: [A]\ngoal: A\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidProblem)
}

func TestApply_WrongSource(t *testing.T) {
	problem, err := Load(strings.NewReader(chainProblem))
	require.NoError(t, err)

	_, err = problem.Apply(Edge{From: "B", To: "C"}, "A")
	assert.Error(t, err)
}

func TestHeuristic_DeadEnds(t *testing.T) {
	problem := &Problem{
		Initial:   "A",
		Goals:     []string{"B"},
		Edges:     []Edge{{From: "A", To: "B", Weight: 1}, {From: "A", To: "X", Weight: 1}},
		Estimates: map[string]float64{"A": 1},
		DeadEnds:  []string{"X"},
	}
	require.NoError(t, problem.Validate())

	h := problem.Heuristic()
	value, err := h.Evaluate("X")
	require.NoError(t, err)
	assert.True(t, plansearch.IsDeadEnd(value))

	value, err = h.Evaluate("B")
	require.NoError(t, err)
	assert.Zero(t, value, "untabled states are estimated at zero")
}
