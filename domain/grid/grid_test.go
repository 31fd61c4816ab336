package grid

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/plansearch"
	"github.com/pdrpinto/plansearch/heuristic"
)

func newEngine(grid *Grid, h plansearch.Heuristic[Point]) *plansearch.Engine[Point, Move] {
	return plansearch.New[Point, Move](grid, grid, h, plansearch.NewHeapOpenList())
}

// bfsDistance returns the number of moves from start to goal, or -1.
func bfsDistance(grid *Grid) int {
	distance := map[Point]int{grid.Start: 0}
	queue := []Point{grid.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == grid.Goal {
			return distance[current]
		}
		moves, _ := grid.ApplicableActions(current)
		for _, move := range moves {
			if _, seen := distance[move.To]; !seen {
				distance[move.To] = distance[current] + 1
				queue = append(queue, move.To)
			}
		}
	}
	return -1
}

func TestGrid_AroundWall(t *testing.T) {
	// S.#..
	// ..#.G
	// .....
	grid := &Grid{
		Width:  5,
		Height: 3,
		Walls:  map[Point]bool{{2, 0}: true, {2, 1}: true},
		Start:  Point{0, 0},
		Goal:   Point{4, 1},
	}

	result, err := newEngine(grid, grid.Heuristic()).Plan(context.Background())
	require.NoError(t, err)

	require.Equal(t, plansearch.Solved, result.Status)
	assert.Equal(t, 7.0, result.Cost)
	assert.Len(t, result.Plan, 7)
	assert.Equal(t, grid.Goal, result.Plan[len(result.Plan)-1].To)
	assert.Equal(t, "S.#..\n..#.G\n.....\n", grid.Render(nil))
	assert.Equal(t, 7, countByte(grid.Render(result.Plan), '*')+1, "every visited cell but the goal is marked")
}

func countByte(s string, b byte) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			count++
		}
	}
	return count
}

func TestGrid_WalledOffGoal(t *testing.T) {
	grid := &Grid{
		Width:  3,
		Height: 3,
		Walls:  map[Point]bool{{1, 0}: true, {1, 1}: true, {1, 2}: true},
		Start:  Point{0, 0},
		Goal:   Point{2, 2},
	}

	result, err := newEngine(grid, grid.Heuristic()).Plan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, plansearch.Unsolvable, result.Status)
	assert.Zero(t, result.Counters.Expanded, "start is a dead end")

	result, err = newEngine(grid, heuristic.Blind[Point]{}).Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plansearch.Unsolvable, result.Status)
	assert.Equal(t, 3, result.Counters.Expanded, "blind search explores the left column")
}

func TestGrid_StartOnWall(t *testing.T) {
	grid := &Grid{Width: 2, Height: 1, Walls: map[Point]bool{{0, 0}: true}, Start: Point{0, 0}, Goal: Point{1, 0}}

	_, err := newEngine(grid, heuristic.Blind[Point]{}).Plan(context.Background())
	assert.ErrorContains(t, err, "not an open cell")
}

func TestGrid_Apply(t *testing.T) {
	grid := &Grid{Width: 2, Height: 2, Walls: map[Point]bool{{1, 1}: true}}

	next, err := grid.Apply(Move{From: Point{0, 0}, To: Point{1, 0}, Direction: "right"}, Point{0, 0})
	require.NoError(t, err)
	assert.Equal(t, Point{1, 0}, next)

	_, err = grid.Apply(Move{From: Point{0, 1}, To: Point{1, 1}, Direction: "right"}, Point{0, 1})
	assert.Error(t, err, "walls are blocked")

	_, err = grid.Apply(Move{From: Point{1, 0}, To: Point{0, 0}, Direction: "left"}, Point{0, 1})
	assert.Error(t, err, "move must start in the current cell")
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 7.0, Manhattan(Point{1, 5}, Point{4, 1}))
	assert.Equal(t, 0.0, Manhattan(Point{2, 2}, Point{2, 2}))
}

func TestGenerate(t *testing.T) {
	options := DefaultGenerateOptions()

	first, err := Generate(options, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	second, err := Generate(options, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed, same grid")
	assert.NotEqual(t, first.Start, first.Goal)
	assert.False(t, first.Walls[first.Start])
	assert.False(t, first.Walls[first.Goal])
	for wall := range first.Walls {
		assert.True(t, first.In(wall))
	}
}

func TestGenerate_InvalidOptions(t *testing.T) {
	_, err := Generate(GenerateOptions{Width: 1, Height: 1}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)

	_, err = Generate(GenerateOptions{Width: 4, Height: 4, Density: 2}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestGrid_OptimalOnRandomGrids(t *testing.T) {
	options := GenerateOptions{Width: 16, Height: 12, Clusters: 6, Steps: 80, Density: 0.5}
	for seed := int64(1); seed <= 30; seed++ {
		grid, err := Generate(options, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		want := bfsDistance(grid)

		informed, err := newEngine(grid, grid.Heuristic()).Plan(context.Background())
		require.NoError(t, err)
		blind, err := newEngine(grid, heuristic.Blind[Point]{}).Plan(context.Background())
		require.NoError(t, err)

		if want < 0 {
			assert.Equal(t, plansearch.Unsolvable, informed.Status, "seed %d", seed)
			assert.Equal(t, plansearch.Unsolvable, blind.Status, "seed %d", seed)
			continue
		}
		require.Equal(t, plansearch.Solved, informed.Status, "seed %d", seed)
		require.Equal(t, plansearch.Solved, blind.Status, "seed %d", seed)
		assert.Equal(t, float64(want), informed.Cost, "seed %d", seed)
		assert.Equal(t, float64(want), blind.Cost, "seed %d", seed)
	}
}
