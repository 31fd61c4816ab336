// Package grid is a four-connected grid world: the agent walks between open
// cells at unit cost from a start cell to a goal cell.
package grid

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/plansearch"
)

// Point is a cell as {x, y}.
type Point [2]int

// Move steps from one cell to a neighbouring one.
type Move struct {
	From      Point
	To        Point
	Direction string
}

// Cost of every move is 1.
func (Move) Cost() float64 { return 1 }

func (move Move) String() string { return move.Direction }

var directions = []struct {
	name  string
	delta Point
}{
	{"right", Point{1, 0}},
	{"left", Point{-1, 0}},
	{"down", Point{0, 1}},
	{"up", Point{0, -1}},
}

// Grid is a grid world problem. It implements plansearch.Problem and
// plansearch.SuccessorGenerator.
type Grid struct {
	Width  int
	Height int
	Walls  map[Point]bool
	Start  Point
	Goal   Point
}

// In reports whether p lies inside the grid.
func (grid *Grid) In(p Point) bool {
	return p[0] >= 0 && p[0] < grid.Width && p[1] >= 0 && p[1] < grid.Height
}

// Open reports whether p lies inside the grid and is not a wall.
func (grid *Grid) Open(p Point) bool {
	return grid.In(p) && !grid.Walls[p]
}

// InitialState returns the start cell.
func (grid *Grid) InitialState() (Point, error) {
	if !grid.Open(grid.Start) {
		return Point{}, fmt.Errorf("grid: start %v is not an open cell", grid.Start)
	}
	return grid.Start, nil
}

// GoalHolds reports whether state is the goal cell.
func (grid *Grid) GoalHolds(state Point) bool {
	return state == grid.Goal
}

// Apply performs move from state.
func (grid *Grid) Apply(move Move, state Point) (Point, error) {
	if move.From != state {
		return Point{}, fmt.Errorf("grid: move %s from %v applied in %v", move, move.From, state)
	}
	if !grid.Open(move.To) {
		return Point{}, fmt.Errorf("grid: move %s leads into blocked cell %v", move, move.To)
	}
	return move.To, nil
}

// ApplicableActions returns the moves into open neighbouring cells.
func (grid *Grid) ApplicableActions(state Point) ([]Move, error) {
	moves := make([]Move, 0, len(directions))
	for _, direction := range directions {
		next := Point{state[0] + direction.delta[0], state[1] + direction.delta[1]}
		if grid.Open(next) {
			moves = append(moves, Move{From: state, To: next, Direction: direction.name})
		}
	}
	return moves, nil
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b Point) float64 {
	dx := a[0] - b[0]
	if dx < 0 {
		dx = -dx
	}
	dy := a[1] - b[1]
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// ManhattanHeuristic estimates the distance to the goal and reports cells
// walled off from the goal as dead ends.
type ManhattanHeuristic struct {
	goal      Point
	reachable map[Point]bool
}

// Heuristic precomputes the cells connected to the goal. Moves are
// symmetric, so those are exactly the cells that can reach it.
func (grid *Grid) Heuristic() *ManhattanHeuristic {
	reachable := map[Point]bool{}
	if grid.Open(grid.Goal) {
		reachable[grid.Goal] = true
		frontier := []Point{grid.Goal}
		for len(frontier) > 0 {
			current := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			moves, _ := grid.ApplicableActions(current)
			for _, move := range moves {
				if !reachable[move.To] {
					reachable[move.To] = true
					frontier = append(frontier, move.To)
				}
			}
		}
	}
	return &ManhattanHeuristic{goal: grid.Goal, reachable: reachable}
}

// Evaluate returns the Manhattan distance to the goal or DeadEnd.
func (h *ManhattanHeuristic) Evaluate(state Point) (float64, error) {
	if !h.reachable[state] {
		return plansearch.DeadEnd, nil
	}
	return Manhattan(state, h.goal), nil
}

// Render draws the grid with walls as '#', the plan as '*', the start as
// 'S' and the goal as 'G'.
func (grid *Grid) Render(plan []Move) string {
	onPath := make(map[Point]bool, len(plan))
	for _, move := range plan {
		onPath[move.To] = true
	}
	var builder strings.Builder
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := Point{x, y}
			switch {
			case p == grid.Start:
				builder.WriteByte('S')
			case p == grid.Goal:
				builder.WriteByte('G')
			case grid.Walls[p]:
				builder.WriteByte('#')
			case onPath[p]:
				builder.WriteByte('*')
			default:
				builder.WriteByte('.')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
