package grid

import (
	"errors"
	"math/rand"
)

// GenerateOptions shapes a random grid.
type GenerateOptions struct {
	Width    int
	Height   int
	Clusters int
	Steps    int
	Density  float64
}

// DefaultGenerateOptions returns a 40x24 grid with clustered walls.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Width: 40, Height: 24, Clusters: 8, Steps: 200, Density: 0.25}
}

// Validate checks the options.
func (options GenerateOptions) Validate() error {
	if options.Width < 2 || options.Height < 1 {
		return errors.New("grid: need at least two cells")
	}
	if options.Clusters < 0 || options.Steps < 0 {
		return errors.New("grid: clusters and steps must not be negative")
	}
	if options.Density < 0 || options.Density > 1 {
		return errors.New("grid: density must be within [0, 1]")
	}
	return nil
}

// Generate draws distinct start and goal cells and walls grown by random
// walks. Start and goal are never walls.
func Generate(options GenerateOptions, random *rand.Rand) (*Grid, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	var start, goal Point
	for {
		start = Point{random.Intn(options.Width), random.Intn(options.Height)}
		goal = Point{random.Intn(options.Width), random.Intn(options.Height)}
		if start != goal {
			break
		}
	}
	return &Grid{
		Width:  options.Width,
		Height: options.Height,
		Walls:  clusteredWalls(options, start, goal, random),
		Start:  start,
		Goal:   goal,
	}, nil
}

// clusteredWalls places walls along random walks.
func clusteredWalls(options GenerateOptions, start, goal Point, random *rand.Rand) map[Point]bool {
	walls := map[Point]bool{}
	for c := 0; c < options.Clusters; c++ {
		p := Point{random.Intn(options.Width), random.Intn(options.Height)}
		for s := 0; s < options.Steps; s++ {
			if random.Float64() < options.Density && p != start && p != goal {
				walls[p] = true
			}
			d := directions[random.Intn(len(directions))].delta
			np := Point{p[0] + d[0], p[1] + d[1]}
			if np[0] >= 0 && np[0] < options.Width && np[1] >= 0 && np[1] < options.Height {
				p = np
			}
		}
	}
	return walls
}
