package game

import "github.com/jakecoffman/cp"

// Track is the demo course: a flat start straight, two crests and a dip.
func Track() []cp.Vector {
	return []cp.Vector{
		{X: -30, Y: 4},
		{X: -25, Y: 0},
		{X: 20, Y: 0},
		{X: 30, Y: 2},
		{X: 40, Y: 0},
		{X: 55, Y: 3},
		{X: 65, Y: -1},
		{X: 80, Y: 0},
		{X: 140, Y: 0},
		{X: 145, Y: 4},
	}
}

// spawnPoint places the i-th car on the start straight.
func spawnPoint(i int) cp.Vector {
	return cp.Vector{X: -20 + 3*float64(i%12), Y: 1.2 + 1.5*float64(i/12)}
}
