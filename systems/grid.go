// Package systems provides the grid arena, spatial index and organism
// rules that the update engine composes into one simulation step.
package systems

import (
	"fmt"

	"github.com/pthm-cable/lotka/components"
)

// mooreOffsets lists the 8 neighbor offsets in row-major order. The
// adjacency lists inherit this order, which fixes the predator hunting
// tie-break: the first prey neighbor in this order is the one attacked.
var mooreOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid is a fixed-size toroidal arena of sites. Sites live in a flat
// slice indexed y*width+x; neighbor relations are precomputed once at
// construction as site indices and never change afterwards. Only
// occupancy mutates.
type Grid struct {
	width, height int
	sites         []components.Site
	neighbors     [][]int
}

// NewGrid allocates an empty width x height grid and precomputes the
// toroidal Moore adjacency. Both dimensions must be positive.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: dimensions must be positive, got %dx%d", width, height)
	}

	g := &Grid{
		width:     width,
		height:    height,
		sites:     make([]components.Site, width*height),
		neighbors: make([][]int, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			g.sites[idx].Pos = components.Coord{X: x, Y: y}

			adj := make([]int, 0, 8)
			for _, off := range mooreOffsets {
				nx := (x + off[0] + width) % width
				ny := (y + off[1] + height) % height
				n := ny*width + nx
				// Degenerate dimensions (1 or 2 wide) can alias a
				// neighbor back onto the site itself; an organism never
				// interacts with its own site through the adjacency list.
				if n != idx {
					adj = append(adj, n)
				}
			}
			g.neighbors[idx] = adj
		}
	}

	return g, nil
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// Len returns the number of sites.
func (g *Grid) Len() int { return len(g.sites) }

// Index converts a coordinate to a site index. The coordinate must be
// in range; all engine coordinates come from wrap-safe arithmetic, so
// an out-of-range index here is a programming error.
func (g *Grid) Index(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Site returns the site at the given index.
func (g *Grid) Site(idx int) *components.Site {
	return &g.sites[idx]
}

// SiteAt returns the site at (x, y), or false for out-of-range
// coordinates. Coordinates are never wrapped implicitly; callers that
// want toroidal lookups must pre-wrap.
func (g *Grid) SiteAt(x, y int) (*components.Site, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil, false
	}
	return &g.sites[y*g.width+x], true
}

// Neighbors returns the precomputed Moore adjacency of a site as site
// indices. The returned slice is owned by the grid; callers must not
// modify it.
func (g *Grid) Neighbors(idx int) []int {
	return g.neighbors[idx]
}

// Wrap maps an arbitrary coordinate onto the torus.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = ((x % g.width) + g.width) % g.width
	y = ((y % g.height) + g.height) % g.height
	return x, y
}
