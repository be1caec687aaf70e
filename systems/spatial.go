package systems

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/pthm-cable/lotka/components"
)

// PreyIndex answers nearest-prey queries for predator targeting. It is
// an ephemeral view rebuilt once per step from the prey coordinate
// snapshot and is never patched mid-step: a query may return prey that
// another predator already ate earlier in the same step, which the
// engine tolerates.
//
// Distance is planar Euclidean, not toroidal: the index ranks prey by
// straight-line distance and the movement rule handles wrap-around
// separately. Ties between equidistant prey resolve deterministically
// for a fixed build order; the engine inserts prey in row-major
// snapshot order, so equal occupancy yields equal answers.
type PreyIndex struct {
	tree *kdtree.Tree
}

// BuildPreyIndex builds a kd-tree over the given prey coordinates.
// Returns nil when there are no prey; a nil index answers every query
// with "none".
func BuildPreyIndex(prey []components.Coord) *PreyIndex {
	if len(prey) == 0 {
		return nil
	}
	pts := make(kdtree.Points, len(prey))
	for i, c := range prey {
		pts[i] = kdtree.Point{float64(c.X), float64(c.Y)}
	}
	return &PreyIndex{tree: kdtree.New(pts, false)}
}

// Nearest returns the prey coordinate closest to (x, y), or false if
// no prey exist.
func (ix *PreyIndex) Nearest(x, y int) (components.Coord, bool) {
	if ix == nil || ix.tree == nil {
		return components.Coord{}, false
	}
	got, _ := ix.tree.Nearest(kdtree.Point{float64(x), float64(y)})
	if got == nil {
		return components.Coord{}, false
	}
	p := got.(kdtree.Point)
	return components.Coord{X: int(p[0]), Y: int(p[1])}, true
}
