package spatial

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/pkg/math"
)

// World is the read-only query structure built from one loaded mesh. It is
// safe for concurrent use by multiple goroutines.
type World struct {
	opts    Options
	terrain TerrainStore
	grid    *Grid
	stats   Stats
}

// Options returns the options the world was built with.
func (w *World) Options() Options {
	return w.opts
}

// Stats returns build statistics.
func (w *World) Stats() Stats {
	return w.stats
}

// Terrain returns the terrain triangles in model-local space.
func (w *World) Terrain() []Triangle {
	return w.terrain.Triangles()
}

// Cells returns the occupied collision cells in model-local space.
func (w *World) Cells() []Cell {
	return w.grid.Cells()
}

// Grid returns the collision grid.
func (w *World) Grid() *Grid {
	return w.grid
}

// GroundHeight returns the world-space Y of the terrain directly below (or
// above) world position (worldX, worldZ) under the given model matrix.
// ok is false when there is no terrain there; the caller should then leave
// its vertical position alone.
func (w *World) GroundHeight(model mgl32.Mat4, worldX, worldZ float32) (y float32, ok bool) {
	if w.terrain.Len() == 0 {
		return 0, false
	}

	inv, ok := math.InverseAffine(model)
	if !ok {
		return 0, false
	}

	origin := math.TransformPoint(inv, mgl32.Vec3{worldX, w.opts.RayStartHeight, worldZ})
	dir := math.TransformDirection(inv, mgl32.Vec3{0, -1, 0})

	// Non-uniform scale changes the direction's length; t must be measured
	// along a unit vector.
	l := dir.Len()
	if l == 0 || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return 0, false
	}
	ray := Ray{Origin: origin, Direction: dir.Mul(1 / l)}

	t, hit := w.terrain.Cast(ray)
	if !hit {
		return 0, false
	}

	p := math.TransformPoint(model, ray.At(t))
	return p[1], true
}
