package spatial

import "github.com/go-gl/mathgl/mgl32"

// Resolution describes one resolver call.
type Resolution struct {
	Changed bool // At least one push happened
	Passes  int  // Relaxation passes run
	Pushes  int  // Total pushes across all passes

	// Settled is false when the pass cap was reached while the last pass
	// still pushed, so the final position is not confirmed to be clear.
	Settled bool
}

// ResolveSphere pushes the world-space sphere (pos, radius) out of every
// overlapping obstacle cell and reports whether pos was changed.
func (w *World) ResolveSphere(model mgl32.Mat4, pos *mgl32.Vec3, radius float32) bool {
	return w.ResolveSphereDetailed(model, pos, radius).Changed
}

// ResolveSphereDetailed is ResolveSphere with pass and push counts.
//
// Each pass visits every cell, moving pos out along the shallower of the X
// and Z axes. Resolving one overlap can create another, so passes repeat
// until one makes no change or the configured cap is hit.
func (w *World) ResolveSphereDetailed(model mgl32.Mat4, pos *mgl32.Vec3, radius float32) Resolution {
	res := Resolution{Settled: true}
	if w.grid.Len() == 0 {
		return res
	}

	for pass := 0; pass < w.opts.RelaxationPasses; pass++ {
		res.Passes++
		pushed := false

		for _, cell := range w.grid.Cells() {
			if pushOutXZ(cell.Bounds.Transform(model), pos, radius) {
				pushed = true
				res.Pushes++
			}
		}

		if !pushed {
			res.Settled = true
			return res
		}
		res.Changed = true
		res.Settled = false
	}
	return res
}

// pushOutXZ moves pos horizontally out of box expanded by radius. The moved
// coordinate lands exactly on the expanded edge, which the strict inside test
// treats as clear.
func pushOutXZ(box AABB, pos *mgl32.Vec3, radius float32) bool {
	// Spheres fully above or below the box pass over or under it.
	if pos[1] > box.Max[1]+radius || pos[1] < box.Min[1]-radius {
		return false
	}

	minX := box.Min[0] - radius
	maxX := box.Max[0] + radius
	minZ := box.Min[2] - radius
	maxZ := box.Max[2] + radius

	inside := pos[0] > minX && pos[0] < maxX && pos[2] > minZ && pos[2] < maxZ
	if !inside {
		return false
	}

	penLeft := pos[0] - minX
	penRight := maxX - pos[0]
	penBack := pos[2] - minZ
	penFront := maxZ - pos[2]

	edgeX, pushX := maxX, penRight
	if penLeft < penRight {
		edgeX, pushX = minX, penLeft
	}
	edgeZ, pushZ := maxZ, penFront
	if penBack < penFront {
		edgeZ, pushZ = minZ, penBack
	}

	if pushX < pushZ {
		pos[0] = edgeX
	} else {
		pos[2] = edgeZ
	}
	return true
}
