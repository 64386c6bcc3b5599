package spatial

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/pkg/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// PointAABB returns a degenerate box holding only p.
func PointAABB(p mgl32.Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// Extend returns the smallest box containing both b and p.
func (b AABB) Extend(p mgl32.Vec3) AABB {
	return AABB{Min: math.MinVec3(b.Min, p), Max: math.MaxVec3(b.Max, p)}
}

// Contains reports whether p lies inside or on the boundary of b.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Size returns the extent of the box on each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the world-space bound of b under model matrix m. All 8
// corners are transformed because rotation and non-uniform scale do not map
// Min and Max to the new extremes.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	min, max := math.TransformBox(m, b.Min, b.Max)
	return AABB{Min: min, Max: max}
}
