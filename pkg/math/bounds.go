package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MinVec3 returns the component-wise minimum of a and b.
func MinVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2])}
}

// MaxVec3 returns the component-wise maximum of a and b.
func MaxVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2])}
}

// BoxCorners returns the 8 corners of the box spanned by min and max.
// Bit 0 of the index selects X, bit 1 selects Y, bit 2 selects Z.
func BoxCorners(min, max mgl32.Vec3) [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := range c {
		c[i] = min
		if i&1 != 0 {
			c[i][0] = max[0]
		}
		if i&2 != 0 {
			c[i][1] = max[1]
		}
		if i&4 != 0 {
			c[i][2] = max[2]
		}
	}
	return c
}

// TransformBox transforms all 8 corners of a box by m and returns the
// axis-aligned bound of the results. Under rotation or non-uniform scale the
// bound is conservative: it may be larger than the transformed box.
func TransformBox(m mgl32.Mat4, min, max mgl32.Vec3) (outMin, outMax mgl32.Vec3) {
	inf := math32.Inf(1)
	outMin = mgl32.Vec3{inf, inf, inf}
	outMax = mgl32.Vec3{-inf, -inf, -inf}
	for _, c := range BoxCorners(min, max) {
		p := TransformPoint(m, c)
		outMin = MinVec3(outMin, p)
		outMax = MaxVec3(outMax, p)
	}
	return outMin, outMax
}
