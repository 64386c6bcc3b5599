// Package math provides coordinate-space helpers on top of mgl32 for moving
// geometry between model-local and world space.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TransformPoint transforms a point by m (w=1). The perspective divide is
// applied only when w is neither 0 nor 1.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	r := m.Mul4x1(p.Vec4(1))
	if r[3] != 0 && r[3] != 1 {
		return mgl32.Vec3{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return r.Vec3()
}

// TransformDirection transforms a direction vector by m (w=0), ignoring
// translation. The result is not normalized.
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// InverseAffine returns the inverse of m.
// ok is false when m is singular (or not finite) and has no inverse.
func InverseAffine(m mgl32.Mat4) (inv mgl32.Mat4, ok bool) {
	det := m.Det()
	if det == 0 || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return mgl32.Ident4(), false
	}
	return m.Inv(), true
}

// ModelMatrix builds a scene transform as T * Ry * S with a uniform scale.
// yawDeg is in degrees.
func ModelMatrix(translate mgl32.Vec3, yawDeg, scale float32) mgl32.Mat4 {
	t := mgl32.Translate3D(translate.X(), translate.Y(), translate.Z())
	r := mgl32.HomogRotate3DY(mgl32.DegToRad(yawDeg))
	s := mgl32.Scale3D(scale, scale, scale)
	return t.Mul4(r).Mul4(s)
}
