package spatial

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RayEpsilon is the smallest determinant accepted by IntersectTriangle.
// Rays closer to parallel with the triangle plane are treated as misses.
const RayEpsilon = 1e-7

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle tests the ray against triangle (v0, v1, v2) using the
// Möller–Trumbore algorithm. It returns the forward distance to the hit.
// Hits behind the origin are rejected.
func (r Ray) IntersectTriangle(v0, v1, v2 mgl32.Vec3) (t float32, hit bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	pvec := r.Direction.Cross(e2)
	det := e1.Dot(pvec)
	if math32.Abs(det) < RayEpsilon {
		return 0, false
	}
	invDet := 1 / det

	tvec := r.Origin.Sub(v0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(e1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(qvec) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}
