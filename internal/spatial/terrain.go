package spatial

import "github.com/go-gl/mathgl/mgl32"

// Triangle is a terrain triangle in model-local space.
type Triangle struct {
	A, B, C mgl32.Vec3
}

// TerrainStore holds every triangle built from terrain faces.
type TerrainStore struct {
	tris []Triangle
}

// AddPolygon triangulates a convex polygon as a fan around its first vertex.
// Polygons with fewer than 3 vertices add nothing.
func (s *TerrainStore) AddPolygon(positions []mgl32.Vec3) {
	for i := 1; i+1 < len(positions); i++ {
		s.tris = append(s.tris, Triangle{
			A: positions[0],
			B: positions[i],
			C: positions[i+1],
		})
	}
}

// Len returns the number of triangles.
func (s *TerrainStore) Len() int {
	return len(s.tris)
}

// Triangles returns the stored triangles. The slice is shared; callers must
// not modify it.
func (s *TerrainStore) Triangles() []Triangle {
	return s.tris
}

// Cast returns the nearest forward hit of r against every triangle.
func (s *TerrainStore) Cast(r Ray) (t float32, hit bool) {
	for i := range s.tris {
		tri := &s.tris[i]
		d, ok := r.IntersectTriangle(tri.A, tri.B, tri.C)
		if ok && (!hit || d < t) {
			t = d
			hit = true
		}
	}
	return t, hit
}
