// Package debug builds line geometry for the collider and terrain overlays.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/spatial"
	"github.com/Faultbox/townview/pkg/math"
)

// BoxVertexCount is the number of vertices in a box wireframe (12 edges × 2).
const BoxVertexCount = 24

// FloatsPerVertex is the interleaved layout of Lines: x, y, z, r, g, b.
const FloatsPerVertex = 6

// Color is an RGB color with components in [0, 1].
type Color [3]float32

// Overlay colors.
var (
	ColliderColor = Color{1.0, 0.35, 0.2}
	TerrainColor  = Color{0.25, 0.85, 0.35}
	PushColor     = Color{1.0, 0.9, 0.2}
)

// BoxEdges returns the 12 edges of an axis-aligned box as 24 line endpoints.
func BoxEdges(min, max mgl32.Vec3) []mgl32.Vec3 {
	c := math.BoxCorners(min, max)
	// Corner index bits: 1 = X, 2 = Y, 4 = Z.
	return []mgl32.Vec3{
		// Bottom face
		c[0], c[1], c[1], c[5], c[5], c[4], c[4], c[0],
		// Top face
		c[2], c[3], c[3], c[7], c[7], c[6], c[6], c[2],
		// Vertical edges
		c[0], c[2], c[1], c[3], c[5], c[7], c[4], c[6],
	}
}

// Lines accumulates colored line segments in the renderer's vertex layout.
type Lines struct {
	data []float32
}

// Add appends the segment a-b.
func (l *Lines) Add(a, b mgl32.Vec3, col Color) {
	l.data = append(l.data,
		a[0], a[1], a[2], col[0], col[1], col[2],
		b[0], b[1], b[2], col[0], col[1], col[2])
}

// Box appends a box wireframe.
func (l *Lines) Box(min, max mgl32.Vec3, col Color) {
	e := BoxEdges(min, max)
	for i := 0; i < len(e); i += 2 {
		l.Add(e[i], e[i+1], col)
	}
}

// Reset empties the buffer, keeping its capacity.
func (l *Lines) Reset() {
	l.data = l.data[:0]
}

// VertexCount returns the number of line endpoints.
func (l *Lines) VertexCount() int {
	return len(l.data) / FloatsPerVertex
}

// Data returns the interleaved vertex data.
func (l *Lines) Data() []float32 {
	return l.data
}

// Colliders appends the world-space bound of every collision cell under
// model. When radius is positive the push boundary, each bound expanded by
// radius on X and Z, is drawn as well.
func (l *Lines) Colliders(w *spatial.World, model mgl32.Mat4, radius float32) {
	for _, cell := range w.Cells() {
		b := cell.Bounds.Transform(model)
		l.Box(b.Min, b.Max, ColliderColor)
		if radius > 0 {
			pad := mgl32.Vec3{radius, 0, radius}
			l.Box(b.Min.Sub(pad), b.Max.Add(pad), PushColor)
		}
	}
}

// Terrain appends the edges of every terrain triangle in world space.
func (l *Lines) Terrain(w *spatial.World, model mgl32.Mat4) {
	for _, tri := range w.Terrain() {
		a := math.TransformPoint(model, tri.A)
		b := math.TransformPoint(model, tri.B)
		c := math.TransformPoint(model, tri.C)
		l.Add(a, b, TerrainColor)
		l.Add(b, c, TerrainColor)
		l.Add(c, a, TerrainColor)
	}
}
