package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// flatQuad returns a square terrain polygon at height y spanning [-half, half]
// on X and Z.
func flatQuad(y, half float32) []mgl32.Vec3 {
	return []mgl32.Vec3{
		{-half, y, -half},
		{half, y, -half},
		{half, y, half},
		{-half, y, half},
	}
}

// boxFaces returns the six quads of an axis-aligned box.
func boxFaces(min, max mgl32.Vec3) [][]mgl32.Vec3 {
	c := func(x, y, z int) mgl32.Vec3 {
		p := min
		if x == 1 {
			p[0] = max[0]
		}
		if y == 1 {
			p[1] = max[1]
		}
		if z == 1 {
			p[2] = max[2]
		}
		return p
	}
	return [][]mgl32.Vec3{
		{c(0, 0, 0), c(1, 0, 0), c(1, 0, 1), c(0, 0, 1)}, // bottom
		{c(0, 1, 0), c(0, 1, 1), c(1, 1, 1), c(1, 1, 0)}, // top
		{c(0, 0, 0), c(0, 1, 0), c(1, 1, 0), c(1, 0, 0)}, // back
		{c(0, 0, 1), c(1, 0, 1), c(1, 1, 1), c(0, 1, 1)}, // front
		{c(0, 0, 0), c(0, 0, 1), c(0, 1, 1), c(0, 1, 0)}, // left
		{c(1, 0, 0), c(1, 1, 0), c(1, 1, 1), c(1, 0, 1)}, // right
	}
}

// newTestWorld builds a world from the faces added by fill.
func newTestWorld(t *testing.T, opts Options, fill func(b *Builder)) *World {
	t.Helper()
	b, err := NewBuilder(opts)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	fill(b)
	return b.Build()
}

// addBox adds an obstacle box under the given material.
func addBox(b *Builder, material string, min, max mgl32.Vec3) {
	for _, f := range boxFaces(min, max) {
		b.AddFace(material, f)
	}
}
