package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/pkg/math"
)

func unitBoxWorld(t *testing.T) *World {
	t.Helper()
	return newTestWorld(t, DefaultOptions(), func(b *Builder) {
		addBox(b, "Building", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 10, 10})
	})
}

func TestResolveSpherePushOut(t *testing.T) {
	w := unitBoxWorld(t)

	tests := []struct {
		name        string
		start       mgl32.Vec3
		wantChanged bool
		want        mgl32.Vec3
	}{
		{"center tie goes to Z", mgl32.Vec3{5, 5, 5}, true, mgl32.Vec3{5, 5, 11}},
		{"near left face", mgl32.Vec3{1, 5, 5}, true, mgl32.Vec3{-1, 5, 5}},
		{"near front face", mgl32.Vec3{4, 5, 9.5}, true, mgl32.Vec3{4, 5, 11}},
		{"inside radius band", mgl32.Vec3{10.5, 5, 5}, true, mgl32.Vec3{11, 5, 5}},
		{"far away", mgl32.Vec3{10000, 5, 10000}, false, mgl32.Vec3{10000, 5, 10000}},
		{"on expanded edge", mgl32.Vec3{11, 5, 5}, false, mgl32.Vec3{11, 5, 5}},
		{"above box", mgl32.Vec3{5, 11.5, 5}, false, mgl32.Vec3{5, 11.5, 5}},
		{"below box", mgl32.Vec3{5, -1.5, 5}, false, mgl32.Vec3{5, -1.5, 5}},
		{"just under the top", mgl32.Vec3{5, 10.5, 5}, true, mgl32.Vec3{5, 10.5, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.start
			changed := w.ResolveSphere(mgl32.Ident4(), &pos, 1)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if pos != tt.want {
				t.Errorf("pos = %v, want %v", pos, tt.want)
			}
		})
	}
}

func TestResolveSphereIdempotent(t *testing.T) {
	w := unitBoxWorld(t)

	for _, start := range []mgl32.Vec3{{5, 5, 5}, {1, 2, 3}, {9, 9, 0.5}, {-0.5, 1, 5}} {
		pos := start
		w.ResolveSphere(mgl32.Ident4(), &pos, 1)
		first := pos

		if w.ResolveSphere(mgl32.Ident4(), &pos, 1) {
			t.Errorf("start %v: second call reported a change", start)
		}
		if pos != first {
			t.Errorf("start %v: second call moved %v to %v", start, first, pos)
		}
	}
}

func TestResolveSphereClearsExpandedBox(t *testing.T) {
	w := unitBoxWorld(t)
	const r = 1

	for x := float32(-0.5); x <= 10.5; x += 0.75 {
		for z := float32(-0.5); z <= 10.5; z += 0.75 {
			pos := mgl32.Vec3{x, 5, z}
			w.ResolveSphere(mgl32.Ident4(), &pos, r)

			inside := pos[0] > -r && pos[0] < 10+r && pos[2] > -r && pos[2] < 10+r
			if inside {
				t.Errorf("start (%v, %v) resolved to %v, still inside", x, z, pos)
			}
		}
	}
}

func TestResolveSphereUsesModelMatrix(t *testing.T) {
	w := unitBoxWorld(t)

	// Box becomes x in [100, 120], y in [0, 20], z in [0, 20].
	model := math.ModelMatrix(mgl32.Vec3{100, 0, 0}, 0, 2)
	pos := mgl32.Vec3{110, 5, 12}
	if !w.ResolveSphere(model, &pos, 1) {
		t.Fatal("expected a push under the scaled model")
	}
	if pos != (mgl32.Vec3{110, 5, 21}) {
		t.Errorf("pos = %v, want (110, 5, 21)", pos)
	}

	// The untransformed location is now empty space.
	pos = mgl32.Vec3{5, 5, 5}
	if w.ResolveSphere(model, &pos, 1) {
		t.Errorf("unexpected push at model-local location, pos = %v", pos)
	}
}

func TestResolveSphereRotatedModel(t *testing.T) {
	w := newTestWorld(t, DefaultOptions(), func(b *Builder) {
		addBox(b, "wall", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 10, 2})
	})

	// A quarter turn maps the box to x in [0, 2], z in [-10, 0].
	model := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	pos := mgl32.Vec3{1, 5, -5}
	if !w.ResolveSphere(model, &pos, 0.5) {
		t.Fatal("expected a push under the rotated model")
	}
	if !near(pos[0], 2.5, 1e-4) || pos[2] != -5 {
		t.Errorf("pos = %v, want (2.5, 5, -5)", pos)
	}
}

func TestResolveSphereDetailed(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		w := newTestWorld(t, DefaultOptions(), func(b *Builder) {
			b.AddFace("terrain", flatQuad(0, 10))
		})
		pos := mgl32.Vec3{0, 1, 0}
		res := w.ResolveSphereDetailed(mgl32.Ident4(), &pos, 1)
		if res != (Resolution{Settled: true}) {
			t.Errorf("got %+v", res)
		}
	})

	t.Run("settles on second pass", func(t *testing.T) {
		w := unitBoxWorld(t)
		pos := mgl32.Vec3{5, 5, 5}
		res := w.ResolveSphereDetailed(mgl32.Ident4(), &pos, 1)
		want := Resolution{Changed: true, Passes: 2, Pushes: 1, Settled: true}
		if res != want {
			t.Errorf("got %+v, want %+v", res, want)
		}
	})

	t.Run("pass cap between facing walls", func(t *testing.T) {
		opts := DefaultOptions()
		opts.CellSize = 100

		// Two boxes one unit apart land in adjacent cells. A sphere of
		// radius 1 in the gap is pushed back and forth between them.
		w := newTestWorld(t, opts, func(b *Builder) {
			addBox(b, "wall_a", mgl32.Vec3{90, 0, 0}, mgl32.Vec3{99, 10, 10})
			addBox(b, "wall_b", mgl32.Vec3{100, 0, 0}, mgl32.Vec3{109, 10, 10})
		})
		if w.Stats().Cells != 2 {
			t.Fatalf("expected 2 cells, got %d", w.Stats().Cells)
		}

		pos := mgl32.Vec3{99.5, 5, 5}
		res := w.ResolveSphereDetailed(mgl32.Ident4(), &pos, 1)
		want := Resolution{Changed: true, Passes: DefaultRelaxationPasses, Pushes: 2 * DefaultRelaxationPasses, Settled: false}
		if res != want {
			t.Errorf("got %+v, want %+v", res, want)
		}
		if pos != (mgl32.Vec3{99, 5, 5}) {
			t.Errorf("pos = %v, want last push to win at x=99", pos)
		}
	})
}

func TestResolveSphereConcurrentReaders(t *testing.T) {
	w := unitBoxWorld(t)
	done := make(chan mgl32.Vec3)

	for i := 0; i < 8; i++ {
		go func() {
			pos := mgl32.Vec3{5, 5, 5}
			w.ResolveSphere(mgl32.Ident4(), &pos, 1)
			w.GroundHeight(mgl32.Ident4(), 0, 0)
			done <- pos
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != (mgl32.Vec3{5, 5, 11}) {
			t.Errorf("goroutine %d resolved to %v", i, got)
		}
	}
}
