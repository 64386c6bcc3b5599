package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/camera"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.15625},
		{0.5, 0.5},
		{0.75, 0.84375},
		{1, 1},
		{3, 1},
	}

	for _, tt := range tests {
		if got := Smoothstep(tt.in); !near(got, tt.want, 1e-6) {
			t.Errorf("Smoothstep(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnchoredTour(t *testing.T) {
	anchor := mgl32.Vec3{0, 2, 0}
	target := mgl32.Vec3{0, 2, 4}
	tour := AnchoredTour(anchor, target)

	keys := tour.Keyframes()
	if len(keys) != 5 {
		t.Fatalf("expected 5 keyframes, got %d", len(keys))
	}
	if keys[0].Position != anchor || keys[0].Target != target {
		t.Errorf("first keyframe = %+v, want anchor view", keys[0])
	}
	if !vecNear(keys[1].Position, mgl32.Vec3{0, 2, 8}, 1e-5) {
		t.Errorf("push-in keyframe at %v, want 8 units along the view", keys[1].Position)
	}
	if tour.Anchor() != anchor {
		t.Errorf("Anchor() = %v", tour.Anchor())
	}
}

func TestTourAdvanceInterpolates(t *testing.T) {
	tour := NewTour([]Keyframe{
		{Position: mgl32.Vec3{0, 0, 0}, Target: mgl32.Vec3{0, 0, 10}, Duration: 2},
		{Position: mgl32.Vec3{10, 0, 0}, Target: mgl32.Vec3{10, 0, 10}, Duration: 2},
	})
	cam := camera.NewFlyCamera(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})

	tour.Advance(cam, 1)
	if !vecNear(cam.Position(), mgl32.Vec3{5, 0, 0}, 1e-4) {
		t.Errorf("midpoint at %v, want (5, 0, 0)", cam.Position())
	}
	if idx, elapsed := tour.Segment(); idx != 0 || elapsed != 1 {
		t.Errorf("segment = (%d, %v), want (0, 1)", idx, elapsed)
	}

	tour.Advance(cam, 1)
	if !vecNear(cam.Position(), mgl32.Vec3{10, 0, 0}, 1e-4) {
		t.Errorf("segment end at %v, want (10, 0, 0)", cam.Position())
	}
	if idx, elapsed := tour.Segment(); idx != 1 || elapsed != 0 {
		t.Errorf("segment = (%d, %v), want (1, 0)", idx, elapsed)
	}
}

func TestTourLoops(t *testing.T) {
	tour := AnchoredTour(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	cam := camera.NewFlyCamera(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})

	for i := 0; i < len(tour.Keyframes()); i++ {
		tour.Advance(cam, 10)
	}
	if idx, _ := tour.Segment(); idx != 0 {
		t.Errorf("expected the tour to wrap to segment 0, got %d", idx)
	}

	tour.Advance(cam, 10)
	tour.Reset()
	if idx, elapsed := tour.Segment(); idx != 0 || elapsed != 0 {
		t.Errorf("Reset left segment (%d, %v)", idx, elapsed)
	}
}

func TestTourTooShort(t *testing.T) {
	tour := NewTour([]Keyframe{{Position: mgl32.Vec3{5, 5, 5}, Duration: 1}})
	cam := camera.NewFlyCamera(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})

	tour.Advance(cam, 1)
	if cam.Position() != (mgl32.Vec3{}) {
		t.Errorf("single-keyframe tour moved the camera to %v", cam.Position())
	}
	if NewTour(nil).Anchor() != (mgl32.Vec3{}) {
		t.Error("empty tour anchor should be the origin")
	}
}
