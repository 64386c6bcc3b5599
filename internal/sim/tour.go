package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/camera"
)

// minSegment keeps zero-length keyframes from dividing by zero.
const minSegment = 0.001

// turnRate is how fast the tour camera turns toward its target, as a
// fraction of the remaining angle per second.
const turnRate = 6

// Keyframe is one stop of the cinematic tour. Duration is the time in
// seconds to travel from this keyframe to the next.
type Keyframe struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Duration float32
}

// Tour loops a camera through keyframes with smoothstep easing.
type Tour struct {
	keys    []Keyframe
	index   int
	elapsed float32
}

// NewTour creates a tour over keys. A tour needs at least two keyframes to
// move.
func NewTour(keys []Keyframe) *Tour {
	return &Tour{keys: keys}
}

// AnchoredTour builds the default preview around an anchor view: a push
// forward, a drift left, a drift right and a wide pull-back.
func AnchoredTour(anchor, target mgl32.Vec3) *Tour {
	front := target.Sub(anchor)
	if l := front.Len(); l > 0 {
		front = front.Mul(1 / l)
	}
	return NewTour([]Keyframe{
		{Position: anchor, Target: target, Duration: 0.01},
		{Position: anchor.Add(front.Mul(8)), Target: target.Add(front.Mul(10)), Duration: 3.5},
		{Position: anchor.Add(mgl32.Vec3{-8, 1, 0}), Target: target.Add(mgl32.Vec3{-6, 0.5, 0}), Duration: 4},
		{Position: anchor.Add(mgl32.Vec3{8, 1, 0}), Target: target.Add(mgl32.Vec3{6, 0.5, 0}), Duration: 4},
		{Position: anchor.Add(mgl32.Vec3{0, 6, 18}), Target: target.Add(mgl32.Vec3{0, 2, 10}), Duration: 5},
	})
}

// Keyframes returns the tour's keyframes.
func (t *Tour) Keyframes() []Keyframe {
	return t.keys
}

// Anchor returns the first keyframe position.
func (t *Tour) Anchor() mgl32.Vec3 {
	if len(t.keys) == 0 {
		return mgl32.Vec3{}
	}
	return t.keys[0].Position
}

// Reset rewinds the tour to its first segment.
func (t *Tour) Reset() {
	t.index = 0
	t.elapsed = 0
}

// Segment returns the current segment index and the time spent in it.
func (t *Tour) Segment() (index int, elapsed float32) {
	return t.index, t.elapsed
}

// Advance moves the camera dt seconds along the tour and turns it toward
// the interpolated target.
func (t *Tour) Advance(cam *camera.FlyCamera, dt float32) {
	if len(t.keys) < 2 {
		return
	}

	a := t.keys[t.index]
	b := t.keys[(t.index+1)%len(t.keys)]

	t.elapsed += dt
	dur := a.Duration
	if dur < minSegment {
		dur = minSegment
	}
	u := t.elapsed / dur
	s := Smoothstep(u)

	pos := lerp(a.Position, b.Position, s)
	target := lerp(a.Target, b.Target, s)

	cam.SetPosition(pos)
	cam.TurnToward(target, dt*turnRate)

	if u >= 1 {
		t.index = (t.index + 1) % len(t.keys)
		t.elapsed = 0
	}
}

// Smoothstep eases x clamped to [0, 1] with 3x^2 - 2x^3.
func Smoothstep(x float32) float32 {
	x = mgl32.Clamp(x, 0, 1)
	return x * x * (3 - 2*x)
}

func lerp(a, b mgl32.Vec3, s float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(s))
}
