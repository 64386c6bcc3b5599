package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/camera"
	"github.com/Faultbox/townview/internal/spatial"
)

// State is everything that persists between frames.
type State struct {
	Camera       *camera.FlyCamera
	Scene        Scene
	Tuning       Tuning
	LockToGround bool

	Tour    *Tour
	Touring bool

	frame uint64
}

// NewState creates a state with the camera at start looking at target and
// a tour anchored there.
func NewState(start, target mgl32.Vec3, scene Scene, tuning Tuning, lockToGround bool) *State {
	return &State{
		Camera:       camera.NewFlyCamera(start, target),
		Scene:        scene,
		Tuning:       tuning,
		LockToGround: lockToGround,
		Tour:         AnchoredTour(start, target),
	}
}

// Frames returns how many steps have run.
func (s *State) Frames() uint64 {
	return s.frame
}

// Frame is the outcome of one Step.
type Frame struct {
	Index        uint64
	Position     mgl32.Vec3
	Model        mgl32.Mat4
	Touring      bool
	SceneChanged bool
	Moved        bool

	Resolution spatial.Resolution

	// Ground is valid when GroundHit is true. It is only queried while
	// locked to the ground.
	GroundHit bool
	Ground    float32
	Clamped   bool
}
