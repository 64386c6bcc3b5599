// Package sim advances the viewer by one frame: scene transform edits,
// camera movement, obstacle push-out and ground clamping, or the
// cinematic tour when it is running.
//
// Step holds no globals. Everything it reads and writes lives in State, and
// world geometry is reached through the Queries interface so the step can be
// driven by fakes in tests.
package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/spatial"
	"github.com/Faultbox/townview/pkg/math"
)

// ReferenceFPS is the frame rate the per-frame speeds and steps in Tuning
// are expressed at. Step scales them by dt so motion is frame-rate
// independent.
const ReferenceFPS = 60

// Queries is the world geometry a step needs. *spatial.World satisfies it.
type Queries interface {
	GroundHeight(model mgl32.Mat4, worldX, worldZ float32) (float32, bool)
	ResolveSphereDetailed(model mgl32.Mat4, pos *mgl32.Vec3, radius float32) spatial.Resolution
}

// Tuning holds movement and scene-edit constants.
type Tuning struct {
	EyeHeight        float32 // Camera height above ground when locked
	GroundSnapEps    float32 // Snap band above EyeHeight
	Radius           float32 // Collision sphere radius
	WalkSpeed        float32 // Units per reference frame
	FlySpeed         float32 // Vertical units per reference frame
	TurboMultiplier  float32
	MouseSensitivity float32 // Degrees per pixel

	TranslateStep float32 // Scene units per reference frame
	RotateStepDeg float32
	ScaleStep     float32
	MinScale      float32
}

// DefaultTuning returns the tuned defaults.
func DefaultTuning() Tuning {
	return Tuning{
		EyeHeight:        1.8,
		GroundSnapEps:    0.05,
		Radius:           0.01,
		WalkSpeed:        0.25,
		FlySpeed:         0.6,
		TurboMultiplier:  4,
		MouseSensitivity: 0.08,
		TranslateStep:    0.3,
		RotateStepDeg:    2,
		ScaleStep:        0.01,
		MinScale:         0.01,
	}
}

// Scene is the runtime model transform applied to the whole mesh.
type Scene struct {
	Translate mgl32.Vec3
	YawDeg    float32
	Scale     float32
}

// Model returns the scene's model matrix, T * Ry * S.
func (s Scene) Model() mgl32.Mat4 {
	return math.ModelMatrix(s.Translate, s.YawDeg, s.Scale)
}
