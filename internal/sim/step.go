package sim

import (
	"github.com/Faultbox/townview/internal/engine/camera"
	"github.com/Faultbox/townview/internal/spatial"
)

// Step advances s by dt seconds using the sampled controls.
//
// Outside the tour the order is fixed: scene edits, mouse look, movement,
// obstacle push-out, then the ground clamp when locked. While the tour runs
// the camera follows the keyframes and no collision is applied.
func Step(s *State, in Controls, q Queries, dt float32) Frame {
	s.frame++
	if dt < 0 {
		dt = 0
	}
	frames := dt * ReferenceFPS

	if in.ToggleTour {
		s.Touring = !s.Touring
		if s.Touring && s.Tour != nil {
			s.Tour.Reset()
			s.Camera.SetPosition(s.Tour.Anchor())
		}
	}

	if s.Touring && s.Tour != nil {
		s.Tour.Advance(s.Camera, dt)
		return Frame{
			Index:    s.frame,
			Position: s.Camera.Position(),
			Model:    s.Scene.Model(),
			Touring:  true,
			Moved:    true,

			// No push-out runs on tour frames.
			Resolution: spatial.Resolution{Settled: true},
		}
	}

	if in.ToggleGroundLock {
		s.LockToGround = !s.LockToGround
	}

	f := Frame{Index: s.frame}
	f.SceneChanged = applySceneEdits(&s.Scene, in, s.Tuning, frames)
	model := s.Scene.Model()
	f.Model = model

	if in.MouseDX != 0 || in.MouseDY != 0 {
		sens := s.Tuning.MouseSensitivity
		s.Camera.Rotate(in.MouseDY*sens, in.MouseDX*sens)
	}

	f.Moved = move(s, in, frames)

	pos := s.Camera.Position()
	f.Resolution = q.ResolveSphereDetailed(model, &pos, s.Tuning.Radius)

	if s.LockToGround {
		if ground, ok := q.GroundHeight(model, pos[0], pos[2]); ok {
			f.GroundHit = true
			f.Ground = ground
			minY := ground + s.Tuning.EyeHeight
			if pos[1] < minY+s.Tuning.GroundSnapEps {
				pos[1] = minY
				f.Clamped = true
			}
		}
	}

	s.Camera.SetPosition(pos)
	f.Position = pos
	return f
}

func applySceneEdits(sc *Scene, in Controls, tn Tuning, frames float32) bool {
	if !in.sceneEdit() {
		return false
	}

	step := tn.TranslateStep * frames
	if in.SceneForward {
		sc.Translate[2] -= step
	}
	if in.SceneBackward {
		sc.Translate[2] += step
	}
	if in.SceneLeft {
		sc.Translate[0] -= step
	}
	if in.SceneRight {
		sc.Translate[0] += step
	}

	if in.SceneYawLeft {
		sc.YawDeg += tn.RotateStepDeg * frames
	}
	if in.SceneYawRight {
		sc.YawDeg -= tn.RotateStepDeg * frames
	}

	if in.SceneShrink {
		sc.Scale = max(tn.MinScale, sc.Scale-tn.ScaleStep*frames)
	}
	if in.SceneGrow {
		sc.Scale += tn.ScaleStep * frames
	}
	return true
}

func move(s *State, in Controls, frames float32) bool {
	mult := float32(1)
	if in.Turbo {
		mult = s.Tuning.TurboMultiplier
	}
	speed := s.Tuning.WalkSpeed * mult * frames
	cam := s.Camera
	moved := false

	if in.Forward {
		cam.Move(camera.Forward, speed)
		moved = true
	}
	if in.Backward {
		cam.Move(camera.Backward, speed)
		moved = true
	}
	if in.Left {
		cam.Move(camera.Left, speed)
		moved = true
	}
	if in.Right {
		cam.Move(camera.Right, speed)
		moved = true
	}

	if !s.LockToGround {
		pos := cam.Position()
		fly := s.Tuning.FlySpeed * mult * frames
		if in.Up {
			pos[1] += fly
			moved = true
		}
		if in.Down {
			pos[1] -= fly
			moved = true
		}
		cam.SetPosition(pos)
	}
	return moved
}
