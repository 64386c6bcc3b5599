// Package telemetry streams per-frame viewer state to websocket clients for
// live inspection of collision and ground-clamp behavior.
package telemetry

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/Faultbox/townview/internal/sim"
)

// Sample is one frame as sent to clients, encoded as JSON.
type Sample struct {
	Frame    uint64     `json:"frame"`
	Time     time.Time  `json:"time"`
	Position [3]float32 `json:"position"`
	Yaw      float32    `json:"yaw"`
	Pitch    float32    `json:"pitch"`

	Locked    bool    `json:"locked"`
	Touring   bool    `json:"touring"`
	GroundHit bool    `json:"groundHit"`
	Ground    float32 `json:"ground,omitempty"`
	Clamped   bool    `json:"clamped"`

	Passes  int  `json:"passes"`
	Pushes  int  `json:"pushes"`
	Settled bool `json:"settled"`

	SceneTranslate [3]float32 `json:"sceneTranslate"`
	SceneYaw       float32    `json:"sceneYaw"`
	SceneScale     float32    `json:"sceneScale"`
}

// FromFrame builds a sample from a finished step.
func FromFrame(s *sim.State, f sim.Frame, now time.Time) Sample {
	return Sample{
		Frame:          f.Index,
		Time:           now,
		Position:       f.Position,
		Yaw:            s.Camera.Yaw(),
		Pitch:          s.Camera.Pitch(),
		Locked:         s.LockToGround,
		Touring:        f.Touring,
		GroundHit:      f.GroundHit,
		Ground:         f.Ground,
		Clamped:        f.Clamped,
		Passes:         f.Resolution.Passes,
		Pushes:         f.Resolution.Pushes,
		Settled:        f.Resolution.Settled,
		SceneTranslate: s.Scene.Translate,
		SceneYaw:       s.Scene.YawDeg,
		SceneScale:     s.Scene.Scale,
	}
}

// NewLimiter returns a limiter that lets one sample through per interval.
// A non-positive interval lets everything through.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
