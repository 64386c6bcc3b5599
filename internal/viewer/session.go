package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Faultbox/townview/internal/config"
	"github.com/Faultbox/townview/internal/engine/debug"
	"github.com/Faultbox/townview/internal/logger"
	"github.com/Faultbox/townview/internal/sim"
	"github.com/Faultbox/townview/internal/spatial"
	"github.com/Faultbox/townview/internal/telemetry"
)

// maxStep caps dt so a stall (window drag, breakpoint) does not move the
// camera through walls in one frame.
const maxStep = 100 * time.Millisecond

// Session is the frame logic of the viewer without a window: it owns the
// simulation state, the debug line lists and the telemetry stream.
type Session struct {
	State *sim.State

	world *spatial.World
	log   *zap.Logger

	drawColliders bool
	drawTerrain   bool
	lines         debug.Lines
	linesModel    mgl32.Mat4
	linesValid    bool

	telemetry *telemetry.Server
	limiter   *rate.Limiter

	unsettled uint64
}

// TuningFromConfig maps the player and scene sections onto sim tuning.
func TuningFromConfig(cfg *config.Config) sim.Tuning {
	p, sc := cfg.Player, cfg.Scene
	return sim.Tuning{
		EyeHeight:        p.EyeHeight,
		GroundSnapEps:    p.GroundSnapEps,
		Radius:           p.Radius,
		WalkSpeed:        p.WalkSpeed,
		FlySpeed:         p.FlySpeed,
		TurboMultiplier:  p.TurboMultiplier,
		MouseSensitivity: p.MouseSensitivity,
		TranslateStep:    sc.TranslateStep,
		RotateStepDeg:    sc.RotateStepDeg,
		ScaleStep:        sc.ScaleStep,
		MinScale:         sc.MinScale,
	}
}

// NewSession creates the simulation state from cfg and starts the telemetry
// server when an address is configured.
func NewSession(cfg *config.Config, w *spatial.World) (*Session, error) {
	scene := sim.Scene{
		Translate: cfg.Scene.Translate,
		YawDeg:    cfg.Scene.YawDeg,
		Scale:     cfg.Scene.Scale,
	}
	s := &Session{
		State: sim.NewState(
			cfg.Player.StartPosition,
			cfg.Player.StartTarget,
			scene,
			TuningFromConfig(cfg),
			cfg.Player.LockToGround,
		),
		world:         w,
		log:           logger.Named("viewer"),
		drawColliders: cfg.Debug.DrawColliders,
		drawTerrain:   cfg.Debug.DrawTerrain,
	}

	if addr := cfg.Debug.TelemetryAddr; addr != "" {
		srv, err := telemetry.Listen(addr)
		if err != nil {
			return nil, fmt.Errorf("starting telemetry on %s: %w", addr, err)
		}
		s.telemetry = srv
		s.limiter = telemetry.NewLimiter(cfg.Debug.TelemetryInterval)
	}
	return s, nil
}

// Tick runs one simulation step and publishes telemetry when due.
func (s *Session) Tick(in sim.Controls, dt time.Duration, now time.Time) sim.Frame {
	dt = min(dt, maxStep)
	wasLocked, wasTouring := s.State.LockToGround, s.State.Touring

	f := sim.Step(s.State, in, s.world, float32(dt.Seconds()))

	if s.State.LockToGround != wasLocked {
		s.log.Info("ground lock toggled", zap.Bool("locked", s.State.LockToGround))
	}
	if s.State.Touring != wasTouring {
		s.log.Info("tour toggled", zap.Bool("touring", s.State.Touring))
	}
	if f.SceneChanged {
		s.log.Debug("scene transform",
			zap.Float32s("translate", s.State.Scene.Translate[:]),
			zap.Float32("yaw", s.State.Scene.YawDeg),
			zap.Float32("scale", s.State.Scene.Scale),
		)
	}
	if !f.Touring && !f.Resolution.Settled {
		s.unsettled++
		s.log.Debug("push-out did not settle",
			zap.Uint64("frame", f.Index),
			zap.Int("passes", f.Resolution.Passes),
			zap.Int("pushes", f.Resolution.Pushes),
			zap.Float32s("position", f.Position[:]),
		)
	}

	if s.telemetry != nil && s.limiter.AllowN(now, 1) {
		if err := s.telemetry.Hub.Publish(telemetry.FromFrame(s.State, f, now)); err != nil {
			s.log.Warn("telemetry publish failed", zap.Error(err))
		}
	}
	return f
}

// Unsettled returns how many frames ended with the push-out still moving.
func (s *Session) Unsettled() uint64 {
	return s.unsettled
}

// Lines returns the debug geometry for the current scene transform,
// rebuilding it only when the transform changed.
func (s *Session) Lines() *debug.Lines {
	model := s.State.Scene.Model()
	if s.linesValid && model == s.linesModel {
		return &s.lines
	}

	s.lines.Reset()
	if s.drawTerrain {
		s.lines.Terrain(s.world, model)
	}
	if s.drawColliders {
		s.lines.Colliders(s.world, model, s.State.Tuning.Radius)
	}
	s.linesModel = model
	s.linesValid = true
	return &s.lines
}

// Telemetry returns the running telemetry server, or nil.
func (s *Session) Telemetry() *telemetry.Server {
	return s.telemetry
}

// Close stops the telemetry server.
func (s *Session) Close() error {
	if s.telemetry == nil {
		return nil
	}
	err := s.telemetry.Close()
	s.telemetry = nil
	return err
}
