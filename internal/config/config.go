// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/logger"
	"github.com/Faultbox/townview/internal/spatial"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Scene   SceneConfig   `yaml:"scene"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// WorldConfig selects the mesh and tunes the spatial query layer.
type WorldConfig struct {
	ModelPath        string  `yaml:"model_path"`
	CellSize         float32 `yaml:"cell_size"`         // Model-local units
	RelaxationPasses int     `yaml:"relaxation_passes"` // Resolver sweeps per frame
	RayStartHeight   float32 `yaml:"ray_start_height"`  // World Y of the ground probe
}

// SpatialOptions converts the world section into spatial options.
func (w WorldConfig) SpatialOptions() spatial.Options {
	return spatial.Options{
		CellSize:         w.CellSize,
		RelaxationPasses: w.RelaxationPasses,
		RayStartHeight:   w.RayStartHeight,
	}
}

// PlayerConfig holds camera body and movement tuning. Speeds are world
// units per frame at 60 FPS.
type PlayerConfig struct {
	EyeHeight        float32    `yaml:"eye_height"`
	GroundSnapEps    float32    `yaml:"ground_snap_eps"`
	Radius           float32    `yaml:"radius"`
	WalkSpeed        float32    `yaml:"walk_speed"`
	FlySpeed         float32    `yaml:"fly_speed"`
	TurboMultiplier  float32    `yaml:"turbo_multiplier"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"` // Degrees per pixel
	LockToGround     bool       `yaml:"lock_to_ground"`
	StartPosition    [3]float32 `yaml:"start_position,flow"`
	StartTarget      [3]float32 `yaml:"start_target,flow"`
}

// SceneConfig holds the initial model transform and its edit steps.
type SceneConfig struct {
	Translate     [3]float32 `yaml:"translate,flow"`
	YawDeg        float32    `yaml:"yaw_deg"`
	Scale         float32    `yaml:"scale"`
	TranslateStep float32    `yaml:"translate_step"`
	RotateStepDeg float32    `yaml:"rotate_step_deg"`
	ScaleStep     float32    `yaml:"scale_step"`
	MinScale      float32    `yaml:"min_scale"`
}

// DebugConfig holds developer overlays and the telemetry stream.
type DebugConfig struct {
	DrawColliders     bool          `yaml:"draw_colliders"`
	DrawTerrain       bool          `yaml:"draw_terrain"`
	TelemetryAddr     string        `yaml:"telemetry_addr"` // Empty disables telemetry
	TelemetryInterval time.Duration `yaml:"telemetry_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"` // JSON lines in the log file
}

// FileConfig returns the rotating file settings for the logger.
func (l LoggingConfig) FileConfig() logger.FileConfig {
	if l.LogFile == "" {
		return logger.FileConfig{}
	}
	fc := logger.DefaultFileConfig(l.LogFile)
	fc.JSON = l.JSON
	return fc
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Town View",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		World: WorldConfig{
			ModelPath:        "models/town.obj",
			CellSize:         spatial.DefaultCellSize,
			RelaxationPasses: spatial.DefaultRelaxationPasses,
			RayStartHeight:   spatial.DefaultRayStartHeight,
		},
		Player: PlayerConfig{
			EyeHeight:        1.8,
			GroundSnapEps:    0.05,
			Radius:           0.01,
			WalkSpeed:        0.25,
			FlySpeed:         0.6,
			TurboMultiplier:  4,
			MouseSensitivity: 0.08,
			LockToGround:     true,
			StartPosition:    [3]float32{-120.593, 3.84375, -217.279},
			StartTarget:      [3]float32{-119.610309, 3.9385537, -217.438156},
		},
		Scene: SceneConfig{
			Scale:         0.1,
			TranslateStep: 0.3,
			RotateStepDeg: 2,
			ScaleStep:     0.01,
			MinScale:      0.01,
		},
		Debug: DebugConfig{
			// Debug lines are all the viewer draws; terrain shows the town.
			DrawTerrain:       true,
			TelemetryInterval: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPSLimit < 0 {
		return fmt.Errorf("%w: fps_limit %d", ErrInvalid, c.Window.FPSLimit)
	}
	if c.World.ModelPath == "" {
		return fmt.Errorf("%w: world.model_path is empty", ErrInvalid)
	}
	if err := c.World.SpatialOptions().Validate(); err != nil {
		return fmt.Errorf("%w: world: %w", ErrInvalid, err)
	}

	p := c.Player
	if !(p.EyeHeight >= 0) || !(p.GroundSnapEps >= 0) || !(p.Radius >= 0) {
		return fmt.Errorf("%w: player eye height, snap eps and radius must be non-negative", ErrInvalid)
	}
	if !(p.WalkSpeed > 0) || !(p.FlySpeed > 0) || !(p.TurboMultiplier >= 1) {
		return fmt.Errorf("%w: player speeds must be positive and turbo at least 1", ErrInvalid)
	}
	if !(p.MouseSensitivity > 0) {
		return fmt.Errorf("%w: mouse_sensitivity %v", ErrInvalid, p.MouseSensitivity)
	}
	if mgl32.Vec3(p.StartTarget).Sub(mgl32.Vec3(p.StartPosition)).Len() == 0 {
		return fmt.Errorf("%w: player start_target equals start_position", ErrInvalid)
	}

	s := c.Scene
	if !(s.MinScale > 0) || !(s.Scale >= s.MinScale) || math32.IsInf(s.Scale, 0) {
		return fmt.Errorf("%w: scene scale %v with min_scale %v", ErrInvalid, s.Scale, s.MinScale)
	}
	if s.TranslateStep < 0 || s.RotateStepDeg < 0 || s.ScaleStep < 0 {
		return fmt.Errorf("%w: scene steps must be non-negative", ErrInvalid)
	}

	if c.Debug.TelemetryAddr != "" && c.Debug.TelemetryInterval <= 0 {
		return fmt.Errorf("%w: telemetry_interval %v", ErrInvalid, c.Debug.TelemetryInterval)
	}
	if !logger.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
