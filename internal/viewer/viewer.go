// Package viewer implements the interactive walkthrough: the SDL window,
// the frame loop and the debug overlay.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/config"
	"github.com/Faultbox/townview/internal/engine/debug"
	"github.com/Faultbox/townview/internal/engine/input"
	"github.com/Faultbox/townview/internal/engine/renderer"
	"github.com/Faultbox/townview/internal/engine/window"
	"github.com/Faultbox/townview/internal/logger"
	"github.com/Faultbox/townview/internal/spatial"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	session     *Session
	screenshots *debug.ScreenshotCapture
}

// New opens the window and prepares a session over w.
func New(cfg *config.Config, w *spatial.World) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		log:         logger.Named("viewer"),
		input:       input.New(),
		screenshots: debug.NewScreenshotCapture("screenshots", "townview"),
	}
	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	v.session, err = NewSession(cfg, w)
	if err != nil {
		return nil, err
	}

	// Creates the OpenGL context too
	v.window, err = window.New(window.Config{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		v.session.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		v.session.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the frame loop and returns when the window is closed or Esc
// is pressed.
func (v *Viewer) Run() error {
	v.running = true

	var frameBudget time.Duration
	if v.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Window.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		if !v.running {
			break
		}

		// 2. Simulation, telemetry
		v.session.Tick(v.input.Controls(), dt, now)

		// 3. Render
		v.render()
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot(now)
		}

		// 4. Present
		v.window.SwapBuffers()

		frameCount++
		if since := time.Since(fpsTimer); since >= time.Second {
			fps := float64(frameCount) / since.Seconds()
			v.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", v.cfg.Window.Title, fps))
			v.log.Debug("fps",
				zap.Float64("fps", fps),
				zap.Duration("dt", dt),
				zap.Uint64("unsettled", v.session.Unsettled()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_ESCAPE {
				v.running = false
			}
		}
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()

	cam := v.session.State.Camera
	v.renderer.DrawLines(v.session.Lines(), cam.ViewMatrix(), cam.ProjectionMatrix(v.window.Aspect()))
}

func (v *Viewer) screenshot(now time.Time) {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, width, height, now)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if err := v.session.Close(); err != nil {
		v.log.Warn("telemetry shutdown", zap.Error(err))
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
