package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func keyDown(sc sdl.Scancode, repeat bool) *sdl.KeyboardEvent {
	e := &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sc}}
	if repeat {
		e.Repeat = 1
	}
	return e
}

func keyUp(sc sdl.Scancode) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sc}}
}

func TestHeldAndPressed(t *testing.T) {
	in := New()

	in.begin()
	in.handle(keyDown(sdl.SCANCODE_W, false))
	in.handle(keyDown(sdl.SCANCODE_T, false))
	c := in.Controls()
	if !c.Forward {
		t.Error("frame 1: Forward not held")
	}
	if !c.ToggleGroundLock {
		t.Error("frame 1: ToggleGroundLock not pressed")
	}

	// Next frame: key repeat keeps W held but must not re-trigger T.
	in.begin()
	in.handle(keyDown(sdl.SCANCODE_T, true))
	c = in.Controls()
	if !c.Forward {
		t.Error("frame 2: Forward released without key up")
	}
	if c.ToggleGroundLock {
		t.Error("frame 2: repeat triggered ToggleGroundLock")
	}

	in.begin()
	in.handle(keyUp(sdl.SCANCODE_W))
	if in.Controls().Forward {
		t.Error("frame 3: Forward still held after key up")
	}
	if in.IsKeyDown(sdl.SCANCODE_W) {
		t.Error("IsKeyDown(W) = true after key up")
	}
}

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		key  sdl.Scancode
		name string
		get  func(in *Input) bool
	}{
		{sdl.SCANCODE_S, "Backward", func(in *Input) bool { return in.Controls().Backward }},
		{sdl.SCANCODE_A, "Left", func(in *Input) bool { return in.Controls().Left }},
		{sdl.SCANCODE_D, "Right", func(in *Input) bool { return in.Controls().Right }},
		{sdl.SCANCODE_SPACE, "Up", func(in *Input) bool { return in.Controls().Up }},
		{sdl.SCANCODE_LCTRL, "Down", func(in *Input) bool { return in.Controls().Down }},
		{sdl.SCANCODE_LSHIFT, "Turbo", func(in *Input) bool { return in.Controls().Turbo }},
		{sdl.SCANCODE_P, "ToggleTour", func(in *Input) bool { return in.Controls().ToggleTour }},
		{sdl.SCANCODE_I, "SceneForward", func(in *Input) bool { return in.Controls().SceneForward }},
		{sdl.SCANCODE_K, "SceneBackward", func(in *Input) bool { return in.Controls().SceneBackward }},
		{sdl.SCANCODE_J, "SceneLeft", func(in *Input) bool { return in.Controls().SceneLeft }},
		{sdl.SCANCODE_L, "SceneRight", func(in *Input) bool { return in.Controls().SceneRight }},
		{sdl.SCANCODE_Q, "SceneYawLeft", func(in *Input) bool { return in.Controls().SceneYawLeft }},
		{sdl.SCANCODE_E, "SceneYawRight", func(in *Input) bool { return in.Controls().SceneYawRight }},
		{sdl.SCANCODE_Z, "SceneShrink", func(in *Input) bool { return in.Controls().SceneShrink }},
		{sdl.SCANCODE_X, "SceneGrow", func(in *Input) bool { return in.Controls().SceneGrow }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			in.begin()
			if tt.get(in) {
				t.Fatalf("%s set before any key", tt.name)
			}
			in.handle(keyDown(tt.key, false))
			if !tt.get(in) {
				t.Errorf("%s not set after key down", tt.name)
			}
		})
	}
}

func TestMouseMotion(t *testing.T) {
	in := New()
	in.begin()
	in.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: 4})
	in.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 2, YRel: -10})

	c := in.Controls()
	if c.MouseDX != 5 {
		t.Errorf("MouseDX = %v, want 5", c.MouseDX)
	}
	// Moving the mouse up (negative YRel) looks up.
	if c.MouseDY != 6 {
		t.Errorf("MouseDY = %v, want 6", c.MouseDY)
	}

	in.begin()
	c = in.Controls()
	if c.MouseDX != 0 || c.MouseDY != 0 {
		t.Errorf("mouse delta not cleared: (%v, %v)", c.MouseDX, c.MouseDY)
	}
}

func TestQuitAndResize(t *testing.T) {
	in := New()
	in.begin()

	if in.handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600}) {
		t.Error("resize reported quit")
	}
	if !in.handle(&sdl.QuitEvent{Type: sdl.QUIT}) {
		t.Error("quit event not reported")
	}

	events := in.Events()
	if len(events) != 2 {
		t.Fatalf("len(Events()) = %d, want 2", len(events))
	}
	if events[0].Type != EventWindowResize || events[0].Width != 800 || events[0].Height != 600 {
		t.Errorf("events[0] = %+v, want 800x600 resize", events[0])
	}
	if events[1].Type != EventQuit {
		t.Errorf("events[1].Type = %v, want EventQuit", events[1].Type)
	}
}
