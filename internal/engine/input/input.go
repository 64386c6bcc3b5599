// Package input handles SDL2 input events and turns them into per-frame
// viewer controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/townview/internal/sim"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	RelX   int
	RelY   int
}

// Input tracks held keys, key presses and mouse motion between frames.
type Input struct {
	events  []Event
	held    map[sdl.Scancode]bool
	pressed map[sdl.Scancode]bool
	mouseDX float32
	mouseDY float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		held:    make(map[sdl.Scancode]bool),
		pressed: make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events for the next frame.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.begin()
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			quit = true
		}
	}
	return quit
}

// begin clears the per-frame state. Held keys persist.
func (i *Input) begin() {
	i.events = i.events[:0]
	clear(i.pressed)
	i.mouseDX, i.mouseDY = 0, 0
}

// handle records one event and reports whether it asks to quit.
func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		sc := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			if e.Repeat == 0 {
				i.pressed[sc] = true
			}
			i.held[sc] = true
			i.events = append(i.events, Event{Type: EventKeyDown, Key: sc})
		case sdl.KEYUP:
			delete(i.held, sc)
			i.events = append(i.events, Event{Type: EventKeyUp, Key: sc})
		}

	case *sdl.MouseMotionEvent:
		i.mouseDX += float32(e.XRel)
		// SDL grows Y downward; the camera pitches up for positive DY.
		i.mouseDY -= float32(e.YRel)
		i.events = append(i.events, Event{
			Type: EventMouseMove,
			RelX: int(e.XRel),
			RelY: int(e.YRel),
		})
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	return i.pressed[scancode]
}

// IsKeyDown checks if a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Controls samples the viewer controls for this frame.
func (i *Input) Controls() sim.Controls {
	return sim.Controls{
		Forward:  i.held[sdl.SCANCODE_W],
		Backward: i.held[sdl.SCANCODE_S],
		Left:     i.held[sdl.SCANCODE_A],
		Right:    i.held[sdl.SCANCODE_D],
		Up:       i.held[sdl.SCANCODE_SPACE],
		Down:     i.held[sdl.SCANCODE_LCTRL],
		Turbo:    i.held[sdl.SCANCODE_LSHIFT],

		ToggleGroundLock: i.pressed[sdl.SCANCODE_T],
		ToggleTour:       i.pressed[sdl.SCANCODE_P],

		SceneForward:  i.held[sdl.SCANCODE_I],
		SceneBackward: i.held[sdl.SCANCODE_K],
		SceneLeft:     i.held[sdl.SCANCODE_J],
		SceneRight:    i.held[sdl.SCANCODE_L],
		SceneYawLeft:  i.held[sdl.SCANCODE_Q],
		SceneYawRight: i.held[sdl.SCANCODE_E],
		SceneShrink:   i.held[sdl.SCANCODE_Z],
		SceneGrow:     i.held[sdl.SCANCODE_X],

		MouseDX: i.mouseDX,
		MouseDY: i.mouseDY,
	}
}
