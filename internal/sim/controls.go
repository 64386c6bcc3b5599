package sim

// Controls is the input sampled for one frame. Held keys are level
// triggered; the Toggle fields must be true only on the frame the key went
// down.
type Controls struct {
	Forward  bool // W
	Backward bool // S
	Left     bool // A
	Right    bool // D
	Up       bool // Space, free fly only
	Down     bool // Left Ctrl, free fly only
	Turbo    bool // Left Shift

	ToggleGroundLock bool // T
	ToggleTour       bool // P

	SceneForward  bool // I, scene moves toward -Z
	SceneBackward bool // K
	SceneLeft     bool // J
	SceneRight    bool // L
	SceneYawLeft  bool // Q
	SceneYawRight bool // E
	SceneShrink   bool // Z
	SceneGrow     bool // X

	// Mouse motion in pixels since the last frame. Positive DY looks up.
	MouseDX float32
	MouseDY float32
}

// sceneEdit reports whether any scene transform key is held.
func (c Controls) sceneEdit() bool {
	return c.SceneForward || c.SceneBackward || c.SceneLeft || c.SceneRight ||
		c.SceneYawLeft || c.SceneYawRight || c.SceneShrink || c.SceneGrow
}
