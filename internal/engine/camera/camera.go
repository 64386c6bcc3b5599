// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pitch limits in degrees. Looking straight up or down would make the
// right vector degenerate.
const (
	MaxPitch = 89.0
	MinPitch = -89.0
)

// Projection defaults.
const (
	DefaultFOV  = 60.0 // Vertical field of view in degrees
	DefaultNear = 0.1
	DefaultFar  = 20000.0
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Direction is a camera-relative movement direction.
type Direction int

// Movement directions.
const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// FlyCamera is a free-look first-person camera. Yaw and pitch are in
// degrees; yaw 0 looks down +X and yaw 90 looks down +Z.
type FlyCamera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3

	yaw   float32
	pitch float32

	FOV       float32
	NearPlane float32
	FarPlane  float32
}

// NewFlyCamera creates a camera at position looking at target.
func NewFlyCamera(position, target mgl32.Vec3) *FlyCamera {
	c := &FlyCamera{
		position:  position,
		FOV:       DefaultFOV,
		NearPlane: DefaultNear,
		FarPlane:  DefaultFar,
	}
	c.LookAt(target)
	return c
}

// Position returns the eye position.
func (c *FlyCamera) Position() mgl32.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector, always horizontal.
func (c *FlyCamera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit camera up vector.
func (c *FlyCamera) Up() mgl32.Vec3 { return c.up }

// Yaw returns the heading in degrees.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the elevation in degrees.
func (c *FlyCamera) Pitch() float32 { return c.pitch }

// Target returns the point one unit in front of the eye.
func (c *FlyCamera) Target() mgl32.Vec3 {
	return c.position.Add(c.front)
}

// SetPosition moves the eye without changing orientation.
func (c *FlyCamera) SetPosition(p mgl32.Vec3) {
	c.position = p
}

// Move translates the eye along its front or right vector.
func (c *FlyCamera) Move(dir Direction, speed float32) {
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(speed))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(speed))
	case Right:
		c.position = c.position.Add(c.right.Mul(speed))
	case Left:
		c.position = c.position.Sub(c.right.Mul(speed))
	}
}

// Rotate adds pitch and yaw deltas in degrees. Pitch is clamped to
// [MinPitch, MaxPitch].
func (c *FlyCamera) Rotate(dPitch, dYaw float32) {
	c.pitch = mgl32.Clamp(c.pitch+dPitch, MinPitch, MaxPitch)
	c.yaw += dYaw
	c.updateVectors()
}

// LookAt turns the camera toward target. A target equal to the eye position
// leaves the orientation unchanged.
func (c *FlyCamera) LookAt(target mgl32.Vec3) {
	yaw, pitch, ok := c.anglesTo(target)
	if !ok {
		if c.front == (mgl32.Vec3{}) {
			c.updateVectors()
		}
		return
	}
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, MinPitch, MaxPitch)
	c.updateVectors()
}

// TurnToward rotates a fraction k in [0, 1] of the way toward target.
// The yaw delta takes the short way around.
func (c *FlyCamera) TurnToward(target mgl32.Vec3, k float32) {
	yaw, pitch, ok := c.anglesTo(target)
	if !ok {
		return
	}
	k = mgl32.Clamp(k, 0, 1)
	c.Rotate((pitch-c.pitch)*k, wrapDegrees(yaw-c.yaw)*k)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.Target(), c.up)
}

// ProjectionMatrix returns the perspective projection for the given
// viewport aspect ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.NearPlane, c.FarPlane)
}

func (c *FlyCamera) anglesTo(target mgl32.Vec3) (yaw, pitch float32, ok bool) {
	d := target.Sub(c.position)
	l := d.Len()
	if l == 0 {
		return 0, 0, false
	}
	d = d.Mul(1 / l)
	yaw = mgl32.RadToDeg(math32.Atan2(d[2], d[0]))
	pitch = mgl32.RadToDeg(math32.Asin(mgl32.Clamp(d[1], -1, 1)))
	return yaw, pitch, true
}

func (c *FlyCamera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	c.front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// wrapDegrees maps an angle to (-180, 180].
func wrapDegrees(a float32) float32 {
	a = math32.Mod(a+180, 360)
	if a <= 0 {
		a += 360
	}
	return a - 180
}
