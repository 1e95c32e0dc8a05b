// Package camera provides the free-flying view camera.
package camera

import (
	"github.com/Faultbox/vortex/internal/engine/input"
	"github.com/Faultbox/vortex/pkg/math"
)

// Controls is the input the camera reads each frame.
type Controls interface {
	Key(k input.Key) bool
	ScrollOffset() float32
	// CursorDelta is zero unless the cursor is locked for mouse look.
	CursorDelta() math.Vec2
}

// Config holds camera tuning.
type Config struct {
	FOV    float32 // vertical, degrees
	ZNear  float32
	ZFar   float32
	Width  float32
	Height float32

	// MoveAmount is the initial distance moved per update.
	MoveAmount float32
	// MinMoveAmount is the floor applied after the scroll adjustment.
	MinMoveAmount float32
	// MoveCap is passed to min() after the floor; see Update.
	MoveCap float32
	// ScrollFactor scales the scroll offset added to the move amount.
	ScrollFactor float32
	// RotateAmount scales the arrow key turns: each update yaws or pitches
	// by an eighth of it, in degrees.
	RotateAmount float32
	// MouseSensitivity is the mouse look turn in degrees per eight pixels
	// of cursor movement.
	MouseSensitivity float32
}

// DefaultConfig returns the stock camera settings.
func DefaultConfig() Config {
	return Config{
		FOV:              70,
		ZNear:            0.1,
		ZFar:             10000,
		Width:            1280,
		Height:           720,
		MoveAmount:       0.1,
		MinMoveAmount:    0.2,
		MoveCap:          0.02,
		ScrollFactor:     0.04,
		RotateAmount:     0.8,
		MouseSensitivity: 0.8,
	}
}

// Camera is the active view. Forward and up stay orthonormal as long as
// they start that way.
type Camera struct {
	cfg Config

	position math.Vec3
	forward  math.Vec3
	up       math.Vec3

	previousPosition math.Vec3
	previousForward  math.Vec3

	moveAmount float32

	view                   math.Mat4
	projection             math.Mat4
	viewProjection         math.Mat4
	previousView           math.Mat4
	previousViewProjection math.Mat4

	moved   bool
	rotated bool
}

// New returns a camera at the origin looking down +Z with +Y up.
func New(cfg Config) *Camera {
	c := &Camera{
		cfg:        cfg,
		forward:    math.ZAxis,
		up:         math.YAxis,
		moveAmount: cfg.MoveAmount,
	}
	c.SetProjection(cfg.Width, cfg.Height)
	c.recompute()
	c.previousView = c.view
	c.previousViewProjection = c.viewProjection
	return c
}

// SetProjection rebuilds the projection for a new viewport size. The view
// projection picks it up on the next Update.
func (c *Camera) SetProjection(width, height float32) {
	c.cfg.Width, c.cfg.Height = width, height
	c.projection = math.Perspective(c.cfg.FOV, width, height, c.cfg.ZNear, c.cfg.ZFar)
}

// Update integrates one frame of input and recomputes the matrices.
//
// The move amount is raised by the scroll offset, floored at
// MinMoveAmount and then passed through min(MoveCap, amount). With the
// stock settings the floor is above the cap, so the speed is pinned at
// MoveCap regardless of scrolling.
func (c *Camera) Update(in Controls) {
	c.previousPosition = c.position
	c.previousForward = c.forward

	c.moveAmount += c.cfg.ScrollFactor * in.ScrollOffset()
	if c.moveAmount < c.cfg.MinMoveAmount {
		c.moveAmount = c.cfg.MinMoveAmount
	}
	c.moveAmount = min(c.cfg.MoveCap, c.moveAmount)

	if in.Key(input.KeyW) {
		c.Move(c.forward, c.moveAmount)
	}
	if in.Key(input.KeyS) {
		c.Move(c.forward, -c.moveAmount)
	}
	if in.Key(input.KeyA) {
		c.Move(c.Left(), c.moveAmount)
	}
	if in.Key(input.KeyD) {
		c.Move(c.Right(), c.moveAmount)
	}

	step := c.cfg.RotateAmount / 8
	if in.Key(input.KeyUp) {
		c.RotateX(-step)
	}
	if in.Key(input.KeyDown) {
		c.RotateX(step)
	}
	if in.Key(input.KeyLeft) {
		c.RotateY(-step)
	}
	if in.Key(input.KeyRight) {
		c.RotateY(step)
	}

	if d := in.CursorDelta(); d != (math.Vec2{}) {
		turn := c.cfg.MouseSensitivity / 8
		if d.X != 0 {
			c.RotateY(d.X * turn)
		}
		if d.Y != 0 {
			c.RotateX(d.Y * turn)
		}
	}

	if in.Key(input.KeyE) {
		c.Move(c.up, c.moveAmount)
	}
	if in.Key(input.KeyQ) {
		c.Move(c.up, -c.moveAmount)
	}

	c.moved = c.position != c.previousPosition
	c.rotated = c.forward != c.previousForward

	c.previousView = c.view
	c.previousViewProjection = c.viewProjection
	c.recompute()
}

func (c *Camera) recompute() {
	c.view = math.View(c.forward, c.up).Mul(math.Translation(c.position.Negate()))
	c.viewProjection = c.projection.Mul(c.view)
}

// Move translates the camera by dir scaled by amount.
func (c *Camera) Move(dir math.Vec3, amount float32) {
	c.position = c.position.Add(dir.Scale(amount))
}

// RotateY yaws around the world up axis by angle degrees.
func (c *Camera) RotateY(angle float32) {
	hAxis := math.YAxis.Cross(c.forward).Normalize()
	c.forward = c.forward.Rotate(angle, math.YAxis).Normalize()
	c.up = c.forward.Cross(hAxis).Normalize()
}

// RotateX pitches around the horizontal axis by angle degrees.
func (c *Camera) RotateX(angle float32) {
	hAxis := math.YAxis.Cross(c.forward).Normalize()
	c.forward = c.forward.Rotate(angle, hAxis).Normalize()
	c.up = c.forward.Cross(hAxis).Normalize()
}

// SetPosition places the camera.
func (c *Camera) SetPosition(p math.Vec3) { c.position = p }

// SetOrientation replaces the forward and up vectors. They are normalized.
func (c *Camera) SetOrientation(forward, up math.Vec3) error {
	f, err := forward.TryNormalize()
	if err != nil {
		return err
	}
	u, err := up.TryNormalize()
	if err != nil {
		return err
	}
	c.forward, c.up = f, u
	c.recompute()
	return nil
}

// Left returns forward × up.
func (c *Camera) Left() math.Vec3 {
	return c.forward.Cross(c.up).Normalize()
}

// Right returns up × forward.
func (c *Camera) Right() math.Vec3 {
	return c.up.Cross(c.forward).Normalize()
}

func (c *Camera) Position() math.Vec3               { return c.position }
func (c *Camera) Forward() math.Vec3                { return c.forward }
func (c *Camera) Up() math.Vec3                     { return c.up }
func (c *Camera) PreviousPosition() math.Vec3       { return c.previousPosition }
func (c *Camera) PreviousForward() math.Vec3        { return c.previousForward }
func (c *Camera) View() math.Mat4                   { return c.view }
func (c *Camera) Projection() math.Mat4             { return c.projection }
func (c *Camera) ViewProjection() math.Mat4         { return c.viewProjection }
func (c *Camera) PreviousView() math.Mat4           { return c.previousView }
func (c *Camera) PreviousViewProjection() math.Mat4 { return c.previousViewProjection }
func (c *Camera) MoveAmount() float32               { return c.moveAmount }
func (c *Camera) Moved() bool                       { return c.moved }
func (c *Camera) Rotated() bool                     { return c.rotated }
func (c *Camera) Config() Config                    { return c.cfg }
