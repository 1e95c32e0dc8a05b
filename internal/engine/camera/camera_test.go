package camera

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vortex/internal/engine/input"
	"github.com/Faultbox/vortex/pkg/math"
)

type held struct {
	keys   map[input.Key]bool
	scroll float32
	delta  math.Vec2
}

func press(ks ...input.Key) *held {
	h := &held{keys: map[input.Key]bool{}}
	for _, k := range ks {
		h.keys[k] = true
	}
	return h
}

func (h *held) Key(k input.Key) bool  { return h.keys[k] }
func (h *held) ScrollOffset() float32  { return h.scroll }
func (h *held) CursorDelta() math.Vec2 { return h.delta }

func TestNewComputesViewProjection(t *testing.T) {
	c := New(DefaultConfig())
	clip := c.ViewProjection().MulVec4(math.Quat{X: 0, Y: 0, Z: 5, W: 1})

	require.Greater(t, clip.W, float32(0))
	assert.LessOrEqual(t, clip.X, clip.W)
	assert.GreaterOrEqual(t, clip.X, -clip.W)
	assert.LessOrEqual(t, clip.Y, clip.W)
	assert.GreaterOrEqual(t, clip.Y, -clip.W)
	assert.GreaterOrEqual(t, clip.Z, float32(0))
	assert.LessOrEqual(t, clip.Z, clip.W)

	behind := c.ViewProjection().MulVec4(math.Quat{X: 0, Y: 0, Z: -5, W: 1})
	assert.Less(t, behind.W, float32(0))
}

func TestMoveAmountIsPinned(t *testing.T) {
	tests := []struct {
		name   string
		scroll float32
	}{
		{"idle", 0},
		{"scroll up", 100},
		{"scroll down", -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultConfig())
			in := press(input.KeyW)
			in.scroll = tt.scroll
			c.Update(in)

			assert.Equal(t, float32(0.02), c.MoveAmount())
			assert.InDelta(t, 0.02, c.Position().Z, 1e-6)
		})
	}
}

func TestStrafe(t *testing.T) {
	c := New(DefaultConfig())
	c.Update(press(input.KeyD))
	assert.InDelta(t, 0.02, c.Position().X, 1e-6)

	c.Update(press(input.KeyA))
	c.Update(press(input.KeyA))
	assert.InDelta(t, -0.02, c.Position().X, 1e-6)

	c.Update(press(input.KeyE))
	assert.InDelta(t, 0.02, c.Position().Y, 1e-6)
}

func TestOpposingKeysCancel(t *testing.T) {
	c := New(DefaultConfig())
	c.Update(press(input.KeyW, input.KeyS))
	assert.True(t, c.Position().ApproxEqual(math.Vec3{}, 1e-6))
	assert.False(t, c.Moved())
}

func TestFullYawRestoresForward(t *testing.T) {
	c := New(DefaultConfig())
	// 3600 steps of 0.1 degrees.
	for i := 0; i < 3600; i++ {
		c.Update(press(input.KeyRight))
	}
	assert.True(t, c.Forward().ApproxEqual(math.ZAxis, 2e-3), "forward = %v", c.Forward())
	assert.True(t, c.Up().ApproxEqual(math.YAxis, 2e-3), "up = %v", c.Up())
}

func TestYawTurnsRight(t *testing.T) {
	c := New(DefaultConfig())
	c.Update(press(input.KeyRight))
	assert.Greater(t, c.Forward().X, float32(0))
	assert.True(t, c.Rotated())
}

func TestArrowStepIsAnEighthOfRotateAmount(t *testing.T) {
	tests := []struct {
		name string
		key  input.Key
		get  func(math.Vec3) float32
		want float64
	}{
		// sin(0.1 degrees)
		{"yaw", input.KeyRight, func(v math.Vec3) float32 { return v.X }, 0.0017453},
		{"pitch", input.KeyDown, func(v math.Vec3) float32 { return -v.Y }, 0.0017453},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultConfig())
			c.Update(press(tt.key))
			assert.InDelta(t, tt.want, tt.get(c.Forward()), 1e-5)
		})
	}
}

func TestVerticalMoveUsesRotatedUp(t *testing.T) {
	c := New(DefaultConfig())
	c.Update(press(input.KeyE, input.KeyDown))

	assert.True(t, c.Position().ApproxEqual(c.Up().Scale(0.02), 1e-7), "position = %v", c.Position())
	assert.NotZero(t, c.Position().Z)
}

func TestMouseLook(t *testing.T) {
	c := New(DefaultConfig())
	in := press()
	in.delta = math.Vec2{X: 8}
	c.Update(in)

	// 8 pixels at sensitivity 0.8 turn 0.8 degrees.
	assert.InDelta(t, 0.013962, c.Forward().X, 1e-5)
	assert.InDelta(t, 0, c.Forward().Y, 1e-6)
	assert.True(t, c.Rotated())

	c = New(DefaultConfig())
	c.Update(press())
	assert.False(t, c.Rotated(), "an unlocked cursor does not turn")
}

func TestPitchKeepsBasisOrthonormal(t *testing.T) {
	c := New(DefaultConfig())
	for i := 0; i < 40; i++ {
		c.Update(press(input.KeyDown, input.KeyLeft))
	}
	f, u := c.Forward(), c.Up()
	assert.InDelta(t, 1, f.Length(), 1e-4)
	assert.InDelta(t, 1, u.Length(), 1e-4)
	assert.InDelta(t, 0, f.Dot(u), 1e-4)
	assert.Less(t, f.Y, float32(0), "down pitches the view downwards")
}

func TestUpdateKeepsPreviousMatrices(t *testing.T) {
	c := New(DefaultConfig())
	before := c.ViewProjection()
	beforeView := c.View()

	c.Update(press(input.KeyW))

	assert.Equal(t, before, c.PreviousViewProjection())
	assert.Equal(t, beforeView, c.PreviousView())
	assert.NotEqual(t, before, c.ViewProjection())
	assert.Equal(t, math.Vec3{}, c.PreviousPosition())
	assert.True(t, c.Moved())
}

func TestSetProjectionAppliesOnUpdate(t *testing.T) {
	c := New(DefaultConfig())
	before := c.ViewProjection()
	c.SetProjection(800, 800)
	assert.Equal(t, before, c.ViewProjection())

	c.Update(press())
	assert.NotEqual(t, before, c.ViewProjection())
	assert.Equal(t, math.Perspective(70, 800, 800, 0.1, 10000), c.Projection())
}

func TestSetOrientationRejectsZero(t *testing.T) {
	c := New(DefaultConfig())
	err := c.SetOrientation(math.Vec3{}, math.YAxis)
	assert.True(t, errors.Is(err, math.ErrZeroLength))
	assert.Equal(t, math.ZAxis, c.Forward())
}
