package sky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vortex/internal/assets"
	"github.com/Faultbox/vortex/internal/engine/camera"
	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/internal/engine/gpu/gputest"
	"github.com/Faultbox/vortex/internal/engine/kernel"
	"github.com/Faultbox/vortex/pkg/math"
)

func newDome(t *testing.T) (*Dome, *kernel.Context, *gputest.Recorder) {
	t.Helper()
	rec := gputest.New()
	ctx := kernel.NewContext(rec, assets.NewManager(assets.Builtin()), camera.DefaultConfig())
	t.Cleanup(func() { _ = ctx.Shutdown() })

	d, err := New(ctx, "models/dome.obj", 10000)
	require.NoError(t, err)
	return d, ctx, rec
}

func TestScaledToHalfFarPlane(t *testing.T) {
	d, _, _ := newDome(t)
	assert.Equal(t, math.Vec3{X: 5000, Y: 5000, Z: 5000}, d.WorldTransform().Scaling)
}

func TestRenderFlipsWinding(t *testing.T) {
	d, _, rec := newDome(t)
	rec.Reset()
	require.NoError(t, d.Render())

	assert.Equal(t, []string{"FrontFace(CCW)", "FrontFace(CW)"}, rec.Filter("FrontFace("))
	assert.Equal(t, gpu.Clockwise, rec.Front)
	assert.Equal(t, 1, rec.Count("DrawElements(Triangles,"))
	_, ok := rec.Value("m_World")
	assert.True(t, ok)
}

func TestShutdownReleasesMesh(t *testing.T) {
	d, ctx, _ := newDome(t)
	require.Equal(t, 1, ctx.Meshes.Refs("models/dome.obj"))

	d.Shutdown()
	d.Shutdown()
	assert.Zero(t, ctx.Meshes.Refs("models/dome.obj"))
}

func TestMissingMesh(t *testing.T) {
	rec := gputest.New()
	ctx := kernel.NewContext(rec, assets.NewManager(assets.Builtin()), camera.DefaultConfig())
	defer ctx.Shutdown()

	_, err := New(ctx, "models/nope.obj", 100)
	assert.Error(t, err)
}
