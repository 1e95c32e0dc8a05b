package kernel

import (
	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/pkg/math"
)

// InitRenderState sets the global pipeline state every scene relies on:
// clockwise front faces with back-face culling, depth testing, sRGB
// output and standard alpha blending.
func InitRenderState(drv gpu.Driver) {
	drv.FrontFace(gpu.Clockwise)
	drv.Enable(gpu.CullFace)
	drv.CullFace(gpu.Back)

	drv.Enable(gpu.DepthTest)
	drv.Enable(gpu.FramebufferSRGB)

	drv.Enable(gpu.Blend)
	drv.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
}

// ClearScreen clears colour and depth. The colour is opaque.
func ClearScreen(drv gpu.Driver, colour math.Vec3) {
	drv.ClearColor(colour.X, colour.Y, colour.Z, 1)
	drv.ClearDepth(1)
	drv.Clear()
}

// Resize points the viewport at the whole drawable.
func Resize(drv gpu.Driver, width, height int) {
	drv.Viewport(0, 0, int32(width), int32(height))
}
