package gldriver

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/vortex/internal/engine/gpu"
)

func stageEnum(s gpu.ShaderStage) uint32 {
	switch s {
	case gpu.StageTessControl:
		return gl.TESS_CONTROL_SHADER
	case gpu.StageTessEvaluation:
		return gl.TESS_EVALUATION_SHADER
	case gpu.StageGeometry:
		return gl.GEOMETRY_SHADER
	case gpu.StageFragment:
		return gl.FRAGMENT_SHADER
	default:
		return gl.VERTEX_SHADER
	}
}

func targetEnum(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func primitiveEnum(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Patches:
		return gl.PATCHES
	case gpu.Lines:
		return gl.LINES
	case gpu.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func capabilityEnum(c gpu.Capability) uint32 {
	switch c {
	case gpu.DepthTest:
		return gl.DEPTH_TEST
	case gpu.Blend:
		return gl.BLEND
	case gpu.FramebufferSRGB:
		return gl.FRAMEBUFFER_SRGB
	default:
		return gl.CULL_FACE
	}
}

func faceEnum(f gpu.Face) uint32 {
	switch f {
	case gpu.Front:
		return gl.FRONT
	case gpu.Back:
		return gl.BACK
	default:
		return gl.FRONT_AND_BACK
	}
}

func polygonEnum(m gpu.PolygonMode) uint32 {
	switch m {
	case gpu.Line:
		return gl.LINE
	case gpu.Point:
		return gl.POINT
	default:
		return gl.FILL
	}
}

func blendEnum(b gpu.BlendFactor) uint32 {
	switch b {
	case gpu.SrcAlpha:
		return gl.SRC_ALPHA
	case gpu.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ONE
	}
}

func filterEnum(f gpu.TextureFilter) int32 {
	switch f {
	case gpu.Linear:
		return gl.LINEAR
	case gpu.LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.NEAREST
	}
}
