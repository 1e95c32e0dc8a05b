// Package gpu defines the driver interface between the engine and the
// graphics API. The OpenGL implementation lives in gldriver; gputest has a
// recording fake.
package gpu

import "fmt"

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tess-control"
	case StageTessEvaluation:
		return "tess-evaluation"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// BufferTarget is the binding point of a buffer object.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Primitive is the topology passed to draw calls.
type Primitive int

const (
	Triangles Primitive = iota
	Patches
	Lines
	Points
)

// Capability is a global toggle for Enable/Disable.
type Capability int

const (
	CullFace Capability = iota
	DepthTest
	Blend
	FramebufferSRGB
)

// Face selects front, back or both polygon faces.
type Face int

const (
	Front Face = iota
	Back
	FrontAndBack
)

// Winding is the vertex order that defines a front face.
type Winding int

const (
	Clockwise Winding = iota
	CounterClockwise
)

// PolygonMode is the rasterization mode of polygons.
type PolygonMode int

const (
	Fill PolygonMode = iota
	Line
	Point
)

// BlendFactor is a source or destination blend factor.
type BlendFactor int

const (
	One BlendFactor = iota
	SrcAlpha
	OneMinusSrcAlpha
)

// TextureFilter is a texture minification or magnification filter.
type TextureFilter int

const (
	Nearest TextureFilter = iota
	Linear
	LinearMipmapLinear
)

// TextureWrap is a texture coordinate wrap mode.
type TextureWrap int

const (
	Repeat TextureWrap = iota
	ClampToEdge
)

// Info describes the active driver.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
}

// Driver is the set of GPU operations the engine relies on. Handles are
// the raw API object names; 0 means "none".
type Driver interface {
	Info() Info

	// Programs.
	CreateProgram() uint32
	CompileShader(stage ShaderStage, source string) (uint32, error)
	AttachShader(program, shader uint32)
	DeleteShader(shader uint32)
	LinkProgram(program uint32) error
	ValidateProgram(program uint32) error
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	BindFragDataLocation(program, color uint32, name string)
	UniformLocation(program uint32, name string) int32

	// Uniform uploads.
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4(location int32, transpose bool, m [16]float32)

	// Buffers.
	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferFloat32(target BufferTarget, data []float32)
	BufferUint32(target BufferTarget, data []uint32)
	DeleteBuffer(buffer uint32)

	// Vertex arrays.
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	VertexAttribPointer(index uint32, size int32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	PatchVertices(n int32)
	DrawElements(mode Primitive, count int32)
	DrawArrays(mode Primitive, first, count int32)

	// Textures.
	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(texture uint32)
	TexImage2D(width, height int32, rgba []uint8)
	TexFilter(min, mag TextureFilter)
	TexWrap(mode TextureWrap)
	GenerateMipmap()
	DeleteTexture(texture uint32)

	// Global state.
	Enable(c Capability)
	Disable(c Capability)
	CullFace(f Face)
	FrontFace(w Winding)
	// PolygonMode takes FrontAndBack only; core profiles reject the others.
	PolygonMode(f Face, m PolygonMode)
	BlendFunc(src, dst BlendFactor)
	ClearColor(r, g, b, a float32)
	ClearDepth(d float32)
	Clear()
	Viewport(x, y, width, height int32)
}
