// Package gldriver implements gpu.Driver on OpenGL 4.1 core.
package gldriver

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/internal/logger"
)

// Driver issues OpenGL calls. All methods must run on the thread that owns
// the GL context.
type Driver struct {
	info gpu.Info
}

var _ gpu.Driver = (*Driver)(nil)

// New loads the GL function pointers.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	d := &Driver{info: gpu.Info{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}}

	logger.Info("OpenGL initialized",
		zap.String("vendor", d.info.Vendor),
		zap.String("renderer", d.info.Renderer),
		zap.String("version", d.info.Version),
		zap.String("glsl", d.info.GLSL),
	)
	return d, nil
}

// Info returns the driver description captured at startup.
func (d *Driver) Info() gpu.Info { return d.info }

func (d *Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Driver) CompileShader(stage gpu.ShaderStage, source string) (uint32, error) {
	shader := gl.CreateShader(stageEnum(stage))
	if shader == 0 {
		return 0, fmt.Errorf("%s shader: creation failed", stage)
	}

	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Driver) LinkProgram(program uint32) error {
	gl.LinkProgram(program)
	return programStatus(program, gl.LINK_STATUS, "link")
}

func (d *Driver) ValidateProgram(program uint32) error {
	gl.ValidateProgram(program)
	return programStatus(program, gl.VALIDATE_STATUS, "validate")
}

func programStatus(program, pname uint32, what string) error {
	var status int32
	gl.GetProgramiv(program, pname, &status)
	if status != gl.FALSE {
		return nil
	}
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return fmt.Errorf("%s: %s", what, strings.TrimRight(log, "\x00"))
}

func (d *Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Driver) BindFragDataLocation(program, color uint32, name string) {
	gl.BindFragDataLocation(program, color, gl.Str(name+"\x00"))
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (d *Driver) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (d *Driver) Uniform2f(location int32, x, y float32) { gl.Uniform2f(location, x, y) }

func (d *Driver) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (d *Driver) Uniform4f(location int32, x, y, z, w float32) { gl.Uniform4f(location, x, y, z, w) }

func (d *Driver) UniformMatrix4(location int32, transpose bool, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &m[0])
}

func (d *Driver) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Driver) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	gl.BindBuffer(targetEnum(target), buffer)
}

func (d *Driver) BufferFloat32(target gpu.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(targetEnum(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(targetEnum(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Driver) BufferUint32(target gpu.BufferTarget, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(targetEnum(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(targetEnum(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Driver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Driver) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *Driver) VertexAttribPointer(index uint32, size int32) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, 0, nil)
}

func (d *Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Driver) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Driver) PatchVertices(n int32) { gl.PatchParameteri(gl.PATCH_VERTICES, n) }

func (d *Driver) DrawElements(mode gpu.Primitive, count int32) {
	gl.DrawElements(primitiveEnum(mode), count, gl.UNSIGNED_INT, nil)
}

func (d *Driver) DrawArrays(mode gpu.Primitive, first, count int32) {
	gl.DrawArrays(primitiveEnum(mode), first, count)
}

func (d *Driver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Driver) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (d *Driver) BindTexture(texture uint32) { gl.BindTexture(gl.TEXTURE_2D, texture) }

func (d *Driver) TexImage2D(width, height int32, rgba []uint8) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, width, height, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
}

func (d *Driver) TexFilter(min, mag gpu.TextureFilter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterEnum(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterEnum(mag))
}

func (d *Driver) TexWrap(mode gpu.TextureWrap) {
	w := int32(gl.REPEAT)
	if mode == gpu.ClampToEdge {
		w = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, w)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, w)
}

func (d *Driver) GenerateMipmap() { gl.GenerateMipmap(gl.TEXTURE_2D) }

func (d *Driver) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (d *Driver) Enable(c gpu.Capability) { gl.Enable(capabilityEnum(c)) }

func (d *Driver) Disable(c gpu.Capability) { gl.Disable(capabilityEnum(c)) }

func (d *Driver) CullFace(f gpu.Face) { gl.CullFace(faceEnum(f)) }

func (d *Driver) FrontFace(w gpu.Winding) {
	if w == gpu.CounterClockwise {
		gl.FrontFace(gl.CCW)
		return
	}
	gl.FrontFace(gl.CW)
}

func (d *Driver) PolygonMode(f gpu.Face, m gpu.PolygonMode) {
	gl.PolygonMode(faceEnum(f), polygonEnum(m))
}

func (d *Driver) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendEnum(src), blendEnum(dst))
}

func (d *Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Driver) ClearDepth(depth float32) { gl.ClearDepth(float64(depth)) }

func (d *Driver) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func (d *Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
	logger.Debug("viewport", zap.Int32("width", width), zap.Int32("height", height))
}
