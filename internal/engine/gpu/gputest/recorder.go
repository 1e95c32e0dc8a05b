// Package gputest provides a recording gpu.Driver for tests.
package gputest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/vortex/internal/engine/gpu"
)

// Recorder implements gpu.Driver in memory. Every call is appended to Calls
// in a compact textual form such as "DrawElements(Triangles,36)".
type Recorder struct {
	Calls []string

	// Uniforms lists the active uniform names per program. A name that is
	// missing reports location -1. When nil, every name resolves.
	Uniforms map[uint32][]string

	// CompileErrors fails compilation of any source containing the key.
	CompileErrors map[string]string
	// FailLink and FailValidate make the corresponding step fail.
	FailLink     bool
	FailValidate bool
	// ZeroProgram makes CreateProgram return 0.
	ZeroProgram bool

	// Invalid lists calls a core profile context rejects with
	// GL_INVALID_ENUM. They are logged but change no state.
	Invalid []string

	// Observable state.
	Enabled      map[gpu.Capability]bool
	Polygon      map[gpu.Face]gpu.PolygonMode
	Front        gpu.Winding
	Culled       gpu.Face
	Program      uint32
	VertexArray  uint32
	Texture      uint32
	Unit         uint32
	Attribs      map[uint32]bool
	Locations    map[string]int32
	Values       map[int32]any
	Deleted      map[string]int
	Textures     map[uint32][2]int32
	PatchSize    int32
	nextID       uint32
	nextLocation int32
}

var _ gpu.Driver = (*Recorder)(nil)

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Enabled:   map[gpu.Capability]bool{},
		Polygon:   map[gpu.Face]gpu.PolygonMode{},
		Attribs:   map[uint32]bool{},
		Locations: map[string]int32{},
		Values:    map[int32]any{},
		Deleted:   map[string]int{},
		Textures:  map[uint32][2]int32{},
	}
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

// Reset clears the call log but keeps state.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Count returns how many recorded calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls that start with any of the prefixes.
func (r *Recorder) Filter(prefixes ...string) []string {
	var out []string
	for _, c := range r.Calls {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Value returns the last value uploaded to the named uniform.
func (r *Recorder) Value(name string) (any, bool) {
	loc, ok := r.Locations[name]
	if !ok {
		return nil, false
	}
	v, ok := r.Values[loc]
	return v, ok
}

func (r *Recorder) Info() gpu.Info {
	return gpu.Info{Vendor: "test", Renderer: "recorder", Version: "4.1", GLSL: "4.10"}
}

func (r *Recorder) CreateProgram() uint32 {
	if r.ZeroProgram {
		r.record("CreateProgram()=0")
		return 0
	}
	id := r.id()
	r.record("CreateProgram()=%d", id)
	return id
}

func (r *Recorder) CompileShader(stage gpu.ShaderStage, source string) (uint32, error) {
	for key, msg := range r.CompileErrors {
		if strings.Contains(source, key) {
			r.record("CompileShader(%s)=error", stage)
			return 0, fmt.Errorf("%s shader: %s", stage, msg)
		}
	}
	id := r.id()
	r.record("CompileShader(%s)=%d", stage, id)
	return id, nil
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.record("AttachShader(%d,%d)", program, shader)
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.Deleted["shader"]++
	r.record("DeleteShader(%d)", shader)
}

func (r *Recorder) LinkProgram(program uint32) error {
	r.record("LinkProgram(%d)", program)
	if r.FailLink {
		return errors.New("link: forced failure")
	}
	return nil
}

func (r *Recorder) ValidateProgram(program uint32) error {
	r.record("ValidateProgram(%d)", program)
	if r.FailValidate {
		return errors.New("validate: forced failure")
	}
	return nil
}

func (r *Recorder) UseProgram(program uint32) {
	r.Program = program
	r.record("UseProgram(%d)", program)
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.Deleted["program"]++
	r.record("DeleteProgram(%d)", program)
}

func (r *Recorder) BindFragDataLocation(program, color uint32, name string) {
	r.record("BindFragDataLocation(%d,%d,%s)", program, color, name)
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if r.Uniforms != nil {
		found := false
		for _, n := range r.Uniforms[program] {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			r.record("UniformLocation(%d,%s)=-1", program, name)
			return -1
		}
	}
	key := fmt.Sprintf("%d/%s", program, name)
	loc, ok := r.Locations[key]
	if !ok {
		loc = r.nextLocation
		r.nextLocation++
		r.Locations[key] = loc
		r.Locations[name] = loc
	}
	r.record("UniformLocation(%d,%s)=%d", program, name, loc)
	return loc
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.Values[location] = v
	r.record("Uniform1i(%d,%d)", location, v)
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.Values[location] = v
	r.record("Uniform1f(%d,%g)", location, v)
}

func (r *Recorder) Uniform2f(location int32, x, y float32) {
	r.Values[location] = [2]float32{x, y}
	r.record("Uniform2f(%d,%g,%g)", location, x, y)
}

func (r *Recorder) Uniform3f(location int32, x, y, z float32) {
	r.Values[location] = [3]float32{x, y, z}
	r.record("Uniform3f(%d,%g,%g,%g)", location, x, y, z)
}

func (r *Recorder) Uniform4f(location int32, x, y, z, w float32) {
	r.Values[location] = [4]float32{x, y, z, w}
	r.record("Uniform4f(%d,%g,%g,%g,%g)", location, x, y, z, w)
}

func (r *Recorder) UniformMatrix4(location int32, transpose bool, m [16]float32) {
	r.Values[location] = m
	r.record("UniformMatrix4(%d,%t)", location, transpose)
}

func (r *Recorder) GenBuffer() uint32 {
	id := r.id()
	r.record("GenBuffer()=%d", id)
	return id
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	r.record("BindBuffer(%s,%d)", targetName(target), buffer)
}

func (r *Recorder) BufferFloat32(target gpu.BufferTarget, data []float32) {
	r.record("BufferFloat32(%s,%d)", targetName(target), len(data))
}

func (r *Recorder) BufferUint32(target gpu.BufferTarget, data []uint32) {
	r.record("BufferUint32(%s,%d)", targetName(target), len(data))
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.Deleted["buffer"]++
	r.record("DeleteBuffer(%d)", buffer)
}

func (r *Recorder) GenVertexArray() uint32 {
	id := r.id()
	r.record("GenVertexArray()=%d", id)
	return id
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.VertexArray = vao
	r.record("BindVertexArray(%d)", vao)
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.Deleted["vertexarray"]++
	r.record("DeleteVertexArray(%d)", vao)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32) {
	r.record("VertexAttribPointer(%d,%d)", index, size)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.Attribs[index] = true
	r.record("EnableVertexAttribArray(%d)", index)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.Attribs[index] = false
	r.record("DisableVertexAttribArray(%d)", index)
}

func (r *Recorder) PatchVertices(n int32) {
	r.PatchSize = n
	r.record("PatchVertices(%d)", n)
}

func (r *Recorder) DrawElements(mode gpu.Primitive, count int32) {
	r.record("DrawElements(%s,%d)", primitiveName(mode), count)
}

func (r *Recorder) DrawArrays(mode gpu.Primitive, first, count int32) {
	r.record("DrawArrays(%s,%d,%d)", primitiveName(mode), first, count)
}

func (r *Recorder) GenTexture() uint32 {
	id := r.id()
	r.record("GenTexture()=%d", id)
	return id
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.Unit = unit
	r.record("ActiveTexture(%d)", unit)
}

func (r *Recorder) BindTexture(texture uint32) {
	r.Texture = texture
	r.record("BindTexture(%d)", texture)
}

func (r *Recorder) TexImage2D(width, height int32, rgba []uint8) {
	r.Textures[r.Texture] = [2]int32{width, height}
	r.record("TexImage2D(%d,%d,%d)", width, height, len(rgba))
}

func (r *Recorder) TexFilter(min, mag gpu.TextureFilter) {
	r.record("TexFilter(%d,%d)", min, mag)
}

func (r *Recorder) TexWrap(mode gpu.TextureWrap) {
	r.record("TexWrap(%d)", mode)
}

func (r *Recorder) GenerateMipmap() {
	r.record("GenerateMipmap()")
}

func (r *Recorder) DeleteTexture(texture uint32) {
	r.Deleted["texture"]++
	r.record("DeleteTexture(%d)", texture)
}

func (r *Recorder) Enable(c gpu.Capability) {
	r.Enabled[c] = true
	r.record("Enable(%s)", capabilityName(c))
}

func (r *Recorder) Disable(c gpu.Capability) {
	r.Enabled[c] = false
	r.record("Disable(%s)", capabilityName(c))
}

func (r *Recorder) CullFace(f gpu.Face) {
	r.Culled = f
	r.record("CullFace(%s)", faceName(f))
}

func (r *Recorder) FrontFace(w gpu.Winding) {
	r.Front = w
	if w == gpu.CounterClockwise {
		r.record("FrontFace(CCW)")
		return
	}
	r.record("FrontFace(CW)")
}

// PolygonMode only accepts gpu.FrontAndBack, as in a core profile.
func (r *Recorder) PolygonMode(f gpu.Face, m gpu.PolygonMode) {
	call := fmt.Sprintf("PolygonMode(%s,%s)", faceName(f), polygonName(m))
	if f != gpu.FrontAndBack {
		r.Invalid = append(r.Invalid, call)
		r.record("%s=invalid", call)
		return
	}
	r.Polygon[gpu.Front] = m
	r.Polygon[gpu.Back] = m
	r.record("%s", call)
}

func (r *Recorder) BlendFunc(src, dst gpu.BlendFactor) {
	r.record("BlendFunc(%d,%d)", src, dst)
}

func (r *Recorder) ClearColor(cr, g, b, a float32) {
	r.record("ClearColor(%g,%g,%g,%g)", cr, g, b, a)
}

func (r *Recorder) ClearDepth(d float32) {
	r.record("ClearDepth(%g)", d)
}

func (r *Recorder) Clear() {
	r.record("Clear()")
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport(%d,%d,%d,%d)", x, y, width, height)
}

func targetName(t gpu.BufferTarget) string {
	if t == gpu.ElementArrayBuffer {
		return "Element"
	}
	return "Array"
}

func primitiveName(p gpu.Primitive) string {
	switch p {
	case gpu.Patches:
		return "Patches"
	case gpu.Lines:
		return "Lines"
	case gpu.Points:
		return "Points"
	default:
		return "Triangles"
	}
}

func capabilityName(c gpu.Capability) string {
	switch c {
	case gpu.DepthTest:
		return "DepthTest"
	case gpu.Blend:
		return "Blend"
	case gpu.FramebufferSRGB:
		return "FramebufferSRGB"
	default:
		return "CullFace"
	}
}

func faceName(f gpu.Face) string {
	switch f {
	case gpu.Front:
		return "Front"
	case gpu.Back:
		return "Back"
	default:
		return "FrontAndBack"
	}
}

func polygonName(m gpu.PolygonMode) string {
	switch m {
	case gpu.Line:
		return "Line"
	case gpu.Point:
		return "Point"
	default:
		return "Fill"
	}
}
