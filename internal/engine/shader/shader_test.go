package shader

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vortex/internal/engine/gpu/gputest"
	"github.com/Faultbox/vortex/internal/engine/scene"
	"github.com/Faultbox/vortex/pkg/math"
)

func linked(t *testing.T, rec *gputest.Recorder, uniforms ...string) *Program {
	t.Helper()
	p, err := NewProgram(rec, "test")
	require.NoError(t, err)
	require.NoError(t, p.AddVertexShader("void main() {}"))
	require.NoError(t, p.AddFragmentShader("void main() {}"))
	require.NoError(t, p.Link())
	require.NoError(t, p.AddUniforms(uniforms...))
	return p
}

func TestNewProgramZeroID(t *testing.T) {
	rec := gputest.New()
	rec.ZeroProgram = true
	_, err := NewProgram(rec, "broken")
	assert.True(t, errors.Is(err, ErrCreateProgram))
}

func TestLinkReleasesStages(t *testing.T) {
	rec := gputest.New()
	p := linked(t, rec)
	assert.True(t, p.Linked())
	assert.Equal(t, 2, rec.Deleted["shader"])
	assert.Equal(t, 2, rec.Count("AttachShader("))
}

func TestLinkFailure(t *testing.T) {
	rec := gputest.New()
	rec.FailValidate = true
	p, err := NewProgram(rec, "test")
	require.NoError(t, err)
	require.NoError(t, p.AddVertexShader("void main() {}"))

	err = p.Link()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate")
	assert.False(t, p.Linked())
	assert.Equal(t, 1, rec.Deleted["shader"])
}

func TestCompileFailure(t *testing.T) {
	rec := gputest.New()
	rec.CompileErrors = map[string]string{"syntax": "unexpected token"}
	p, err := NewProgram(rec, "test")
	require.NoError(t, err)

	err = p.AddFragmentShader("syntax error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestAddUniformRequiresLink(t *testing.T) {
	rec := gputest.New()
	p, err := NewProgram(rec, "test")
	require.NoError(t, err)
	assert.True(t, errors.Is(p.AddUniform("m_MVP"), ErrNotLinked))
}

func TestAddUniformNotFound(t *testing.T) {
	rec := gputest.New()
	rec.Uniforms = map[uint32][]string{}
	p := linked(t, rec)

	err := p.AddUniforms("m_MVP", "m_Model")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUniformNotFound))
	assert.Contains(t, err.Error(), "m_MVP")
	assert.Contains(t, err.Error(), "m_Model")
}

func TestSettersRejectUnknownNames(t *testing.T) {
	rec := gputest.New()
	p := linked(t, rec, "known")
	rec.Reset()

	tests := []struct {
		name string
		set  func() error
	}{
		{"int", func() error { return p.SetInt("missing", 1) }},
		{"float", func() error { return p.SetFloat("missing", 1) }},
		{"vec2", func() error { return p.SetVec2("missing", math.Vec2{}) }},
		{"vec3", func() error { return p.SetVec3("missing", math.Vec3{}) }},
		{"quat", func() error { return p.SetQuat("missing", math.Quat{}) }},
		{"mat4", func() error { return p.SetMat4("missing", math.Identity()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.set(), ErrUnknownUniform))
		})
	}
	assert.Zero(t, rec.Count("Uniform"), "nothing uploaded")
}

func TestSetters(t *testing.T) {
	rec := gputest.New()
	p := linked(t, rec, "i", "f", "v2", "v3", "q", "m")

	require.NoError(t, p.SetInt("i", 3))
	require.NoError(t, p.SetFloat("f", 0.5))
	require.NoError(t, p.SetVec2("v2", math.Vec2{X: 1, Y: 2}))
	require.NoError(t, p.SetVec3("v3", math.Vec3{X: 1, Y: 2, Z: 3}))
	require.NoError(t, p.SetQuat("q", math.Quat{X: 1, Y: 2, Z: 3, W: 4}))
	m := math.Translation(math.Vec3{X: 5})
	require.NoError(t, p.SetMat4("m", m))

	check := func(name string, want any) {
		got, ok := rec.Value(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	check("i", int32(3))
	check("f", float32(0.5))
	check("v2", [2]float32{1, 2})
	check("v3", [3]float32{1, 2, 3})
	check("q", [4]float32{1, 2, 3, 4})
	check("m", m.Float32s())
	assert.Equal(t, 1, rec.Count("UniformMatrix4("), "one matrix upload")
	assert.Contains(t, rec.Filter("UniformMatrix4(")[0], ",true)")
}

func TestDeleteIsIdempotent(t *testing.T) {
	rec := gputest.New()
	p := linked(t, rec)
	p.Delete()
	p.Delete()
	assert.Equal(t, 1, rec.Deleted["program"])
	assert.Zero(t, p.ID())
}

// Library fixtures.

var sources = fstest.MapFS{
	"shaders/entity_VS.glsl":     {Data: []byte("entity vertex")},
	"shaders/entity_FS.glsl":     {Data: []byte("entity fragment")},
	"shaders/light_VS.glsl":      {Data: []byte("light vertex")},
	"shaders/light_FS.glsl":      {Data: []byte("light fragment")},
	"shaders/atmosphere_VS.glsl": {Data: []byte("atmosphere vertex")},
	"shaders/atmosphere_FS.glsl": {Data: []byte("atmosphere fragment")},
}

type fixedView struct {
	vp  math.Mat4
	pos math.Vec3
}

func (v fixedView) ViewProjection() math.Mat4 { return v.vp }
func (v fixedView) Position() math.Vec3       { return v.pos }

type boundTexture struct {
	units *[]uint32
}

func (b boundTexture) Bind(unit uint32) { *b.units = append(*b.units, unit) }

type target struct {
	world    scene.Transform
	diffuse  Texture
	specular Texture
}

func (t *target) WorldTransform() *scene.Transform { return &t.world }
func (t *target) DiffuseMap() Texture              { return t.diffuse }
func (t *target) SpecularMap() Texture             { return t.specular }

type light struct{}

func (light) Position() math.Vec3        { return math.Vec3{X: 1, Y: 2, Z: 3} }
func (light) Colour() math.Vec3          { return math.Vec3{X: 1, Y: 1, Z: 1} }
func (light) DiffuseIntensity() float32  { return 0.5 }
func (light) SpecularIntensity() float32 { return 1 }

func newLibrary(rec *gputest.Recorder) (*Library, fixedView) {
	view := fixedView{vp: math.Perspective(70, 1280, 720, 0.1, 10000), pos: math.Vec3{Z: -3}}
	return NewLibrary(rec, view, sources), view
}

func TestLibraryBuildsOnce(t *testing.T) {
	rec := gputest.New()
	lib, _ := newLibrary(rec)

	a, err := lib.Entity()
	require.NoError(t, err)
	b, err := lib.Entity()
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, rec.Count("CreateProgram("))
	assert.Equal(t, len(entityUniforms), a.Uniforms())
}

func TestLibraryMissingSource(t *testing.T) {
	rec := gputest.New()
	lib := NewLibrary(rec, fixedView{}, fstest.MapFS{})
	_, err := lib.Light()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "light")
	assert.Zero(t, rec.Count("CreateProgram("))
}

func TestLibraryMissingUniformDeletesProgram(t *testing.T) {
	rec := gputest.New()
	rec.Uniforms = map[uint32][]string{1: {"m_MVP"}}
	lib, _ := newLibrary(rec)

	_, err := lib.Atmosphere()
	assert.True(t, errors.Is(err, ErrUniformNotFound))
	assert.Equal(t, 1, rec.Deleted["program"])
}

func TestEntityUniforms(t *testing.T) {
	rec := gputest.New()
	lib, view := newLibrary(rec)
	s, err := lib.Entity()
	require.NoError(t, err)

	var units []uint32
	obj := &target{world: scene.NewTransform(), diffuse: boundTexture{&units}, specular: boundTexture{&units}}
	obj.world.Translation = math.Vec3{Z: 5}

	s.Bind()
	require.NoError(t, s.UpdateUniforms(obj))
	require.NoError(t, s.UpdateLights(light{}))

	assert.Equal(t, []uint32{DiffuseUnit, SpecularUnit}, units)
	assert.Equal(t, s.ID(), rec.Program)

	mvp, _ := rec.Value("m_MVP")
	assert.Equal(t, obj.world.MVP(view.vp).Float32s(), mvp)
	cam, _ := rec.Value("cameraPosition")
	assert.Equal(t, [3]float32{0, 0, -3}, cam)
	specular, _ := rec.Value("specular_map")
	assert.Equal(t, int32(1), specular)
	pos, _ := rec.Value("light.position")
	assert.Equal(t, [3]float32{1, 2, 3}, pos)
	diff, _ := rec.Value("light.diffuseIntensity")
	assert.Equal(t, float32(0.5), diff)
}

func TestUnsupportedTargets(t *testing.T) {
	rec := gputest.New()
	lib, _ := newLibrary(rec)
	require.NoError(t, lib.BuildAll())

	e, _ := lib.Entity()
	l, _ := lib.Light()
	a, _ := lib.Atmosphere()

	assert.True(t, errors.Is(e.UpdateUniforms(struct{}{}), ErrUnsupportedTarget))
	assert.True(t, errors.Is(l.UpdateUniforms(42), ErrUnsupportedTarget))
	assert.True(t, errors.Is(a.UpdateUniforms(nil), ErrUnsupportedTarget))
	assert.True(t, errors.Is(e.UpdateUniforms(&target{}), ErrUnsupportedTarget), "missing maps")

	// The atmosphere only needs a transform.
	assert.NoError(t, a.UpdateUniforms(&target{world: scene.NewTransform()}))
}

func TestRebuildSwapsProgram(t *testing.T) {
	rec := gputest.New()
	lib, _ := newLibrary(rec)
	s, err := lib.Entity()
	require.NoError(t, err)
	old := s.ID()

	require.NoError(t, lib.Rebuild(KindEntity))

	again, _ := lib.Entity()
	assert.Same(t, s, again)
	assert.NotEqual(t, old, s.ID())
	assert.Equal(t, 1, rec.Deleted["program"])
}

func TestRebuildFailureKeepsProgram(t *testing.T) {
	rec := gputest.New()
	lib, _ := newLibrary(rec)
	s, err := lib.Light()
	require.NoError(t, err)
	old := s.ID()

	rec.CompileErrors = map[string]string{"light fragment": "bad"}
	require.Error(t, lib.Rebuild(KindLight))
	assert.Equal(t, old, s.ID())
	assert.Equal(t, 1, rec.Deleted["program"], "only the failed program is deleted")
}

func TestRebuildUnbuiltKind(t *testing.T) {
	rec := gputest.New()
	lib, _ := newLibrary(rec)
	require.NoError(t, lib.Rebuild(KindAtmosphere))
	assert.Zero(t, rec.Count("CreateProgram("))
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		kind Kind
		ok   bool
	}{
		{"shaders/entity_FS.glsl", KindEntity, true},
		{"shaders/light_VS.glsl", KindLight, true},
		{"shaders/atmosphere_FS.glsl", KindAtmosphere, true},
		{"textures/diffuse.png", 0, false},
	}
	for _, tt := range tests {
		k, ok := KindForPath(tt.path)
		if ok != tt.ok || k != tt.kind {
			t.Errorf("KindForPath(%q) = %v, %v; want %v, %v", tt.path, k, ok, tt.kind, tt.ok)
		}
	}
}

func TestShutdown(t *testing.T) {
	rec := gputest.New()
	lib, _ := newLibrary(rec)
	require.NoError(t, lib.BuildAll())
	require.NoError(t, lib.Shutdown())
	assert.Equal(t, 3, rec.Deleted["program"])
}
