package shader

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/vortex/internal/engine/scene"
	"github.com/Faultbox/vortex/pkg/math"
)

// Viewer supplies the camera data shared by every draw.
type Viewer interface {
	ViewProjection() math.Mat4
	Position() math.Vec3
}

// Texture is anything that can be bound to a texture unit.
type Texture interface {
	Bind(unit uint32)
}

// Placed is an object with a world transform.
type Placed interface {
	WorldTransform() *scene.Transform
}

// EntityTarget is what the entity shader reads from an object.
type EntityTarget interface {
	Placed
	DiffuseMap() Texture
	SpecularMap() Texture
}

// LightTarget is what the light shader reads from an object.
type LightTarget interface {
	Placed
	DiffuseMap() Texture
}

// LightSource feeds the entity shader's light uniforms.
type LightSource interface {
	Position() math.Vec3
	Colour() math.Vec3
	DiffuseIntensity() float32
	SpecularIntensity() float32
}

// Texture units used by the entity shader.
const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

var (
	entityUniforms = []string{
		"diffuse_map",
		"specular_map",
		"m_MVP",
		"m_Model",
		"cameraPosition",
		"light.position",
		"light.colour",
		"light.diffuseIntensity",
		"light.specularIntensity",
	}
	lightUniforms      = []string{"diffuse_map", "m_MVP"}
	atmosphereUniforms = []string{"m_MVP", "m_World"}
)

func unsupported(shader string, target any) error {
	return fmt.Errorf("%w: %s shader cannot render %T", ErrUnsupportedTarget, shader, target)
}

// EntityShader draws lit, textured meshes.
type EntityShader struct {
	*Program
	view Viewer
}

// UpdateUniforms binds the diffuse and specular maps and uploads the
// transform and camera uniforms for target.
func (s *EntityShader) UpdateUniforms(target any) error {
	e, ok := target.(EntityTarget)
	if !ok {
		return unsupported("entity", target)
	}
	diffuse, specular := e.DiffuseMap(), e.SpecularMap()
	if diffuse == nil || specular == nil {
		return unsupported("entity", target)
	}
	diffuse.Bind(DiffuseUnit)
	specular.Bind(SpecularUnit)

	world := e.WorldTransform()
	return multierr.Combine(
		s.SetInt("diffuse_map", DiffuseUnit),
		s.SetInt("specular_map", SpecularUnit),
		s.SetMat4("m_MVP", world.MVP(s.view.ViewProjection())),
		s.SetMat4("m_Model", world.ModelMatrix()),
		s.SetVec3("cameraPosition", s.view.Position()),
	)
}

// UpdateLights uploads l as the scene light. The program must be bound.
func (s *EntityShader) UpdateLights(l LightSource) error {
	return multierr.Combine(
		s.SetVec3("light.position", l.Position()),
		s.SetVec3("light.colour", l.Colour()),
		s.SetFloat("light.diffuseIntensity", l.DiffuseIntensity()),
		s.SetFloat("light.specularIntensity", l.SpecularIntensity()),
	)
}

// LightShader draws the unlit light marker.
type LightShader struct {
	*Program
	view Viewer
}

func (s *LightShader) UpdateUniforms(target any) error {
	l, ok := target.(LightTarget)
	if !ok {
		return unsupported("light", target)
	}
	diffuse := l.DiffuseMap()
	if diffuse == nil {
		return unsupported("light", target)
	}
	diffuse.Bind(DiffuseUnit)
	return multierr.Combine(
		s.SetInt("diffuse_map", DiffuseUnit),
		s.SetMat4("m_MVP", l.WorldTransform().MVP(s.view.ViewProjection())),
	)
}

// AtmosphereShader draws the sky dome gradient.
type AtmosphereShader struct {
	*Program
	view Viewer
}

func (s *AtmosphereShader) UpdateUniforms(target any) error {
	p, ok := target.(Placed)
	if !ok {
		return unsupported("atmosphere", target)
	}
	world := p.WorldTransform()
	return multierr.Combine(
		s.SetMat4("m_MVP", world.MVP(s.view.ViewProjection())),
		s.SetMat4("m_World", world.ModelMatrix()),
	)
}
