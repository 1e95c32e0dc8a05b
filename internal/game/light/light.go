// Package light implements the scene's point light and its marker.
package light

import (
	"fmt"

	"github.com/Faultbox/vortex/internal/engine/kernel"
	"github.com/Faultbox/vortex/internal/engine/model"
	"github.com/Faultbox/vortex/internal/engine/renderstate"
	"github.com/Faultbox/vortex/internal/engine/scene"
	"github.com/Faultbox/vortex/internal/engine/shader"
	"github.com/Faultbox/vortex/pkg/math"
)

// Default intensities. Values other than one are needed for the diffuse
// term to show.
const (
	DefaultDiffuseIntensity  = 0.5
	DefaultSpecularIntensity = 1
)

// Options describes a light.
type Options struct {
	Mesh       string
	Texture    string
	TextureDir string

	Position math.Vec3
	Colour   math.Vec3
	Scale    float32
	// Zero intensities select the defaults.
	DiffuseIntensity  float32
	SpecularIntensity float32
}

// Light is a point light drawn as a small unlit mesh.
type Light struct {
	*scene.GameObject
	model    *model.Model
	position math.Vec3
	colour   math.Vec3
	diffuse  float32
	specular float32
}

var (
	_ shader.LightSource = (*Light)(nil)
	_ shader.LightTarget = (*Light)(nil)
)

// New builds a light with its marker mesh.
func New(ctx *kernel.Context, opts Options) (*Light, error) {
	prog, err := ctx.Shaders.Light()
	if err != nil {
		return nil, err
	}
	m, err := model.Load(ctx.Meshes, ctx.Textures, opts.Mesh, opts.TextureDir, opts.Texture)
	if err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}

	l := &Light{
		GameObject: scene.NewGameObject("light"),
		model:      m,
		position:   opts.Position,
		colour:     opts.Colour,
		diffuse:    opts.DiffuseIntensity,
		specular:   opts.SpecularIntensity,
	}
	if l.diffuse == 0 {
		l.diffuse = DefaultDiffuseIntensity
	}
	if l.specular == 0 {
		l.specular = DefaultSpecularIntensity
	}
	l.SetHost(l)
	l.AddComponent(scene.KindDefault, scene.NewRenderer(m.Mesh, prog, renderstate.Default{}))

	world := l.WorldTransform()
	world.Translation = opts.Position
	if opts.Scale > 0 {
		world.Scaling = math.Vec3{X: opts.Scale, Y: opts.Scale, Z: opts.Scale}
	}
	return l, nil
}

// Render moves the marker to the light position and draws it.
func (l *Light) Render() error {
	l.WorldTransform().Translation = l.position
	return l.GameObject.Render()
}

// Shutdown returns the marker's shared resources.
func (l *Light) Shutdown() {
	if l.model != nil {
		l.model.Release()
		l.model = nil
	}
	l.GameObject.Shutdown()
}

func (l *Light) Position() math.Vec3            { return l.position }
func (l *Light) SetPosition(p math.Vec3)        { l.position = p }
func (l *Light) Colour() math.Vec3              { return l.colour }
func (l *Light) SetColour(c math.Vec3)          { l.colour = c }
func (l *Light) DiffuseIntensity() float32      { return l.diffuse }
func (l *Light) SetDiffuseIntensity(v float32)  { l.diffuse = v }
func (l *Light) SpecularIntensity() float32     { return l.specular }
func (l *Light) SetSpecularIntensity(v float32) { l.specular = v }

// DiffuseMap implements shader.LightTarget.
func (l *Light) DiffuseMap() shader.Texture {
	if l.model == nil || l.model.Material.DiffuseMap() == nil {
		return nil
	}
	return l.model.Material.DiffuseMap()
}
