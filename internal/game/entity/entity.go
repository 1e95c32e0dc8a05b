// Package entity implements textured, lit scene objects.
package entity

import (
	"fmt"

	"github.com/Faultbox/vortex/internal/engine/kernel"
	"github.com/Faultbox/vortex/internal/engine/model"
	"github.com/Faultbox/vortex/internal/engine/renderstate"
	"github.com/Faultbox/vortex/internal/engine/scene"
	"github.com/Faultbox/vortex/internal/engine/shader"
	"github.com/Faultbox/vortex/internal/engine/texture"
	"github.com/Faultbox/vortex/pkg/math"
)

// Options describes an entity to build.
type Options struct {
	Name string
	// Mesh is the .obj path. Texture, if set, replaces the default
	// diffuse map from TextureDir.
	Mesh       string
	Texture    string
	TextureDir string

	Position math.Vec3
	Rotation math.Vec3 // degrees
	Scale    math.Vec3
}

// Entity is a model drawn with the entity shader in one of three render
// modes.
type Entity struct {
	*scene.GameObject
	model    *model.Model
	position math.Vec3
	rotation math.Vec3
}

var (
	_ shader.EntityTarget = (*Entity)(nil)
	_ scene.Object        = (*Entity)(nil)
)

// New loads the model and attaches default, wireframe and point-cloud
// renderers that share its VAO and the entity shader.
func New(ctx *kernel.Context, opts Options) (*Entity, error) {
	prog, err := ctx.Shaders.Entity()
	if err != nil {
		return nil, err
	}
	m, err := model.Load(ctx.Meshes, ctx.Textures, opts.Mesh, opts.TextureDir, opts.Texture)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", opts.Name, err)
	}

	e := &Entity{
		GameObject: scene.NewGameObject(opts.Name),
		model:      m,
		position:   opts.Position,
		rotation:   opts.Rotation,
	}
	e.SetHost(e)

	e.AddComponent(scene.KindDefault, scene.NewRenderer(m.Mesh, prog, renderstate.Default{}))
	e.AddComponent(scene.KindWireframe, scene.NewRenderer(m.Mesh, prog, renderstate.NewWireframe(ctx.Driver)))
	e.AddComponent(scene.KindPointCloud, scene.NewRenderer(m.Mesh, prog, renderstate.NewPoints(ctx.Driver)))

	world := e.WorldTransform()
	world.Translation = opts.Position
	world.Rotation = opts.Rotation
	if opts.Scale != (math.Vec3{}) {
		world.Scaling = opts.Scale
	}
	return e, nil
}

// Render writes the position and rotation into the world transform, then
// draws the active renderer.
func (e *Entity) Render() error {
	world := e.WorldTransform()
	world.Translation = e.position
	world.Rotation = e.rotation
	return e.GameObject.Render()
}

// Shutdown returns the model's shared resources.
func (e *Entity) Shutdown() {
	if e.model != nil {
		e.model.Release()
		e.model = nil
	}
	e.GameObject.Shutdown()
}

// Move offsets the position by v.
func (e *Entity) Move(v math.Vec3) { e.position = e.position.Add(v) }

// Rotate adds v degrees to the rotation.
func (e *Entity) Rotate(v math.Vec3) { e.rotation = e.rotation.Add(v) }

func (e *Entity) Position() math.Vec3     { return e.position }
func (e *Entity) SetPosition(p math.Vec3) { e.position = p }
func (e *Entity) Rotation() math.Vec3     { return e.rotation }
func (e *Entity) SetRotation(r math.Vec3) { e.rotation = r }
func (e *Entity) Model() *model.Model     { return e.model }

// SetRenderMode selects the renderer used from the next frame.
func (e *Entity) SetRenderMode(kind scene.ComponentKind) { e.SetActive(kind) }

// DiffuseMap implements shader.EntityTarget.
func (e *Entity) DiffuseMap() shader.Texture {
	if e.model == nil {
		return nil
	}
	return bindable(e.model.Material.DiffuseMap())
}

// SpecularMap implements shader.EntityTarget.
func (e *Entity) SpecularMap() shader.Texture {
	if e.model == nil {
		return nil
	}
	return bindable(e.model.Material.SpecularMap())
}

// bindable keeps a nil texture a nil interface.
func bindable(t *texture.Texture2D) shader.Texture {
	if t == nil {
		return nil
	}
	return t
}
