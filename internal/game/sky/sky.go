// Package sky implements the sky dome.
package sky

import (
	"github.com/Faultbox/vortex/internal/engine/kernel"
	"github.com/Faultbox/vortex/internal/engine/mesh"
	"github.com/Faultbox/vortex/internal/engine/renderstate"
	"github.com/Faultbox/vortex/internal/engine/scene"
	"github.com/Faultbox/vortex/pkg/math"
)

// Dome is an inside-out hemisphere drawn with the atmosphere shader. It is
// scaled to half the far plane so it always encloses the scene.
type Dome struct {
	*scene.GameObject
	mesh   *mesh.Mesh
	meshes *mesh.Loader
}

// New loads the dome mesh at path.
func New(ctx *kernel.Context, path string, zFar float32) (*Dome, error) {
	prog, err := ctx.Shaders.Atmosphere()
	if err != nil {
		return nil, err
	}
	m, err := ctx.Meshes.Acquire(path)
	if err != nil {
		return nil, err
	}

	d := &Dome{GameObject: scene.NewGameObject("sky"), mesh: m, meshes: ctx.Meshes}
	d.SetHost(d)
	// The camera sits inside the dome, so its faces wind the other way.
	d.AddComponent(scene.KindDefault, scene.NewRenderer(m, prog, renderstate.NewCCW(ctx.Driver)))

	s := zFar * 0.5
	d.WorldTransform().Scaling = math.Vec3{X: s, Y: s, Z: s}
	return d, nil
}

// Shutdown returns the mesh reference.
func (d *Dome) Shutdown() {
	if d.mesh != nil {
		d.meshes.Release(d.mesh)
		d.mesh = nil
	}
	d.GameObject.Shutdown()
}
