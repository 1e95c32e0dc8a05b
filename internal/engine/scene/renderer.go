package scene

import "github.com/Faultbox/vortex/internal/engine/renderstate"

// Drawable issues a draw call, for example *buffer.VAO.
type Drawable interface {
	Render(preBound bool)
}

// Shader binds a program and uploads the uniforms for a render target.
type Shader interface {
	Bind()
	UpdateUniforms(target any) error
}

// Renderer draws its owner: enable config, bind shader, upload uniforms,
// draw, disable config.
type Renderer struct {
	BaseComponent
	mesh   Drawable
	config renderstate.Config
	shader Shader
}

// NewRenderer returns a renderer component. A nil config means renderstate.Default.
func NewRenderer(mesh Drawable, shader Shader, config renderstate.Config) *Renderer {
	if config == nil {
		config = renderstate.Default{}
	}
	return &Renderer{mesh: mesh, config: config, shader: shader}
}

// Config returns the render state config.
func (r *Renderer) Config() renderstate.Config { return r.config }

// Shader returns the shader.
func (r *Renderer) Shader() Shader { return r.shader }

// Render implements Component. The config is disabled even when the
// uniform upload fails, and the draw is skipped.
func (r *Renderer) Render() error {
	r.config.Enable()
	defer r.config.Disable()

	r.shader.Bind()
	if err := r.shader.UpdateUniforms(r.Owner().Host()); err != nil {
		return err
	}
	r.mesh.Render(false)
	return nil
}
