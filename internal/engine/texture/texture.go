package texture

import (
	"image"

	"github.com/Faultbox/vortex/internal/engine/gpu"
)

// Texture2D is a 2D texture resident on the GPU.
type Texture2D struct {
	drv    gpu.Driver
	id     uint32
	path   string
	width  int
	height int
}

// Upload creates a texture from img with bilinear filtering and repeat
// wrapping. path is informational.
func Upload(drv gpu.Driver, path string, img *image.RGBA) *Texture2D {
	t := &Texture2D{
		drv:    drv,
		id:     drv.GenTexture(),
		path:   path,
		width:  img.Rect.Dx(),
		height: img.Rect.Dy(),
	}
	drv.BindTexture(t.id)
	drv.TexImage2D(int32(t.width), int32(t.height), img.Pix)
	drv.TexFilter(gpu.Linear, gpu.Linear)
	drv.TexWrap(gpu.Repeat)
	drv.BindTexture(0)
	return t
}

// Bind activates unit and binds the texture to it.
func (t *Texture2D) Bind(unit uint32) {
	t.drv.ActiveTexture(unit)
	t.drv.BindTexture(t.id)
}

// Unbind clears the texture binding of the active unit.
func (t *Texture2D) Unbind() {
	t.drv.BindTexture(0)
}

// NoFilter selects nearest sampling. The filter and wrap setters bind the
// texture to the active unit.
func (t *Texture2D) NoFilter() {
	t.drv.BindTexture(t.id)
	t.drv.TexFilter(gpu.Nearest, gpu.Nearest)
}

func (t *Texture2D) Bilinear() {
	t.drv.BindTexture(t.id)
	t.drv.TexFilter(gpu.Linear, gpu.Linear)
}

// Trilinear generates mipmaps and samples between them.
func (t *Texture2D) Trilinear() {
	t.drv.BindTexture(t.id)
	t.drv.GenerateMipmap()
	t.drv.TexFilter(gpu.LinearMipmapLinear, gpu.Linear)
}

// EnableTransparency clamps both axes to the edge so alpha borders do
// not bleed.
func (t *Texture2D) EnableTransparency() {
	t.drv.BindTexture(t.id)
	t.drv.TexWrap(gpu.ClampToEdge)
}

// DisableTransparency restores repeat wrapping on both axes.
func (t *Texture2D) DisableTransparency() {
	t.drv.BindTexture(t.id)
	t.drv.TexWrap(gpu.Repeat)
}

// Delete releases the GPU texture. Further calls are no-ops.
func (t *Texture2D) Delete() {
	if t.id == 0 {
		return
	}
	t.drv.DeleteTexture(t.id)
	t.id = 0
}

func (t *Texture2D) ID() uint32   { return t.id }
func (t *Texture2D) Path() string { return t.path }
func (t *Texture2D) Width() int   { return t.width }
func (t *Texture2D) Height() int  { return t.height }
