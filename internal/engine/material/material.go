// Package material describes surface appearance: texture maps plus scalar
// shading parameters.
package material

import (
	"fmt"
	"path"

	"go.uber.org/multierr"

	"github.com/Faultbox/vortex/internal/engine/texture"
	"github.com/Faultbox/vortex/pkg/math"
)

// Slot names a texture map of a material.
type Slot int

const (
	Diffuse Slot = iota
	Specular
	Normal
	Displacement
	Ambient
	Alpha
	numSlots
)

func (s Slot) String() string {
	switch s {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Normal:
		return "normal"
	case Displacement:
		return "displacement"
	case Ambient:
		return "ambient"
	case Alpha:
		return "alpha"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Default map file names inside the default texture directory.
const (
	DefaultDiffuse  = "diffuse.png"
	DefaultSpecular = "specular.png"
)

// Textures hands out shared textures. *texture.Cache implements it.
type Textures interface {
	Acquire(path string) (*texture.Texture2D, error)
	Release(t *texture.Texture2D)
}

// Material holds up to six texture maps and the scalar parameters the
// shaders may read.
type Material struct {
	Name string

	Colour          math.Vec3
	Alpha           float32
	DisplaceScale   float32
	HorizontalScale float32
	Emission        float32
	Reflectivity    float32

	textures Textures
	maps     [numSlots]*texture.Texture2D
}

// New returns a material with the default diffuse and specular maps from
// defaultDir and the stock parameters.
func New(textures Textures, defaultDir string) (*Material, error) {
	m := &Material{
		Colour:          math.Vec3{X: 0.1, Y: 0.1, Z: 1},
		Alpha:           1,
		DisplaceScale:   1,
		HorizontalScale: 1,
		Emission:        0,
		Reflectivity:    1,
		textures:        textures,
	}
	if err := m.SetMap(Diffuse, path.Join(defaultDir, DefaultDiffuse)); err != nil {
		return nil, err
	}
	if err := m.SetMap(Specular, path.Join(defaultDir, DefaultSpecular)); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

// SetMap loads the texture at file into slot, releasing the previous one.
func (m *Material) SetMap(slot Slot, file string) error {
	if slot < 0 || slot >= numSlots {
		return fmt.Errorf("material: invalid %s", slot)
	}
	tex, err := m.textures.Acquire(file)
	if err != nil {
		return fmt.Errorf("material %s map: %w", slot, err)
	}
	m.textures.Release(m.maps[slot])
	m.maps[slot] = tex
	return nil
}

// Map returns the texture in slot, nil when empty.
func (m *Material) Map(slot Slot) *texture.Texture2D {
	if slot < 0 || slot >= numSlots {
		return nil
	}
	return m.maps[slot]
}

func (m *Material) DiffuseMap() *texture.Texture2D  { return m.maps[Diffuse] }
func (m *Material) SpecularMap() *texture.Texture2D { return m.maps[Specular] }

// Release returns every map to the texture cache and empties the slots.
func (m *Material) Release() {
	for i, tex := range m.maps {
		if tex != nil {
			m.textures.Release(tex)
			m.maps[i] = nil
		}
	}
}

// Validate reports parameter values outside their usable range.
func (m *Material) Validate() error {
	var err error
	if m.Alpha < 0 || m.Alpha > 1 {
		err = multierr.Append(err, fmt.Errorf("material %q: alpha %g outside [0,1]", m.Name, m.Alpha))
	}
	if m.Reflectivity < 0 {
		err = multierr.Append(err, fmt.Errorf("material %q: negative reflectivity %g", m.Name, m.Reflectivity))
	}
	if m.maps[Diffuse] == nil {
		err = multierr.Append(err, fmt.Errorf("material %q: no diffuse map", m.Name))
	}
	return err
}
