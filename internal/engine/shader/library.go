package shader

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/internal/logger"
)

// Kind names one of the engine's built-in shaders.
type Kind int

const (
	KindEntity Kind = iota
	KindLight
	KindAtmosphere
	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindLight:
		return "light"
	case KindAtmosphere:
		return "atmosphere"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type definition struct {
	vertex, fragment string
	uniforms         []string
}

var definitions = [numKinds]definition{
	KindEntity:     {"shaders/entity_VS.glsl", "shaders/entity_FS.glsl", entityUniforms},
	KindLight:      {"shaders/light_VS.glsl", "shaders/light_FS.glsl", lightUniforms},
	KindAtmosphere: {"shaders/atmosphere_VS.glsl", "shaders/atmosphere_FS.glsl", atmosphereUniforms},
}

// Sources reads GLSL by relative path. The asset manager implements it, as
// does any fs.ReadFileFS.
type Sources interface {
	ReadFile(name string) ([]byte, error)
}

// Library builds each shader kind once and owns the programs.
type Library struct {
	drv  gpu.Driver
	view Viewer
	src  Sources
	log  *zap.Logger

	entity     *EntityShader
	light      *LightShader
	atmosphere *AtmosphereShader
}

// NewLibrary returns an empty library. Shaders are built on first use.
func NewLibrary(drv gpu.Driver, view Viewer, src Sources) *Library {
	return &Library{drv: drv, view: view, src: src, log: logger.Named("shader")}
}

// Entity returns the entity shader, building it if needed.
func (l *Library) Entity() (*EntityShader, error) {
	if l.entity == nil {
		p, err := l.build(KindEntity)
		if err != nil {
			return nil, err
		}
		l.entity = &EntityShader{Program: p, view: l.view}
	}
	return l.entity, nil
}

// Light returns the light marker shader, building it if needed.
func (l *Library) Light() (*LightShader, error) {
	if l.light == nil {
		p, err := l.build(KindLight)
		if err != nil {
			return nil, err
		}
		l.light = &LightShader{Program: p, view: l.view}
	}
	return l.light, nil
}

// Atmosphere returns the sky shader, building it if needed.
func (l *Library) Atmosphere() (*AtmosphereShader, error) {
	if l.atmosphere == nil {
		p, err := l.build(KindAtmosphere)
		if err != nil {
			return nil, err
		}
		l.atmosphere = &AtmosphereShader{Program: p, view: l.view}
	}
	return l.atmosphere, nil
}

func (l *Library) build(kind Kind) (*Program, error) {
	def := definitions[kind]
	vs, err := l.src.ReadFile(def.vertex)
	if err != nil {
		return nil, fmt.Errorf("load %s shader: %w", kind, err)
	}
	fs, err := l.src.ReadFile(def.fragment)
	if err != nil {
		return nil, fmt.Errorf("load %s shader: %w", kind, err)
	}

	p, err := NewProgram(l.drv, kind.String())
	if err != nil {
		return nil, err
	}
	if err := p.AddVertexShader(string(vs)); err != nil {
		p.Delete()
		return nil, err
	}
	if err := p.AddFragmentShader(string(fs)); err != nil {
		p.Delete()
		return nil, err
	}
	if err := p.Link(); err != nil {
		p.Delete()
		return nil, err
	}
	if err := p.AddUniforms(def.uniforms...); err != nil {
		p.Delete()
		return nil, err
	}

	l.log.Info("shader built", zap.Stringer("kind", kind), zap.Uint32("program", p.ID()))
	return p, nil
}

// Rebuild recompiles kind from its sources and swaps the new program into
// the existing shader, so renderers keep their reference. On failure the
// old program stays in use. Kinds that were never built are left alone.
func (l *Library) Rebuild(kind Kind) error {
	var slot **Program
	switch kind {
	case KindEntity:
		if l.entity != nil {
			slot = &l.entity.Program
		}
	case KindLight:
		if l.light != nil {
			slot = &l.light.Program
		}
	case KindAtmosphere:
		if l.atmosphere != nil {
			slot = &l.atmosphere.Program
		}
	default:
		return fmt.Errorf("shader: unknown kind %s", kind)
	}
	if slot == nil {
		return nil
	}

	p, err := l.build(kind)
	if err != nil {
		l.log.Warn("shader rebuild failed, keeping previous program",
			zap.Stringer("kind", kind), zap.Error(err))
		return err
	}
	(*slot).Delete()
	*slot = p
	return nil
}

// KindForPath reports which shader kind reads the given source path.
func KindForPath(path string) (Kind, bool) {
	for k, def := range definitions {
		if def.vertex == path || def.fragment == path {
			return Kind(k), true
		}
	}
	return 0, false
}

// Shutdown deletes every built program.
func (l *Library) Shutdown() error {
	n := 0
	if l.entity != nil {
		l.entity.Delete()
		l.entity = nil
		n++
	}
	if l.light != nil {
		l.light.Delete()
		l.light = nil
		n++
	}
	if l.atmosphere != nil {
		l.atmosphere.Delete()
		l.atmosphere = nil
		n++
	}
	l.log.Debug("shaders released", zap.Int("count", n))
	return nil
}

// BuildAll builds every kind and returns all failures together.
func (l *Library) BuildAll() error {
	_, e1 := l.Entity()
	_, e2 := l.Light()
	_, e3 := l.Atmosphere()
	return multierr.Combine(e1, e2, e3)
}
