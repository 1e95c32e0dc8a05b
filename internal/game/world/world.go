// Package world builds the demo scene from configuration and draws it.
package world

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/config"
	"github.com/Faultbox/vortex/internal/engine/input"
	"github.com/Faultbox/vortex/internal/engine/kernel"
	"github.com/Faultbox/vortex/internal/engine/scene"
	"github.com/Faultbox/vortex/internal/engine/shader"
	"github.com/Faultbox/vortex/internal/game/entity"
	"github.com/Faultbox/vortex/internal/game/light"
	"github.com/Faultbox/vortex/internal/game/sky"
	"github.com/Faultbox/vortex/internal/logger"
	"github.com/Faultbox/vortex/pkg/math"
)

// Render mode keys.
var modeKeys = []struct {
	key  input.Key
	kind scene.ComponentKind
}{
	{input.KeyP, scene.KindPointCloud},
	{input.KeyL, scene.KindWireframe},
	{input.KeyO, scene.KindDefault},
}

// World owns the scene objects: entities, the light and an optional sky.
// They hang off a root node in draw order, light first.
type World struct {
	ctx      *kernel.Context
	root     *scene.Node
	entities []*entity.Entity
	light    *light.Light
	sky      *sky.Dome
	log      *zap.Logger
}

// New builds every object described by cfg. Anything already built is
// shut down if a later object fails.
func New(ctx *kernel.Context, cfg *config.Config) (*World, error) {
	w := &World{ctx: ctx, root: scene.NewNode("world"), log: logger.Named("world")}
	if err := w.build(cfg); err != nil {
		w.Shutdown()
		return nil, err
	}
	return w, nil
}

func (w *World) build(cfg *config.Config) error {
	dir := cfg.Assets.DefaultTextureDir

	lc := cfg.Scene.Light
	l, err := light.New(w.ctx, light.Options{
		Mesh:              lc.Mesh,
		Texture:           lc.Texture,
		TextureDir:        dir,
		Position:          vec(lc.Position),
		Colour:            vec(lc.Colour),
		Scale:             lc.Scale,
		DiffuseIntensity:  lc.DiffuseIntensity,
		SpecularIntensity: lc.SpecularIntensity,
	})
	if err != nil {
		return err
	}
	w.light = l
	if err := w.root.AddChild(l); err != nil {
		return err
	}

	if cfg.Scene.Sky.Enabled {
		d, err := sky.New(w.ctx, cfg.Scene.Sky.Mesh, cfg.Render.ZFar)
		if err != nil {
			return fmt.Errorf("sky: %w", err)
		}
		w.sky = d
		if err := w.root.AddChild(d); err != nil {
			return err
		}
	}

	for i, ec := range cfg.Scene.Entities {
		name := ec.Name
		if name == "" {
			name = fmt.Sprintf("entity%d", i)
		}
		opts := entity.Options{
			Name:       name,
			Mesh:       ec.Mesh,
			Texture:    ec.Texture,
			TextureDir: dir,
			Position:   vec(ec.Position),
			Rotation:   vec(ec.Rotation),
		}
		if ec.Scale > 0 {
			opts.Scale = math.Vec3{X: ec.Scale, Y: ec.Scale, Z: ec.Scale}
		}
		e, err := entity.New(w.ctx, opts)
		if err != nil {
			return err
		}
		w.entities = append(w.entities, e)
		if err := w.root.AddChild(e); err != nil {
			return err
		}
	}

	w.log.Info("scene built",
		zap.Int("entities", len(w.entities)),
		zap.Bool("sky", w.sky != nil))
	return nil
}

func vec(a [3]float32) math.Vec3 { return math.Vec3{X: a[0], Y: a[1], Z: a[2]} }

// Entities returns the scene's entities in draw order.
func (w *World) Entities() []*entity.Entity { return w.entities }

// Light returns the scene light.
func (w *World) Light() *light.Light { return w.light }

// Root returns the node every scene object hangs off.
func (w *World) Root() *scene.Node { return w.root }

// Sky returns the sky dome, or nil when disabled.
func (w *World) Sky() *sky.Dome { return w.sky }

// SetRenderMode switches every entity to kind.
func (w *World) SetRenderMode(kind scene.ComponentKind) {
	for _, e := range w.entities {
		e.SetRenderMode(kind)
	}
	w.log.Debug("render mode", zap.Stringer("kind", kind))
}

// Update applies the render mode keys and advances the scene graph.
func (w *World) Update(in *input.Input) {
	for _, m := range modeKeys {
		if in.KeyPressed(m.key) {
			w.SetRenderMode(m.kind)
		}
	}
	w.root.Input()
	w.root.Update()
}

// Render uploads the light to the entity shader, then walks the tree: the
// light, the sky and the entities in that order. It stops at the first
// failed draw.
func (w *World) Render() error {
	prog, err := w.ctx.Shaders.Entity()
	if err != nil {
		return err
	}
	prog.Bind()
	if err := prog.UpdateLights(w.light); err != nil {
		return err
	}

	return w.root.Render()
}

// Reload drops the cached bytes of each changed file and rebuilds the
// shaders that read them. A failed rebuild keeps the old program; the
// errors are returned together.
func (w *World) Reload(changed []string) error {
	var err error
	rebuilt := map[shader.Kind]bool{}
	for _, p := range changed {
		w.ctx.Assets.Invalidate(p)
		kind, ok := shader.KindForPath(p)
		if !ok || rebuilt[kind] {
			continue
		}
		rebuilt[kind] = true
		if e := w.ctx.Shaders.Rebuild(kind); e != nil {
			err = multierr.Append(err, e)
			continue
		}
		w.log.Info("shader reloaded", zap.Stringer("kind", kind), zap.String("file", p))
	}
	return err
}

// Shutdown releases every object's resources and empties the tree. The
// shared caches are left to the kernel context.
func (w *World) Shutdown() {
	w.root.Shutdown()
	w.root = scene.NewNode("world")
	w.entities = nil
	w.sky = nil
	w.light = nil
}
