// Package kernel wires the engine's shared services together and drives
// the fixed-timestep frame loop.
package kernel

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/assets"
	"github.com/Faultbox/vortex/internal/engine/buffer"
	"github.com/Faultbox/vortex/internal/engine/camera"
	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/internal/engine/input"
	"github.com/Faultbox/vortex/internal/engine/mesh"
	"github.com/Faultbox/vortex/internal/engine/shader"
	"github.com/Faultbox/vortex/internal/engine/texture"
	"github.com/Faultbox/vortex/internal/logger"
)

// Context holds the services one engine instance shares between its game
// objects. It is built once and passed explicitly.
type Context struct {
	Driver   gpu.Driver
	Assets   *assets.Manager
	Camera   *camera.Camera
	Input    *input.Input
	VAOs     *buffer.Registry
	Textures *texture.Cache
	Meshes   *mesh.Loader
	Shaders  *shader.Library

	log *zap.Logger
}

// NewContext builds every service on top of drv. Files are read through
// files; nothing is loaded until first use.
func NewContext(drv gpu.Driver, files *assets.Manager, cam camera.Config) *Context {
	vaos := buffer.NewRegistry(drv)
	c := camera.New(cam)
	ctx := &Context{
		Driver:   drv,
		Assets:   files,
		Camera:   c,
		Input:    input.New(),
		VAOs:     vaos,
		Textures: texture.NewCache(drv, files),
		Meshes:   mesh.NewLoader(vaos, files),
		Shaders:  shader.NewLibrary(drv, c, files),
		log:      logger.Named("kernel"),
	}

	info := drv.Info()
	ctx.log.Info("engine context ready",
		zap.String("vendor", info.Vendor),
		zap.String("renderer", info.Renderer),
		zap.String("version", info.Version),
		zap.String("glsl", info.GLSL),
	)
	return ctx
}

// Shutdown releases GPU resources in a fixed order: vertex arrays,
// textures, meshes, then shaders. Every step runs even if an earlier one
// fails; the errors are combined.
func (c *Context) Shutdown() error {
	vaos := c.VAOs.Len()
	c.VAOs.DeleteAll()

	err := multierr.Combine(
		c.Textures.Shutdown(),
		c.Meshes.Shutdown(),
		c.Shaders.Shutdown(),
	)
	hits, misses := c.Assets.Stats()
	c.log.Info("engine context shut down",
		zap.Int("vaos", vaos),
		zap.Int("asset_cache_hits", hits),
		zap.Int("asset_cache_misses", misses),
		zap.Error(err),
	)
	return err
}
