// Package game opens the window and runs the scene in the frame loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/assets"
	"github.com/Faultbox/vortex/internal/config"
	"github.com/Faultbox/vortex/internal/engine/camera"
	"github.com/Faultbox/vortex/internal/engine/gpu/gldriver"
	"github.com/Faultbox/vortex/internal/engine/input"
	"github.com/Faultbox/vortex/internal/engine/kernel"
	"github.com/Faultbox/vortex/internal/engine/scene"
	"github.com/Faultbox/vortex/internal/engine/window"
	"github.com/Faultbox/vortex/internal/game/world"
	"github.com/Faultbox/vortex/internal/logger"
	"github.com/Faultbox/vortex/pkg/math"
)

// Game is the running engine instance.
type Game struct {
	cfg     *config.Config
	window  *window.Window
	ctx     *kernel.Context
	world   *world.World
	watcher *assets.Watcher
	running bool
	log     *zap.Logger
}

var _ kernel.App = (*Game)(nil)

// New opens the window, initializes OpenGL and builds the scene.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{cfg: cfg, log: logger.Named("game")}
	g.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height))

	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The driver needs the window's GL context to be current.
	drv, err := gldriver.New()
	if err != nil {
		g.window.Close()
		return nil, err
	}

	files := assets.NewManager(assets.Builtin())
	var roots []string
	for _, dir := range cfg.Assets.Roots {
		if err := files.AddRoot(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				g.log.Debug("asset root skipped", zap.String("dir", dir))
				continue
			}
			g.window.Close()
			return nil, err
		}
		roots = append(roots, dir)
	}

	g.ctx = kernel.NewContext(drv, files, cameraConfig(cfg))
	g.ctx.Camera.SetPosition(vec(cfg.Camera.Position))
	w, h := g.window.Size()
	g.resize(w, h)
	kernel.InitRenderState(drv)

	if err := g.ctx.Shaders.BuildAll(); err != nil {
		g.Close()
		return nil, err
	}
	g.world, err = world.New(g.ctx, cfg)
	if err != nil {
		g.Close()
		return nil, err
	}
	if cfg.Render.Wireframe {
		g.world.SetRenderMode(scene.KindWireframe)
	}

	if cfg.Assets.WatchShaders && len(roots) > 0 {
		g.watcher, err = assets.NewWatcher(roots...)
		if err != nil {
			g.log.Warn("hot reload disabled", zap.Error(err))
		}
	}

	g.running = true
	g.log.Info("initialized")
	return g, nil
}

func cameraConfig(cfg *config.Config) camera.Config {
	c := camera.DefaultConfig()
	c.FOV = cfg.Render.FOV
	c.ZNear = cfg.Render.ZNear
	c.ZFar = cfg.Render.ZFar
	c.Width = float32(cfg.Window.Width)
	c.Height = float32(cfg.Window.Height)
	if cfg.Camera.MoveAmount > 0 {
		c.MoveAmount = cfg.Camera.MoveAmount
	}
	if cfg.Camera.RotateAmount > 0 {
		c.RotateAmount = cfg.Camera.RotateAmount
	}
	if cfg.Camera.MouseSensitivity > 0 {
		c.MouseSensitivity = cfg.Camera.MouseSensitivity
	}
	return c
}

func vec(a [3]float32) math.Vec3 { return math.Vec3{X: a[0], Y: a[1], Z: a[2]} }

// Run drives the game with a fixed-timestep loop until it stops or ctx is
// cancelled.
func (g *Game) Run(ctx context.Context) error {
	loop, err := kernel.NewLoop(g.cfg.Render.Framerate, nil)
	if err != nil {
		return err
	}
	return loop.Run(ctx, g)
}

// Running implements kernel.App.
func (g *Game) Running() bool { return g.running }

// Update implements kernel.App: it polls input, moves the camera and
// advances the scene by one step.
func (g *Game) Update() error {
	in := g.ctx.Input
	in.Update(g.window)

	if in.CloseRequested() || in.KeyPressed(input.KeyEscape) {
		g.running = false
		return nil
	}
	if ok, w, h := in.Resized(); ok {
		g.resize(w, h)
	}

	in.LockWhileHeld(input.MouseRight)
	g.ctx.Camera.Update(in)
	g.world.Update(in)

	if g.watcher != nil {
		if changed := g.watcher.Changes(); len(changed) > 0 {
			if err := g.world.Reload(changed); err != nil {
				g.log.Warn("reload failed", zap.Error(err))
			}
		}
	}
	return nil
}

func (g *Game) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	g.ctx.Camera.SetProjection(float32(w), float32(h))
	kernel.Resize(g.ctx.Driver, w, h)
}

// Render implements kernel.App.
func (g *Game) Render() error {
	kernel.ClearScreen(g.ctx.Driver, vec(g.cfg.Render.ClearColour))
	if err := g.world.Render(); err != nil {
		return err
	}
	g.window.SwapBuffers()
	return nil
}

// Close releases the scene, the engine services and the window.
func (g *Game) Close() error {
	g.log.Info("shutting down")
	var err error
	if g.world != nil {
		g.world.Shutdown()
		g.world = nil
	}
	if g.watcher != nil {
		err = multierr.Append(err, g.watcher.Close())
		g.watcher = nil
	}
	if g.ctx != nil {
		err = multierr.Append(err, g.ctx.Shutdown())
		g.ctx.Assets.Close()
		g.ctx = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	return err
}
