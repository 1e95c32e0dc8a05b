// Package config handles engine configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Version is the engine version shown in the window title.
const Version = "2.0.0"

// Config holds all engine settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Assets  AssetsConfig  `yaml:"assets"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RenderConfig holds projection and frame timing settings.
type RenderConfig struct {
	FOV         float32    `yaml:"fov"`
	ZNear       float32    `yaml:"z_near"`
	ZFar        float32    `yaml:"z_far"`
	Framerate   float64    `yaml:"framerate"`
	ClearColour [3]float32 `yaml:"clear_colour"`
	Wireframe   bool       `yaml:"wireframe"`
}

// CameraConfig holds free-fly camera tuning.
type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	MoveAmount       float32    `yaml:"move_amount"`
	RotateAmount     float32    `yaml:"rotate_amount"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
}

// AssetsConfig holds asset search settings.
type AssetsConfig struct {
	Roots             []string `yaml:"roots"` // searched last to first, before the built-in files
	DefaultTextureDir string   `yaml:"default_texture_dir"`
	WatchShaders      bool     `yaml:"watch_shaders"`
}

// SceneConfig describes what the demo scene contains.
type SceneConfig struct {
	Entities []EntityConfig `yaml:"entities"`
	Light    LightConfig    `yaml:"light"`
	Sky      SkyConfig      `yaml:"sky"`
}

// EntityConfig places one textured mesh.
type EntityConfig struct {
	Name     string     `yaml:"name"`
	Mesh     string     `yaml:"mesh"`
	Texture  string     `yaml:"texture"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    float32    `yaml:"scale"`
}

// LightConfig describes the point light.
type LightConfig struct {
	Mesh              string     `yaml:"mesh"`
	Texture           string     `yaml:"texture"`
	Position          [3]float32 `yaml:"position"`
	Colour            [3]float32 `yaml:"colour"`
	DiffuseIntensity  float32    `yaml:"diffuse_intensity"`
	SpecularIntensity float32    `yaml:"specular_intensity"`
	Scale             float32    `yaml:"scale"`
}

// SkyConfig describes the sky dome.
type SkyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mesh    string `yaml:"mesh"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Vortex Engine " + Version,
			Width:  1280,
			Height: 720,
			VSync:  false,
		},
		Render: RenderConfig{
			FOV:       70,
			ZNear:     0.1,
			ZFar:      10000,
			Framerate: 200,
		},
		Camera: CameraConfig{
			Position:         [3]float32{0, 2, -10},
			MoveAmount:       0.1,
			RotateAmount:     0.8,
			MouseSensitivity: 0.8,
		},
		Assets: AssetsConfig{
			Roots:             []string{"res"},
			DefaultTextureDir: "textures",
		},
		Scene: SceneConfig{
			Entities: []EntityConfig{
				{Name: "cube", Mesh: "models/cube.obj", Scale: 1},
				{Name: "raised", Mesh: "models/cube.obj", Position: [3]float32{0, 3, 0}, Rotation: [3]float32{0, 45, 0}, Scale: 0.5},
			},
			Light: LightConfig{
				Mesh:              "models/cube.obj",
				Texture:           "textures/light.png",
				Position:          [3]float32{-5, 5, -5},
				Colour:            [3]float32{1, 1, 1},
				DiffuseIntensity:  0.5,
				SpecularIntensity: 1,
				Scale:             0.1,
			},
			Sky: SkyConfig{
				Enabled: true,
				Mesh:    "models/dome.obj",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid marks a configuration value outside its usable range.
var ErrInvalid = errors.New("invalid config")

// Validate reports every setting the engine cannot start with.
func (c *Config) Validate() error {
	var err error
	bad := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		bad("fov %g", c.Render.FOV)
	}
	if c.Render.ZNear <= 0 || c.Render.ZFar <= c.Render.ZNear {
		bad("clip planes near %g far %g", c.Render.ZNear, c.Render.ZFar)
	}
	if c.Render.Framerate <= 0 {
		bad("framerate %g", c.Render.Framerate)
	}
	for i, e := range c.Scene.Entities {
		if e.Mesh == "" {
			bad("entity %d (%s) has no mesh", i, e.Name)
		}
	}
	return err
}
