// Package renderstate provides reversible GPU state changes that bracket a
// draw call. Enable must always be followed by Disable.
package renderstate

import "github.com/Faultbox/vortex/internal/engine/gpu"

// Config is a matched Enable/Disable pair around a draw.
type Config interface {
	Enable()
	Disable()
}

// Default changes nothing.
type Default struct{}

func (Default) Enable()  {}
func (Default) Disable() {}

// Wireframe draws polygon outlines with culling off.
type Wireframe struct {
	drv gpu.Driver
}

// NewWireframe returns a wireframe config.
func NewWireframe(drv gpu.Driver) *Wireframe {
	return &Wireframe{drv: drv}
}

func (w *Wireframe) Enable() {
	w.drv.Disable(gpu.CullFace)
	w.drv.PolygonMode(gpu.FrontAndBack, gpu.Line)
}

func (w *Wireframe) Disable() {
	restoreFill(w.drv)
}

// Points draws polygon vertices only, with culling off.
type Points struct {
	drv gpu.Driver
}

// NewPoints returns a point-cloud config.
func NewPoints(drv gpu.Driver) *Points {
	return &Points{drv: drv}
}

func (p *Points) Enable() {
	p.drv.Disable(gpu.CullFace)
	p.drv.PolygonMode(gpu.FrontAndBack, gpu.Point)
}

func (p *Points) Disable() {
	restoreFill(p.drv)
}

// restoreFill returns to the engine's default rasterization state. Core
// profiles only take FrontAndBack for the polygon mode.
func restoreFill(drv gpu.Driver) {
	drv.PolygonMode(gpu.FrontAndBack, gpu.Fill)
	drv.Enable(gpu.CullFace)
	drv.CullFace(gpu.Back)
}

// CCW treats counter-clockwise triangles as front facing, for geometry
// viewed from the inside such as sky domes.
type CCW struct {
	drv gpu.Driver
}

// NewCCW returns a winding flip config.
func NewCCW(drv gpu.Driver) *CCW {
	return &CCW{drv: drv}
}

func (c *CCW) Enable()  { c.drv.FrontFace(gpu.CounterClockwise) }
func (c *CCW) Disable() { c.drv.FrontFace(gpu.Clockwise) }

// Multi applies several configs in order.
//
// Disable runs in the same order as Enable, not reversed. Configs that
// touch the same state (Wireframe with Points, for example) restore it in
// an order that may not match the nesting.
type Multi struct {
	configs []Config
}

// NewMulti composes configs.
func NewMulti(configs ...Config) *Multi {
	return &Multi{configs: configs}
}

func (m *Multi) Enable() {
	for _, c := range m.configs {
		c.Enable()
	}
}

func (m *Multi) Disable() {
	for _, c := range m.configs {
		c.Disable()
	}
}

// Configs returns the composed configs.
func (m *Multi) Configs() []Config {
	return m.configs
}
