package buffer

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/internal/logger"
)

// MaxVertexBuffers is the attribute slot limit of one VAO.
const MaxVertexBuffers = 15

var (
	// ErrTooManyBuffers is returned when more than MaxVertexBuffers are attached.
	ErrTooManyBuffers = errors.New("vao: too many vertex buffers")
	// ErrNoBuffers is returned when a VAO is built without vertex data.
	ErrNoBuffers = errors.New("vao: no vertex buffers")
)

// DrawMode says which draw call a VAO issues.
type DrawMode int

const (
	// Indexed draws triangles through the index buffer.
	Indexed DrawMode = iota
	// Patch draws non-indexed tessellation patches.
	Patch
	// Arrays draws non-indexed triangles.
	Arrays
)

// VAO aggregates vertex buffers and an optional index buffer. Attribute
// slot i is backed by the i-th buffer; slot 0 must carry positions or the
// object will not draw.
type VAO struct {
	drv      gpu.Driver
	registry *Registry
	id       uint32
	mode     DrawMode
	indices  *IndexBuffer
	buffers  []Buffer
	count    int32
	deleted  bool
}

// ID returns the vertex array handle.
func (v *VAO) ID() uint32 { return v.id }

// Mode returns the draw mode chosen at construction.
func (v *VAO) Mode() DrawMode { return v.mode }

// Count returns the number of vertices a draw submits.
func (v *VAO) Count() int32 { return v.count }

// Attributes returns the number of attribute slots in use.
func (v *VAO) Attributes() int { return len(v.buffers) }

// Indices returns the index buffer, nil for non-indexed VAOs.
func (v *VAO) Indices() *IndexBuffer { return v.indices }

// Enable binds the VAO and enables its attribute arrays in slot order.
func (v *VAO) Enable() {
	v.drv.BindVertexArray(v.id)
	for i := range v.buffers {
		v.drv.EnableVertexAttribArray(uint32(i))
	}
}

// Disable disables the attribute arrays in reverse order and unbinds.
func (v *VAO) Disable() {
	for i := len(v.buffers) - 1; i >= 0; i-- {
		v.drv.DisableVertexAttribArray(uint32(i))
	}
	v.drv.BindVertexArray(0)
}

// Render issues the draw call. When preBound is true the caller has
// already called Enable and will call Disable.
func (v *VAO) Render(preBound bool) {
	if v.deleted {
		return
	}
	if !preBound {
		v.Enable()
	}
	switch v.mode {
	case Indexed:
		v.drv.DrawElements(gpu.Triangles, v.count)
	case Patch:
		v.drv.DrawArrays(gpu.Patches, 0, v.count)
	case Arrays:
		v.drv.DrawArrays(gpu.Triangles, 0, v.count)
	}
	if !preBound {
		v.Disable()
	}
}

// Delete releases the VAO and its buffers and removes it from its registry.
func (v *VAO) Delete() {
	if v.deleted {
		return
	}
	v.release()
	v.registry.remove(v)
}

func (v *VAO) release() {
	for _, b := range v.buffers {
		b.Delete()
	}
	if v.indices != nil {
		v.indices.Delete()
	}
	v.drv.DeleteVertexArray(v.id)
	v.deleted = true
}

// Registry tracks every live VAO so they can be torn down together.
type Registry struct {
	drv  gpu.Driver
	vaos []*VAO
	log  *zap.Logger
}

// NewRegistry returns an empty registry bound to drv.
func NewRegistry(drv gpu.Driver) *Registry {
	return &Registry{drv: drv, log: logger.Named("vao")}
}

// Len returns the number of live VAOs.
func (r *Registry) Len() int { return len(r.vaos) }

// Driver returns the driver buffers for this registry must be created on.
func (r *Registry) Driver() gpu.Driver { return r.drv }

// NewIndexed builds a VAO that draws len(indices) vertices as triangles.
// Vertex buffer i is bound to attribute slot i.
func (r *Registry) NewIndexed(indices []uint32, buffers ...*VertexBuffer) (*VAO, error) {
	if len(buffers) == 0 {
		return nil, ErrNoBuffers
	}
	if len(buffers) > MaxVertexBuffers {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyBuffers, len(buffers), MaxVertexBuffers)
	}

	v := r.begin(Indexed)
	v.indices = NewIndexBuffer(r.drv, indices)
	err := v.indices.Create()
	for i, b := range buffers {
		err = multierr.Append(err, b.Create(uint32(i)))
		v.buffers = append(v.buffers, b)
	}
	v.count = int32(len(indices))
	return r.finish(v, err)
}

// NewPatch builds a VAO that draws the patch control points without indices.
func (r *Registry) NewPatch(patches ...*PatchBuffer) (*VAO, error) {
	if len(patches) == 0 {
		return nil, ErrNoBuffers
	}
	if len(patches) > MaxVertexBuffers {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyBuffers, len(patches), MaxVertexBuffers)
	}

	v := r.begin(Patch)
	var err error
	for i, p := range patches {
		err = multierr.Append(err, p.Create(uint32(i)))
		v.buffers = append(v.buffers, p)
	}
	v.count = int32(patches[0].Len())
	return r.finish(v, err)
}

// NewArrays builds a VAO over a single vertex buffer drawn as plain triangles.
func (r *Registry) NewArrays(b *VertexBuffer) (*VAO, error) {
	if b == nil {
		return nil, ErrNoBuffers
	}
	v := r.begin(Arrays)
	err := b.Create(0)
	v.buffers = append(v.buffers, b)
	v.count = int32(b.Vertices())
	return r.finish(v, err)
}

func (r *Registry) begin(mode DrawMode) *VAO {
	v := &VAO{drv: r.drv, registry: r, id: r.drv.GenVertexArray(), mode: mode}
	r.drv.BindVertexArray(v.id)
	return v
}

func (r *Registry) finish(v *VAO, err error) (*VAO, error) {
	r.drv.BindVertexArray(0)
	if err != nil {
		// Caller-supplied buffers stay with the caller.
		if v.indices != nil {
			v.indices.Delete()
		}
		r.drv.DeleteVertexArray(v.id)
		v.deleted = true
		return nil, fmt.Errorf("building vao: %w", err)
	}
	r.vaos = append(r.vaos, v)
	r.log.Debug("vao created",
		zap.Uint32("id", v.id),
		zap.Int("attributes", len(v.buffers)),
		zap.Int32("count", v.count),
	)
	return v, nil
}

// Delete removes v from the registry and releases it.
func (r *Registry) Delete(v *VAO) {
	v.Delete()
}

func (r *Registry) remove(v *VAO) {
	for i, other := range r.vaos {
		if other == v {
			r.vaos = append(r.vaos[:i], r.vaos[i+1:]...)
			return
		}
	}
}

// DeleteAll releases every registered VAO.
func (r *Registry) DeleteAll() {
	n := len(r.vaos)
	for _, v := range r.vaos {
		v.release()
	}
	r.vaos = nil
	r.log.Debug("vaos released", zap.Int("count", n))
}
