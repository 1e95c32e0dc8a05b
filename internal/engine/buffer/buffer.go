// Package buffer manages GPU buffer objects and vertex array objects.
//
// Buffers move through unbound -> created -> bound/unbound -> deleted.
// Data is uploaded once with static usage and never changes afterwards.
package buffer

import (
	"errors"
	"fmt"

	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/pkg/math"
)

var (
	// ErrAlreadyCreated is returned by Create on a buffer that was uploaded before.
	ErrAlreadyCreated = errors.New("buffer: already created")
	// ErrDeleted is returned when using a deleted buffer.
	ErrDeleted = errors.New("buffer: deleted")
	// ErrInvalidSize is returned for a component size outside 1..4.
	ErrInvalidSize = errors.New("buffer: invalid component size")
)

// State is the lifecycle stage of a buffer.
type State int

const (
	Unbound State = iota
	Created
	Deleted
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Buffer is the behavior shared by all buffer kinds.
type Buffer interface {
	ID() uint32
	State() State
	Bind()
	Unbind()
	Delete()
}

// base holds the handle and lifecycle of a buffer object.
type base struct {
	drv    gpu.Driver
	target gpu.BufferTarget
	id     uint32
	state  State
}

func newBase(drv gpu.Driver, target gpu.BufferTarget) base {
	return base{drv: drv, target: target, id: drv.GenBuffer()}
}

func (b *base) ID() uint32   { return b.id }
func (b *base) State() State { return b.state }

func (b *base) Bind() {
	if b.state == Deleted {
		return
	}
	b.drv.BindBuffer(b.target, b.id)
}

func (b *base) Unbind() {
	if b.state == Deleted {
		return
	}
	b.drv.BindBuffer(b.target, 0)
}

// Delete releases the GPU handle. Further calls are no-ops.
func (b *base) Delete() {
	if b.state == Deleted {
		return
	}
	b.drv.DeleteBuffer(b.id)
	b.state = Deleted
}

func (b *base) beginCreate() error {
	switch b.state {
	case Created:
		return fmt.Errorf("buffer %d: %w", b.id, ErrAlreadyCreated)
	case Deleted:
		return fmt.Errorf("buffer %d: %w", b.id, ErrDeleted)
	}
	return nil
}

// IndexBuffer holds triangle indices.
type IndexBuffer struct {
	base
	data []uint32
}

// NewIndexBuffer allocates a handle for the given indices. Nothing is
// uploaded until Create.
func NewIndexBuffer(drv gpu.Driver, indices []uint32) *IndexBuffer {
	return &IndexBuffer{base: newBase(drv, gpu.ElementArrayBuffer), data: indices}
}

// Create uploads the indices and leaves the buffer bound so the active
// vertex array records it.
func (b *IndexBuffer) Create() error {
	if err := b.beginCreate(); err != nil {
		return err
	}
	b.drv.BindBuffer(gpu.ElementArrayBuffer, b.id)
	b.drv.BufferUint32(gpu.ElementArrayBuffer, b.data)
	b.state = Created
	return nil
}

// Data returns the CPU copy of the indices.
func (b *IndexBuffer) Data() []uint32 { return b.data }

// Len returns the number of indices.
func (b *IndexBuffer) Len() int { return len(b.data) }

// VertexBuffer holds one float attribute with Size components per vertex.
type VertexBuffer struct {
	base
	data  []float32
	size  int32
	index uint32
}

// NewVertexBuffer allocates a handle for data laid out as size-component tuples.
func NewVertexBuffer(drv gpu.Driver, data []float32, size int32) (*VertexBuffer, error) {
	if size < 1 || size > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &VertexBuffer{base: newBase(drv, gpu.ArrayBuffer), data: data, size: size}, nil
}

// Create uploads the data and points attribute index at it.
func (b *VertexBuffer) Create(index uint32) error {
	if err := b.beginCreate(); err != nil {
		return err
	}
	b.index = index
	b.drv.BindBuffer(gpu.ArrayBuffer, b.id)
	b.drv.BufferFloat32(gpu.ArrayBuffer, b.data)
	b.drv.VertexAttribPointer(index, b.size)
	b.drv.BindBuffer(gpu.ArrayBuffer, 0)
	b.state = Created
	return nil
}

// Data returns the CPU copy of the attribute data.
func (b *VertexBuffer) Data() []float32 { return b.data }

// Size returns the number of components per vertex.
func (b *VertexBuffer) Size() int32 { return b.size }

// Index returns the attribute slot assigned at Create.
func (b *VertexBuffer) Index() uint32 { return b.index }

// Vertices returns the vertex count.
func (b *VertexBuffer) Vertices() int {
	return len(b.data) / int(b.size)
}

// PatchBuffer holds 2D control points for tessellation patches.
type PatchBuffer struct {
	base
	points []math.Vec2
}

// NewPatchBuffer allocates a handle for the given control points.
func NewPatchBuffer(drv gpu.Driver, points []math.Vec2) *PatchBuffer {
	return &PatchBuffer{base: newBase(drv, gpu.ArrayBuffer), points: points}
}

// Create uploads the points as a 2-component attribute at index and sets
// the patch size to the number of points.
func (b *PatchBuffer) Create(index uint32) error {
	if err := b.beginCreate(); err != nil {
		return err
	}
	flat := make([]float32, 0, len(b.points)*2)
	for _, p := range b.points {
		flat = append(flat, p.X, p.Y)
	}
	b.drv.BindBuffer(gpu.ArrayBuffer, b.id)
	b.drv.BufferFloat32(gpu.ArrayBuffer, flat)
	b.drv.VertexAttribPointer(index, 2)
	b.drv.PatchVertices(int32(len(b.points)))
	b.drv.BindBuffer(gpu.ArrayBuffer, 0)
	b.state = Created
	return nil
}

// Points returns the CPU copy of the control points.
func (b *PatchBuffer) Points() []math.Vec2 { return b.points }

// Len returns the number of control points.
func (b *PatchBuffer) Len() int { return len(b.points) }
