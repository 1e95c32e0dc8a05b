// Package mesh loads triangle meshes and uploads them as vertex arrays.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/vortex/internal/engine/buffer"
	"github.com/Faultbox/vortex/pkg/math"
)

// Attribute slots of a mesh VAO.
const (
	PositionSlot = iota
	TexCoordSlot
	NormalSlot
)

// ErrEmpty is returned when a mesh has no triangles.
var ErrEmpty = errors.New("mesh: no triangles")

// Vertex is one mesh vertex.
type Vertex struct {
	Position math.Vec3
	TexCoord math.Vec2
	Normal   math.Vec3
}

// Split flattens vertices into per-attribute float slices.
func Split(vertices []Vertex) (positions, texCoords, normals []float32) {
	positions = make([]float32, 0, len(vertices)*3)
	texCoords = make([]float32, 0, len(vertices)*2)
	normals = make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		positions = append(positions, v.Position.X, v.Position.Y, v.Position.Z)
		texCoords = append(texCoords, v.TexCoord.X, v.TexCoord.Y)
		normals = append(normals, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	return positions, texCoords, normals
}

// Mesh is vertex data plus the VAO that draws it.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	vao      *buffer.VAO
}

// New uploads vertices and indices into a VAO registered with reg.
// Positions, texture coordinates and normals go to slots 0, 1 and 2.
func New(reg *buffer.Registry, name string, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if len(indices) < 3 || len(vertices) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	for _, i := range indices {
		if int(i) >= len(vertices) {
			return nil, fmt.Errorf("mesh %s: index %d out of range (%d vertices)", name, i, len(vertices))
		}
	}

	drv := reg.Driver()
	pos, tex, norm := Split(vertices)
	posBuf, err := buffer.NewVertexBuffer(drv, pos, 3)
	if err != nil {
		return nil, err
	}
	texBuf, err := buffer.NewVertexBuffer(drv, tex, 2)
	if err != nil {
		return nil, err
	}
	normBuf, err := buffer.NewVertexBuffer(drv, norm, 3)
	if err != nil {
		return nil, err
	}

	vao, err := reg.NewIndexed(indices, posBuf, texBuf, normBuf)
	if err != nil {
		posBuf.Delete()
		texBuf.Delete()
		normBuf.Delete()
		return nil, fmt.Errorf("mesh %s: %w", name, err)
	}
	return &Mesh{Name: name, Vertices: vertices, Indices: indices, vao: vao}, nil
}

// FromIndexed builds a mesh from parsed OBJ data.
func FromIndexed(reg *buffer.Registry, name string, ix *Indexed) (*Mesh, error) {
	return New(reg, name, ix.Vertices(), ix.Indices)
}

// VAO returns the vertex array that draws the mesh.
func (m *Mesh) VAO() *buffer.VAO { return m.vao }

// Render draws the mesh.
func (m *Mesh) Render(preBound bool) { m.vao.Render(preBound) }

// Delete releases the VAO and its buffers.
func (m *Mesh) Delete() { m.vao.Delete() }

// Bounds returns the axis-aligned box around the vertices.
func (m *Mesh) Bounds() (lo, hi math.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		p := v.Position
		lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}
