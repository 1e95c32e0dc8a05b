// Package model pairs a mesh with the material it is drawn with.
package model

import (
	"fmt"

	"github.com/Faultbox/vortex/internal/engine/material"
	"github.com/Faultbox/vortex/internal/engine/mesh"
)

// Meshes hands out shared meshes. *mesh.Loader implements it.
type Meshes interface {
	Acquire(path string) (*mesh.Mesh, error)
	Release(m *mesh.Mesh)
}

// Model is a mesh and a material.
type Model struct {
	Mesh     *mesh.Mesh
	Material *material.Material

	meshes Meshes
}

// New wraps an existing mesh and material. Release on the result only
// releases the material.
func New(m *mesh.Mesh, mat *material.Material) *Model {
	return &Model{Mesh: m, Material: mat}
}

// Load acquires the mesh at meshPath and a material with the default maps
// from textureDir. A non-empty diffuse path replaces the default diffuse map.
func Load(meshes Meshes, textures material.Textures, meshPath, textureDir, diffuse string) (*Model, error) {
	m, err := meshes.Acquire(meshPath)
	if err != nil {
		return nil, err
	}
	mat, err := material.New(textures, textureDir)
	if err != nil {
		meshes.Release(m)
		return nil, fmt.Errorf("model %s: %w", meshPath, err)
	}
	mat.Name = meshPath
	if diffuse != "" {
		if err := mat.SetMap(material.Diffuse, diffuse); err != nil {
			mat.Release()
			meshes.Release(m)
			return nil, fmt.Errorf("model %s: %w", meshPath, err)
		}
	}
	return &Model{Mesh: m, Material: mat, meshes: meshes}, nil
}

// Render draws the mesh. Binding textures is the shader's job.
func (m *Model) Render(preBound bool) { m.Mesh.Render(preBound) }

// Release returns the mesh and material references it holds.
func (m *Model) Release() {
	if m.meshes != nil && m.Mesh != nil {
		m.meshes.Release(m.Mesh)
	}
	if m.Material != nil {
		m.Material.Release()
	}
	m.Mesh, m.Material = nil, nil
}
