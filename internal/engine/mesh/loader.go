package mesh

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/engine/buffer"
	"github.com/Faultbox/vortex/internal/logger"
)

// ErrUnsupportedFormat is returned for model files other than .obj.
var ErrUnsupportedFormat = errors.New("mesh: unsupported model format")

// Source reads raw file bytes by relative path.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

type entry struct {
	mesh *Mesh
	refs int
}

// Loader shares meshes by path. Meshes stay resident until Shutdown.
type Loader struct {
	reg     *buffer.Registry
	src     Source
	log     *zap.Logger
	entries map[string]*entry
	mu      sync.Mutex
}

// NewLoader returns a loader that reads from src and registers VAOs with reg.
func NewLoader(reg *buffer.Registry, src Source) *Loader {
	return &Loader{
		reg:     reg,
		src:     src,
		log:     logger.Named("mesh"),
		entries: make(map[string]*entry),
	}
}

// Acquire returns the mesh at file, loading it on first use.
func (l *Loader) Acquire(file string) (*Mesh, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[file]; ok {
		e.refs++
		return e.mesh, nil
	}
	if !strings.EqualFold(path.Ext(file), ".obj") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
	}

	data, err := l.src.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("load mesh %s: %w", file, err)
	}
	obj, err := ParseOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load mesh %s: %w", file, err)
	}
	m, err := FromIndexed(l.reg, file, obj.ToIndexed())
	if err != nil {
		return nil, err
	}

	l.entries[file] = &entry{mesh: m, refs: 1}
	l.log.Debug("mesh loaded",
		zap.String("path", file),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", len(m.Indices)/3),
		zap.Bool("generated_normals", !obj.HasNormals))
	return m, nil
}

// Release drops one reference to m.
func (l *Loader) Release(m *Mesh) {
	if m == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[m.Name]; ok && e.mesh == m && e.refs > 0 {
		e.refs--
	}
}

// Refs returns the reference count of file.
func (l *Loader) Refs(file string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[file]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of resident meshes.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Shutdown deletes every mesh VAO. Meshes whose VAOs were already torn
// down by the registry are skipped.
func (l *Loader) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		e.mesh.Delete()
	}
	l.log.Debug("meshes released", zap.Int("count", len(l.entries)))
	l.entries = make(map[string]*entry)
	return nil
}
