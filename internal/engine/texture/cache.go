package texture

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/internal/logger"
)

// Source reads raw file bytes by relative path.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

type entry struct {
	tex  *Texture2D
	refs int
}

// Cache shares textures by path. Every Acquire of a path returns the same
// *Texture2D. Entries stay resident until Shutdown, even at zero refs.
type Cache struct {
	drv     gpu.Driver
	src     Source
	log     *zap.Logger
	entries map[string]*entry
	mu      sync.Mutex
}

// NewCache returns an empty cache that reads files from src.
func NewCache(drv gpu.Driver, src Source) *Cache {
	return &Cache{
		drv:     drv,
		src:     src,
		log:     logger.Named("texture"),
		entries: make(map[string]*entry),
	}
}

// Acquire returns the texture for path, loading it on first use, and
// takes a reference.
func (c *Cache) Acquire(path string) (*Texture2D, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok {
		e.refs++
		c.log.Debug("texture cache hit", zap.String("path", path), zap.Int("refs", e.refs))
		return e.tex, nil
	}

	data, err := c.src.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	img, err := Decode(path, data)
	if err != nil {
		return nil, err
	}

	tex := Upload(c.drv, path, img)
	c.entries[path] = &entry{tex: tex, refs: 1}
	c.log.Debug("texture loaded",
		zap.String("path", path),
		zap.Uint32("id", tex.ID()),
		zap.Int("width", tex.Width()),
		zap.Int("height", tex.Height()))
	return tex, nil
}

// Release drops one reference to t. The texture is not deleted.
func (c *Cache) Release(t *Texture2D) {
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[t.Path()]; ok && e.tex == t && e.refs > 0 {
		e.refs--
	}
}

// Refs returns the reference count of path, 0 when not loaded.
func (c *Cache) Refs(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of resident textures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Shutdown deletes every texture and empties the cache.
func (c *Cache) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.tex.Delete()
	}
	c.log.Debug("textures released", zap.Int("count", len(c.entries)))
	c.entries = make(map[string]*entry)
	return nil
}
