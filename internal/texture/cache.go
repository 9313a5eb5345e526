package texture

import (
	"image"
	"sync"
)

// Resolver resolves a texture name to a decoded image, or nil if there is none.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Textures that fail to load are
// remembered as nil so the file is read at most once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
	onErr func(path string, err error)
}

// NewCache creates a new texture cache backed by the given index. onErr, if not
// nil, is called once for every texture that fails to load.
func NewCache(index *Index, onErr func(path string, err error)) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
		onErr: onErr,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	if cached, exists := c.items[path]; exists {
		c.mu.Unlock()
		return cached
	}
	c.items[path] = img
	c.mu.Unlock()

	if err != nil && c.onErr != nil {
		c.onErr(path, err)
	}
	return img
}
