package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// AssetExt is the extension of serialized preset assets.
const AssetExt = ".asset"

// Cache maps preset guids to decoded presets. It is filled once before any
// resolution starts and never shrinks.
type Cache struct {
	presets map[string]*Preset
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{presets: make(map[string]*Preset)}
}

// Get returns the preset registered under guid.
func (c *Cache) Get(guid string) (*Preset, bool) {
	p, ok := c.presets[guid]
	return p, ok
}

// Put registers p under guid and returns the preset it replaced, if any.
func (c *Cache) Put(guid string, p *Preset) (*Preset, bool) {
	prev, ok := c.presets[guid]
	c.presets[guid] = p
	return prev, ok
}

// Len returns the number of cached presets.
func (c *Cache) Len() int { return len(c.presets) }

// GUIDs returns the cached guids in sorted order.
func (c *Cache) GUIDs() []string {
	out := make([]string, 0, len(c.presets))
	for g := range c.presets {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// CacheOptions configures LoadCache.
type CacheOptions struct {
	Schema Schema
	Ext    string      // defaults to AssetExt
	Logger *zap.Logger // defaults to a no-op logger
}

// LoadCache reads every preset asset directly inside dir (no recursion)
// together with its .meta sidecar. Files that fail to load or carry no guid
// are logged and skipped. Files are visited in name order, and a guid seen
// twice keeps the later file.
func LoadCache(dir string, opts CacheOptions) (*Cache, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ext := opts.Ext
	if ext == "" {
		ext = AssetExt
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading preset directory: %w", err)
	}

	cache := NewCache()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())

		p, err := Load(path, opts.Schema, true)
		if err != nil {
			log.Warn("skipping preset", zap.String("file", path), zap.Error(err))
			continue
		}

		if prev, replaced := cache.Put(p.GUID, p); replaced {
			log.Warn("duplicate preset guid, keeping later file",
				zap.String("guid", p.GUID),
				zap.String("dropped", prev.Source),
				zap.String("kept", path))
		}
	}

	log.Debug("preset cache built", zap.String("dir", dir), zap.Int("presets", cache.Len()))
	return cache, nil
}
