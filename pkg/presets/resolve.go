package presets

import "go.uber.org/zap"

// Resolver flattens preset reference graphs using a Cache.
type Resolver struct {
	cache *Cache
	log   *zap.Logger
}

// NewResolver returns a resolver over cache. A nil logger discards output.
func NewResolver(cache *Cache, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{cache: cache, log: log}
}

// Resolve returns every scene reachable from p: its own scenes first, then
// each child's resolution in reference order. Guids missing from the cache
// are skipped. A reference to a preset already being expanded higher up the
// current path is cut, so cyclic data terminates after a single pass.
// The result may hold duplicates when several children share a descendant.
func (r *Resolver) Resolve(p *Preset) []string {
	out := []string{}
	if p == nil {
		return out
	}
	onPath := make(map[string]struct{})
	r.expand(p, p.GUID, onPath, &out)
	return out
}

// ResolveGUID resolves the cached preset registered under guid.
func (r *Resolver) ResolveGUID(guid string) ([]string, bool) {
	p, ok := r.cache.Get(guid)
	if !ok {
		return nil, false
	}
	out := []string{}
	r.expand(p, guid, make(map[string]struct{}), &out)
	return out, true
}

func (r *Resolver) expand(p *Preset, guid string, onPath map[string]struct{}, out *[]string) {
	if guid != "" {
		onPath[guid] = struct{}{}
		defer delete(onPath, guid)
	}

	*out = append(*out, p.Scenes...)

	for _, child := range p.Children {
		if _, cyclic := onPath[child]; cyclic {
			r.log.Warn("preset reference cycle, not following",
				zap.String("from", p.Source),
				zap.String("guid", child))
			continue
		}
		cp, ok := r.cache.Get(child)
		if !ok {
			r.log.Debug("unresolved child preset",
				zap.String("from", p.Source),
				zap.String("guid", child))
			continue
		}
		r.expand(cp, child, onPath, out)
	}
}
