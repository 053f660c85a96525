package nodelink

import (
	"context"
	"time"

	"github.com/matzehuels/blocksnap/pkg/cache"
)

// svgTTL bounds how long rendered SVGs are kept. Entries are keyed by
// their DOT source, so they only go stale when Graphviz output changes.
const svgTTL = 7 * 24 * time.Hour

// RenderSVGCached is [RenderSVG] backed by c. It reports whether the
// result came from the cache. Cache failures fall back to rendering.
func RenderSVGCached(ctx context.Context, c cache.Cache, dot string) ([]byte, bool, error) {
	if c == nil {
		c = cache.NewNullCache()
	}
	key := cache.Key("svg", []byte(dot))
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, svg, svgTTL)
	return svg, false, nil
}
