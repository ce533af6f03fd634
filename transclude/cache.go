package transclude

import (
	"sync"

	"github.com/gowiki/wikiparse/ast"
)

// pageCache coalesces concurrent fetches of the same template name to
// at most one underlying call: a per-key sync.Once so the "fetch once,
// share the result" guarantee holds even when several sibling nodes
// reference the same template and are transcluded concurrently.
type pageCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	nodes ast.Nodes
	err   error
}

func newPageCache() *pageCache {
	return &pageCache{entries: make(map[string]*cacheEntry)}
}

func (c *pageCache) fetch(key string, fn func() (ast.Nodes, error)) (ast.Nodes, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.nodes, e.err = fn()
	})
	return e.nodes, e.err
}
