package keymap

import (
	"fmt"
	"sync"

	"github.com/chatter/nudge/internal/logger"
)

// Cache memoizes extraction results keyed by selector. A cached result is
// served until the selector changes or Invalidate is called; any user
// command may have changed the active scope, so consumers invalidate on
// every return to activity. State never outlives the process.
type Cache struct {
	mu        sync.Mutex
	source    Source
	extractor *Extractor
	log       *logger.Logger

	selector Selector
	pairs    []Pair
	valid    bool
}

// NewCache creates a Cache reading reports from source.
func NewCache(source Source, extractor *Extractor, log *logger.Logger) *Cache {
	return &Cache{
		source:    source,
		extractor: extractor,
		log:       log,
	}
}

// Get returns the pairs for sel, recomputing when the cached result is
// stale or was computed for a different selector.
func (c *Cache) Get(sel Selector) ([]Pair, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.selector == sel {
		return c.pairs, nil
	}

	report, err := c.fetchReport(sel)
	if err != nil {
		return nil, fmt.Errorf("fetching binding report: %w", err)
	}

	pairs := c.extractor.Extract(report, sel.LocalOnly())
	c.log.Debug("binding set recomputed", "scope", sel.Scope.String(), "map", sel.Map, "pairs", len(pairs))

	c.selector = sel
	c.pairs = pairs
	c.valid = true

	return pairs, nil
}

// Invalidate discards the cached result. Safe to call at any time,
// including when nothing is cached.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pairs = nil
	c.valid = false
}

func (c *Cache) fetchReport(sel Selector) (string, error) {
	if sel.Scope == ScopeMap {
		return c.source.MapReport(sel.Map)
	}
	return c.source.ActiveReport(sel.LocalOnly())
}
