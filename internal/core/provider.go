package core

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"fittingcore/pkg/domain"
)

// DefaultCacheCapacity bounds the resolved-table cache. Five covers
// every built-in family with room for all three pipe standards.
const DefaultCacheCapacity = 5

// TableProvider loads reference tables from a backend source, resolves
// the owning family's schema against each loaded table, and keeps the
// resolved tables in a bounded LRU cache keyed by standard name.
type TableProvider struct {
	source   domain.TableSource
	registry *Registry
	cache    *lru.Cache[string, domain.Table]
	logger   Logger
}

// NewTableProvider builds a provider over the source and registry. A
// non-positive capacity selects DefaultCacheCapacity; a nil logger
// discards provider logs.
func NewTableProvider(source domain.TableSource, registry *Registry, capacity int, logger Logger) (*TableProvider, error) {
	if source == nil {
		return nil, fmt.Errorf("table source is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("family registry is required")
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	cache, err := lru.New[string, domain.Table](capacity)
	if err != nil {
		return nil, fmt.Errorf("create table cache: %w", err)
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &TableProvider{source: source, registry: registry, cache: cache, logger: logger}, nil
}

// Load returns the resolved table for the standard, serving repeat
// loads from the cache. Standards unknown to the registry fail before
// the backend is consulted.
func (p *TableProvider) Load(ctx context.Context, standard string) (domain.Table, error) {
	if table, ok := p.cache.Get(standard); ok {
		p.logger.Debug("table cache hit", "standard", standard)
		return table, nil
	}
	family, ok := p.registry.FamilyFor(standard)
	if !ok {
		return domain.Table{}, domain.UnknownStandardError{Standard: standard, Known: p.registry.Standards()}
	}
	cfg, ok := p.registry.Config(family)
	if !ok {
		return domain.Table{}, fmt.Errorf("family %s is not registered", family)
	}
	raw, err := p.source.Load(ctx, standard)
	if err != nil {
		return domain.Table{}, err
	}
	resolved, err := raw.Resolve(cfg.Schema)
	if err != nil {
		return domain.Table{}, fmt.Errorf("resolve %s schema: %w", family, err)
	}
	p.cache.Add(standard, resolved)
	p.logger.Debug("table loaded", "standard", standard, "rows", resolved.Len())
	return resolved, nil
}

// Purge drops every cached table. Subsequent loads hit the backend.
func (p *TableProvider) Purge() {
	p.cache.Purge()
}
