package heuristic

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdrpinto/plansearch"
)

const defaultCacheSize = 4096

// Cached memoizes the estimates of an inner heuristic in an LRU cache.
// Errors are never cached. A Cached is safe for concurrent use, so several
// engines may share one.
type Cached[StateType comparable] struct {
	inner plansearch.Heuristic[StateType]
	cache *lru.Cache[StateType, float64]
}

// NewCached wraps inner with a cache of at most size entries. A size of zero
// or less selects the default size.
func NewCached[StateType comparable](inner plansearch.Heuristic[StateType], size int) (*Cached[StateType], error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[StateType, float64](size)
	if err != nil {
		return nil, fmt.Errorf("heuristic: create cache: %w", err)
	}
	return &Cached[StateType]{inner: inner, cache: cache}, nil
}

// Evaluate returns the cached estimate or computes and stores it.
func (cached *Cached[StateType]) Evaluate(state StateType) (float64, error) {
	if value, ok := cached.cache.Get(state); ok {
		return value, nil
	}
	value, err := cached.inner.Evaluate(state)
	if err != nil {
		return 0, err
	}
	cached.cache.Add(state, value)
	return value, nil
}

// Len returns the number of cached estimates.
func (cached *Cached[StateType]) Len() int {
	return cached.cache.Len()
}

// Purge drops every cached estimate.
func (cached *Cached[StateType]) Purge() {
	cached.cache.Purge()
}
