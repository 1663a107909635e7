package service

import (
	"drawdowncycles/internal/domain"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

type cycleCacheKey struct {
	symbol        string
	thresholdPct  float64
	seriesVersion string
}

func (k cycleCacheKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.symbol, strconv.FormatFloat(k.thresholdPct, 'f', -1, 64), k.seriesVersion)
}

// CycleCache holds detected cycles per (symbol, threshold, series version).
// concurrent misses on the same key share one computation. storing a newer
// version of a symbol drops the entries for older versions
type CycleCache struct {
	mu      sync.RWMutex
	entries map[cycleCacheKey][]domain.Cycle
	group   singleflight.Group
}

func NewCycleCache() *CycleCache {
	return &CycleCache{
		entries: map[cycleCacheKey][]domain.Cycle{},
	}
}

func (c *CycleCache) get(key cycleCacheKey) ([]domain.Cycle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cycles, ok := c.entries[key]
	return cycles, ok
}

func (c *CycleCache) set(key cycleCacheKey, cycles []domain.Cycle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if k.symbol == key.symbol && k.seriesVersion != key.seriesVersion {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cycles
}

func (c *CycleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// GetOrCompute returns the cached cycles for the key, computing them at
// most once across concurrent callers. errors are not cached
func (c *CycleCache) GetOrCompute(
	symbol string,
	thresholdPct float64,
	version domain.SeriesVersion,
	compute func() ([]domain.Cycle, error),
) ([]domain.Cycle, error) {
	key := cycleCacheKey{
		symbol:        symbol,
		thresholdPct:  thresholdPct,
		seriesVersion: version.String(),
	}
	if cycles, ok := c.get(key); ok {
		return cycles, nil
	}

	result, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		if cycles, ok := c.get(key); ok {
			return cycles, nil
		}
		cycles, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(key, cycles)
		return cycles, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.Cycle), nil
}
