/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymeta

import (
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/metadata"
	"golang.org/x/sync/singleflight"
)

// BuildFunc derives the metadata of one struct type
type BuildFunc func(t reflect.Type) (*metadata.Entity, error)

// Cache memoizes entity metadata per struct type.
// Concurrent misses for one type share a single build. Entries stay until
// invalidated; a build that races with an invalidation of its own type (or with
// InvalidateAll) is returned to its callers but not stored.
type Cache struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*metadata.Entity
	gens    map[reflect.Type]uint64 // bumped by Invalidate
	epoch   uint64                  // bumped by InvalidateAll
	group   singleflight.Group
	build   BuildFunc
}

// NewCache creates a cache that fills misses with build
func NewCache(build BuildFunc) *Cache {
	return &Cache{
		entries: make(map[reflect.Type]*metadata.Entity),
		gens:    make(map[reflect.Type]uint64),
		build:   build,
	}
}

// Get returns the cached metadata for t, building it on the first request.
// Pointer types share the entry of their element type.
func (c *Cache) Get(t reflect.Type) (*metadata.Entity, error) {
	t = indirect(t)
	if t == nil {
		return nil, errors.ErrNotStruct
	}

	if e, ok := c.lookup(t); ok {
		return e, nil
	}

	v, err, _ := c.group.Do(t.String(), func() (any, error) {
		return c.fill(t)
	})
	if err != nil {
		return nil, err
	}

	e := v.(*metadata.Entity)
	if e.Type() != t {
		// distinct types with the same name share a flight key
		return c.fill(t)
	}
	return e, nil
}

func (c *Cache) fill(t reflect.Type) (*metadata.Entity, error) {
	c.mu.RLock()
	if e, ok := c.entries[t]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	epoch, gen := c.epoch, c.gens[t]
	c.mu.RUnlock()

	e, err := c.build(t)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[t]; ok {
		return existing, nil
	}
	if c.epoch == epoch && c.gens[t] == gen {
		c.entries[t] = e
	}
	return e, nil
}

func (c *Cache) lookup(t reflect.Type) (*metadata.Entity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[t]
	return e, ok
}

// Contains reports whether metadata for t is cached
func (c *Cache) Contains(t reflect.Type) bool {
	if t == nil {
		return false
	}
	_, ok := c.lookup(indirect(t))
	return ok
}

// Invalidate removes the entry for t so the next Get rebuilds it
func (c *Cache) Invalidate(t reflect.Type) {
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	t = indirect(t)
	delete(c.entries, t)
	c.gens[t]++
}

// InvalidateAll removes every entry
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[reflect.Type]*metadata.Entity)
	c.gens = make(map[reflect.Type]uint64)
	c.epoch++
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Types returns the cached types sorted by name
func (c *Cache) Types() []reflect.Type {
	c.mu.RLock()
	types := make([]reflect.Type, 0, len(c.entries))
	for t := range c.entries {
		types = append(types, t)
	}
	c.mu.RUnlock()

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
