// Package memory keeps the seed collection in process memory. Every read
// hands out copies so callers never share state with the store.
package memory

import (
	"slices"
	"sync"
	"time"
)

// collection is an insertion-ordered keyed store.
type collection[T any] struct {
	mu      sync.RWMutex
	order   []string
	items   map[string]T
	key     func(T) string
	deleted func(T) bool
	clone   func(T) T
}

func newCollection[T any](seed []T, key func(T) string, deleted func(T) bool, clone func(T) T) *collection[T] {
	c := &collection[T]{
		items:   make(map[string]T, len(seed)),
		key:     key,
		deleted: deleted,
		clone:   clone,
	}
	for _, item := range seed {
		id := key(item)
		c.order = append(c.order, id)
		c.items[id] = clone(item)
	}
	return c
}

func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if c.deleted(item) {
			continue
		}
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, c.clone(item))
	}
	return out
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok || c.deleted(item) {
		var zero T
		return zero, false
	}
	return c.clone(item), true
}

func (c *collection[T]) find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		item := c.items[id]
		if !c.deleted(item) && match(item) {
			return c.clone(item), true
		}
	}
	var zero T
	return zero, false
}

// insert fails when the key is already taken, deleted rows included.
func (c *collection[T]) insert(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.key(item)
	if _, exists := c.items[id]; exists {
		return false
	}
	c.order = append(c.order, id)
	c.items[id] = c.clone(item)
	return true
}

func (c *collection[T]) replace(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.key(item)
	current, ok := c.items[id]
	if !ok || c.deleted(current) {
		return false
	}
	c.items[id] = c.clone(item)
	return true
}

func (c *collection[T]) mutate(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok || c.deleted(item) {
		return false
	}
	fn(&item)
	c.items[id] = item
	return true
}

func clonePtr[V any](p *V) *V {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(t *time.Time) *time.Time { return clonePtr(t) }

func cloneSlice[V any](s []V) []V { return slices.Clone(s) }
