// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache.
The cache evicts the least recently used entry when it reaches capacity.
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache[K comparable, V any] struct {
	size      int                 // Maximum capacity of the cache (number of entries)
	evictList *list.List          // A doubly-linked list to manage the eviction order
	items     map[K]*list.Element // Maps keys to their corresponding linked-list elements
	lock      sync.RWMutex
}

// entry holds the key/value pair stored in each linked-list element.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a new cache with the specified maximum size.
//
// It returns an error if size is not a positive integer.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	return &Cache[K, V]{
		size:      size,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}, nil
}

// Add adds or updates the value for key.
//
// If the key exists, it becomes the most recently used.
// If the cache is at capacity, the least recently used item is evicted.
// Add reports whether an eviction occurred.
func (c *Cache[K, V]) Add(key K, value V) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = value

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value})

	evicted := c.evictList.Len() > c.size
	if evicted {
		c.removeOldest()
	}

	return evicted
}

// Get retrieves the value for key and marks it as most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	// Lock for write since we will move the element to the front.
	c.lock.Lock()
	defer c.lock.Unlock()

	ent, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(ent)

	return ent.Value.(*entry[K, V]).value, true
}

// Len returns the current number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.evictList.Len()
}

func (c *Cache[K, V]) removeOldest() {
	if ent := c.evictList.Back(); ent != nil {
		c.evictList.Remove(ent)
		delete(c.items, ent.Value.(*entry[K, V]).key)
	}
}
