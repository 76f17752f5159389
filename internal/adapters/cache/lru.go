// Package cache fronts order lookups with a bounded in-memory LRU.
package cache

import (
	"container/list"
	"sync"
)

type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	queue    *list.List
}

type entry[V any] struct {
	key   string
	value V
}

// NewLRU creates a cache holding at most capacity entries. A capacity below 1 is treated as 1.
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

// Add stores value under key and marks it most recently used.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.queue.MoveToFront(el)
		el.Value.(*entry[V]).value = value
		return
	}
	if c.queue.Len() >= c.capacity {
		c.removeOldest()
	}
	c.items[key] = c.queue.PushFront(&entry[V]{key: key, value: value})
}

// Get returns the value for key. A hit moves the entry to the front.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.queue.MoveToFront(el)
		return el.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

func (c *LRU[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.queue.Remove(el)
		delete(c.items, key)
	}
}

func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

func (c *LRU[V]) removeOldest() {
	el := c.queue.Back()
	if el != nil {
		e := c.queue.Remove(el).(*entry[V])
		delete(c.items, e.key)
	}
}
