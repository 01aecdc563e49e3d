package ebitenui

import (
	"container/list"
	"sync"
)

// measureCache is an LRU cache for text width measurements at the face's
// native size. Widths at other sizes are scaled from it.
type measureCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	lru     *list.List // Front = most recently used
}

type measureEntry struct {
	key   string
	width float32
}

func newMeasureCache(maxSize int) *measureCache {
	return &measureCache{
		maxSize: max(1, maxSize),
		entries: make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// get returns (width, true) on a hit.
func (c *measureCache) get(key string) (float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*measureEntry).width, true
	}
	return 0, false
}

// put stores a width, evicting the least recently used entries at capacity.
func (c *measureCache) put(key string, width float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*measureEntry).width = width
		return
	}

	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*measureEntry).key)
	}

	elem := c.lru.PushFront(&measureEntry{key: key, width: width})
	c.entries[key] = elem
}

func (c *measureCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *measureCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
}
