// Package artwork resolves poster, backdrop and profile images and keeps the decoded results in a bounded cache.
package artwork

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Variant is a size preset of the image CDN.
type Variant string

const (
	Thumbnail Variant = "w185"
	Poster    Variant = "w342"
	Large     Variant = "w500"
	Original  Variant = "original"
)

// Key identifies a cached image.
type Key struct {
	Path    string
	Variant Variant
}

func (k Key) String() string {
	return string(k.Variant) + k.Path
}

// Image is a validated image. Cached images are shared and must not be modified.
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Cache is a size-bounded, time-bounded LRU of images. It is safe for concurrent use.
type Cache struct {
	lru *expirable.LRU[Key, *Image]
}

// NewCache keeps at most size images, each for at most ttl. A non-positive ttl never expires entries.
func NewCache(size int, ttl time.Duration) *Cache {
	if size < 1 {
		size = 1
	}

	return &Cache{
		lru: expirable.NewLRU[Key, *Image](size, nil, ttl),
	}
}

func (c *Cache) Get(key Key) (*Image, bool) {
	return c.lru.Get(key)
}

func (c *Cache) Add(key Key, image *Image) {
	c.lru.Add(key, image)
}

// Evict drops a single entry and reports whether it was present.
func (c *Cache) Evict(key Key) bool {
	return c.lru.Remove(key)
}

func (c *Cache) Purge() {
	c.lru.Purge()
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
