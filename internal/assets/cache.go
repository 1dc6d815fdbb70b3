// Package assets provides the shared icon image cache.
// Loads are fire-and-forget: callers poll Ready instead of waiting, so a
// render never blocks on the network.
package assets

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/setfall/internal/core"
)

// Status describes where an image is in its load lifecycle.
type Status int

const (
	StatusMissing Status = iota // Never requested
	StatusLoading               // Request in flight
	StatusReady                 // Decoded and usable
	StatusBroken                // Load or decode failed; draw a placeholder
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Image is a decoded icon reduced to what a character-cell renderer can show.
type Image struct {
	URL    string
	Width  int
	Height int
	Color  core.Color // Dominant color of the opaque pixels
}

// Loader fetches and decodes one image.
type Loader interface {
	Load(ctx context.Context, url string) (Image, error)
}

type entry struct {
	status Status
	image  Image
}

// Cache maps icon URLs to loaded images.
// It is safe for concurrent use; loads run on their own goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	loader  Loader
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCache creates a cache backed by loader. A nil logger discards load errors.
func NewCache(loader Loader, logger *log.Logger) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		entries: make(map[string]*entry),
		loader:  loader,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Request starts loading url unless it is already cached or in flight.
// It returns immediately.
func (c *Cache) Request(url string) {
	if c == nil || url == "" {
		return
	}

	c.mu.Lock()
	if _, ok := c.entries[url]; ok {
		c.mu.Unlock()
		return
	}
	if c.ctx.Err() != nil || c.loader == nil {
		c.entries[url] = &entry{status: StatusBroken}
		c.mu.Unlock()
		return
	}
	c.entries[url] = &entry{status: StatusLoading}
	c.wg.Add(1)
	c.mu.Unlock()

	go c.load(url)
}

func (c *Cache) load(url string) {
	defer c.wg.Done()

	img, err := c.loader.Load(c.ctx, url)

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[url]
	if err != nil {
		e.status = StatusBroken
		if c.logger != nil {
			c.logger.Debug("icon load failed", "url", url, "error", err)
		}
		return
	}
	img.URL = url
	e.image = img
	e.status = StatusReady
}

// Status reports the load status of url.
func (c *Cache) Status(url string) Status {
	if c == nil {
		return StatusMissing
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[url]; ok {
		return e.status
	}
	return StatusMissing
}

// Ready reports whether url has been loaded successfully.
func (c *Cache) Ready(url string) bool {
	return c.Status(url) == StatusReady
}

// Get returns the loaded image for url, if ready.
func (c *Cache) Get(url string) (Image, bool) {
	if c == nil {
		return Image{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[url]
	if !ok || e.status != StatusReady {
		return Image{}, false
	}
	return e.image, true
}

// Len returns the number of cached or in-flight entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Wait blocks until all in-flight loads have finished.
func (c *Cache) Wait() {
	if c == nil {
		return
	}
	c.wg.Wait()
}

// Close cancels in-flight loads and waits for them to exit.
// Requests after Close are recorded as broken.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	// Under mu so no Request can pass the ctx check and Add after Wait starts
	c.mu.Lock()
	c.cancel()
	c.mu.Unlock()
	c.wg.Wait()
}
