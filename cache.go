package quill

import (
	"strings"
	"sync"
	"time"

	"github.com/tailtq/quill/content"
)

// DocCache is an in-memory cache of the published documents and tags with
// TTL. It exists so page renders never hit SQLite on the hot path; the
// content itself only changes on reload, which invalidates it explicitly.
type DocCache struct {
	mu      sync.RWMutex
	posts   []content.Document
	pages   []content.Document
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewDocCache creates a DocCache backed by the given Store.
func NewDocCache(s *Store, ttl time.Duration) *DocCache {
	return &DocCache{store: s, ttl: ttl}
}

func (c *DocCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *DocCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.pages = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *DocCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	pages, err := c.store.ListPages()
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []content.Document{}
	}
	c.posts = posts
	c.pages = pages
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached documents after making sure the cache is
// fresh. It tries a read lock first; the write lock is only taken when a
// reload is needed.
func (c *DocCache) ensureLoaded() ([]content.Document, []content.Document, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, pages, tags := c.posts, c.pages, c.tags
		c.mu.RUnlock()
		return posts, pages, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.pages, c.tags, nil
}

// Posts returns published posts, optionally filtered by tag.
func (c *DocCache) Posts(tag string) ([]content.Document, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(tag))
	var filtered []content.Document
	for _, p := range posts {
		if p.HasTag(normalized) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Pages returns the published static pages in their configured order.
func (c *DocCache) Pages() ([]content.Document, error) {
	_, pages, _, err := c.ensureLoaded()
	return pages, err
}

// Tags returns all unique tags from published posts.
func (c *DocCache) Tags() ([]string, error) {
	_, _, tags, err := c.ensureLoaded()
	return tags, err
}

// Get returns a single published document by slug from the cache, or
// content.ErrNotFound.
func (c *DocCache) Get(slug string) (content.Document, error) {
	posts, pages, _, err := c.ensureLoaded()
	if err != nil {
		return content.Document{}, err
	}
	for _, d := range posts {
		if d.Slug == slug {
			return d, nil
		}
	}
	for _, d := range pages {
		if d.Slug == slug {
			return d, nil
		}
	}
	return content.Document{}, content.ErrNotFound
}
