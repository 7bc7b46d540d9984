// Package cache stores fetched page bodies on disk so repeated
// extraction runs against the same URL skip the network.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrMiss is returned when no fresh entry exists for a URL.
var ErrMiss = errors.New("cache miss")

// Entry is the metadata sidecar stored next to each body.
type Entry struct {
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SavedAt     time.Time `json:"saved_at"`
}

// PageCache stores pages as <key>.meta.json and <key>.body where key
// is sha256(url). Entries older than MaxAge count as misses; zero
// MaxAge keeps entries forever.
type PageCache struct {
	Dir    string
	MaxAge time.Duration
}

func (c *PageCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	return os.MkdirAll(c.Dir, 0o755)
}

func (c *PageCache) key(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

func (c *PageCache) metaPath(key string) string { return filepath.Join(c.Dir, key+".meta.json") }
func (c *PageCache) bodyPath(key string) string { return filepath.Join(c.Dir, key+".body") }

// Load returns the cached body and content type for url, or ErrMiss.
func (c *PageCache) Load(_ context.Context, url string) ([]byte, string, error) {
	if err := c.ensureDir(); err != nil {
		return nil, "", err
	}
	key := c.key(url)
	f, err := os.Open(c.metaPath(key))
	if err != nil {
		return nil, "", ErrMiss
	}
	defer f.Close()
	var e Entry
	if err := json.NewDecoder(f).Decode(&e); err != nil {
		return nil, "", ErrMiss
	}
	if c.MaxAge > 0 && time.Since(e.SavedAt) > c.MaxAge {
		return nil, "", ErrMiss
	}
	body, err := os.ReadFile(c.bodyPath(key))
	if err != nil {
		return nil, "", ErrMiss
	}
	return body, e.ContentType, nil
}

// Save stores a new entry; body first, then the meta sidecar via
// rename so a reader never sees meta without body.
func (c *PageCache) Save(_ context.Context, url string, contentType string, body []byte) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	key := c.key(url)
	if err := os.WriteFile(c.bodyPath(key), body, 0o644); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	meta := Entry{URL: url, ContentType: contentType, SavedAt: time.Now().UTC()}
	tmp := c.metaPath(key) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create meta: %w", err)
	}
	if err := json.NewEncoder(f).Encode(&meta); err != nil {
		f.Close()
		return fmt.Errorf("encode meta: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, c.metaPath(key))
}
