package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Entry layout under the cache root: the key hash split two-and-rest so
// no single directory accumulates every entry.
const (
	payloadExt = ".dat"
	expiresExt = ".expires"
)

// FileCache stores artifacts under a local directory, sharded by key
// hash. Payloads are written as-is since encoded images dominate the
// cache; an entry's expiry, when it has one, lives in a sidecar file
// next to the payload.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get reads the payload for key. Entries past their expiry are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	stale, err := c.stale(path)
	if err != nil {
		return nil, false, err
	}
	if stale {
		c.remove(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// stale reports whether the entry at path has expired. A missing
// sidecar means the entry never expires. An unreadable timestamp counts
// as stale, so a corrupt entry heals itself on the next Get.
func (c *FileCache) stale(path string) (bool, error) {
	raw, err := os.ReadFile(path + expiresExt)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var expires time.Time
	if err := expires.UnmarshalText(raw); err != nil {
		return true, nil
	}
	return time.Now().After(expires), nil
}

// Set writes the payload for key. A positive ttl writes an expiry
// sidecar; otherwise any sidecar left by a previous entry is dropped.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	if ttl <= 0 {
		if err := os.Remove(path + expiresExt); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	stamp, err := time.Now().Add(ttl).MarshalText()
	if err != nil {
		return err
	}
	return os.WriteFile(path+expiresExt, stamp, 0644)
}

// Delete removes the entry for key. Absent keys are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	if err := os.Remove(path + expiresExt); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close does nothing; the file cache holds no open handles.
func (c *FileCache) Close() error {
	return nil
}

// remove drops the payload and its sidecar, ignoring absent files.
func (c *FileCache) remove(path string) {
	_ = os.Remove(path)
	_ = os.Remove(path + expiresExt)
}

// path maps a cache key to its payload file.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+payloadExt)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
