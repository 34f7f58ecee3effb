package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Entry records a clean validation of one issue file.
type Entry struct {
	Key       string    `msgpack:"key"`
	IssueIDs  []string  `msgpack:"issue_ids"`
	CreatedAt time.Time `msgpack:"created_at"`
	TTL       int       `msgpack:"ttl"`
}

// Cache provides a file-based cache of validation results, keyed by a
// SHA-256 hash of issue-file content. Only clean results are cached: a hit
// means the exact same bytes validated successfully before.
type Cache struct {
	dir        string
	ttlSeconds int
	enabled    bool
}

// New creates a new Cache. If dir is empty, uses the default cache directory.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}
	if dir == "" {
		d, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir:        dir,
		ttlSeconds: ttlSeconds,
		enabled:    true,
	}, nil
}

// Get retrieves a cached entry by key. Returns (nil, false) on miss.
func (c *Cache) Get(key string) ([]string, bool) {
	if !c.enabled {
		return nil, false
	}
	path := c.entryPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	// Check TTL
	if c.ttlSeconds > 0 && time.Since(entry.CreatedAt) > time.Duration(c.ttlSeconds)*time.Second {
		os.Remove(path)
		return nil, false
	}
	return entry.IssueIDs, true
}

// Put records a clean validation result.
func (c *Cache) Put(key string, issueIDs []string) error {
	if !c.enabled {
		return nil
	}
	entry := Entry{
		Key:       HashKey(key),
		IssueIDs:  issueIDs,
		CreatedAt: time.Now(),
		TTL:       c.ttlSeconds,
	}
	data, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(key), data, 0o644)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled || c.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".mp" {
			os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

// Stats returns cache statistics.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
}

// GetStats returns information about the cache.
func (c *Cache) GetStats() (Stats, error) {
	stats := Stats{Dir: c.dir}
	if !c.enabled || c.dir == "" {
		return stats, nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".mp" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()

		// Check if expired
		data, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := msgpack.Unmarshal(data, &entry); err != nil {
			continue
		}
		if c.ttlSeconds > 0 && time.Since(entry.CreatedAt) > time.Duration(c.ttlSeconds)*time.Second {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// Enabled returns whether caching is enabled.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// HashKey creates a SHA-256 hash of the given key material.
func HashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h)
}

// FileKey creates a cache key from issue-file content.
func FileKey(content []byte) string {
	h := sha256.Sum256(content)
	return fmt.Sprintf("%x", h)
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, HashKey(key)+".mp")
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "annolint"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "annolint"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "annolint", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "annolint", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "annolint"), nil
	}
}
