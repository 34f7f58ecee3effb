// Package cache provides a file-based cache of issue-file validation
// results.
//
// Cache entries are keyed by a SHA-256 hash of the issue file's raw content,
// so any edit to the file misses the cache. Each entry stores the validated
// issue IDs along with a creation timestamp and a TTL (in seconds), encoded
// with msgpack. Only clean validations are cached; failures are always
// recomputed. Expired entries are skipped on read and removed during
// cache-clear operations.
//
// The default cache directory is $XDG_CACHE_HOME/annolint (or the
// OS-appropriate equivalent).
package cache
