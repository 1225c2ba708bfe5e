package toolexec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// CacheKey computes the content address for a tool call per spec
// §4.6 step 8: hash(tool_name, canonical_args, workspace_fingerprint).
// canonicalArgs should already be tolerant-parsed JSON (see
// ParseArguments) so key ordering in the model's raw arguments string
// doesn't change the address.
func CacheKey(toolName, canonicalArgs, workspaceFingerprint string) string {
	var canon any
	if err := json.Unmarshal([]byte(canonicalArgs), &canon); err == nil {
		if normalized, err := json.Marshal(canon); err == nil {
			canonicalArgs = string(normalized)
		}
	}
	sum := sha256.Sum256([]byte(toolName + "\x00" + canonicalArgs + "\x00" + workspaceFingerprint))
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	result    vtmodels.ToolResult
	expiresAt time.Time
	paths     []string // file paths this result's correctness depends on
}

// ResultCache is the content-addressed, read-only tool result cache
// described in spec §4.6 step 8. It follows the same mutex-guarded
// map idiom as internal/cache.DedupeCache, but stores the cached value
// (not just a seen/not-seen bit) and additionally tracks, per entry,
// which filesystem paths it was derived from so a write under any of
// those paths can invalidate it.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	order   []string // insertion order, oldest first, for size eviction
	entries map[string]*cacheEntry
}

// NewResultCache creates a cache with the given TTL and maximum entry
// count. A maxSize <= 0 disables the size bound.
func NewResultCache(ttl time.Duration, maxSize int) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// Get returns a cached result for key if present and unexpired.
func (c *ResultCache) Get(key string, now time.Time) (vtmodels.ToolResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return vtmodels.ToolResult{}, false
	}
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		return vtmodels.ToolResult{}, false
	}
	return e.result, true
}

// Put stores a result under key, associating it with the set of paths
// (read-only tool inputs/outputs) that would invalidate it if written.
func (c *ResultCache) Put(key string, result vtmodels.ToolResult, paths []string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = &cacheEntry{
		result:    result,
		expiresAt: now.Add(c.ttl),
		paths:     append([]string(nil), paths...),
	}
	c.evictLocked()
}

// InvalidatePrefix removes every entry whose tracked paths include one
// that has path as a prefix, e.g. after a write or delete under path
// (spec §4.6 step 8: "On modification of any path, the cache
// invalidates entries whose key included that path's prefix").
func (c *ResultCache) InvalidatePrefix(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		for _, p := range e.paths {
			if strings.HasPrefix(p, path) || strings.HasPrefix(path, p) {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Len reports the number of live (not necessarily unexpired) entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked drops the oldest entries once maxSize is exceeded.
// Caller must hold c.mu.
func (c *ResultCache) evictLocked() {
	if c.maxSize <= 0 {
		return
	}
	for len(c.entries) > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}
