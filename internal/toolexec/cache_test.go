package toolexec

import (
	"testing"
	"time"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

func TestCacheKeyStableUnderArgumentReordering(t *testing.T) {
	a := CacheKey("read_file", `{"path":"a.go","limit":10}`, "fp1")
	b := CacheKey("read_file", `{"limit":10,"path":"a.go"}`, "fp1")
	if a != b {
		t.Fatalf("expected reordered arguments to produce the same key, got %q != %q", a, b)
	}
}

func TestCacheKeyDiffersOnWorkspaceFingerprint(t *testing.T) {
	a := CacheKey("read_file", `{"path":"a.go"}`, "fp1")
	b := CacheKey("read_file", `{"path":"a.go"}`, "fp2")
	if a == b {
		t.Fatalf("expected different workspace fingerprints to change the key")
	}
}

func TestResultCacheHitAndTTLExpiry(t *testing.T) {
	c := NewResultCache(time.Minute, 0)
	now := time.Unix(1000, 0)
	key := CacheKey("read_file", `{"path":"a.go"}`, "fp1")
	c.Put(key, vtmodels.ToolResult{Content: "hello"}, []string{"a.go"}, now)

	got, ok := c.Get(key, now.Add(30*time.Second))
	if !ok || got.Content != "hello" {
		t.Fatalf("expected cache hit before TTL, got ok=%v content=%q", ok, got.Content)
	}

	_, ok = c.Get(key, now.Add(2*time.Minute))
	if ok {
		t.Fatalf("expected cache miss after TTL expiry")
	}
}

func TestResultCacheInvalidatePrefix(t *testing.T) {
	c := NewResultCache(time.Hour, 0)
	now := time.Unix(1000, 0)
	key := CacheKey("read_file", `{"path":"src/a.go"}`, "fp1")
	c.Put(key, vtmodels.ToolResult{Content: "hello"}, []string{"src/a.go"}, now)

	c.InvalidatePrefix("src/")

	if _, ok := c.Get(key, now); ok {
		t.Fatalf("expected entry to be invalidated by prefix write")
	}
}

func TestResultCacheSizeEviction(t *testing.T) {
	c := NewResultCache(time.Hour, 2)
	now := time.Unix(1000, 0)
	c.Put("k1", vtmodels.ToolResult{Content: "1"}, nil, now)
	c.Put("k2", vtmodels.ToolResult{Content: "2"}, nil, now)
	c.Put("k3", vtmodels.ToolResult{Content: "3"}, nil, now)

	if c.Len() != 2 {
		t.Fatalf("expected size-bounded cache to hold 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get("k1", now); ok {
		t.Fatalf("expected oldest entry k1 to have been evicted")
	}
}
