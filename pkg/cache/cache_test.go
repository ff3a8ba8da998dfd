package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestGraphKey(t *testing.T) {
	k1 := GraphKey("http://127.0.0.1:7462/v1")
	k2 := GraphKey("http://127.0.0.1:7462/v1/")
	k3 := GraphKey("http://notes.local/v1")

	if k1 != k2 {
		t.Error("trailing slash should not change the key")
	}
	if k1 == k3 {
		t.Error("different servers should have different keys")
	}
	if !strings.HasPrefix(k1, "graph:") {
		t.Errorf("key = %q, want graph: prefix", k1)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	tests := []struct {
		name    string
		ttl     time.Duration
		wait    time.Duration
		wantHit bool
	}{
		{"NoExpiry", 0, 0, true},
		{"Fresh", time.Hour, 0, true},
		{"Expired", time.Millisecond, 5 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(ctx, tt.name, []byte("payload"), tt.ttl); err != nil {
				t.Fatalf("Set: %v", err)
			}
			time.Sleep(tt.wait)
			data, hit, err := c.Get(ctx, tt.name)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && string(data) != "payload" {
				t.Errorf("data = %q", data)
			}
		})
	}
}

func TestFileCacheDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if n, size, err := c.Usage(); err != nil || n != 2 || size == 0 {
		t.Errorf("Usage() = %d, %d, %v; want 2 entries", n, size, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted key still present")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("Clear left an entry behind")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("cache dir removed: %v", err)
	}
	if n, _, _ := c.Usage(); n != 0 {
		t.Errorf("Usage() after Clear = %d entries", n)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)

	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	inner, _ := NewFileCache(t.TempDir())
	a := Namespace(inner, "a:")
	b := Namespace(inner, "b:")

	_ = a.Set(ctx, "graph", []byte("from a"), 0)
	if _, hit, _ := b.Get(ctx, "graph"); hit {
		t.Error("namespaces should not share keys")
	}
	if data, hit, _ := inner.Get(ctx, "a:graph"); !hit || string(data) != "from a" {
		t.Errorf("inner key = %q, %v", data, hit)
	}
	if err := a.Delete(ctx, "graph"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := a.Get(ctx, "graph"); hit {
		t.Error("Delete should go through the prefix")
	}

	// nil inner degrades to a null cache
	n := Namespace(nil, "x:")
	if err := n.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Errorf("Set on nil inner: %v", err)
	}
}

type fakeRedis struct {
	data    map[string]string
	ttl     map[string]time.Duration
	failGet error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := NewRedisCacheWithClient(fake)

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("miss: hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("graph"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if fake.ttl["k"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttl["k"])
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "graph" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key still present")
	}

	fake.failGet = errors.New("connection refused")
	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("backend failure should surface as an error")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Errorf("Close: %v closed=%v", err, fake.closed)
	}
}

// The Namespace doc example calls NewRedisCache with this signature.
var _ func(context.Context, string, string, int) (*RedisCache, error) = NewRedisCache
