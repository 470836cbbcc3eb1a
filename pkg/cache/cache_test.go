package cache

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should never hit")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	exerciseCache(t, ctx, c)
}

func TestFileCacheConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	values := make([]string, 16)
	for i := range values {
		values[i] = strings.Repeat(string(rune('a'+i)), 4096)
	}

	var wg sync.WaitGroup
	for _, v := range values {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Set(ctx, "shared", []byte(v), 0); err != nil {
				t.Errorf("Set: %v", err)
			}
		}()
	}
	wg.Wait()

	data, hit, err := c.Get(ctx, "shared")
	if err != nil || !hit {
		t.Fatalf("Get hit=%v err=%v", hit, err)
	}
	if !slices.Contains(values, string(data)) {
		t.Errorf("entry is a mix of concurrent writes (%d bytes)", len(data))
	}

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(c.path("shared")), "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path("bad")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("bad"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss without error", hit, err)
	}
	if _, err := os.Stat(c.path("bad")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("CITYGEN_REDIS_URL")
	if url == "" {
		t.Skip("CITYGEN_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, "citygen-test:")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseCache(t, ctx, c)
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url", ""); err == nil {
		t.Error("expected error for malformed redis url")
	}
}

func TestSceneKey(t *testing.T) {
	key := func(s spec.CitySpec, seed uint64) string {
		t.Helper()
		k, err := SceneKey(s, seed)
		if err != nil {
			t.Fatalf("SceneKey: %v", err)
		}
		return k
	}

	s := spec.Default()
	a := key(s, 1)
	if a != key(s, 1) {
		t.Error("SceneKey should be deterministic")
	}
	if a == key(s, 2) {
		t.Error("different seeds should give different keys")
	}
	s.MinSpacing = 1
	if a == key(s, 1) {
		t.Error("different specs should give different keys")
	}
	if !strings.HasPrefix(a, "scene:") || len(a) != len("scene:")+64 {
		t.Errorf("unexpected key format %q", a)
	}
}

func TestSceneKeyRejectsUnencodableSpec(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*spec.CitySpec)
	}{
		{"NaN spacing", func(s *spec.CitySpec) { s.MinSpacing = math.NaN() }},
		{"infinite grid", func(s *spec.CitySpec) { s.Grid.Width = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := spec.Default()
			tt.mutate(&s)
			if k, err := SceneKey(s, 1); err == nil {
				t.Errorf("SceneKey = %q, want error", k)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	type payload struct{ N int }
	if err := SetJSON(ctx, c, "k", payload{N: 3}, 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var got payload
	hit, err := GetJSON(ctx, c, "k", &got)
	if err != nil || !hit {
		t.Fatalf("GetJSON hit=%v err=%v", hit, err)
	}
	if got.N != 3 {
		t.Errorf("decoded %+v, want N=3", got)
	}

	if err := c.Set(ctx, "raw", []byte("{"), 0); err != nil {
		t.Fatal(err)
	}
	if hit, _ := GetJSON(ctx, c, "raw", &got); hit {
		t.Error("undecodable payload should miss")
	}
}

func exerciseCache(t *testing.T, ctx context.Context, c Cache) {
	t.Helper()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("Get(missing) hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get(key) hit=%v err=%v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get(key) = %q, want %q", data, "value")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}
