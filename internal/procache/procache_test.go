package procache

import (
	"testing"

	"github.com/nwaobi/packcheck/internal/config"
	"github.com/nwaobi/packcheck/internal/packmodel"
)

func TestNoneCacheAlwaysMisses(t *testing.T) {
	c := New(&config.Config{}, config.CacheNone)
	c.Put("a.rb", []byte("x"), &packmodel.ProcessedFile{AbsolutePath: "a.rb"})
	if _, ok := c.Get("a.rb", []byte("x")); ok {
		t.Error("none cache should never hit")
	}
}

func TestPerFileCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{RepoRoot: dir, CacheDirectory: "cache"}
	c := New(cfg, config.CachePerFile)

	pf := &packmodel.ProcessedFile{AbsolutePath: "app/models/order.rb"}
	c.Put("app/models/order.rb", []byte("class Order\nend\n"), pf)

	got, ok := c.Get("app/models/order.rb", []byte("class Order\nend\n"))
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.AbsolutePath != pf.AbsolutePath {
		t.Errorf("AbsolutePath = %q, want %q", got.AbsolutePath, pf.AbsolutePath)
	}

	if _, ok := c.Get("app/models/order.rb", []byte("class Order\n  FOO = 1\nend\n")); ok {
		t.Error("expected cache miss on changed contents")
	}
}

func TestBulkCacheFlushAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{RepoRoot: dir, CacheDirectory: "cache"}
	c := New(cfg, config.CacheBulk)
	c.Put("a.rb", []byte("A"), &packmodel.ProcessedFile{AbsolutePath: "a.rb"})
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}

	reloaded := New(cfg, config.CacheBulk)
	got, ok := reloaded.Get("a.rb", []byte("A"))
	if !ok {
		t.Fatal("expected reloaded bulk cache to hit")
	}
	if got.AbsolutePath != "a.rb" {
		t.Errorf("AbsolutePath = %q", got.AbsolutePath)
	}
}
