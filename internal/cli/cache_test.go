package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/eleitos/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	c, err := newCache(ctx, nil, true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want *cache.NullCache", c)
	}

	cfg := &Config{}
	cfg.Cache.Dir = t.TempDir()
	c, err = newCache(ctx, cfg, false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache() = %T, want *cache.FileCache", c)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), cfg.Cache.Dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "cache", "clear"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	if _, ok, _ := fc.Get(ctx, "k"); ok {
		t.Error("entry still cached after clear")
	}
}

func TestCacheLocation(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.RedisURL = "redis://cache:6379/1"
	if got := cacheLocation(cfg); got != cfg.Cache.RedisURL {
		t.Errorf("cacheLocation() = %q, want redis url", got)
	}

	cfg = &Config{}
	cfg.Cache.Dir = "/tmp/x"
	if got := cacheLocation(cfg); got != "/tmp/x" {
		t.Errorf("cacheLocation() = %q, want /tmp/x", got)
	}
}
