package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackparrish/deskfolio/pkg/cache"
)

func TestClearCacheDir(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	ctx := context.Background()
	for _, key := range []string{"page:atlas:html", "page:atlas:markdown", "layout:1440x900"} {
		if err := fc.Set(ctx, key, []byte("x"), time.Hour); err != nil {
			t.Fatalf("Set(%q) error: %v", key, err)
		}
	}

	count, err := clearCacheDir(dir)
	if err != nil {
		t.Fatalf("clearCacheDir() error: %v", err)
	}
	if count != 3 {
		t.Errorf("clearCacheDir() = %d, want 3", count)
	}

	if _, ok, _ := fc.Get(ctx, "page:atlas:html"); ok {
		t.Error("entry should be gone after clearing")
	}

	count, err = clearCacheDir(dir)
	if err != nil {
		t.Fatalf("second clearCacheDir() error: %v", err)
	}
	if count != 0 {
		t.Errorf("second clearCacheDir() = %d, want 0", count)
	}
}

func TestClearCacheDirMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")

	count, err := clearCacheDir(dir)
	if err != nil {
		t.Fatalf("clearCacheDir() error: %v", err)
	}
	if count != 0 {
		t.Errorf("clearCacheDir() = %d, want 0", count)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("clearCacheDir() should not create a missing directory")
	}
}
