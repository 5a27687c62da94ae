package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Disabled {
		t.Fatal("caching disabled by default")
	}
}

func TestConfigDecode(t *testing.T) {
	src := `
[server]
addr = ":9090"

[cache]
redis_addr = "localhost:6379"
redis_db = 2
ttl_days = 7

[render]
framed = true
`
	cfg := defaultConfig()
	if _, err := toml.Decode(src, &cfg); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
	if got := cacheTTL(cfg); got != 7*24*time.Hour {
		t.Fatalf("cacheTTL() = %v", got)
	}
	if !cfg.Render.Framed {
		t.Fatal("framed not decoded")
	}
}

func TestReadSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.mmd")
	if err := os.WriteFile(path, []byte("flowchart TD\nA --> B"), 0o644); err != nil {
		t.Fatal(err)
	}
	text, err := readSource([]string{path})
	if err != nil {
		t.Fatalf("readSource() error = %v", err)
	}
	if text != "flowchart TD\nA --> B" {
		t.Fatalf("text = %q", text)
	}
}

func TestCacheDirOverride(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Dir = "/tmp/custom"
	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != "/tmp/custom" {
		t.Fatalf("dir = %q", dir)
	}
}
