package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/dnl-fm/ascii/pkg/cache"
)

// Config is the optional TOML configuration, read from
// ~/.config/ascii/config.toml. Flags override config values.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type CacheConfig struct {
	// Dir overrides the default file cache directory.
	Dir string `toml:"dir"`
	// RedisAddr switches the cache to the Redis backend.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Disabled      bool   `toml:"disabled"`
	// TTLDays overrides how long cached renders live (default 30).
	TTLDays int `toml:"ttl_days"`
}

type RenderConfig struct {
	Framed bool `toml:"framed"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
	}
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ascii", "config.toml"), nil
}

// loadConfig reads the config file when present. A missing file is not
// an error; a malformed one is.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// cacheTTL returns the configured cache lifetime, or zero when the
// config leaves it at the default.
func cacheTTL(cfg Config) time.Duration {
	return time.Duration(cfg.Cache.TTLDays) * 24 * time.Hour
}

// cacheDir returns the file cache directory, honoring the config
// override.
func cacheDir(cfg Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "ascii"), nil
}

// openCache builds the cache backend the config asks for: Redis when an
// address is set, a file cache otherwise, and the null backend when
// caching is disabled. A Redis connection failure degrades to the file
// backend with a warning rather than failing the command.
func openCache(ctx context.Context, cfg Config, logger *log.Logger) cache.Cache {
	if cfg.Cache.Disabled {
		return cache.NewNullCache()
	}
	if cfg.Cache.RedisAddr != "" {
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err == nil {
			return c
		}
		logger.Warn("redis unavailable, falling back to file cache", "addr", cfg.Cache.RedisAddr, "error", err)
	}
	dir, err := cacheDir(cfg)
	if err == nil {
		if c, err := cache.NewFileCache(dir); err == nil {
			return c
		}
	}
	logger.Warn("file cache unavailable, caching disabled", "error", err)
	return cache.NewNullCache()
}
