// Package config loads hovercard settings from a TOML file.
//
// A missing file is not an error: every setting has a default. Durations are
// written as Go duration strings:
//
//	[cache]
//	backend = "redis"
//	ttl = "15m"
//	redis_addr = "localhost:6379"
//
//	[hover]
//	settle_delay = "300ms"
//	local_mode = "page"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hovercard/pkg/bridge"
	"github.com/matzehuels/hovercard/pkg/cache"
	"github.com/matzehuels/hovercard/pkg/hover"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/viewport"
)

// DefaultServerAddr is where `hovercard serve` listens.
const DefaultServerAddr = "127.0.0.1:7878"

// Duration is a time.Duration read from a string such as "15m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// CacheConfig selects the preview cache store.
type CacheConfig struct {
	Backend       string   `toml:"backend"` // file, redis, mongo, memory or none
	Path          string   `toml:"path"`    // file backend only
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisKey      string   `toml:"redis_key"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// HTTPConfig holds provider client settings.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// HoverConfig holds hover timing and card geometry.
type HoverConfig struct {
	EnterDelay   Duration `toml:"enter_delay"`
	SettleDelay  Duration `toml:"settle_delay"`
	HideDuration Duration `toml:"hide_duration"`
	Margin       int      `toml:"margin"`
	CardWidth    int      `toml:"card_width"`
	CardHeight   int      `toml:"card_height"`
	LocalMode    string   `toml:"local_mode"` // url or page
}

// ServerConfig holds the bridge HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ActorConfig holds fetch actor settings.
type ActorConfig struct {
	Concurrency int `toml:"concurrency"`
}

// Config holds the hovercard configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	HTTP   HTTPConfig   `toml:"http"`
	Hover  HoverConfig  `toml:"hover"`
	Server ServerConfig `toml:"server"`
	Actor  ActorConfig  `toml:"actor"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:       string(cache.BackendFile),
			TTL:           Duration{cache.DefaultTTL},
			RedisAddr:     "localhost:6379",
			RedisKey:      cache.DefaultRedisKey,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: cache.DefaultMongoDatabase,
		},
		HTTP: HTTPConfig{
			Timeout:   Duration{10 * time.Second},
			UserAgent: integrations.DefaultUserAgent,
		},
		Hover: HoverConfig{
			SettleDelay:  Duration{hover.DefaultSettleDelay},
			HideDuration: Duration{hover.DefaultHideDuration},
			Margin:       viewport.DefaultMargin,
			CardWidth:    viewport.DefaultCardWidth,
			CardHeight:   viewport.DefaultCardHeight,
			LocalMode:    string(hover.LocalURL),
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Actor:  ActorConfig{Concurrency: bridge.DefaultConcurrency},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hovercard/config.toml, falling back
// to ~/.config/hovercard/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "hovercard", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hovercard", "config.toml"), nil
}

// Load reads the config at path, or at [DefaultPath] if path is empty.
// Settings absent from the file keep their defaults. A missing file yields
// Default() without error.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config file %s: %w", path, err)
	}
	if cfg.Cache.Path, err = expandPath(cfg.Cache.Path); err != nil {
		return Default(), fmt.Errorf("expand cache.path: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects unknown names and out-of-range values.
func (c Config) Validate() error {
	if !knownBackend(c.Cache.Backend) {
		return fmt.Errorf("invalid cache.backend %q: must be one of %s", c.Cache.Backend, backendList())
	}
	if c.Cache.TTL.Duration <= 0 {
		return fmt.Errorf("invalid cache.ttl %s: must be positive", c.Cache.TTL)
	}
	if !hover.LocalMode(c.Hover.LocalMode).Valid() {
		return fmt.Errorf("invalid hover.local_mode %q: must be \"url\" or \"page\"", c.Hover.LocalMode)
	}
	for name, d := range map[string]Duration{
		"http.timeout":        c.HTTP.Timeout,
		"hover.enter_delay":   c.Hover.EnterDelay,
		"hover.settle_delay":  c.Hover.SettleDelay,
		"hover.hide_duration": c.Hover.HideDuration,
	} {
		if d.Duration < 0 {
			return fmt.Errorf("invalid %s %s: must not be negative", name, d)
		}
	}
	if c.Hover.CardWidth <= 0 || c.Hover.CardHeight <= 0 {
		return fmt.Errorf("invalid hover card size %dx%d", c.Hover.CardWidth, c.Hover.CardHeight)
	}
	if c.Actor.Concurrency < 0 {
		return fmt.Errorf("invalid actor.concurrency %d", c.Actor.Concurrency)
	}
	return nil
}

// CacheOptions converts the cache section for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:       cache.Backend(c.Cache.Backend),
		Path:          c.Cache.Path,
		RedisAddr:     c.Cache.RedisAddr,
		RedisKey:      c.Cache.RedisKey,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}
}

// HoverOptions fills the timing and geometry fields of [hover.Options].
func (c Config) HoverOptions(o hover.Options) hover.Options {
	o.EnterDelay = c.Hover.EnterDelay.Duration
	o.SettleDelay = c.Hover.SettleDelay.Duration
	o.HideDuration = c.Hover.HideDuration.Duration
	o.Margin = c.Hover.Margin
	o.CardSize = viewport.Size{Width: c.Hover.CardWidth, Height: c.Hover.CardHeight}
	o.LocalMode = hover.LocalMode(c.Hover.LocalMode)
	return o
}

func knownBackend(name string) bool {
	for _, b := range cache.Backends {
		if string(b) == name {
			return true
		}
	}
	return false
}

func backendList() string {
	names := make([]string, len(cache.Backends))
	for i, b := range cache.Backends {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
