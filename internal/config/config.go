// Package config loads the service configuration from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/metadata"
)

// DefaultPath is read when no path is given and POSTER_CONFIG is unset.
const DefaultPath = "poster.toml"

type Config struct {
	Server ServerConfig        `toml:"server"`
	Layout imagepkg.Config     `toml:"layout"`
	Assets imagepkg.AssetPaths `toml:"assets"`
	TMDB   metadata.TMDBConfig `toml:"tmdb"`
	MAL    metadata.MALConfig  `toml:"mal"`
	Cache  CacheConfig         `toml:"cache"`
	Log    LogConfig           `toml:"log"`
}

type ServerConfig struct {
	Addr         string   `toml:"addr"`
	FetchTimeout Duration `toml:"fetch_timeout"`
	// PublicURL prefixes poster paths encoded into share QR codes.
	PublicURL string `toml:"public_url"`
}

type CacheConfig struct {
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration read from strings like "12s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			FetchTimeout: Duration{12 * time.Second},
		},
		Layout: imagepkg.DefaultConfig(),
		TMDB: metadata.TMDBConfig{
			BaseURL:      metadata.DefaultTMDBBaseURL,
			ImageBaseURL: metadata.DefaultTMDBImageURL,
		},
		MAL:   metadata.MALConfig{BaseURL: metadata.DefaultMALBaseURL},
		Cache: CacheConfig{TTL: Duration{6 * time.Hour}},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error; an empty path means
// POSTER_CONFIG or DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("POSTER_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("TMDB_API_KEY"); ok && v != "" {
		c.TMDB.APIKey = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Addr = ":" + v
	}
	if v, ok := lookup("REDIS_URL"); ok && v != "" {
		c.Cache.RedisURL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
}

// Validate checks the layout and the server settings.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is empty")
	}
	if c.Server.FetchTimeout.Duration <= 0 {
		return errors.New("server.fetch_timeout must be positive")
	}
	return nil
}
