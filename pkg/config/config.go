// Package config loads process configuration: defaults, an optional TOML
// file, then environment overrides. The result is read-only for the rest of
// the process lifetime.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port          int    `toml:"port"`
	APIKey        string `toml:"api_key"`
	YtDlpPath     string `toml:"ytdlp_path"`
	CookieBrowser string `toml:"cookie_browser"`
	CacheTTLSec   int    `toml:"cache_ttl_sec"`
	WebUI         bool   `toml:"web_ui"`
	Debug         bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Port:        8080,
		YtDlpPath:   "yt-dlp",
		CacheTTLSec: 120,
	}
}

// Path returns the XDG-compliant config file location.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mediagate", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mediagate", "config.toml"), nil
}

// Load builds the effective configuration. A missing config file is fine;
// a malformed one is not.
func Load() (*Config, error) {
	// pull a .env into the environment if one exists
	_ = godotenv.Load()

	cfg := Default()

	path, err := Path()
	if err == nil {
		if _, serr := os.Stat(path); serr == nil {
			if _, derr := toml.DecodeFile(path, cfg); derr != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, derr)
			}
		}
	}

	cfg.Port = envInt("PORT", cfg.Port)
	cfg.APIKey = envStr("MEDIAGATE_API_KEY", cfg.APIKey)
	cfg.YtDlpPath = envStr("MEDIAGATE_YTDLP_PATH", cfg.YtDlpPath)
	cfg.CookieBrowser = envStr("MEDIAGATE_COOKIE_BROWSER", cfg.CookieBrowser)
	cfg.CacheTTLSec = envInt("MEDIAGATE_CACHE_TTL_SEC", cfg.CacheTTLSec)
	cfg.WebUI = envBool("MEDIAGATE_WEB_UI", cfg.WebUI)
	cfg.Debug = envBool("MEDIAGATE_DEBUG", cfg.Debug)

	return cfg, nil
}

// EnsureAPIKey generates a url-safe shared secret when none is configured
// and logs it once so the operator can pick it up.
func (c *Config) EnsureAPIKey() error {
	if c.APIKey != "" {
		return nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generating api key: %w", err)
	}
	c.APIKey = base64.RawURLEncoding.EncodeToString(buf)
	slog.Info("Generated new API key; set MEDIAGATE_API_KEY to persist it", "key", c.APIKey)
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring non-numeric env value", "key", key, "value", v)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring non-boolean env value", "key", key, "value", v)
		return fallback
	}
	return b
}
