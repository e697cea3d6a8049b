// Package resolver builds the per-platform backend invocation config. All
// platform quirks live in the override table here so they never leak into
// the gateway or the backend.
package resolver

import (
	"time"

	"mediagate/pkg/platform"
)

// Config carries everything needed to invoke the extraction backend for one
// request. A fresh instance is built per request and never shared.
type Config struct {
	// Timeout bounds the whole backend call.
	Timeout time.Duration
	// SkipCertVerify relaxes certificate validation. Several platforms serve
	// media through hosts with broken chains, so the baseline keeps it on.
	SkipCertVerify bool
	// UserAgent overrides the backend's default client identity.
	UserAgent string
	// ExtractorArgs maps a backend extractor name to its "key=value"
	// parameter string (passed through opaquely).
	ExtractorArgs map[string]string
	// CookiesFromBrowser names a local browser profile to source cookies
	// from, for platforms that gate content behind login. Empty disables it.
	CookiesFromBrowser string
}

const (
	defaultTimeout = 30 * time.Second

	neutralUA = "Mozilla/5.0 (compatible; mediagate/1.0)"
	chromeUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
)

// cookieBrowser is set once at startup; login-gated platforms pick it up in
// their overrides. Empty means no cookie sourcing.
var cookieBrowser string

// SetCookieBrowser configures the browser profile used for login-gated
// platforms. Called once during bootstrap, before any request is served.
func SetCookieBrowser(name string) { cookieBrowser = name }

// overrides deviates from the baseline per platform. Platforms that block
// non-browser clients get a browser UA; platforms with app-only APIs get
// extractor parameters; login-gated ones get cookie sourcing when a browser
// profile is configured.
var overrides = map[platform.ID]func(*Config){
	platform.YouTube: func(c *Config) {
		c.ExtractorArgs = map[string]string{"youtube": "player_client=android,web"}
	},
	platform.TikTok: func(c *Config) {
		c.UserAgent = iphoneUA
		c.ExtractorArgs = map[string]string{"tiktok": "api_hostname=api16-normal-c-useast1a.tiktokv.com"}
	},
	platform.Instagram: func(c *Config) {
		c.UserAgent = chromeUA
		c.CookiesFromBrowser = cookieBrowser
	},
	platform.Facebook: func(c *Config) {
		c.UserAgent = chromeUA
	},
	platform.Twitter: func(c *Config) {
		c.UserAgent = chromeUA
	},
	platform.Pinterest: func(c *Config) {
		c.UserAgent = chromeUA
	},
	platform.LinkedIn: func(c *Config) {
		c.UserAgent = chromeUA
		c.CookiesFromBrowser = cookieBrowser
	},
}

// BuildConfig returns an independent Config for the given platform. The
// baseline is rebuilt on every call so an override can never leak into
// another request; Unknown gets the baseline unchanged.
func BuildConfig(p platform.ID) Config {
	cfg := Config{
		Timeout:        defaultTimeout,
		SkipCertVerify: true,
		UserAgent:      neutralUA,
	}
	if ov, ok := overrides[p]; ok {
		ov(&cfg)
	}
	return cfg
}
