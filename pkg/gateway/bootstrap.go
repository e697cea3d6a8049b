package gateway

import (
	"fmt"
	"time"

	"mediagate/pkg/backend"
	"mediagate/pkg/client"
	"mediagate/pkg/enrich"
	"mediagate/pkg/logger"
	"mediagate/pkg/resolver"
)

// Config represents the configuration for gateway initialization.
type Config struct {
	// YtDlpPath is the path to the yt-dlp executable (defaults to "yt-dlp").
	YtDlpPath string
	// CacheTTL bounds how long resolved records are reused; zero disables
	// the cache.
	CacheTTL time.Duration
	// CookieBrowser names the browser profile used for login-gated
	// platforms; empty disables cookie sourcing.
	CookieBrowser string
	// Debug enables verbose logging.
	Debug bool
}

// New creates a ready-to-use Service instance with all its dependencies.
func New(cfg Config) (*Service, error) {
	logger.SetupGlobal(cfg.Debug, false)

	resolver.SetCookieBrowser(cfg.CookieBrowser)

	b, err := backend.NewYtDlp(cfg.YtDlpPath)
	if err != nil {
		return nil, fmt.Errorf("backend init failed: %w", err)
	}

	httpClient, err := client.New()
	if err != nil {
		return nil, fmt.Errorf("failed to init http client: %w", err)
	}

	return NewService(b, enrich.New(httpClient), cfg.CacheTTL), nil
}
