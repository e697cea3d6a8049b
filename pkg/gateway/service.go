// Package gateway is the extraction core: it classifies a URL, builds the
// per-platform backend config, runs one bounded backend call and returns
// either a canonical record or a classified error.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"mediagate/pkg/backend"
	"mediagate/pkg/models"
	"mediagate/pkg/platform"
	"mediagate/pkg/resolver"
)

type Service struct {
	Backend backend.Backend
	// Enricher fills missing titles via oEmbed; nil disables the fallback.
	Enricher TitleEnricher

	cache *resultCache
	group singleflight.Group
}

// TitleEnricher is what the service needs from pkg/enrich.
type TitleEnricher interface {
	Title(rawURL string) (string, error)
}

// NewService wires the gateway. cacheTTL <= 0 disables the result cache.
func NewService(b backend.Backend, en TitleEnricher, cacheTTL time.Duration) *Service {
	s := &Service{Backend: b, Enricher: en}
	if cacheTTL > 0 {
		s.cache = newResultCache(cacheTTL, 256)
	}
	return s
}

// Resolve turns a raw URL into a canonical record. The return is strictly
// one-or-the-other: a record with nil error, or nil with a classified
// *Error. Concurrent calls for the same normalized URL share one backend
// invocation.
func (s *Service) Resolve(ctx context.Context, rawURL string) (*models.CanonicalMedia, *Error) {
	p := platform.Classify(rawURL)
	key := cacheKey(rawURL)

	if s.cache != nil {
		if m, ok := s.cache.get(key); ok {
			slog.Debug("cache hit", "platform", p, "url", truncateURL(rawURL))
			return m, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		m, rerr := s.resolveOnce(ctx, p, rawURL)
		if rerr != nil {
			return nil, rerr
		}
		if s.cache != nil {
			s.cache.put(key, m)
		}
		return m, nil
	})
	if err != nil {
		var gerr *Error
		if errors.As(err, &gerr) {
			return nil, gerr
		}
		return nil, &Error{Kind: KindUnknown, Platform: p, Message: err.Error()}
	}
	return v.(*models.CanonicalMedia), nil
}

func (s *Service) resolveOnce(ctx context.Context, p platform.ID, rawURL string) (m *models.CanonicalMedia, gerr *Error) {
	// A fault anywhere below must never escape as a panic; operators get
	// the context in the log, callers get an Unknown error.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during extraction", "platform", p, "url", truncateURL(rawURL), "panic", r)
			m, gerr = nil, &Error{Kind: KindUnknown, Platform: p, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	cfg := resolver.BuildConfig(p)

	cctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	raw, err := s.Backend.Fetch(cctx, rawURL, cfg)
	if err != nil {
		var derr *backend.DownloadError
		if errors.As(err, &derr) {
			slog.Warn("extraction refused", "platform", p, "url", truncateURL(rawURL), "msg", derr.Msg)
			return nil, Classify(p, derr.Msg)
		}
		slog.Error("backend call failed", "platform", p, "url", truncateURL(rawURL), "err", err)
		return nil, &Error{Kind: KindUnknown, Platform: p, Message: err.Error()}
	}

	m = normalize(p, raw)

	if p == platform.YouTube && m.Title == "" && s.Enricher != nil {
		title, terr := s.Enricher.Title(rawURL)
		if terr != nil {
			slog.Debug("title enrichment failed", "url", truncateURL(rawURL), "err", terr)
		} else if title != "" {
			m.Title = title
		}
	}

	return m, nil
}

// cacheKey normalizes a URL for cache and single-flight purposes: trimmed,
// fragment dropped, scheme and host lowercased. Unparseable input keys on
// the trimmed string itself.
func cacheKey(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return trimmed
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

// truncateURL keeps log lines bounded; query strings on media URLs can be
// enormous.
func truncateURL(u string) string {
	const max = 96
	if len(u) <= max {
		return u
	}
	return u[:max] + "..."
}
