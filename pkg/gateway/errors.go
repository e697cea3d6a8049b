package gateway

import (
	"fmt"
	"strings"

	"mediagate/pkg/platform"
)

// Kind tags a classified extraction failure.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindUnsupported  Kind = "unsupported"
	KindAuthRequired Kind = "auth_required"
	KindNotFound     Kind = "not_found"
	KindRateLimited  Kind = "rate_limited"
	KindUnknown      Kind = "unknown"
)

// Error is the classified form of every extraction-time failure. Resolve
// returns either a canonical record or one of these, never both.
type Error struct {
	Kind        Kind
	Platform    platform.ID
	Message     string
	Suggestions []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Platform, e.Message)
}

// Human renders a short operator-free explanation for the API boundary. The
// raw upstream message travels separately as original_error.
func (e *Error) Human() string {
	switch e.Kind {
	case KindAuthRequired:
		return "This content requires a login the service does not have."
	case KindRateLimited:
		return "The platform is throttling requests right now."
	case KindNotFound:
		return "The content could not be found. It may have been removed."
	case KindUnsupported:
		return "The platform restricts access to this content."
	default:
		return "The content could not be resolved."
	}
}

// Classification keyword tables, checked in order: auth, throttling, missing
// content, then platform restrictions. Upstream wording varies per platform,
// so matching is substring-based on the lowercased message.
var (
	authMarkers = []string{
		"login required", "log in", "sign in", "logged in", "logged-in",
		"use --cookies", "authentication", "requires authentication",
		"account is required",
	}
	rateMarkers = []string{
		"rate limit", "rate-limit", "429", "too many requests", "throttl",
	}
	notFoundMarkers = []string{
		"not found", "404", "does not exist", "no longer available",
		"has been removed", "no video", "page not found",
	}
	unsupportedMarkers = []string{
		"private", "region", "in your country", "geo",
		"unable to download webpage", "unable to extract", "unsupported url",
		"blocked", "members only", "age-restricted", "age restricted",
	}
)

// Classify converts a raw backend failure message into a tagged error with
// remediation suggestions for the platform.
func Classify(p platform.ID, msg string) *Error {
	m := strings.ToLower(msg)

	kind := KindUnknown
	switch {
	case containsAny(m, authMarkers):
		kind = KindAuthRequired
	case containsAny(m, rateMarkers):
		kind = KindRateLimited
	case containsAny(m, notFoundMarkers):
		kind = KindNotFound
	case containsAny(m, unsupportedMarkers):
		kind = KindUnsupported
	}

	return &Error{
		Kind:        kind,
		Platform:    p,
		Message:     msg,
		Suggestions: suggestionsFor(p, kind),
	}
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// Per-platform remediation hints. The defaults apply when a platform has no
// specific advice for the failure kind.
var (
	defaultAuthSuggestions = []string{
		"The content may require login; configure a cookie_browser so cookies can be sourced from a local browser profile.",
		"Verify the content is publicly visible when logged out.",
	}
	authSuggestions = map[platform.ID][]string{
		platform.Instagram: {
			"Instagram gates most content behind login; configure cookie_browser to source session cookies.",
			"Check that the post is public and not restricted to followers.",
		},
		platform.LinkedIn: {
			"LinkedIn requires an authenticated session for most videos; configure cookie_browser.",
		},
		platform.YouTube: {
			"The video may be age-restricted or members-only; configure cookie_browser to use an eligible account.",
		},
	}

	defaultUnsupportedSuggestions = []string{
		"Check that the content is public and not region-locked.",
		"Try a different form of the link (share link vs. canonical URL).",
	}
	unsupportedSuggestions = map[platform.ID][]string{
		platform.TikTok: {
			"Check that the video is public and the account is not private.",
			"Try the canonical www.tiktok.com link instead of a vm.tiktok.com share link.",
			"The video may be unavailable in the server's region.",
		},
		platform.Facebook: {
			"Check the video's privacy setting; only public videos can be resolved.",
			"Try the fb.watch share link if the full URL fails, or vice versa.",
		},
		platform.Twitter: {
			"Check that the account is not protected.",
			"Posts with sensitive-content flags may not resolve without cookies.",
		},
	}

	defaultRateSuggestions = []string{
		"Wait a few minutes before retrying; the platform is throttling this server.",
	}
	defaultNotFoundSuggestions = []string{
		"Double-check the link; the content may have been deleted or made private.",
	}
)

func suggestionsFor(p platform.ID, kind Kind) []string {
	switch kind {
	case KindAuthRequired:
		if s, ok := authSuggestions[p]; ok {
			return s
		}
		return defaultAuthSuggestions
	case KindUnsupported:
		if s, ok := unsupportedSuggestions[p]; ok {
			return s
		}
		return defaultUnsupportedSuggestions
	case KindRateLimited:
		return defaultRateSuggestions
	case KindNotFound:
		return defaultNotFoundSuggestions
	default:
		return nil
	}
}
