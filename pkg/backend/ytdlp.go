package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"mediagate/pkg/resolver"
)

// YtDlp shells out to the yt-dlp binary for extraction. One invocation per
// Fetch; the tool handles its own retries and backoff.
type YtDlp struct {
	Path string
}

// NewYtDlp resolves the binary on PATH so a missing tool fails at startup
// instead of on the first request.
func NewYtDlp(path string) (*YtDlp, error) {
	if path == "" {
		path = "yt-dlp"
	}
	real, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp not found: %w", err)
	}
	return &YtDlp{Path: real}, nil
}

func (y *YtDlp) Name() string { return "yt-dlp" }

func (y *YtDlp) Fetch(ctx context.Context, url string, cfg resolver.Config) (*RawInfo, error) {
	cmd := exec.CommandContext(ctx, y.Path, buildArgs(url, cfg)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if msg := firstToolError(stderr.String()); msg != "" {
			return nil, &DownloadError{Msg: msg}
		}
		return nil, fmt.Errorf("yt-dlp run failed: %w", err)
	}

	var info RawInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("decoding yt-dlp output: %w", err)
	}
	return &info, nil
}

// buildArgs translates a resolver config into tool flags. Extractor args are
// emitted in sorted key order so invocations stay reproducible.
func buildArgs(url string, cfg resolver.Config) []string {
	args := []string{"-J", "--no-playlist", "--no-warnings"}

	if cfg.Timeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(int(cfg.Timeout.Seconds())))
	}
	if cfg.SkipCertVerify {
		args = append(args, "--no-check-certificates")
	}
	if cfg.UserAgent != "" {
		args = append(args, "--user-agent", cfg.UserAgent)
	}

	sites := make([]string, 0, len(cfg.ExtractorArgs))
	for site := range cfg.ExtractorArgs {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	for _, site := range sites {
		args = append(args, "--extractor-args", site+":"+cfg.ExtractorArgs[site])
	}

	if cfg.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", cfg.CookiesFromBrowser)
	}

	return append(args, url)
}

// firstToolError pulls the first "ERROR:" line out of stderr. yt-dlp prints
// one per failed extraction; anything else on stderr is noise.
func firstToolError(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	return ""
}
