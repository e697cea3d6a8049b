package resolver

import (
	"testing"

	"mediagate/pkg/platform"
)

func TestBuildConfigBaseline(t *testing.T) {
	cfg := BuildConfig(platform.Unknown)

	if cfg.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if !cfg.SkipCertVerify {
		t.Error("SkipCertVerify should be on in the baseline")
	}
	if cfg.UserAgent != neutralUA {
		t.Errorf("UserAgent = %q, want neutral default", cfg.UserAgent)
	}
	if len(cfg.ExtractorArgs) != 0 {
		t.Errorf("ExtractorArgs = %v, want empty", cfg.ExtractorArgs)
	}
	if cfg.CookiesFromBrowser != "" {
		t.Errorf("CookiesFromBrowser = %q, want empty", cfg.CookiesFromBrowser)
	}
}

func TestBuildConfigOverrides(t *testing.T) {
	tiktok := BuildConfig(platform.TikTok)
	if tiktok.UserAgent == neutralUA {
		t.Error("tiktok should carry a browser user agent")
	}
	if tiktok.ExtractorArgs["tiktok"] == "" {
		t.Error("tiktok should carry extractor args for its app API")
	}
	if tiktok.Timeout != defaultTimeout {
		t.Error("overrides should keep the baseline timeout")
	}

	fb := BuildConfig(platform.Facebook)
	if fb.UserAgent != chromeUA {
		t.Errorf("facebook UserAgent = %q, want chrome", fb.UserAgent)
	}
	if len(fb.ExtractorArgs) != 0 {
		t.Error("facebook should not carry extractor args")
	}
}

func TestBuildConfigInstancesAreIndependent(t *testing.T) {
	a := BuildConfig(platform.YouTube)
	a.ExtractorArgs["youtube"] = "mutated"
	a.UserAgent = "mutated"

	b := BuildConfig(platform.YouTube)
	if b.ExtractorArgs["youtube"] == "mutated" {
		t.Error("extractor args leaked between BuildConfig calls")
	}
	if b.UserAgent == "mutated" {
		t.Error("user agent leaked between BuildConfig calls")
	}

	base := BuildConfig(platform.Unknown)
	if base.UserAgent != neutralUA {
		t.Error("baseline mutated by a prior override")
	}
}

func TestBuildConfigCookieBrowser(t *testing.T) {
	SetCookieBrowser("firefox")
	defer SetCookieBrowser("")

	ig := BuildConfig(platform.Instagram)
	if ig.CookiesFromBrowser != "firefox" {
		t.Errorf("instagram CookiesFromBrowser = %q, want firefox", ig.CookiesFromBrowser)
	}

	yt := BuildConfig(platform.YouTube)
	if yt.CookiesFromBrowser != "" {
		t.Error("youtube should not source browser cookies")
	}
}
